package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"oficina_quotes/internal/adapter/http/handlers/mocks"
	"oficina_quotes/internal/usecase"
	"oficina_quotes/internal/usecase/dto"
	"oficina_quotes/pkg"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newQuoteRouter(t *testing.T) (*gin.Engine, *mocks.MockIQuoteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	h := NewQuoteHandler(uc)

	r := gin.New()
	r.POST("/v1/quotes", h.CreateQuote)
	r.GET("/v1/quotes", h.ListQuotes)
	r.GET("/v1/quotes/:id", h.GetQuote)
	r.POST("/v1/quotes/:id/approve", h.ApproveQuote)
	r.POST("/v1/quotes/:id/reject", h.RejectQuote)
	return r, uc
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestQuoteHandler_CreateQuote(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		w := serve(r, http.MethodPost, "/v1/quotes", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("blank service order id", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		w := serve(r, http.MethodPost, "/v1/quotes", `{"service_order_id":"   "}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeError(t, w).Code; got != "INVALID_REQUEST" {
			t.Fatalf("expected INVALID_REQUEST, got %s", got)
		}
	})

	t.Run("insufficient stock keeps the shortfall message", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		stockErr := &usecase.InsufficientStockError{Shortfalls: []usecase.StockShortfall{
			{PartID: "p-1", PartName: "Brake Pad", Available: 2, Required: 3, ReservedByOrders: []string{"OS-0001"}},
		}}
		uc.EXPECT().CreateQuote(gomock.Any(), "so-2").Return(dto.QuoteDTO{}, stockErr)

		w := serve(r, http.MethodPost, "/v1/quotes", `{"service_order_id":" so-2 "}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		body := decodeError(t, w)
		if body.Code != usecase.CodeInsufficientStock {
			t.Fatalf("expected INSUFFICIENT_STOCK, got %s", body.Code)
		}
		want := "Insufficient stock: Brake Pad: available 2, required 3 (reserved by orders OS-0001)"
		if body.Message != want {
			t.Fatalf("expected %q, got %q", want, body.Message)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().CreateQuote(gomock.Any(), "so-1").Return(dto.QuoteDTO{
			ID:             "q-1",
			ServiceOrderID: "so-1",
			Status:         "pending",
			Subtotal:       decimal.NewFromInt(100),
			Tax:            decimal.NewFromInt(10),
			GrandTotal:     decimal.NewFromInt(110),
		}, nil)

		w := serve(r, http.MethodPost, "/v1/quotes", `{"service_order_id":"so-1"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if got["id"] != "q-1" || got["status"] != "pending" || got["grand_total"] != "110" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_ApproveQuote(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", usecase.ErrQuoteNotFound, http.StatusNotFound, usecase.CodeQuoteNotFound},
		{"already decided", usecase.ErrQuoteInvalidTransition, http.StatusConflict, usecase.CodeQuoteInvalidStateTransition},
		{"order missing", usecase.ErrServiceOrderNotFound, http.StatusNotFound, usecase.CodeServiceOrderNotFound},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, usecase.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, uc := newQuoteRouter(t)
			uc.EXPECT().ApproveQuote(gomock.Any(), "q-1").Return(dto.QuoteDTO{}, tt.err)

			w := serve(r, http.MethodPost, "/v1/quotes/q-1/approve", "")
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if got := decodeError(t, w).Code; got != tt.wantCode {
				t.Fatalf("expected %s, got %s", tt.wantCode, got)
			}
		})
	}

	t.Run("internal error does not leak the cause", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		wrapped := pkg.NewDomainError(usecase.CodeInternal, "Failed to approve quote", errors.New("dial tcp 10.0.0.1:8000"), http.StatusInternalServerError)
		uc.EXPECT().ApproveQuote(gomock.Any(), "q-1").Return(dto.QuoteDTO{}, wrapped)

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/approve", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if bytes.Contains(w.Body.Bytes(), []byte("10.0.0.1")) {
			t.Fatalf("internal cause leaked: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ApproveQuote(gomock.Any(), "q-1").Return(dto.QuoteDTO{ID: "q-1", Status: "approved"}, nil)

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/approve", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_RejectQuote(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		w := serve(r, http.MethodPost, "/v1/quotes/q-1/reject", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty reason is a domain error", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().RejectQuote(gomock.Any(), "q-1", "").Return(dto.QuoteDTO{}, usecase.ErrRejectReasonRequired)

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/reject", `{"reason":""}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if got := decodeError(t, w).Code; got != usecase.CodeQuoteItemsRequired {
			t.Fatalf("expected %s, got %s", usecase.CodeQuoteItemsRequired, got)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().RejectQuote(gomock.Any(), "q-1", "giá quá cao").Return(dto.QuoteDTO{ID: "q-1", Status: "rejected", RejectedReason: "giá quá cao"}, nil)

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/reject", `{"reason":"giá quá cao"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_ListQuotes(t *testing.T) {
	t.Run("invalid page", func(t *testing.T) {
		r, _ := newQuoteRouter(t)
		w := serve(r, http.MethodGet, "/v1/quotes?page=abc", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("passes query through", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ListQuotes(gomock.Any(), usecase.ListQuotesParams{Page: 2, Limit: 5, ServiceOrderID: "so-1"}).
			Return(dto.QuoteListDTO{
				Quotes:     []dto.QuoteSummaryDTO{{ID: "q-6"}},
				Pagination: dto.NewPaginationMeta(2, 5, 6),
			}, nil)

		w := serve(r, http.MethodGet, "/v1/quotes?page=2&limit=5&service_order_id=so-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got dto.QuoteListDTO
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if got.Pagination.TotalPages != 2 || len(got.Quotes) != 1 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("defaults are left to the use case", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().ListQuotes(gomock.Any(), usecase.ListQuotesParams{}).Return(dto.QuoteListDTO{}, nil)

		w := serve(r, http.MethodGet, "/v1/quotes", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestQuoteHandler_GetQuote(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().GetQuoteByID(gomock.Any(), "q-404").Return(dto.QuoteDTO{}, false, nil)

		w := serve(r, http.MethodGet, "/v1/quotes/q-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if got := decodeError(t, w).Code; got != usecase.CodeQuoteNotFound {
			t.Fatalf("expected %s, got %s", usecase.CodeQuoteNotFound, got)
		}
	})

	t.Run("found", func(t *testing.T) {
		r, uc := newQuoteRouter(t)
		uc.EXPECT().GetQuoteByID(gomock.Any(), "q-1").Return(dto.QuoteDTO{ID: "q-1"}, true, nil)

		w := serve(r, http.MethodGet, "/v1/quotes/q-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v1/ping", Ping)

	w := serve(r, http.MethodGet, "/v1/ping", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
