package handlers

import (
	"errors"
	"net/http"

	request "oficina_quotes/internal/adapter/http/dto/request"
	"oficina_quotes/internal/usecase"
	"oficina_quotes/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInternal       = pkg.NewDomainErrorSimple(usecase.CodeInternal, "An internal error occurred", http.StatusInternalServerError)
)

// QuoteHandler exposes the quote lifecycle over HTTP.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote godoc
// @Summary      Create a quote for a service order
// @Description  Builds a pending quote from the service order lines and the booking warranty.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      request.CreateQuoteRequest  true  "Service order"
// @Success      201      {object}  dto.QuoteDTO
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}
	serviceOrderID := payload.ResolveServiceOrderID()
	if serviceOrderID == "" {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), serviceOrderID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, quote)
}

// ApproveQuote godoc
// @Summary      Approve a pending quote
// @Description  Debits stock for every part line; on any shortfall all debits are reversed.
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  dto.QuoteDTO
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /quotes/{id}/approve [post]
func (h *QuoteHandler) ApproveQuote(c *gin.Context) {
	quote, err := h.usecase.ApproveQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, quote)
}

// RejectQuote godoc
// @Summary      Reject a pending quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Quote ID"
// @Param        payload  body      request.RejectQuoteRequest  true  "Rejection reason"
// @Success      200      {object}  dto.QuoteDTO
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /quotes/{id}/reject [post]
func (h *QuoteHandler) RejectQuote(c *gin.Context) {
	var payload request.RejectQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	quote, err := h.usecase.RejectQuote(c.Request.Context(), c.Param("id"), payload.Reason)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, quote)
}

// ListQuotes godoc
// @Summary      List quotes, newest first
// @Tags         quotes
// @Produce      json
// @Param        page              query     int     false  "Page (default 1)"
// @Param        limit             query     int     false  "Page size (default 10, max 100)"
// @Param        service_order_id  query     string  false  "Only quotes of this service order"
// @Success      200               {object}  dto.QuoteListDTO
// @Failure      400               {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var query request.ListQuotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return
	}

	list, err := h.usecase.ListQuotes(c.Request.Context(), query.ToParams())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetQuote godoc
// @Summary      Get a quote
// @Tags         quotes
// @Produce      json
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {object}  dto.QuoteDTO
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, found, err := h.usecase.GetQuoteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !found {
		c.JSON(usecase.ErrQuoteNotFound.HTTPStatus, usecase.ErrQuoteNotFound.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, quote)
}

// mapQuoteError passes engine errors through with their own status and hides
// anything else behind INTERNAL_ERROR.
func mapQuoteError(err error) *pkg.AppError {
	var appErr *pkg.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == usecase.CodeInternal {
			return errInternal.WithMessage(appErr.Message)
		}
		return appErr
	}
	return errInternal
}
