package dto

import (
	"time"

	"oficina_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type QuoteItemDTO struct {
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// QuoteDTO is the full projection of a quote handed to callers.
type QuoteDTO struct {
	ID             string          `json:"id"`
	ServiceOrderID string          `json:"service_order_id"`
	Items          []QuoteItemDTO  `json:"items"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Status         string          `json:"status"`
	RejectedReason string          `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type QuoteSummaryDTO struct {
	ID             string          `json:"id"`
	ServiceOrderID string          `json:"service_order_id"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Status         string          `json:"status"`
	RejectedReason string          `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PaginationMeta struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}

type QuoteListDTO struct {
	Quotes     []QuoteSummaryDTO `json:"quotes"`
	Pagination PaginationMeta    `json:"pagination"`
}

func FromQuote(q entities.Quote) QuoteDTO {
	items := make([]QuoteItemDTO, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, QuoteItemDTO{
			Type:     string(it.Type),
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return QuoteDTO{
		ID:             q.ID,
		ServiceOrderID: q.ServiceOrderID,
		Items:          items,
		Subtotal:       q.Subtotal,
		Tax:            q.Tax,
		GrandTotal:     q.GrandTotal(),
		Status:         string(q.Status),
		RejectedReason: q.RejectedReason,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func SummaryFromQuote(q entities.Quote) QuoteSummaryDTO {
	return QuoteSummaryDTO{
		ID:             q.ID,
		ServiceOrderID: q.ServiceOrderID,
		GrandTotal:     q.GrandTotal(),
		Status:         string(q.Status),
		RejectedReason: q.RejectedReason,
		CreatedAt:      q.CreatedAt,
	}
}

// NewPaginationMeta computes total pages; an empty result still reports page 1 of 0.
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
