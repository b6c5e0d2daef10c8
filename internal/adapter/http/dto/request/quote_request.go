package request

import (
	"strings"

	"oficina_quotes/internal/usecase"
)

type CreateQuoteRequest struct {
	ServiceOrderID string `json:"service_order_id" binding:"required"`
}

func (r CreateQuoteRequest) ResolveServiceOrderID() string {
	return strings.TrimSpace(r.ServiceOrderID)
}

// RejectQuoteRequest leaves the reason unvalidated here; an empty reason is a
// domain error with its own code.
type RejectQuoteRequest struct {
	Reason string `json:"reason"`
}

type ListQuotesQuery struct {
	Page           int    `form:"page" binding:"omitempty,min=1"`
	Limit          int    `form:"limit" binding:"omitempty,min=1"`
	ServiceOrderID string `form:"service_order_id"`
}

func (q ListQuotesQuery) ToParams() usecase.ListQuotesParams {
	return usecase.ListQuotesParams{
		Page:           q.Page,
		Limit:          q.Limit,
		ServiceOrderID: strings.TrimSpace(q.ServiceOrderID),
	}
}
