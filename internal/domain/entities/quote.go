package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a quote (báo giá).
//
// Domain notes:
//   - A quote is created pending and moves to approved (terminal) or rejected.
//   - A service order holds at most one pending and at most one approved quote.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// QuoteItemType tags a quote line item.
type QuoteItemType string

const (
	QuoteItemPart    QuoteItemType = "part"
	QuoteItemService QuoteItemType = "service"
)

// TaxRate is applied over the quote subtotal.
var TaxRate = decimal.NewFromFloat(0.10)

// QuoteItem is a flattened copy of a priced line, not a live reference.
//
// PartID is filled whenever the line could be tied to a Part record at quote
// time. Legacy items only carry the name.
type QuoteItem struct {
	Type     QuoteItemType   `json:"type"`
	PartID   string          `json:"part_id,omitempty"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineTotal is price × quantity.
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Quote is the price quotation built from a service order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (service_order_id-index): service_order_id
//   - slot item in the quote_order_slots table keyed by service_order_id,
//     guarding the "one live quote per order" rule.
type Quote struct {
	ID                 string          `json:"id"`
	ServiceOrderID     string          `json:"service_order_id"`
	ServiceOrderNumber string          `json:"service_order_number,omitempty"`
	Items              []QuoteItem     `json:"items"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Tax                decimal.Decimal `json:"tax"`
	Status             QuoteStatus     `json:"status"`
	RejectedReason     string          `json:"rejected_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (q Quote) GrandTotal() decimal.Decimal {
	return q.Subtotal.Add(q.Tax)
}

// PartItems returns the part lines of the quote.
func (q Quote) PartItems() []QuoteItem {
	out := make([]QuoteItem, 0, len(q.Items))
	for _, it := range q.Items {
		if it.Type == QuoteItemPart {
			out = append(out, it)
		}
	}
	return out
}

// HolderLabel is how the quote's service order is named in user-facing messages.
func (q Quote) HolderLabel() string {
	if q.ServiceOrderNumber != "" {
		return q.ServiceOrderNumber
	}
	return q.ServiceOrderID
}
