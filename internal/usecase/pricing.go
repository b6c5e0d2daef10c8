package usecase

import (
	"oficina_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// priceQuote fills Subtotal and Tax: subtotal = Σ price × quantity,
// tax = round(subtotal × TaxRate).
func priceQuote(q *entities.Quote) {
	subtotal := decimal.Zero
	for _, it := range q.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	q.Subtotal = subtotal
	q.Tax = subtotal.Mul(entities.TaxRate).Round(0)
}
