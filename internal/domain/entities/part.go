package entities

import "github.com/shopspring/decimal"

// Part is an inventory record.
//
// Quantity is only mutated through conditional decrement / increment so it
// never goes negative.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (name-index): name
type Part struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}
