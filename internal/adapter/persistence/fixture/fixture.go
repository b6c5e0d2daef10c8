// Package fixture loads reference data (parts, service orders, warranties)
// that the quote service reads but does not own.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"oficina_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Writer stores reference data. Both the in-memory store and the DynamoDB
// seeder implement it.
type Writer interface {
	PutPart(ctx context.Context, p entities.Part) error
	PutServiceOrder(ctx context.Context, o entities.ServiceOrder) error
	PutWarranty(ctx context.Context, w entities.Warranty) error
}

type orderLine struct {
	Type      string          `json:"type"`
	ServiceID string          `json:"service_id"`
	PartID    string          `json:"part_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type serviceOrder struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	BookingID   string      `json:"booking_id"`
	Items       []orderLine `json:"items"`
}

type document struct {
	Parts         []entities.Part     `json:"parts"`
	ServiceOrders []serviceOrder      `json:"service_orders"`
	Warranties    []entities.Warranty `json:"warranties"`
}

type Fixture struct {
	Parts         []entities.Part
	ServiceOrders []entities.ServiceOrder
	Warranties    []entities.Warranty
}

func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Fixture, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Fixture{}, fmt.Errorf("invalid fixture: %w", err)
	}

	f := Fixture{Parts: doc.Parts, Warranties: doc.Warranties}
	for _, so := range doc.ServiceOrders {
		order := entities.ServiceOrder{
			ID:          so.ID,
			OrderNumber: so.OrderNumber,
			Status:      entities.ServiceOrderStatus(so.Status),
			BookingID:   so.BookingID,
		}
		for i, l := range so.Items {
			switch entities.QuoteItemType(l.Type) {
			case entities.QuoteItemService:
				order.Items = append(order.Items, entities.ServiceLine{ServiceID: l.ServiceID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
			case entities.QuoteItemPart:
				order.Items = append(order.Items, entities.PartLine{PartID: l.PartID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
			default:
				return Fixture{}, fmt.Errorf("service order %s item %d: unknown line type %q", so.ID, i, l.Type)
			}
		}
		f.ServiceOrders = append(f.ServiceOrders, order)
	}
	return f, nil
}

// WriteTo stores every record and stops at the first failure.
func (f Fixture) WriteTo(ctx context.Context, w Writer) error {
	for _, p := range f.Parts {
		if err := w.PutPart(ctx, p); err != nil {
			return fmt.Errorf("part %s: %w", p.ID, err)
		}
	}
	for _, o := range f.ServiceOrders {
		if err := w.PutServiceOrder(ctx, o); err != nil {
			return fmt.Errorf("service order %s: %w", o.ID, err)
		}
	}
	for _, wr := range f.Warranties {
		if err := w.PutWarranty(ctx, wr); err != nil {
			return fmt.Errorf("warranty %s: %w", wr.ID, err)
		}
	}
	return nil
}
