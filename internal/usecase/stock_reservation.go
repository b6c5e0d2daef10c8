package usecase

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// StockReservationChecker estimates whether a new quote's parts can be
// covered once the stock soft-reserved by other pending quotes is set aside.
//
// The result is a point-in-time estimate: no lock is held between the check
// and the quote insert. Approval is where stock is actually enforced.
type StockReservationChecker struct {
	quotes interfaces.IQuoteRepository
	parts  interfaces.IPartRepository
	log    logrus.FieldLogger
}

func NewStockReservationChecker(quotes interfaces.IQuoteRepository, parts interfaces.IPartRepository, log logrus.FieldLogger) *StockReservationChecker {
	return &StockReservationChecker{quotes: quotes, parts: parts, log: componentLogger(log, "stock_reservation")}
}

type partRequirement struct {
	PartID   string
	Name     string
	Quantity int
}

// reservation is the stock held by pending quotes of other orders.
type reservation struct {
	Quantity int
	Orders   []string
}

func (r *reservation) add(qty int, order string) {
	r.Quantity += qty
	for _, o := range r.Orders {
		if o == order {
			return
		}
	}
	r.Orders = append(r.Orders, order)
}

func (r *reservation) merge(other *reservation) {
	if other == nil {
		return
	}
	r.Quantity += other.Quantity
	for _, o := range other.Orders {
		r.add(0, o)
	}
}

// Check returns an *InsufficientStockError listing every part that would be
// over-committed, or nil. Lines that only carry a name are resolved through
// resolver the same way approval resolves them.
func (c *StockReservationChecker) Check(ctx context.Context, serviceOrderID string, items []entities.QuoteItem, resolver *partResolver) error {
	required, err := c.aggregateRequirements(ctx, serviceOrderID, items, resolver)
	if err != nil {
		return err
	}
	if len(required) == 0 {
		return nil
	}

	pending, err := c.quotes.Find(ctx, interfaces.QuoteFilter{
		ExcludeServiceOrderID: serviceOrderID,
		Statuses:              []entities.QuoteStatus{entities.QuoteStatusPending},
	})
	if err != nil {
		return err
	}
	byID, byName := aggregateReservations(pending)

	var shortfalls []StockShortfall
	for _, req := range required {
		part, err := c.parts.GetByID(ctx, req.PartID)
		if err != nil {
			return err
		}
		name := part.Name
		if name == "" {
			name = req.Name
		}

		// Items that carry a part id reserve by id. Older pending quotes only
		// carry a display name, so they are matched by the part's name.
		held := reservation{}
		held.merge(byID[req.PartID])
		held.merge(byName[name])

		available := part.Quantity - held.Quantity
		if part.Quantity <= 0 || available < req.Quantity {
			if available < 0 {
				available = 0
			}
			shortfalls = append(shortfalls, StockShortfall{
				PartID:           req.PartID,
				PartName:         name,
				Available:        available,
				Required:         req.Quantity,
				ReservedByOrders: held.Orders,
			})
		}
	}

	if len(shortfalls) > 0 {
		c.log.WithFields(logrus.Fields{
			"service_order_id": serviceOrderID,
			"shortfalls":       len(shortfalls),
		}).Info("quote would over-commit stock")
		return newInsufficientStockError(shortfalls)
	}
	return nil
}

// aggregateRequirements sums part quantities per resolved part id, keeping
// the order of first appearance. A line that matches no part is logged and
// left out, as approval does not debit it either.
func (c *StockReservationChecker) aggregateRequirements(ctx context.Context, serviceOrderID string, items []entities.QuoteItem, resolver *partResolver) ([]partRequirement, error) {
	var out []partRequirement
	index := map[string]int{}
	for _, it := range items {
		if it.Type != entities.QuoteItemPart || it.Quantity <= 0 {
			continue
		}
		partID := it.PartID
		if partID == "" && resolver != nil {
			id, err := resolver.resolve(ctx, it.Name)
			if err != nil {
				return nil, err
			}
			partID = id
		}
		if partID == "" {
			c.log.WithFields(logrus.Fields{
				"service_order_id": serviceOrderID,
				"part_name":        it.Name,
			}).Warn("quote line does not match any part; not reserved")
			continue
		}
		if i, ok := index[partID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[partID] = len(out)
		out = append(out, partRequirement{PartID: partID, Name: it.Name, Quantity: it.Quantity})
	}
	return out, nil
}

func aggregateReservations(pending []entities.Quote) (byID, byName map[string]*reservation) {
	byID = map[string]*reservation{}
	byName = map[string]*reservation{}
	for _, q := range pending {
		for _, it := range q.PartItems() {
			if it.Quantity <= 0 {
				continue
			}
			target, key := byName, it.Name
			if it.PartID != "" {
				target, key = byID, it.PartID
			}
			r, ok := target[key]
			if !ok {
				r = &reservation{}
				target[key] = r
			}
			r.add(it.Quantity, q.HolderLabel())
		}
	}
	return byID, byName
}
