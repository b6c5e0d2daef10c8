package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
	"oficina_quotes/pkg"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const unknownPartName = "Unknown part"

// QuoteBuilder turns a service order (plus its warranty) into a new pending quote.
type QuoteBuilder struct {
	quotes     interfaces.IQuoteRepository
	parts      interfaces.IPartRepository
	orders     interfaces.IServiceOrderRepository
	warranties interfaces.IWarrantyRepository
	checker    *StockReservationChecker
	locker     interfaces.IServiceOrderLocker
	log        logrus.FieldLogger

	now   func() time.Time
	newID func() string
}

func NewQuoteBuilder(
	quotes interfaces.IQuoteRepository,
	parts interfaces.IPartRepository,
	orders interfaces.IServiceOrderRepository,
	warranties interfaces.IWarrantyRepository,
	checker *StockReservationChecker,
	locker interfaces.IServiceOrderLocker,
	log logrus.FieldLogger,
) *QuoteBuilder {
	return &QuoteBuilder{
		quotes:     quotes,
		parts:      parts,
		orders:     orders,
		warranties: warranties,
		checker:    checker,
		locker:     locker,
		log:        componentLogger(log, "quote_builder"),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// Build creates a pending quote for the service order. Every failure is an
// *pkg.AppError; unexpected errors are wrapped as INTERNAL_ERROR.
func (b *QuoteBuilder) Build(ctx context.Context, serviceOrderID string) (QuoteResult, error) {
	res, err := b.build(ctx, strings.TrimSpace(serviceOrderID))
	if err != nil {
		var appErr *pkg.AppError
		if errors.As(err, &appErr) {
			return QuoteResult{}, err
		}
		b.log.WithField("service_order_id", serviceOrderID).WithError(err).Error("quote creation failed")
		return QuoteResult{}, wrapInternal("Failed to create quote", err)
	}
	return res, nil
}

func (b *QuoteBuilder) build(ctx context.Context, serviceOrderID string) (QuoteResult, error) {
	if serviceOrderID == "" {
		return QuoteResult{}, ErrServiceOrderNotFound
	}
	log := b.log.WithField("service_order_id", serviceOrderID)

	if b.locker != nil {
		unlock, err := b.locker.Lock(ctx, serviceOrderID)
		if err != nil {
			log.WithError(err).Warn("could not obtain order lock; proceeding without lock")
		} else {
			defer unlock()
		}
	}

	order, err := b.orders.GetByID(ctx, serviceOrderID)
	if err != nil {
		return QuoteResult{}, err
	}
	if order.ID == "" {
		return QuoteResult{}, ErrServiceOrderNotFound
	}
	if len(order.Items) == 0 {
		return QuoteResult{}, ErrQuoteItemsRequired
	}
	if !order.Status.CanBeQuoted() {
		return QuoteResult{}, ErrServiceOrderInvalidState
	}

	if err := b.ensureNoLiveQuote(ctx, serviceOrderID); err != nil {
		return QuoteResult{}, err
	}

	resolver := newPartResolver(b.parts, b.warranties, order)
	items, err := b.assembleItems(ctx, order, resolver)
	if err != nil {
		return QuoteResult{}, err
	}

	now := b.now()
	quote := entities.Quote{
		ID:                 b.newID(),
		ServiceOrderID:     order.ID,
		ServiceOrderNumber: order.OrderNumber,
		Items:              items,
		Status:             entities.QuoteStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	priceQuote(&quote)

	if err := b.checker.Check(ctx, order.ID, quote.Items, resolver); err != nil {
		return QuoteResult{}, err
	}

	prior, err := b.quotes.CountDocuments(ctx, interfaces.QuoteFilter{ServiceOrderID: order.ID})
	if err != nil {
		return QuoteResult{}, err
	}
	if _, err := b.quotes.DeleteMany(ctx, interfaces.QuoteFilter{
		ServiceOrderID: order.ID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusRejected},
	}); err != nil {
		return QuoteResult{}, err
	}

	created, err := b.insert(ctx, quote)
	if err != nil {
		return QuoteResult{}, err
	}

	updated, err := b.orders.SetStatus(ctx, order.ID, entities.ServiceOrderStatusUpdate{
		Status:            entities.ServiceOrderStatusWaitingCustomerApproval,
		WaitingApprovalAt: &now,
	})
	if err != nil {
		b.rollbackInsert(ctx, created)
		return QuoteResult{}, err
	}
	if updated.ID == "" {
		updated = order
		updated.Status = entities.ServiceOrderStatusWaitingCustomerApproval
		updated.WaitingApprovalAt = &now
	}

	log.WithFields(logrus.Fields{
		"quote_id":    created.ID,
		"grand_total": created.GrandTotal().String(),
		"revision":    prior > 0,
	}).Info("quote created")

	return QuoteResult{
		Quote: created,
		Events: []OutboundEvent{
			{Kind: EventServiceOrderStatusChanged, Order: updated, Quote: created},
			{Kind: EventCustomerNewQuote, Order: updated, Quote: created, IsRevision: prior > 0},
		},
	}, nil
}

func (b *QuoteBuilder) ensureNoLiveQuote(ctx context.Context, serviceOrderID string) error {
	pending, err := b.quotes.FindOne(ctx, interfaces.QuoteFilter{
		ServiceOrderID: serviceOrderID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusPending},
	})
	if err != nil {
		return err
	}
	if pending.ID != "" {
		return ErrQuoteAlreadyExists
	}

	approved, err := b.quotes.FindOne(ctx, interfaces.QuoteFilter{
		ServiceOrderID: serviceOrderID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusApproved},
	})
	if err != nil {
		return err
	}
	if approved.ID != "" {
		return ErrQuoteAlreadyApproved
	}
	return nil
}

// insert stores the quote, resolving a uniqueness conflict at most once:
// a concurrent pending quote wins; otherwise stale non-approved quotes are
// cleared and the insert is retried a single time.
func (b *QuoteBuilder) insert(ctx context.Context, quote entities.Quote) (entities.Quote, error) {
	created, err := b.quotes.Create(ctx, quote)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, interfaces.ErrDuplicateQuote) {
		return entities.Quote{}, err
	}

	log := b.log.WithFields(logrus.Fields{"service_order_id": quote.ServiceOrderID, "quote_id": quote.ID})
	log.Warn("quote insert hit an existing live quote; re-checking")

	pending, err := b.quotes.FindOne(ctx, interfaces.QuoteFilter{
		ServiceOrderID: quote.ServiceOrderID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusPending},
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if pending.ID != "" {
		return entities.Quote{}, ErrQuoteAlreadyExists
	}

	if _, err := b.quotes.DeleteMany(ctx, interfaces.QuoteFilter{
		ServiceOrderID: quote.ServiceOrderID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusPending, entities.QuoteStatusRejected},
	}); err != nil {
		return entities.Quote{}, err
	}

	created, err = b.quotes.Create(ctx, quote)
	if err != nil {
		log.WithError(err).Warn("quote insert retry failed")
		return entities.Quote{}, ErrQuoteAlreadyExists
	}
	return created, nil
}

// rollbackInsert removes a quote whose order could not be moved to waiting
// for approval, so a retry is not blocked by it.
func (b *QuoteBuilder) rollbackInsert(ctx context.Context, quote entities.Quote) {
	log := b.log.WithFields(logrus.Fields{"service_order_id": quote.ServiceOrderID, "quote_id": quote.ID})
	if _, err := b.quotes.DeleteMany(context.WithoutCancel(ctx), interfaces.QuoteFilter{
		ServiceOrderID: quote.ServiceOrderID,
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusPending},
	}); err != nil {
		log.WithError(err).Error("could not remove quote after service order update failed")
		return
	}
	log.Warn("quote removed after service order update failed")
}

// assembleItems copies the order lines into quote lines and merges the
// booking's warranty parts at price 0.
func (b *QuoteBuilder) assembleItems(ctx context.Context, order entities.ServiceOrder, resolver *partResolver) ([]entities.QuoteItem, error) {
	items := make([]entities.QuoteItem, 0, len(order.Items))
	for _, line := range order.Items {
		switch it := line.(type) {
		case entities.ServiceLine:
			items = append(items, entities.QuoteItem{
				Type:     entities.QuoteItemService,
				Name:     it.Name,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		case entities.PartLine:
			items = append(items, entities.QuoteItem{
				Type:     entities.QuoteItemPart,
				PartID:   it.PartID,
				Name:     b.resolvePartName(ctx, it),
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}
	}

	if order.BookingID == "" || b.warranties == nil {
		return items, nil
	}
	warranty, ok, err := b.warranties.FindByBookingID(ctx, order.BookingID)
	if err != nil {
		return nil, err
	}
	resolver.useWarranty(warranty)
	if !ok {
		return items, nil
	}
	return mergeWarrantyParts(items, warranty), nil
}

// resolvePartName never fails: a missing Part falls back to the line's own
// name snapshot.
func (b *QuoteBuilder) resolvePartName(ctx context.Context, line entities.PartLine) string {
	if line.PartID != "" {
		part, err := b.parts.GetByID(ctx, line.PartID)
		switch {
		case err != nil:
			b.log.WithField("part_id", line.PartID).WithError(err).Warn("part lookup failed; using line name")
		case part.Name != "":
			return part.Name
		}
	}
	if line.Name != "" {
		return line.Name
	}
	return unknownPartName
}

// mergeWarrantyParts matches warranty parts to existing lines by name.
// A match is forced to price 0; otherwise a free part line is appended.
func mergeWarrantyParts(items []entities.QuoteItem, warranty entities.Warranty) []entities.QuoteItem {
	for _, wp := range warranty.WarrantyParts {
		matched := false
		for i := range items {
			if items[i].Name != wp.PartName {
				continue
			}
			items[i].Price = decimal.Zero
			if items[i].Type == entities.QuoteItemPart && items[i].PartID == "" {
				items[i].PartID = wp.PartID
			}
			matched = true
			break
		}
		if matched {
			continue
		}
		items = append(items, entities.QuoteItem{
			Type:     entities.QuoteItemPart,
			PartID:   wp.PartID,
			Name:     wp.PartName,
			Quantity: wp.Quantity,
			Price:    decimal.Zero,
		})
	}
	return items
}
