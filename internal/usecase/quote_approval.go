package usecase

import (
	"context"
	"errors"
	"strings"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
	"oficina_quotes/pkg"

	"github.com/sirupsen/logrus"
)

// ApprovalOrchestrator approves a pending quote and debits the stock of every
// part it references.
//
// The store only offers single-document atomicity, so the debit runs as two
// local phases: every conditional decrement is attempted and its outcome
// recorded; if any failed, each successful decrement is reversed with an
// increment before the error is returned.
type ApprovalOrchestrator struct {
	quotes     interfaces.IQuoteRepository
	parts      interfaces.IPartRepository
	orders     interfaces.IServiceOrderRepository
	warranties interfaces.IWarrantyRepository
	log        logrus.FieldLogger
}

func NewApprovalOrchestrator(
	quotes interfaces.IQuoteRepository,
	parts interfaces.IPartRepository,
	orders interfaces.IServiceOrderRepository,
	warranties interfaces.IWarrantyRepository,
	log logrus.FieldLogger,
) *ApprovalOrchestrator {
	return &ApprovalOrchestrator{
		quotes:     quotes,
		parts:      parts,
		orders:     orders,
		warranties: warranties,
		log:        componentLogger(log, "approval"),
	}
}

type partDebit struct {
	PartID   string
	Name     string
	Quantity int
}

type debitOutcome struct {
	partDebit
	OK        bool
	Err       error
	Available int
	PartName  string
}

func (a *ApprovalOrchestrator) Approve(ctx context.Context, quoteID string) (QuoteResult, error) {
	res, err := a.approve(ctx, strings.TrimSpace(quoteID))
	if err != nil {
		var appErr *pkg.AppError
		if errors.As(err, &appErr) {
			return QuoteResult{}, err
		}
		a.log.WithField("quote_id", quoteID).WithError(err).Error("quote approval failed")
		return QuoteResult{}, wrapInternal("Failed to approve quote", err)
	}
	return res, nil
}

func (a *ApprovalOrchestrator) approve(ctx context.Context, quoteID string) (QuoteResult, error) {
	if quoteID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}
	quote, err := a.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return QuoteResult{}, err
	}
	if quote.ID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}
	order, err := a.orders.GetByID(ctx, quote.ServiceOrderID)
	if err != nil {
		return QuoteResult{}, err
	}
	if order.ID == "" {
		return QuoteResult{}, ErrServiceOrderNotFound
	}
	if quote.Status != entities.QuoteStatusPending {
		return QuoteResult{}, ErrQuoteInvalidTransition
	}

	log := a.log.WithFields(logrus.Fields{"quote_id": quote.ID, "service_order_id": order.ID})

	plan, err := a.planDebits(ctx, quote, order)
	if err != nil {
		return QuoteResult{}, err
	}

	// Phase 1: attempt every decrement, never short-circuit.
	outcomes := a.debitAll(ctx, plan)

	var shortfalls []StockShortfall
	var firstErr error
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			if firstErr == nil {
				firstErr = o.Err
			}
		case !o.OK:
			shortfalls = append(shortfalls, StockShortfall{
				PartID:    o.PartID,
				PartName:  o.PartName,
				Available: o.Available,
				Required:  o.Quantity,
			})
		}
	}

	// Phase 2: compensate before surfacing any failure.
	if len(shortfalls) > 0 || firstErr != nil {
		a.compensate(ctx, quote.ID, outcomes)
		if len(shortfalls) > 0 {
			log.WithField("shortfalls", len(shortfalls)).Info("approval rejected for insufficient stock")
			return QuoteResult{}, newInsufficientStockError(shortfalls)
		}
		return QuoteResult{}, firstErr
	}

	approved, err := a.quotes.Transition(ctx, quote.ID, entities.QuoteStatusPending, entities.QuoteStatusApproved, "")
	if err != nil || approved.ID == "" {
		a.compensate(ctx, quote.ID, outcomes)
		if err != nil {
			return QuoteResult{}, err
		}
		return QuoteResult{}, ErrQuoteInvalidTransition
	}

	updated, err := a.orders.SetStatus(ctx, order.ID, entities.ServiceOrderStatusUpdate{
		Status: entities.ServiceOrderStatusApproved,
	})
	if err != nil || updated.ID == "" {
		// The quote is committed and the stock debited; the order status is
		// owned elsewhere and can be repaired there.
		log.WithError(err).Error("quote approved but service order status update failed")
		updated = order
		updated.Status = entities.ServiceOrderStatusApproved
	}

	log.WithField("parts", len(plan)).Info("quote approved")

	return QuoteResult{
		Quote: approved,
		Events: []OutboundEvent{
			{Kind: EventServiceOrderStatusChanged, Order: updated, Quote: approved},
			{Kind: EventQuoteApproved, Order: updated, Quote: approved},
		},
	}, nil
}

// planDebits resolves every part line to a concrete part id and sums the
// quantities per part, in order of first appearance.
func (a *ApprovalOrchestrator) planDebits(ctx context.Context, quote entities.Quote, order entities.ServiceOrder) ([]partDebit, error) {
	resolver := newPartResolver(a.parts, a.warranties, order)

	var plan []partDebit
	index := map[string]int{}
	for _, it := range quote.PartItems() {
		if it.Quantity <= 0 {
			continue
		}
		partID := it.PartID
		if partID == "" {
			id, err := resolver.resolve(ctx, it.Name)
			if err != nil {
				return nil, err
			}
			partID = id
		}
		if partID == "" {
			a.log.WithFields(logrus.Fields{"quote_id": quote.ID, "part_name": it.Name}).Warn("quote line does not match any part; skipping stock debit")
			continue
		}
		if i, ok := index[partID]; ok {
			plan[i].Quantity += it.Quantity
			continue
		}
		index[partID] = len(plan)
		plan = append(plan, partDebit{PartID: partID, Name: it.Name, Quantity: it.Quantity})
	}
	return plan, nil
}

func (a *ApprovalOrchestrator) debitAll(ctx context.Context, plan []partDebit) []debitOutcome {
	outcomes := make([]debitOutcome, 0, len(plan))
	for _, d := range plan {
		out := debitOutcome{partDebit: d, PartName: d.Name}
		part, err := a.parts.ConditionalDecrement(ctx, d.PartID, d.Quantity)
		switch {
		case err != nil:
			out.Err = err
		case part.ID != "":
			out.OK = true
		default:
			current, err := a.parts.GetByID(ctx, d.PartID)
			if err != nil {
				a.log.WithField("part_id", d.PartID).WithError(err).Warn("could not read stock for shortfall report")
			}
			out.Available = current.Quantity
			if current.Name != "" {
				out.PartName = current.Name
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}

// compensate reverses every successful decrement. Failures are logged only:
// the primary error takes precedence.
func (a *ApprovalOrchestrator) compensate(ctx context.Context, quoteID string, outcomes []debitOutcome) {
	for _, o := range outcomes {
		if !o.OK {
			continue
		}
		if _, err := a.parts.Increment(ctx, o.PartID, o.Quantity); err != nil {
			a.log.WithFields(logrus.Fields{
				"quote_id": quoteID,
				"part_id":  o.PartID,
				"quantity": o.Quantity,
			}).WithError(err).Error("stock compensation failed")
		}
	}
}
