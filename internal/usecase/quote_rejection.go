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

// RejectionHandler moves a pending quote to rejected and, when the order was
// waiting for the customer, hands it back to inspection_completed so a new
// quote can be built.
type RejectionHandler struct {
	quotes interfaces.IQuoteRepository
	orders interfaces.IServiceOrderRepository
	log    logrus.FieldLogger
}

func NewRejectionHandler(quotes interfaces.IQuoteRepository, orders interfaces.IServiceOrderRepository, log logrus.FieldLogger) *RejectionHandler {
	return &RejectionHandler{quotes: quotes, orders: orders, log: componentLogger(log, "rejection")}
}

func (h *RejectionHandler) Reject(ctx context.Context, quoteID, reason string) (QuoteResult, error) {
	res, err := h.reject(ctx, strings.TrimSpace(quoteID), strings.TrimSpace(reason))
	if err != nil {
		var appErr *pkg.AppError
		if errors.As(err, &appErr) {
			return QuoteResult{}, err
		}
		h.log.WithField("quote_id", quoteID).WithError(err).Error("quote rejection failed")
		return QuoteResult{}, wrapInternal("Failed to reject quote", err)
	}
	return res, nil
}

func (h *RejectionHandler) reject(ctx context.Context, quoteID, reason string) (QuoteResult, error) {
	if quoteID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}
	quote, err := h.quotes.FindByID(ctx, quoteID)
	if err != nil {
		return QuoteResult{}, err
	}
	if quote.ID == "" {
		return QuoteResult{}, ErrQuoteNotFound
	}
	if quote.Status != entities.QuoteStatusPending {
		return QuoteResult{}, ErrQuoteInvalidTransition
	}
	if reason == "" {
		return QuoteResult{}, ErrRejectReasonRequired
	}

	rejected, err := h.quotes.Transition(ctx, quote.ID, entities.QuoteStatusPending, entities.QuoteStatusRejected, reason)
	if err != nil {
		return QuoteResult{}, err
	}
	if rejected.ID == "" {
		return QuoteResult{}, ErrQuoteInvalidTransition
	}

	log := h.log.WithFields(logrus.Fields{"quote_id": rejected.ID, "service_order_id": rejected.ServiceOrderID})

	order, err := h.orders.GetByID(ctx, rejected.ServiceOrderID)
	if err != nil {
		return QuoteResult{}, err
	}

	var events []OutboundEvent
	if order.Status == entities.ServiceOrderStatusWaitingCustomerApproval {
		updated, err := h.orders.SetStatus(ctx, order.ID, entities.ServiceOrderStatusUpdate{
			Status:                 entities.ServiceOrderStatusInspectionCompleted,
			ClearWaitingApprovalAt: true,
		})
		if err != nil {
			return QuoteResult{}, err
		}
		if updated.ID != "" {
			order = updated
		}
		events = append(events, OutboundEvent{Kind: EventServiceOrderStatusChanged, Order: order, Quote: rejected})
	} else if order.ID == "" {
		log.Warn("rejected quote has no service order")
	}
	events = append(events, OutboundEvent{Kind: EventQuoteRevisionRequested, Order: order, Quote: rejected})

	log.Info("quote rejected")
	return QuoteResult{Quote: rejected, Events: events}, nil
}
