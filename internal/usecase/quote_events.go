package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

type EventKind string

const (
	EventServiceOrderStatusChanged EventKind = "service_order.status_changed"
	EventCustomerNewQuote          EventKind = "quote.created"
	EventQuoteApproved             EventKind = "quote.approved"
	EventQuoteRevisionRequested    EventKind = "quote.revision_requested"
)

// OutboundEvent is a notification produced by an engine operation. The
// operation itself never delivers it.
type OutboundEvent struct {
	Kind       EventKind
	Order      entities.ServiceOrder
	Quote      entities.Quote
	IsRevision bool
}

// QuoteResult is what every state-changing operation returns.
type QuoteResult struct {
	Quote  entities.Quote
	Events []OutboundEvent
}

const defaultDispatchTimeout = 10 * time.Second

// NotificationDispatcher delivers outbound events in the background and
// swallows every failure.
type NotificationDispatcher struct {
	sink    interfaces.INotificationSink
	log     logrus.FieldLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewNotificationDispatcher(sink interfaces.INotificationSink, log logrus.FieldLogger) *NotificationDispatcher {
	return &NotificationDispatcher{
		sink:    sink,
		log:     componentLogger(log, "notifications"),
		timeout: defaultDispatchTimeout,
	}
}

// Dispatch returns immediately. The request context is detached so a
// finished HTTP request does not cancel delivery.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, events []OutboundEvent) {
	if d == nil || d.sink == nil || len(events) == 0 {
		return
	}
	base := context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for _, ev := range events {
			d.deliver(base, ev)
		}
	}()
}

// Wait blocks until every in-flight dispatch finished.
func (d *NotificationDispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

func (d *NotificationDispatcher) deliver(base context.Context, ev OutboundEvent) {
	ctx, cancel := context.WithTimeout(base, d.timeout)
	defer cancel()

	fields := logrus.Fields{
		"event":            ev.Kind,
		"service_order_id": ev.Order.ID,
		"quote_id":         ev.Quote.ID,
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.WithFields(fields).Warnf("notification panicked: %v", r)
		}
	}()

	var err error
	switch ev.Kind {
	case EventServiceOrderStatusChanged:
		err = d.sink.NotifyServiceOrderStatusChange(ctx, ev.Order)
	case EventCustomerNewQuote:
		err = d.sink.NotifyCustomerNewQuote(ctx, ev.Order, ev.Quote, ev.IsRevision)
	case EventQuoteApproved:
		err = d.sink.NotifyQuoteApproved(ctx, ev.Order, ev.Quote)
	case EventQuoteRevisionRequested:
		err = d.sink.NotifyQuoteRevisionRequested(ctx, ev.Order, ev.Quote)
	default:
		err = fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	if err != nil {
		d.log.WithFields(fields).WithError(err).Warn("notification delivery failed")
		return
	}
	d.log.WithFields(fields).Debug("notification delivered")
}
