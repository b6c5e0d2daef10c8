package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// Publisher sends an encoded message under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type ServiceOrderStatusMessage struct {
	ServiceOrderID    string     `json:"service_order_id"`
	OrderNumber       string     `json:"order_number,omitempty"`
	Status            string     `json:"status"`
	WaitingApprovalAt *time.Time `json:"waiting_approval_at,omitempty"`
	OccurredAt        time.Time  `json:"occurred_at"`
}

type QuoteMessage struct {
	QuoteID        string    `json:"quote_id"`
	ServiceOrderID string    `json:"service_order_id"`
	OrderNumber    string    `json:"order_number,omitempty"`
	Status         string    `json:"status"`
	GrandTotal     string    `json:"grand_total"`
	RejectedReason string    `json:"rejected_reason,omitempty"`
	IsRevision     bool      `json:"is_revision"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RabbitNotificationSink turns quote notifications into broker messages whose
// routing keys are the event kinds. Downstream consumers (customer mailer,
// workshop dashboard) bind to the keys they care about.
type RabbitNotificationSink struct {
	pub Publisher
	now func() time.Time
}

var _ interfaces.INotificationSink = (*RabbitNotificationSink)(nil)

func NewRabbitNotificationSink(pub Publisher) *RabbitNotificationSink {
	return &RabbitNotificationSink{pub: pub, now: func() time.Time { return time.Now().UTC() }}
}

func (s *RabbitNotificationSink) NotifyServiceOrderStatusChange(ctx context.Context, order entities.ServiceOrder) error {
	return s.publish(ctx, usecase.EventServiceOrderStatusChanged, ServiceOrderStatusMessage{
		ServiceOrderID:    order.ID,
		OrderNumber:       order.OrderNumber,
		Status:            string(order.Status),
		WaitingApprovalAt: order.WaitingApprovalAt,
		OccurredAt:        s.now(),
	})
}

func (s *RabbitNotificationSink) NotifyCustomerNewQuote(ctx context.Context, order entities.ServiceOrder, quote entities.Quote, isRevision bool) error {
	return s.publish(ctx, usecase.EventCustomerNewQuote, s.quoteMessage(order, quote, isRevision))
}

func (s *RabbitNotificationSink) NotifyQuoteApproved(ctx context.Context, order entities.ServiceOrder, quote entities.Quote) error {
	return s.publish(ctx, usecase.EventQuoteApproved, s.quoteMessage(order, quote, false))
}

func (s *RabbitNotificationSink) NotifyQuoteRevisionRequested(ctx context.Context, order entities.ServiceOrder, quote entities.Quote) error {
	return s.publish(ctx, usecase.EventQuoteRevisionRequested, s.quoteMessage(order, quote, false))
}

func (s *RabbitNotificationSink) quoteMessage(order entities.ServiceOrder, quote entities.Quote, isRevision bool) QuoteMessage {
	return QuoteMessage{
		QuoteID:        quote.ID,
		ServiceOrderID: quote.ServiceOrderID,
		OrderNumber:    order.OrderNumber,
		Status:         string(quote.Status),
		GrandTotal:     quote.GrandTotal().String(),
		RejectedReason: quote.RejectedReason,
		IsRevision:     isRevision,
		OccurredAt:     s.now(),
	}
}

func (s *RabbitNotificationSink) publish(ctx context.Context, kind usecase.EventKind, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("could not marshal %s message: %w", kind, err)
	}
	return s.pub.Publish(ctx, string(kind), body)
}

// LogNotificationSink only records notifications. It is used when no broker
// is configured.
type LogNotificationSink struct {
	log logrus.FieldLogger
}

var _ interfaces.INotificationSink = (*LogNotificationSink)(nil)

func NewLogNotificationSink(log logrus.FieldLogger) *LogNotificationSink {
	return &LogNotificationSink{log: log.WithField("component", "notifications")}
}

func (s *LogNotificationSink) NotifyServiceOrderStatusChange(_ context.Context, order entities.ServiceOrder) error {
	s.log.WithFields(logrus.Fields{"service_order_id": order.ID, "status": order.Status}).Info("service order status changed")
	return nil
}

func (s *LogNotificationSink) NotifyCustomerNewQuote(_ context.Context, order entities.ServiceOrder, quote entities.Quote, isRevision bool) error {
	s.log.WithFields(logrus.Fields{"service_order_id": order.ID, "quote_id": quote.ID, "revision": isRevision}).Info("customer notified of new quote")
	return nil
}

func (s *LogNotificationSink) NotifyQuoteApproved(_ context.Context, order entities.ServiceOrder, quote entities.Quote) error {
	s.log.WithFields(logrus.Fields{"service_order_id": order.ID, "quote_id": quote.ID}).Info("quote approved")
	return nil
}

func (s *LogNotificationSink) NotifyQuoteRevisionRequested(_ context.Context, order entities.ServiceOrder, quote entities.Quote) error {
	s.log.WithFields(logrus.Fields{"service_order_id": order.ID, "quote_id": quote.ID}).Info("quote revision requested")
	return nil
}
