package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"oficina_quotes/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key  string
	body []byte
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, key string, body []byte) error {
	f.sent = append(f.sent, published{key: key, body: body})
	return f.err
}

func newTestSink(pub Publisher) *RabbitNotificationSink {
	s := NewRabbitNotificationSink(pub)
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestRabbitNotificationSink_RoutingKeysAndPayloads(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	sink := newTestSink(pub)

	order := entities.ServiceOrder{ID: "so-1", OrderNumber: "OS-0001", Status: entities.ServiceOrderStatusWaitingCustomerApproval}
	quote := entities.Quote{
		ID:             "q-1",
		ServiceOrderID: "so-1",
		Status:         entities.QuoteStatusPending,
		Subtotal:       decimal.NewFromInt(250),
		Tax:            decimal.NewFromInt(25),
	}

	require.NoError(t, sink.NotifyServiceOrderStatusChange(ctx, order))
	require.NoError(t, sink.NotifyCustomerNewQuote(ctx, order, quote, true))
	require.NoError(t, sink.NotifyQuoteApproved(ctx, order, quote))
	require.NoError(t, sink.NotifyQuoteRevisionRequested(ctx, order, quote))

	require.Len(t, pub.sent, 4)
	assert.Equal(t, "service_order.status_changed", pub.sent[0].key)
	assert.Equal(t, "quote.created", pub.sent[1].key)
	assert.Equal(t, "quote.approved", pub.sent[2].key)
	assert.Equal(t, "quote.revision_requested", pub.sent[3].key)

	var status ServiceOrderStatusMessage
	require.NoError(t, json.Unmarshal(pub.sent[0].body, &status))
	assert.Equal(t, "waiting_customer_approval", status.Status)
	assert.Equal(t, "OS-0001", status.OrderNumber)

	var created QuoteMessage
	require.NoError(t, json.Unmarshal(pub.sent[1].body, &created))
	assert.Equal(t, "275", created.GrandTotal)
	assert.True(t, created.IsRevision)
	assert.Equal(t, "OS-0001", created.OrderNumber)
}

func TestRabbitNotificationSink_PropagatesPublishErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("channel closed")}
	err := newTestSink(pub).NotifyQuoteApproved(context.Background(), entities.ServiceOrder{}, entities.Quote{})
	assert.ErrorContains(t, err, "channel closed")
}

func TestLogNotificationSink(t *testing.T) {
	logger, hook := test.NewNullLogger()
	sink := NewLogNotificationSink(logger)

	require.NoError(t, sink.NotifyQuoteApproved(context.Background(), entities.ServiceOrder{ID: "so-1"}, entities.Quote{ID: "q-1"}))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "quote approved", entry.Message)
	assert.Equal(t, "q-1", entry.Data["quote_id"])
	assert.Equal(t, "notifications", entry.Data["component"])
}
