package usecase

import (
	"context"
	"errors"
	"testing"

	"oficina_quotes/internal/domain/entities"
	mock_interfaces "oficina_quotes/internal/usecase/interfaces/mocks"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNotificationDispatcher_DeliversInOrderAndSwallowsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_interfaces.NewMockINotificationSink(ctrl)
	logger, hook := test.NewNullLogger()

	order := entities.ServiceOrder{ID: "so-1", Status: entities.ServiceOrderStatusWaitingCustomerApproval}
	quote := entities.Quote{ID: "q-1", ServiceOrderID: "so-1"}

	gomock.InOrder(
		sink.EXPECT().NotifyServiceOrderStatusChange(gomock.Any(), order).Return(errors.New("smtp down")),
		sink.EXPECT().NotifyCustomerNewQuote(gomock.Any(), order, quote, true).Return(nil),
	)

	d := NewNotificationDispatcher(sink, logger)
	d.Dispatch(context.Background(), []OutboundEvent{
		{Kind: EventServiceOrderStatusChanged, Order: order, Quote: quote},
		{Kind: EventCustomerNewQuote, Order: order, Quote: quote, IsRevision: true},
	})
	d.Wait()

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "notification delivery failed" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestNotificationDispatcher_SurvivesCancelledRequestAndPanics(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mock_interfaces.NewMockINotificationSink(ctrl)

	sink.EXPECT().NotifyQuoteApproved(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ entities.ServiceOrder, _ entities.Quote) error {
			assert.NoError(t, ctx.Err(), "delivery must not inherit request cancellation")
			panic("boom")
		},
	)
	sink.EXPECT().NotifyQuoteRevisionRequested(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewNotificationDispatcher(sink, nil)
	d.Dispatch(ctx, []OutboundEvent{{Kind: EventQuoteApproved}})
	d.Dispatch(ctx, []OutboundEvent{{Kind: EventQuoteRevisionRequested}})
	d.Wait()
}

func TestNotificationDispatcher_NilSinkIsNoop(t *testing.T) {
	d := NewNotificationDispatcher(nil, nil)
	d.Dispatch(context.Background(), []OutboundEvent{{Kind: EventQuoteApproved}})
	d.Wait()
}
