package interfaces

import (
	"context"

	"oficina_quotes/internal/domain/entities"
)

// INotificationSink delivers quote-related notifications. Callers treat every
// method as fire-and-forget.
type INotificationSink interface {
	NotifyServiceOrderStatusChange(ctx context.Context, order entities.ServiceOrder) error
	NotifyCustomerNewQuote(ctx context.Context, order entities.ServiceOrder, quote entities.Quote, isRevision bool) error
	NotifyQuoteApproved(ctx context.Context, order entities.ServiceOrder, quote entities.Quote) error
	NotifyQuoteRevisionRequested(ctx context.Context, order entities.ServiceOrder, quote entities.Quote) error
}
