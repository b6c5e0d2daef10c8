package usecase

import (
	"context"

	"oficina_quotes/internal/usecase/dto"
	"oficina_quotes/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// IQuoteUseCase exposes the quote engine to the delivery layer.
//
//   - CreateQuote  => QuoteBuilder (+ StockReservationChecker)
//   - ApproveQuote => ApprovalOrchestrator
//   - RejectQuote  => RejectionHandler
//   - ListQuotes / GetQuoteByID => QuoteQueryService
type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, serviceOrderID string) (dto.QuoteDTO, error)
	ApproveQuote(ctx context.Context, quoteID string) (dto.QuoteDTO, error)
	RejectQuote(ctx context.Context, quoteID, reason string) (dto.QuoteDTO, error)
	ListQuotes(ctx context.Context, params ListQuotesParams) (dto.QuoteListDTO, error)
	GetQuoteByID(ctx context.Context, id string) (dto.QuoteDTO, bool, error)
}

// QuoteDependencies are the collaborators the engine is built from. Locker
// and Notifications are optional.
type QuoteDependencies struct {
	Quotes        interfaces.IQuoteRepository
	Parts         interfaces.IPartRepository
	ServiceOrders interfaces.IServiceOrderRepository
	Warranties    interfaces.IWarrantyRepository
	Locker        interfaces.IServiceOrderLocker
	Notifications interfaces.INotificationSink
	Logger        logrus.FieldLogger
}

type QuoteUseCase struct {
	builder    *QuoteBuilder
	approver   *ApprovalOrchestrator
	rejecter   *RejectionHandler
	query      *QuoteQueryService
	dispatcher *NotificationDispatcher
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(deps QuoteDependencies) *QuoteUseCase {
	checker := NewStockReservationChecker(deps.Quotes, deps.Parts, deps.Logger)
	return &QuoteUseCase{
		builder:    NewQuoteBuilder(deps.Quotes, deps.Parts, deps.ServiceOrders, deps.Warranties, checker, deps.Locker, deps.Logger),
		approver:   NewApprovalOrchestrator(deps.Quotes, deps.Parts, deps.ServiceOrders, deps.Warranties, deps.Logger),
		rejecter:   NewRejectionHandler(deps.Quotes, deps.ServiceOrders, deps.Logger),
		query:      NewQuoteQueryService(deps.Quotes),
		dispatcher: NewNotificationDispatcher(deps.Notifications, deps.Logger),
	}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, serviceOrderID string) (dto.QuoteDTO, error) {
	res, err := u.builder.Build(ctx, serviceOrderID)
	if err != nil {
		return dto.QuoteDTO{}, err
	}
	u.dispatcher.Dispatch(ctx, res.Events)
	return dto.FromQuote(res.Quote), nil
}

func (u *QuoteUseCase) ApproveQuote(ctx context.Context, quoteID string) (dto.QuoteDTO, error) {
	res, err := u.approver.Approve(ctx, quoteID)
	if err != nil {
		return dto.QuoteDTO{}, err
	}
	u.dispatcher.Dispatch(ctx, res.Events)
	return dto.FromQuote(res.Quote), nil
}

func (u *QuoteUseCase) RejectQuote(ctx context.Context, quoteID, reason string) (dto.QuoteDTO, error) {
	res, err := u.rejecter.Reject(ctx, quoteID, reason)
	if err != nil {
		return dto.QuoteDTO{}, err
	}
	u.dispatcher.Dispatch(ctx, res.Events)
	return dto.FromQuote(res.Quote), nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, params ListQuotesParams) (dto.QuoteListDTO, error) {
	return u.query.ListQuotes(ctx, params)
}

func (u *QuoteUseCase) GetQuoteByID(ctx context.Context, id string) (dto.QuoteDTO, bool, error) {
	return u.query.GetQuoteByID(ctx, id)
}

// WaitNotifications blocks until pending notification deliveries finished.
func (u *QuoteUseCase) WaitNotifications() {
	u.dispatcher.Wait()
}
