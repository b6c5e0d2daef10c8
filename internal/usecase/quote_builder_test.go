package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
	mock_interfaces "oficina_quotes/internal/usecase/interfaces/mocks"
	"oficina_quotes/pkg"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type builderMocks struct {
	quotes     *mock_interfaces.MockIQuoteRepository
	parts      *mock_interfaces.MockIPartRepository
	orders     *mock_interfaces.MockIServiceOrderRepository
	warranties *mock_interfaces.MockIWarrantyRepository
	builder    *QuoteBuilder
}

func newBuilderMocks(t *testing.T) builderMocks {
	ctrl := gomock.NewController(t)
	m := builderMocks{
		quotes:     mock_interfaces.NewMockIQuoteRepository(ctrl),
		parts:      mock_interfaces.NewMockIPartRepository(ctrl),
		orders:     mock_interfaces.NewMockIServiceOrderRepository(ctrl),
		warranties: mock_interfaces.NewMockIWarrantyRepository(ctrl),
	}
	checker := NewStockReservationChecker(m.quotes, m.parts, nil)
	m.builder = NewQuoteBuilder(m.quotes, m.parts, m.orders, m.warranties, checker, nil, nil)
	m.builder.now = func() time.Time { return fixedNow }
	m.builder.newID = func() string { return "q-new" }
	return m
}

func pendingFilter(orderID string) interfaces.QuoteFilter {
	return interfaces.QuoteFilter{ServiceOrderID: orderID, Statuses: []entities.QuoteStatus{entities.QuoteStatusPending}}
}

func approvedFilter(orderID string) interfaces.QuoteFilter {
	return interfaces.QuoteFilter{ServiceOrderID: orderID, Statuses: []entities.QuoteStatus{entities.QuoteStatusApproved}}
}

func serviceOnlyOrder(id string) entities.ServiceOrder {
	return entities.ServiceOrder{
		ID:          id,
		OrderNumber: "OS-" + id,
		Status:      entities.ServiceOrderStatusInspectionCompleted,
		Items: []entities.OrderItem{
			entities.ServiceLine{ServiceID: "svc-1", Name: "Bảo dưỡng", Price: decimal.NewFromInt(200000), Quantity: 1},
		},
	}
}

func TestQuoteBuilder_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("blank service order id", func(t *testing.T) {
		m := newBuilderMocks(t)
		_, err := m.builder.Build(ctx, "   ")
		assert.True(t, errors.Is(err, ErrServiceOrderNotFound), "got %v", err)
	})

	t.Run("service order not found", func(t *testing.T) {
		m := newBuilderMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(entities.ServiceOrder{}, nil)

		_, err := m.builder.Build(ctx, " so-1 ")
		assert.Equal(t, CodeServiceOrderNotFound, pkg.CodeOf(err))
	})

	t.Run("service order lookup error is wrapped", func(t *testing.T) {
		m := newBuilderMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(entities.ServiceOrder{}, errors.New("db"))

		_, err := m.builder.Build(ctx, "so-1")
		require.Error(t, err)
		assert.Equal(t, CodeInternal, pkg.CodeOf(err))
		assert.ErrorContains(t, err, "db")
	})

	t.Run("no items", func(t *testing.T) {
		m := newBuilderMocks(t)
		order := serviceOnlyOrder("so-1")
		order.Items = nil
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(order, nil)

		_, err := m.builder.Build(ctx, "so-1")
		assert.Equal(t, CodeQuoteItemsRequired, pkg.CodeOf(err))
	})

	for _, status := range []entities.ServiceOrderStatus{
		entities.ServiceOrderStatusCreated,
		entities.ServiceOrderStatusWaitingInspection,
		entities.ServiceOrderStatusApproved,
		entities.ServiceOrderStatusCancelled,
	} {
		t.Run("invalid state "+string(status), func(t *testing.T) {
			m := newBuilderMocks(t)
			order := serviceOnlyOrder("so-1")
			order.Status = status
			m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(order, nil)

			_, err := m.builder.Build(ctx, "so-1")
			assert.Equal(t, CodeServiceOrderInvalidState, pkg.CodeOf(err))
		})
	}

	t.Run("pending quote exists", func(t *testing.T) {
		m := newBuilderMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(serviceOnlyOrder("so-1"), nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{ID: "q-old"}, nil)

		_, err := m.builder.Build(ctx, "so-1")
		assert.True(t, errors.Is(err, ErrQuoteAlreadyExists))
		assert.Equal(t, ErrQuoteAlreadyExists.Message, err.(*pkg.AppError).Message)
	})

	t.Run("approved quote exists", func(t *testing.T) {
		m := newBuilderMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(serviceOnlyOrder("so-1"), nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), approvedFilter("so-1")).Return(entities.Quote{ID: "q-ok"}, nil)

		_, err := m.builder.Build(ctx, "so-1")
		assert.Equal(t, CodeQuoteAlreadyExists, pkg.CodeOf(err))
		assert.Equal(t, ErrQuoteAlreadyApproved.Message, err.(*pkg.AppError).Message)
	})
}

func TestQuoteBuilder_BuildsPricedQuoteWithWarranty(t *testing.T) {
	ctx := context.Background()
	m := newBuilderMocks(t)

	order := entities.ServiceOrder{
		ID:          "so-1",
		OrderNumber: "OS-001",
		Status:      entities.ServiceOrderStatusWaitingCustomerApproval,
		BookingID:   "bk-1",
		Items: []entities.OrderItem{
			entities.ServiceLine{ServiceID: "svc-1", Name: "Thay dầu", Price: decimal.NewFromInt(100000), Quantity: 1},
			entities.PartLine{PartID: "p-1", Price: decimal.NewFromInt(50000), Quantity: 2},
			entities.PartLine{PartID: "p-2", Name: "Lọc gió", Price: decimal.NewFromInt(30000), Quantity: 1},
		},
	}
	m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(order, nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), approvedFilter("so-1")).Return(entities.Quote{}, nil)

	m.parts.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Part{ID: "p-1", Name: "Oil Filter", Quantity: 10}, nil).Times(2)
	// Name resolution failure is not fatal; the reservation check reads it again.
	m.parts.EXPECT().GetByID(gomock.Any(), "p-2").Return(entities.Part{}, errors.New("timeout"))
	m.parts.EXPECT().GetByID(gomock.Any(), "p-2").Return(entities.Part{ID: "p-2", Name: "Lọc gió", Quantity: 3}, nil)
	m.parts.EXPECT().GetByID(gomock.Any(), "p-3").Return(entities.Part{ID: "p-3", Name: "Gasket", Quantity: 1}, nil)

	m.warranties.EXPECT().FindByBookingID(gomock.Any(), "bk-1").Return(entities.Warranty{
		ID:        "w-1",
		BookingID: "bk-1",
		WarrantyParts: []entities.WarrantyPart{
			{PartID: "p-1", PartName: "Oil Filter", Quantity: 2},
			{PartID: "p-3", PartName: "Gasket", Quantity: 1},
		},
	}, true, nil)

	m.quotes.EXPECT().Find(gomock.Any(), interfaces.QuoteFilter{
		ExcludeServiceOrderID: "so-1",
		Statuses:              []entities.QuoteStatus{entities.QuoteStatusPending},
	}).Return([]entities.Quote{{
		ID:                 "q-other",
		ServiceOrderID:     "so-2",
		ServiceOrderNumber: "OS-002",
		Status:             entities.QuoteStatusPending,
		Items:              []entities.QuoteItem{{Type: entities.QuoteItemPart, PartID: "p-1", Name: "Oil Filter", Quantity: 5}},
	}}, nil)

	m.quotes.EXPECT().CountDocuments(gomock.Any(), interfaces.QuoteFilter{ServiceOrderID: "so-1"}).Return(1, nil)
	m.quotes.EXPECT().DeleteMany(gomock.Any(), interfaces.QuoteFilter{
		ServiceOrderID: "so-1",
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusRejected},
	}).Return(1, nil)
	m.quotes.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
		func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
	)
	m.orders.EXPECT().SetStatus(gomock.Any(), "so-1", gomock.AssignableToTypeOf(entities.ServiceOrderStatusUpdate{})).DoAndReturn(
		func(_ context.Context, _ string, u entities.ServiceOrderStatusUpdate) (entities.ServiceOrder, error) {
			require.Equal(t, entities.ServiceOrderStatusWaitingCustomerApproval, u.Status)
			require.NotNil(t, u.WaitingApprovalAt)
			require.True(t, u.WaitingApprovalAt.Equal(fixedNow))
			o := order
			o.WaitingApprovalAt = u.WaitingApprovalAt
			return o, nil
		},
	)

	res, err := m.builder.Build(ctx, "so-1")
	require.NoError(t, err)

	q := res.Quote
	assert.Equal(t, "q-new", q.ID)
	assert.Equal(t, "OS-001", q.ServiceOrderNumber)
	assert.Equal(t, entities.QuoteStatusPending, q.Status)
	require.Len(t, q.Items, 4)
	assert.Equal(t, "Oil Filter", q.Items[1].Name)
	assert.True(t, q.Items[1].Price.IsZero(), "warranty match is free")
	assert.Equal(t, "Lọc gió", q.Items[2].Name)
	assert.Equal(t, entities.QuoteItem{Type: entities.QuoteItemPart, PartID: "p-3", Name: "Gasket", Quantity: 1, Price: decimal.Zero}, q.Items[3])
	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(130000)), "subtotal %s", q.Subtotal)
	assert.True(t, q.Tax.Equal(decimal.NewFromInt(13000)), "tax %s", q.Tax)

	require.Len(t, res.Events, 2)
	assert.Equal(t, EventServiceOrderStatusChanged, res.Events[0].Kind)
	assert.Equal(t, EventCustomerNewQuote, res.Events[1].Kind)
	assert.True(t, res.Events[1].IsRevision)
}

func TestQuoteBuilder_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	m := newBuilderMocks(t)

	order := entities.ServiceOrder{
		ID:          "so-2",
		OrderNumber: "OS-002",
		Status:      entities.ServiceOrderStatusInspectionCompleted,
		Items: []entities.OrderItem{
			entities.PartLine{PartID: "p-1", Price: decimal.NewFromInt(80000), Quantity: 3},
			entities.PartLine{PartID: "p-2", Price: decimal.NewFromInt(10000), Quantity: 1},
		},
	}
	m.orders.EXPECT().GetByID(gomock.Any(), "so-2").Return(order, nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(entities.Quote{}, nil).Times(2)
	m.parts.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Part{ID: "p-1", Name: "Brake Pad", Quantity: 5}, nil).Times(2)
	m.parts.EXPECT().GetByID(gomock.Any(), "p-2").Return(entities.Part{ID: "p-2", Name: "Fuse", Quantity: 0}, nil).Times(2)
	m.quotes.EXPECT().Find(gomock.Any(), gomock.Any()).Return([]entities.Quote{{
		ID:                 "q-1",
		ServiceOrderID:     "so-1",
		ServiceOrderNumber: "OS-001",
		Status:             entities.QuoteStatusPending,
		// legacy line without part id: matched by name
		Items: []entities.QuoteItem{{Type: entities.QuoteItemPart, Name: "Brake Pad", Quantity: 3}},
	}}, nil)

	_, err := m.builder.Build(ctx, "so-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 2)
	assert.Equal(t, StockShortfall{PartID: "p-1", PartName: "Brake Pad", Available: 2, Required: 3, ReservedByOrders: []string{"OS-001"}}, stockErr.Shortfalls[0])
	assert.Equal(t, "Fuse", stockErr.Shortfalls[1].PartName)
	assert.Equal(t, 0, stockErr.Shortfalls[1].Available)
	assert.Contains(t, err.Error(), "OS-001")
}

func TestQuoteBuilder_InsertRace(t *testing.T) {
	ctx := context.Background()

	expectUpToInsert := func(m builderMocks) {
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(serviceOnlyOrder("so-1"), nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), approvedFilter("so-1")).Return(entities.Quote{}, nil)
		m.quotes.EXPECT().CountDocuments(gomock.Any(), gomock.Any()).Return(0, nil)
		m.quotes.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).Return(0, nil)
		m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrDuplicateQuote)
	}
	nonApproved := interfaces.QuoteFilter{
		ServiceOrderID: "so-1",
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusPending, entities.QuoteStatusRejected},
	}

	t.Run("concurrent pending quote wins", func(t *testing.T) {
		m := newBuilderMocks(t)
		expectUpToInsert(m)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{ID: "q-winner"}, nil)

		_, err := m.builder.Build(ctx, "so-1")
		assert.Equal(t, CodeQuoteAlreadyExists, pkg.CodeOf(err))
	})

	t.Run("cleanup and retry succeeds", func(t *testing.T) {
		m := newBuilderMocks(t)
		expectUpToInsert(m)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
		m.quotes.EXPECT().DeleteMany(gomock.Any(), nonApproved).Return(1, nil)
		m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
		)
		m.orders.EXPECT().SetStatus(gomock.Any(), "so-1", gomock.Any()).Return(serviceOnlyOrder("so-1"), nil)

		res, err := m.builder.Build(ctx, "so-1")
		require.NoError(t, err)
		assert.Equal(t, "q-new", res.Quote.ID)
		assert.False(t, res.Events[1].IsRevision)
	})

	t.Run("retry fails", func(t *testing.T) {
		m := newBuilderMocks(t)
		expectUpToInsert(m)
		m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
		m.quotes.EXPECT().DeleteMany(gomock.Any(), nonApproved).Return(0, nil)
		m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, interfaces.ErrDuplicateQuote)

		_, err := m.builder.Build(ctx, "so-1")
		assert.Equal(t, CodeQuoteAlreadyExists, pkg.CodeOf(err))
	})

	t.Run("non duplicate insert error is wrapped", func(t *testing.T) {
		m := newBuilderMocks(t)
		m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(serviceOnlyOrder("so-1"), nil)
		m.quotes.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(entities.Quote{}, nil).Times(2)
		m.quotes.EXPECT().CountDocuments(gomock.Any(), gomock.Any()).Return(0, nil)
		m.quotes.EXPECT().DeleteMany(gomock.Any(), gomock.Any()).Return(0, nil)
		m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, errors.New("throttled"))

		_, err := m.builder.Build(ctx, "so-1")
		assert.Equal(t, CodeInternal, pkg.CodeOf(err))
	})
}

func TestQuoteBuilder_LockerIsBestEffort(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	m := newBuilderMocks(t)
	locker := mock_interfaces.NewMockIServiceOrderLocker(ctrl)
	m.builder.locker = locker

	locker.EXPECT().Lock(gomock.Any(), "so-1").Return(nil, errors.New("redis down"))
	m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(entities.ServiceOrder{}, nil)

	_, err := m.builder.Build(ctx, "so-1")
	assert.Equal(t, CodeServiceOrderNotFound, pkg.CodeOf(err))

	released := false
	locker.EXPECT().Lock(gomock.Any(), "so-1").Return(func() { released = true }, nil)
	m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(entities.ServiceOrder{}, nil)

	_, _ = m.builder.Build(ctx, "so-1")
	assert.True(t, released)
}

func TestMergeWarrantyParts(t *testing.T) {
	items := []entities.QuoteItem{
		{Type: entities.QuoteItemPart, Name: "Spark Plug", Quantity: 4, Price: decimal.NewFromInt(40)},
		{Type: entities.QuoteItemService, Name: "Labour", Quantity: 1, Price: decimal.NewFromInt(100)},
	}
	got := mergeWarrantyParts(items, entities.Warranty{WarrantyParts: []entities.WarrantyPart{
		{PartID: "p-sp", PartName: "Spark Plug", Quantity: 2},
		{PartID: "p-belt", PartName: "Timing Belt", Quantity: 1},
	}})

	require.Len(t, got, 3)
	assert.True(t, got[0].Price.IsZero())
	assert.Equal(t, 4, got[0].Quantity, "existing quantity is kept")
	assert.Equal(t, "p-sp", got[0].PartID)
	assert.True(t, got[1].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Timing Belt", got[2].Name)
	assert.True(t, got[2].Price.IsZero())
}

func TestQuoteBuilder_NameOnlyWarrantyPartIsReserved(t *testing.T) {
	ctx := context.Background()
	m := newBuilderMocks(t)

	order := serviceOnlyOrder("so-1")
	order.BookingID = "bk-1"
	m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(order, nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), pendingFilter("so-1")).Return(entities.Quote{}, nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), approvedFilter("so-1")).Return(entities.Quote{}, nil)
	// read once: the resolver reuses the warranty the builder already loaded
	m.warranties.EXPECT().FindByBookingID(gomock.Any(), "bk-1").Return(entities.Warranty{
		ID:            "w-1",
		BookingID:     "bk-1",
		WarrantyParts: []entities.WarrantyPart{{PartName: "Spark Plug", Quantity: 5}},
	}, true, nil)
	m.parts.EXPECT().GetByName(gomock.Any(), "Spark Plug").Return(entities.Part{ID: "p-sp", Name: "Spark Plug", Quantity: 1}, nil)
	m.quotes.EXPECT().Find(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.parts.EXPECT().GetByID(gomock.Any(), "p-sp").Return(entities.Part{ID: "p-sp", Name: "Spark Plug", Quantity: 1}, nil)

	_, err := m.builder.Build(ctx, "so-1")
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, []StockShortfall{{PartID: "p-sp", PartName: "Spark Plug", Available: 1, Required: 5}}, stockErr.Shortfalls)
}

func TestQuoteBuilder_OrderUpdateFailureRemovesQuote(t *testing.T) {
	ctx := context.Background()
	m := newBuilderMocks(t)

	m.orders.EXPECT().GetByID(gomock.Any(), "so-1").Return(serviceOnlyOrder("so-1"), nil)
	m.quotes.EXPECT().FindOne(gomock.Any(), gomock.Any()).Return(entities.Quote{}, nil).Times(2)
	m.quotes.EXPECT().CountDocuments(gomock.Any(), gomock.Any()).Return(0, nil)
	m.quotes.EXPECT().DeleteMany(gomock.Any(), interfaces.QuoteFilter{
		ServiceOrderID: "so-1",
		Statuses:       []entities.QuoteStatus{entities.QuoteStatusRejected},
	}).Return(0, nil)
	m.quotes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q entities.Quote) (entities.Quote, error) { return q, nil },
	)
	m.orders.EXPECT().SetStatus(gomock.Any(), "so-1", gomock.Any()).Return(entities.ServiceOrder{}, errors.New("conn reset"))
	m.quotes.EXPECT().DeleteMany(gomock.Any(), pendingFilter("so-1")).Return(1, nil)

	_, err := m.builder.Build(ctx, "so-1")
	assert.Equal(t, CodeInternal, pkg.CodeOf(err))
	assert.ErrorContains(t, err, "conn reset")
}

func TestStockReservationChecker_UnmatchedNameIsNotReserved(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	quotes := mock_interfaces.NewMockIQuoteRepository(ctrl)
	parts := mock_interfaces.NewMockIPartRepository(ctrl)
	logger, hook := test.NewNullLogger()

	parts.EXPECT().GetByName(gomock.Any(), "Mystery Bolt").Return(entities.Part{}, nil)

	checker := NewStockReservationChecker(quotes, parts, logger)
	err := checker.Check(ctx, "so-1", []entities.QuoteItem{
		{Type: entities.QuoteItemPart, Name: "Mystery Bolt", Quantity: 2},
	}, newPartResolver(parts, nil, entities.ServiceOrder{ID: "so-1"}))

	require.NoError(t, err)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Mystery Bolt", hook.LastEntry().Data["part_name"])
}
