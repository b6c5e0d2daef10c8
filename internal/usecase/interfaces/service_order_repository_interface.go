package interfaces

import (
	"context"

	"oficina_quotes/internal/domain/entities"
)

// IServiceOrderRepository is the narrow view of the order-management store the
// quote engine needs. GetByID returns a zero ServiceOrder when not found.
type IServiceOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	SetStatus(ctx context.Context, id string, update entities.ServiceOrderStatusUpdate) (entities.ServiceOrder, error)
}
