package memory

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
)

type ServiceOrderRepository struct {
	s *Store
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderRepository)(nil)

func (r *ServiceOrderRepository) GetByID(_ context.Context, id string) (entities.ServiceOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return entities.ServiceOrder{}, nil
	}
	o.Items = append([]entities.OrderItem(nil), o.Items...)
	return o, nil
}

func (r *ServiceOrderRepository) SetStatus(_ context.Context, id string, update entities.ServiceOrderStatusUpdate) (entities.ServiceOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return entities.ServiceOrder{}, nil
	}
	o.Status = update.Status
	switch {
	case update.ClearWaitingApprovalAt:
		o.WaitingApprovalAt = nil
	case update.WaitingApprovalAt != nil:
		at := *update.WaitingApprovalAt
		o.WaitingApprovalAt = &at
	}
	o.UpdatedAt = nowUTC()
	r.s.orders[id] = o
	o.Items = append([]entities.OrderItem(nil), o.Items...)
	return o, nil
}
