package memory

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
)

type WarrantyRepository struct {
	s *Store
}

var _ interfaces.IWarrantyRepository = (*WarrantyRepository)(nil)

func (r *WarrantyRepository) FindByBookingID(_ context.Context, bookingID string) (entities.Warranty, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warranties[bookingID]
	if !ok {
		return entities.Warranty{}, false, nil
	}
	w.WarrantyParts = append([]entities.WarrantyPart(nil), w.WarrantyParts...)
	return w, true, nil
}
