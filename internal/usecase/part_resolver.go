package usecase

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
)

// partResolver maps a quote line that only carries a name to a part id by
// checking, in order, the order's own part lines, the booking warranty, and
// the parts store. Indexes are loaded on first use.
type partResolver struct {
	parts      interfaces.IPartRepository
	warranties interfaces.IWarrantyRepository
	order      entities.ServiceOrder

	orderIndex    map[string]string
	warrantyIndex map[string]string
}

func newPartResolver(parts interfaces.IPartRepository, warranties interfaces.IWarrantyRepository, order entities.ServiceOrder) *partResolver {
	return &partResolver{parts: parts, warranties: warranties, order: order}
}

// useWarranty preloads the warranty index so the booking is not read twice.
func (r *partResolver) useWarranty(w entities.Warranty) {
	idx := map[string]string{}
	for _, wp := range w.WarrantyParts {
		if _, seen := idx[wp.PartName]; !seen && wp.PartID != "" {
			idx[wp.PartName] = wp.PartID
		}
	}
	r.warrantyIndex = idx
}

// resolve returns "" when no part matches the name.
func (r *partResolver) resolve(ctx context.Context, name string) (string, error) {
	if r.orderIndex == nil {
		idx := map[string]string{}
		for _, line := range r.order.PartLines() {
			if line.PartID == "" {
				continue
			}
			lineName := line.Name
			part, err := r.parts.GetByID(ctx, line.PartID)
			if err != nil {
				return "", err
			}
			if part.Name != "" {
				lineName = part.Name
			}
			if _, ok := idx[lineName]; !ok && lineName != "" {
				idx[lineName] = line.PartID
			}
		}
		r.orderIndex = idx
	}
	if id, ok := r.orderIndex[name]; ok {
		return id, nil
	}

	if r.warrantyIndex == nil {
		r.warrantyIndex = map[string]string{}
		if r.order.BookingID != "" && r.warranties != nil {
			w, ok, err := r.warranties.FindByBookingID(ctx, r.order.BookingID)
			if err != nil {
				r.warrantyIndex = nil
				return "", err
			}
			if ok {
				r.useWarranty(w)
			}
		}
	}
	if id, ok := r.warrantyIndex[name]; ok {
		return id, nil
	}

	part, err := r.parts.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	return part.ID, nil
}
