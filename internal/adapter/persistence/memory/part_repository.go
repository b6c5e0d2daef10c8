package memory

import (
	"context"
	"time"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
)

type PartRepository struct {
	s *Store
}

var _ interfaces.IPartRepository = (*PartRepository)(nil)

func (r *PartRepository) GetByID(_ context.Context, id string) (entities.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.parts[id], nil
}

func (r *PartRepository) GetByName(_ context.Context, name string) (entities.Part, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.parts {
		if p.Name == name {
			return p, nil
		}
	}
	return entities.Part{}, nil
}

func (r *PartRepository) ConditionalDecrement(_ context.Context, id string, amount int) (entities.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parts[id]
	if !ok || p.Quantity < amount {
		return entities.Part{}, nil
	}
	p.Quantity -= amount
	r.s.parts[id] = p
	return p, nil
}

func (r *PartRepository) Increment(_ context.Context, id string, amount int) (entities.Part, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.parts[id]
	if !ok {
		return entities.Part{}, nil
	}
	p.Quantity += amount
	r.s.parts[id] = p
	return p, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
