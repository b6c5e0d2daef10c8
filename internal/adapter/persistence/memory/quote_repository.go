package memory

import (
	"context"

	"oficina_quotes/internal/domain/entities"
	"oficina_quotes/internal/usecase/interfaces"
)

type QuoteRepository struct {
	s *Store
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.slots[q.ServiceOrderID]; taken {
		return entities.Quote{}, interfaces.ErrDuplicateQuote
	}
	if _, exists := r.s.quotes[q.ID]; exists {
		return entities.Quote{}, interfaces.ErrDuplicateQuote
	}
	r.s.quotes[q.ID] = cloneQuote(q)
	r.s.slots[q.ServiceOrderID] = q.ID
	return cloneQuote(q), nil
}

func (r *QuoteRepository) FindByID(_ context.Context, id string) (entities.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quotes[id]
	if !ok {
		return entities.Quote{}, nil
	}
	return cloneQuote(q), nil
}

func (r *QuoteRepository) FindOne(ctx context.Context, filter interfaces.QuoteFilter) (entities.Quote, error) {
	found, _ := r.Find(ctx, filter)
	if len(found) == 0 {
		return entities.Quote{}, nil
	}
	return found[0], nil
}

// Find returns matches newest first.
func (r *QuoteRepository) Find(_ context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entities.Quote, 0)
	for _, q := range r.s.quotes {
		if filter.Matches(q) {
			out = append(out, cloneQuote(q))
		}
	}
	interfaces.SortNewestFirst(out)
	return out, nil
}

func (r *QuoteRepository) FindPage(ctx context.Context, filter interfaces.QuoteFilter, page interfaces.PageRequest) ([]entities.Quote, error) {
	all, _ := r.Find(ctx, filter)
	return page.Slice(all), nil
}

func (r *QuoteRepository) CountDocuments(ctx context.Context, filter interfaces.QuoteFilter) (int, error) {
	all, _ := r.Find(ctx, filter)
	return len(all), nil
}

func (r *QuoteRepository) DeleteMany(_ context.Context, filter interfaces.QuoteFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, q := range r.s.quotes {
		if !filter.Matches(q) {
			continue
		}
		delete(r.s.quotes, id)
		if r.s.slots[q.ServiceOrderID] == id {
			delete(r.s.slots, q.ServiceOrderID)
		}
		n++
	}
	return n, nil
}

func (r *QuoteRepository) Transition(_ context.Context, id string, from, to entities.QuoteStatus, rejectedReason string) (entities.Quote, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quotes[id]
	if !ok || q.Status != from {
		return entities.Quote{}, nil
	}
	q.Status = to
	q.RejectedReason = ""
	if to == entities.QuoteStatusRejected {
		q.RejectedReason = rejectedReason
	}
	q.UpdatedAt = nowUTC()
	r.s.quotes[id] = q
	return cloneQuote(q), nil
}
