package interfaces

import (
	"context"
	"errors"
	"sort"

	"oficina_quotes/internal/domain/entities"
)

// ErrDuplicateQuote is returned by Create when the service order already holds
// a live quote (uniqueness violation on the order slot).
var ErrDuplicateQuote = errors.New("duplicate quote for service order")

// QuoteFilter selects quotes. Zero fields do not filter.
type QuoteFilter struct {
	ServiceOrderID        string
	ExcludeServiceOrderID string
	Statuses              []entities.QuoteStatus
}

// Matches reports whether q satisfies the filter.
func (f QuoteFilter) Matches(q entities.Quote) bool {
	if f.ServiceOrderID != "" && q.ServiceOrderID != f.ServiceOrderID {
		return false
	}
	if f.ExcludeServiceOrderID != "" && q.ServiceOrderID == f.ExcludeServiceOrderID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if q.Status == s {
			return true
		}
	}
	return false
}

// PageRequest is an offset page, newest first.
type PageRequest struct {
	Offset int
	Limit  int
}

// SortNewestFirst orders quotes by creation time descending, ties broken by id.
func SortNewestFirst(qs []entities.Quote) {
	sort.SliceStable(qs, func(i, j int) bool {
		if !qs[i].CreatedAt.Equal(qs[j].CreatedAt) {
			return qs[i].CreatedAt.After(qs[j].CreatedAt)
		}
		return qs[i].ID > qs[j].ID
	})
}

// Slice applies the page to an already ordered result.
func (p PageRequest) Slice(qs []entities.Quote) []entities.Quote {
	if p.Offset >= len(qs) {
		return []entities.Quote{}
	}
	end := len(qs)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return qs[p.Offset:end]
}

// IQuoteRepository abstracts persistence for Quote.
//
// Not-found lookups return a zero Quote and a nil error.
//
// Transition is a single-document conditional update: it only applies when
// the stored status equals from, and returns a zero Quote otherwise.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	FindByID(ctx context.Context, id string) (entities.Quote, error)
	FindOne(ctx context.Context, filter QuoteFilter) (entities.Quote, error)
	Find(ctx context.Context, filter QuoteFilter) ([]entities.Quote, error)
	FindPage(ctx context.Context, filter QuoteFilter, page PageRequest) ([]entities.Quote, error)
	CountDocuments(ctx context.Context, filter QuoteFilter) (int, error)
	DeleteMany(ctx context.Context, filter QuoteFilter) (int, error)
	Transition(ctx context.Context, id string, from, to entities.QuoteStatus, rejectedReason string) (entities.Quote, error)
}
