package memory

import (
	"context"
	"sync"

	"oficina_quotes/internal/domain/entities"
)

// Store keeps every document the quote engine touches in memory. Each method
// holds the mutex for its whole body, which gives the same single-document
// atomicity the DynamoDB adapter offers.
type Store struct {
	mu         sync.RWMutex
	quotes     map[string]entities.Quote
	slots      map[string]string // service order id -> live quote id
	parts      map[string]entities.Part
	orders     map[string]entities.ServiceOrder
	warranties map[string]entities.Warranty // booking id -> warranty
}

func NewStore() *Store {
	return &Store{
		quotes:     map[string]entities.Quote{},
		slots:      map[string]string{},
		parts:      map[string]entities.Part{},
		orders:     map[string]entities.ServiceOrder{},
		warranties: map[string]entities.Warranty{},
	}
}

// Quotes, Parts, ServiceOrders and Warranties expose the store through the
// repository interfaces.
func (s *Store) Quotes() *QuoteRepository               { return &QuoteRepository{s: s} }
func (s *Store) Parts() *PartRepository                 { return &PartRepository{s: s} }
func (s *Store) ServiceOrders() *ServiceOrderRepository { return &ServiceOrderRepository{s: s} }
func (s *Store) Warranties() *WarrantyRepository        { return &WarrantyRepository{s: s} }

// PutPart, PutServiceOrder and PutWarranty seed records owned by other flows.
func (s *Store) PutPart(p entities.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts[p.ID] = p
}

func (s *Store) PutServiceOrder(o entities.ServiceOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.Items = append([]entities.OrderItem(nil), o.Items...)
	s.orders[o.ID] = o
}

func (s *Store) PutWarranty(w entities.Warranty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.WarrantyParts = append([]entities.WarrantyPart(nil), w.WarrantyParts...)
	s.warranties[w.BookingID] = w
}

func cloneQuote(q entities.Quote) entities.Quote {
	q.Items = append([]entities.QuoteItem(nil), q.Items...)
	return q
}

// Seeder adapts the store to the context-aware writer used by fixture loading.
type Seeder struct {
	s *Store
}

func (s *Store) Seeder() Seeder { return Seeder{s: s} }

func (w Seeder) PutPart(_ context.Context, p entities.Part) error {
	w.s.PutPart(p)
	return nil
}

func (w Seeder) PutServiceOrder(_ context.Context, o entities.ServiceOrder) error {
	w.s.PutServiceOrder(o)
	return nil
}

func (w Seeder) PutWarranty(_ context.Context, wr entities.Warranty) error {
	w.s.PutWarranty(wr)
	return nil
}
