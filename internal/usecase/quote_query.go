package usecase

import (
	"context"
	"strings"

	"oficina_quotes/internal/usecase/dto"
	"oficina_quotes/internal/usecase/interfaces"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type ListQuotesParams struct {
	Page           int
	Limit          int
	ServiceOrderID string
}

func (p ListQuotesParams) normalize() ListQuotesParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.ServiceOrderID = strings.TrimSpace(p.ServiceOrderID)
	return p
}

// QuoteQueryService is the read side: listing and lookup with DTO projection.
type QuoteQueryService struct {
	quotes interfaces.IQuoteRepository
}

func NewQuoteQueryService(quotes interfaces.IQuoteRepository) *QuoteQueryService {
	return &QuoteQueryService{quotes: quotes}
}

// ListQuotes returns a newest-first page of summaries.
func (s *QuoteQueryService) ListQuotes(ctx context.Context, params ListQuotesParams) (dto.QuoteListDTO, error) {
	params = params.normalize()
	filter := interfaces.QuoteFilter{ServiceOrderID: params.ServiceOrderID}

	total, err := s.quotes.CountDocuments(ctx, filter)
	if err != nil {
		return dto.QuoteListDTO{}, err
	}
	page, err := s.quotes.FindPage(ctx, filter, interfaces.PageRequest{
		Offset: (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	})
	if err != nil {
		return dto.QuoteListDTO{}, err
	}

	summaries := make([]dto.QuoteSummaryDTO, 0, len(page))
	for _, q := range page {
		summaries = append(summaries, dto.SummaryFromQuote(q))
	}
	return dto.QuoteListDTO{
		Quotes:     summaries,
		Pagination: dto.NewPaginationMeta(params.Page, params.Limit, total),
	}, nil
}

// GetQuoteByID reports found=false instead of failing when the quote does not exist.
func (s *QuoteQueryService) GetQuoteByID(ctx context.Context, id string) (dto.QuoteDTO, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dto.QuoteDTO{}, false, nil
	}
	q, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		return dto.QuoteDTO{}, false, err
	}
	if q.ID == "" {
		return dto.QuoteDTO{}, false, nil
	}
	return dto.FromQuote(q), true, nil
}
