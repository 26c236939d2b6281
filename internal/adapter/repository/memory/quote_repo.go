package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/simaogato/stocksim-backend/internal/domain"
)

// quoteRepository implements domain.QuoteRepository over an in-memory map.
type quoteRepository struct {
	mu     sync.RWMutex
	quotes map[string]*domain.Quote
}

// NewQuoteRepository creates an empty in-memory quote board.
func NewQuoteRepository() domain.QuoteRepository {
	return &quoteRepository{
		quotes: make(map[string]*domain.Quote),
	}
}

// GetBySymbol retrieves the quote for a symbol (case-insensitive).
func (r *quoteRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[strings.ToUpper(symbol)]
	if !ok {
		return nil, domain.ErrQuoteNotFound
	}
	return quote, nil
}

// Create lists a new symbol on the board.
func (r *quoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotes[quote.Symbol()]; ok {
		return domain.ErrQuoteExists
	}
	r.quotes[quote.Symbol()] = quote
	return nil
}

// List retrieves all quotes on the board, sorted by symbol.
func (r *quoteRepository) List(ctx context.Context) ([]*domain.Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotes := make([]*domain.Quote, 0, len(r.quotes))
	for _, quote := range r.quotes {
		quotes = append(quotes, quote)
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].Symbol() < quotes[j].Symbol()
	})
	return quotes, nil
}
