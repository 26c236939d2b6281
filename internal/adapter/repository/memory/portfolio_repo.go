package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/simaogato/stocksim-backend/internal/domain"
)

// portfolioRepository implements domain.PortfolioRepository over an in-memory
// map. The repository only guards the map itself; each Portfolio serializes
// its own mutations.
type portfolioRepository struct {
	mu         sync.RWMutex
	portfolios map[string]*domain.Portfolio
}

// NewPortfolioRepository creates an empty in-memory portfolio repository.
func NewPortfolioRepository() domain.PortfolioRepository {
	return &portfolioRepository{
		portfolios: make(map[string]*domain.Portfolio),
	}
}

// GetByOwnerID retrieves the portfolio owned by the given user.
func (r *portfolioRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	portfolio, ok := r.portfolios[ownerID]
	if !ok {
		return nil, domain.ErrPortfolioNotFound
	}
	return portfolio, nil
}

// Create registers a new portfolio for its owner.
func (r *portfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.portfolios[portfolio.OwnerID()]; ok {
		return domain.ErrPortfolioExists
	}
	r.portfolios[portfolio.OwnerID()] = portfolio
	return nil
}

// List retrieves all registered portfolios, sorted by owner id.
func (r *portfolioRepository) List(ctx context.Context) ([]*domain.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	portfolios := make([]*domain.Portfolio, 0, len(r.portfolios))
	for _, portfolio := range r.portfolios {
		portfolios = append(portfolios, portfolio)
	}
	sort.Slice(portfolios, func(i, j int) bool {
		return portfolios[i].OwnerID() < portfolios[j].OwnerID()
	})
	return portfolios, nil
}
