package domain

import "context"

// PortfolioRepository defines the interface for portfolio lookup and
// registration. Portfolios are process-scoped: they are created once and
// never destroyed mid-process.
type PortfolioRepository interface {
	// GetByOwnerID retrieves the portfolio owned by the given user
	GetByOwnerID(ctx context.Context, ownerID string) (*Portfolio, error)

	// Create registers a new portfolio; fails if the owner already has one
	Create(ctx context.Context, portfolio *Portfolio) error

	// List retrieves all registered portfolios
	List(ctx context.Context) ([]*Portfolio, error)
}

// QuoteRepository defines the interface for the quote board holding one
// Quote per listed symbol.
type QuoteRepository interface {
	// GetBySymbol retrieves the quote for a symbol
	GetBySymbol(ctx context.Context, symbol string) (*Quote, error)

	// Create lists a new symbol on the board; fails if it is already listed
	Create(ctx context.Context, quote *Quote) error

	// List retrieves all quotes on the board
	List(ctx context.Context) ([]*Quote, error)
}
