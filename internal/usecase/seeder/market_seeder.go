package seeder

import (
	"context"
	"errors"
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/simaogato/stocksim-backend/internal/domain"
)

// ListedStock defines the structure of a symbol to be seeded onto the board.
type ListedStock struct {
	Symbol       string
	CompanyName  string
	InitialPrice decimal.Decimal
	Sector       domain.Sector
}

// DefaultListings is the board seeded at startup when no custom listings are
// provided.
var DefaultListings = []ListedStock{
	{Symbol: "AAPL", CompanyName: "Apple Inc.", InitialPrice: decimal.NewFromFloat(175.50), Sector: domain.SectorTechnology},
	{Symbol: "MSFT", CompanyName: "Microsoft Corp.", InitialPrice: decimal.NewFromFloat(420.25), Sector: domain.SectorTechnology},
	{Symbol: "XOM", CompanyName: "Exxon Mobil Corp.", InitialPrice: decimal.NewFromFloat(112.80), Sector: domain.SectorEnergy},
	{Symbol: "JPM", CompanyName: "JPMorgan Chase & Co.", InitialPrice: decimal.NewFromFloat(198.40), Sector: domain.SectorFinance},
	{Symbol: "JNJ", CompanyName: "Johnson & Johnson", InitialPrice: decimal.NewFromFloat(156.70), Sector: domain.SectorHealthcare},
	{Symbol: "KO", CompanyName: "The Coca-Cola Company", InitialPrice: decimal.NewFromFloat(62.15), Sector: domain.SectorConsumer},
}

// MarketSeeder handles seeding of the quote board at startup.
type MarketSeeder struct {
	repo domain.QuoteRepository
	rng  *rand.Rand
}

// NewMarketSeeder creates a new MarketSeeder instance. The random source only
// mints per-quote seeds: every seeded quote gets its own source, so quotes can
// be simulated from different goroutines and a fixed seed still reproduces the
// same walks.
func NewMarketSeeder(repo domain.QuoteRepository, rng *rand.Rand) *MarketSeeder {
	return &MarketSeeder{
		repo: repo,
		rng:  rng,
	}
}

// Seed ensures all given listings exist on the quote board. Symbols that are
// already listed are left untouched, so seeding is idempotent.
func (s *MarketSeeder) Seed(ctx context.Context, listings []ListedStock) error {
	for _, listing := range listings {
		_, err := s.repo.GetBySymbol(ctx, listing.Symbol)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrQuoteNotFound) {
			return err
		}

		quote, err := domain.NewQuote(listing.Symbol, listing.CompanyName, listing.InitialPrice, listing.Sector, rand.New(rand.NewSource(s.rng.Int63())))
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, quote); err != nil {
			return err
		}
	}
	return nil
}
