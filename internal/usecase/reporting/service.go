package reporting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/stocksim-backend/internal/domain"
)

// Summary is an at-a-glance overview of one portfolio's state, valued at a
// single consistent snapshot of the quote board.
type Summary struct {
	OwnerID           string
	CashBalance       decimal.Decimal
	PositionsValue    decimal.Decimal
	TotalValue        decimal.Decimal
	InitialInvestment decimal.Decimal
	TotalReturn       decimal.Decimal
	ReturnPercentage  decimal.Decimal
	UnrealizedPL      decimal.Decimal
	RealizedPL        decimal.Decimal
	Holdings          []domain.HoldingSnapshot
	DiversityCount    int
	LargestHolding    string
	TransactionCount  int
}

// ReportingService derives valuation and performance figures for portfolios.
type ReportingService struct {
	PortfolioRepo domain.PortfolioRepository
	QuoteRepo     domain.QuoteRepository
}

// NewReportingService creates a new ReportingService instance.
func NewReportingService(portfolioRepo domain.PortfolioRepository, quoteRepo domain.QuoteRepository) *ReportingService {
	return &ReportingService{
		PortfolioRepo: portfolioRepo,
		QuoteRepo:     quoteRepo,
	}
}

// PriceMap builds the symbol→price mapping from the current quote board.
// Valuation queries take this snapshot so that a concurrent simulation tick
// cannot produce a torn reading within one report.
func (s *ReportingService) PriceMap(ctx context.Context) (domain.PriceMap, error) {
	quotes, err := s.QuoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	prices := make(domain.PriceMap, len(quotes))
	for _, quote := range quotes {
		prices[quote.Symbol()] = quote.CurrentPrice()
	}
	return prices, nil
}

// GetSummary assembles the full valuation and P&L picture for one portfolio.
// The portfolio figures come from a single consistent Review so that
// concurrent trades cannot skew the report internally.
func (s *ReportingService) GetSummary(ctx context.Context, ownerID string) (*Summary, error) {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	prices, err := s.PriceMap(ctx)
	if err != nil {
		return nil, err
	}

	review := portfolio.Review(prices)
	return &Summary{
		OwnerID:           review.OwnerID,
		CashBalance:       review.CashBalance,
		PositionsValue:    review.TotalValue.Sub(review.CashBalance),
		TotalValue:        review.TotalValue,
		InitialInvestment: review.InitialInvestment,
		TotalReturn:       review.TotalValue.Sub(review.InitialInvestment),
		ReturnPercentage:  review.ReturnPercentage,
		UnrealizedPL:      review.UnrealizedPL,
		RealizedPL:        review.RealizedPL,
		Holdings:          review.Holdings,
		DiversityCount:    len(review.Holdings),
		LargestHolding:    review.LargestHolding,
		TransactionCount:  review.TransactionCount,
	}, nil
}
