package trading

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/stocksim-backend/internal/domain"
)

// OrderInput represents the input for a buy or sell order.
type OrderInput struct {
	OwnerID    string
	Symbol     string
	Quantity   int64
	Commission decimal.Decimal
}

// CashInput represents the input for a deposit or withdrawal.
type CashInput struct {
	OwnerID string
	Amount  decimal.Decimal
}

// DividendInput represents the input for recording a dividend payment.
type DividendInput struct {
	OwnerID string
	Symbol  string
	Amount  decimal.Decimal
	Notes   string
}

// TradingService executes orders and cash movements against portfolios.
// It looks up the instrument's quote, snapshots the current price and hands
// that snapshot to the portfolio: the portfolio never touches a live quote,
// so price simulation and portfolio mutation need no shared lock.
type TradingService struct {
	PortfolioRepo domain.PortfolioRepository
	QuoteRepo     domain.QuoteRepository
}

// NewTradingService creates a new TradingService instance.
func NewTradingService(portfolioRepo domain.PortfolioRepository, quoteRepo domain.QuoteRepository) *TradingService {
	return &TradingService{
		PortfolioRepo: portfolioRepo,
		QuoteRepo:     quoteRepo,
	}
}

// OpenPortfolio creates and registers a portfolio with an initial cash
// endowment.
func (s *TradingService) OpenPortfolio(ctx context.Context, ownerID string, initialCash decimal.Decimal) (*domain.Portfolio, error) {
	portfolio, err := domain.NewPortfolio(ownerID, initialCash)
	if err != nil {
		return nil, err
	}
	if err := s.PortfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// ExecuteBuy runs a buy order at the instrument's current price.
// Logic:
//  1. Fetch the owner's portfolio
//  2. Fetch the quote and snapshot its current price
//  3. Delegate to Portfolio.Buy, which validates funds and records the trade
func (s *TradingService) ExecuteBuy(ctx context.Context, input OrderInput) (domain.Transaction, error) {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return domain.Transaction{}, err
	}

	quote, err := s.QuoteRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx, err := portfolio.Buy(quote.Symbol(), quote.CurrentPrice(), input.Quantity, input.Commission)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("buy %s: %w", quote.Symbol(), err)
	}
	return tx, nil
}

// ExecuteSell runs a sell order at the instrument's current price.
func (s *TradingService) ExecuteSell(ctx context.Context, input OrderInput) (domain.Transaction, error) {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return domain.Transaction{}, err
	}

	quote, err := s.QuoteRepo.GetBySymbol(ctx, input.Symbol)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx, err := portfolio.Sell(quote.Symbol(), quote.CurrentPrice(), input.Quantity, input.Commission)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("sell %s: %w", quote.Symbol(), err)
	}
	return tx, nil
}

// Deposit adds cash to the owner's portfolio.
func (s *TradingService) Deposit(ctx context.Context, input CashInput) error {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return err
	}
	return portfolio.AddCash(input.Amount)
}

// Withdraw removes cash from the owner's portfolio.
func (s *TradingService) Withdraw(ctx context.Context, input CashInput) error {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return err
	}
	return portfolio.WithdrawCash(input.Amount)
}

// RecordDividend credits a dividend payment to the owner's portfolio ledger.
func (s *TradingService) RecordDividend(ctx context.Context, input DividendInput) (domain.Transaction, error) {
	portfolio, err := s.PortfolioRepo.GetByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return domain.Transaction{}, err
	}
	return portfolio.RecordDividend(input.Symbol, input.Amount, input.Notes)
}
