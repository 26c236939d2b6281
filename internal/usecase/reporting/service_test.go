package reporting

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/stocksim-backend/internal/domain"
)

// MockPortfolioRepository is a mock implementation of PortfolioRepository for testing
type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Portfolio, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Portfolio), args.Error(1)
}

func (m *MockPortfolioRepository) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	args := m.Called(ctx, portfolio)
	return args.Error(0)
}

func (m *MockPortfolioRepository) List(ctx context.Context) ([]*domain.Portfolio, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Portfolio), args.Error(1)
}

// MockQuoteRepository is a mock implementation of QuoteRepository for testing
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Quote, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Create(ctx context.Context, quote *domain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

func (m *MockQuoteRepository) List(ctx context.Context) ([]*domain.Quote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Quote), args.Error(1)
}

func mustQuote(t *testing.T, symbol string, price float64) *domain.Quote {
	t.Helper()
	q, err := domain.NewQuote(symbol, symbol+" Corp.", decimal.NewFromFloat(price), domain.SectorTechnology, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return q
}

func TestPriceMap(t *testing.T) {
	ctx := context.Background()
	mockPortfolioRepo := new(MockPortfolioRepository)
	mockQuoteRepo := new(MockQuoteRepository)

	service := NewReportingService(mockPortfolioRepo, mockQuoteRepo)

	mockQuoteRepo.On("List", ctx).Return([]*domain.Quote{
		mustQuote(t, "AAPL", 175.50),
		mustQuote(t, "XOM", 112.80),
	}, nil)

	// Execute
	prices, err := service.PriceMap(ctx)

	// Assert
	assert.NoError(t, err)
	require.Len(t, prices, 2)
	assert.True(t, prices["AAPL"].Equal(decimal.NewFromFloat(175.50)))
	assert.True(t, prices["XOM"].Equal(decimal.NewFromFloat(112.80)))
}

func TestPriceMap_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockPortfolioRepo := new(MockPortfolioRepository)
	mockQuoteRepo := new(MockQuoteRepository)

	service := NewReportingService(mockPortfolioRepo, mockQuoteRepo)

	mockQuoteRepo.On("List", ctx).Return(nil, errors.New("board unavailable"))

	// Execute
	_, err := service.PriceMap(ctx)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "board unavailable")
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	mockPortfolioRepo := new(MockPortfolioRepository)
	mockQuoteRepo := new(MockQuoteRepository)

	service := NewReportingService(mockPortfolioRepo, mockQuoteRepo)

	// Setup: 10,000 endowment, buy 10 XYZ @ 50 + 5, sell 5 @ 60 - 2,
	// board now quotes XYZ at 60.
	portfolio, err := domain.NewPortfolio("user-1", decimal.NewFromInt(10000))
	require.NoError(t, err)
	_, err = portfolio.Buy("XYZ", decimal.NewFromInt(50), 10, decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = portfolio.Sell("XYZ", decimal.NewFromInt(60), 5, decimal.NewFromInt(2))
	require.NoError(t, err)

	mockPortfolioRepo.On("GetByOwnerID", ctx, "user-1").Return(portfolio, nil)
	mockQuoteRepo.On("List", ctx).Return([]*domain.Quote{mustQuote(t, "XYZ", 60)}, nil)

	// Execute
	summary, err := service.GetSummary(ctx, "user-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-1", summary.OwnerID)
	// Cash is 10000 - (10 x 50 + 5) + (5 x 60 - 2) = 9793.
	assert.True(t, summary.CashBalance.Equal(decimal.NewFromInt(9793)))
	assert.True(t, summary.PositionsValue.Equal(decimal.NewFromInt(300)))
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(10093)))
	assert.True(t, summary.TotalReturn.Equal(decimal.NewFromInt(93)))
	assert.True(t, summary.UnrealizedPL.Equal(decimal.NewFromInt(50)))
	assert.True(t, summary.RealizedPL.Equal(decimal.NewFromInt(48)))
	assert.Equal(t, 1, summary.DiversityCount)
	assert.Equal(t, "XYZ", summary.LargestHolding)
	assert.Equal(t, 2, summary.TransactionCount)
	require.Len(t, summary.Holdings, 1)
	assert.Equal(t, int64(5), summary.Holdings[0].Quantity)
}

func TestGetSummary_PortfolioNotFound(t *testing.T) {
	ctx := context.Background()
	mockPortfolioRepo := new(MockPortfolioRepository)
	mockQuoteRepo := new(MockQuoteRepository)

	service := NewReportingService(mockPortfolioRepo, mockQuoteRepo)

	mockPortfolioRepo.On("GetByOwnerID", ctx, "ghost").Return(nil, domain.ErrPortfolioNotFound)

	// Execute
	_, err := service.GetSummary(ctx, "ghost")

	// Assert
	assert.ErrorIs(t, err, domain.ErrPortfolioNotFound)
	mockQuoteRepo.AssertNotCalled(t, "List")
}
