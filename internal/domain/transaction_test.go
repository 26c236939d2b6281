package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTradeTransaction_Buy(t *testing.T) {
	tx := NewTradeTransaction("user-1", "aapl", TransactionTypeBuy, 10, decimal.NewFromInt(50), decimal.NewFromInt(5))

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", tx.ID.String())
	assert.Equal(t, "user-1", tx.OwnerID)
	assert.Equal(t, "AAPL", tx.Symbol, "symbol should be normalized to upper case")
	assert.Equal(t, TransactionTypeBuy, tx.Type)
	assert.Equal(t, int64(10), tx.Quantity)
	// 10 x 50 + 5 commission
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(505)))
	assert.False(t, tx.Timestamp.IsZero())
}

func TestNewTradeTransaction_Sell(t *testing.T) {
	tx := NewTradeTransaction("user-1", "AAPL", TransactionTypeSell, 5, decimal.NewFromInt(60), decimal.NewFromInt(2))

	// 5 x 60 - 2 commission
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromInt(298)))
}

func TestNewCashEventTransaction(t *testing.T) {
	tx := NewCashEventTransaction("user-1", "ko", TransactionTypeDividend, decimal.NewFromFloat(12.40), "Q3 dividend")

	assert.Equal(t, "KO", tx.Symbol)
	assert.Equal(t, TransactionTypeDividend, tx.Type)
	assert.Equal(t, int64(0), tx.Quantity)
	assert.True(t, tx.TotalAmount.Equal(decimal.NewFromFloat(12.40)))
	assert.Equal(t, "Q3 dividend", tx.Notes)
}

func TestTransaction_CashFlow(t *testing.T) {
	tests := []struct {
		name string
		tx   Transaction
		want decimal.Decimal
	}{
		{
			name: "buy is a cash outflow",
			tx:   NewTradeTransaction("u", "AAPL", TransactionTypeBuy, 10, decimal.NewFromInt(50), decimal.NewFromInt(5)),
			want: decimal.NewFromInt(-505),
		},
		{
			name: "sell is a cash inflow",
			tx:   NewTradeTransaction("u", "AAPL", TransactionTypeSell, 5, decimal.NewFromInt(60), decimal.NewFromInt(2)),
			want: decimal.NewFromInt(298),
		},
		{
			name: "dividend is a cash inflow",
			tx:   NewCashEventTransaction("u", "AAPL", TransactionTypeDividend, decimal.NewFromInt(25), ""),
			want: decimal.NewFromInt(25),
		},
		{
			name: "fee is a cash outflow",
			tx:   NewCashEventTransaction("u", "", TransactionTypeFee, decimal.NewFromInt(10), "account fee"),
			want: decimal.NewFromInt(-10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.tx.CashFlow().Equal(tt.want), "expected %s, got %s", tt.want, tt.tx.CashFlow())
		})
	}
}

func TestTransaction_MatchesSymbol(t *testing.T) {
	tx := NewTradeTransaction("u", "AAPL", TransactionTypeBuy, 1, decimal.NewFromInt(100), decimal.Zero)

	assert.True(t, tx.MatchesSymbol("aapl"))
	assert.True(t, tx.MatchesSymbol("AAPL"))
	assert.False(t, tx.MatchesSymbol("MSFT"))
}

func TestTransaction_UniqueIDs(t *testing.T) {
	a := NewTradeTransaction("u", "AAPL", TransactionTypeBuy, 1, decimal.NewFromInt(100), decimal.Zero)
	b := NewTradeTransaction("u", "AAPL", TransactionTypeBuy, 1, decimal.NewFromInt(100), decimal.Zero)

	assert.NotEqual(t, a.ID, b.ID)
}
