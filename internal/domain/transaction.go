package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of ledger event.
type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
	TransactionTypeDividend TransactionType = "DIVIDEND"
	TransactionTypeFee      TransactionType = "FEE"
)

// Transaction is an immutable record of one ledger event. It is created
// exactly once, appended to its portfolio's ledger and never mutated or
// deleted.
//
// TotalAmount is computed at creation time:
//   - BUY:  quantity × price + commission
//   - SELL: quantity × price − commission
//   - DIVIDEND / FEE: the raw amount (quantity is zero)
type Transaction struct {
	ID            uuid.UUID
	OwnerID       string
	Symbol        string
	Type          TransactionType
	Quantity      int64
	PricePerShare decimal.Decimal
	Commission    decimal.Decimal
	TotalAmount   decimal.Decimal
	Timestamp     time.Time
	Notes         string
}

// NewTradeTransaction records a BUY or SELL ledger event.
func NewTradeTransaction(ownerID, symbol string, txType TransactionType, quantity int64, pricePerShare, commission decimal.Decimal) Transaction {
	qty := decimal.NewFromInt(quantity)

	var total decimal.Decimal
	switch txType {
	case TransactionTypeBuy:
		total = qty.Mul(pricePerShare).Add(commission)
	case TransactionTypeSell:
		total = qty.Mul(pricePerShare).Sub(commission)
	default:
		total = qty.Mul(pricePerShare)
	}

	return Transaction{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Symbol:        strings.ToUpper(symbol),
		Type:          txType,
		Quantity:      quantity,
		PricePerShare: pricePerShare,
		Commission:    commission,
		TotalAmount:   total,
		Timestamp:     time.Now(),
	}
}

// NewCashEventTransaction records a DIVIDEND or FEE ledger event. These carry
// no share quantity; the total amount is the raw cash amount.
func NewCashEventTransaction(ownerID, symbol string, txType TransactionType, amount decimal.Decimal, notes string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Symbol:      strings.ToUpper(symbol),
		Type:        txType,
		TotalAmount: amount,
		Timestamp:   time.Now(),
		Notes:       notes,
	}
}

// CashFlow returns the signed cash impact of the transaction: negative for
// buys and fees, positive for sells and dividends.
func (t Transaction) CashFlow() decimal.Decimal {
	switch t.Type {
	case TransactionTypeBuy, TransactionTypeFee:
		return t.TotalAmount.Neg()
	case TransactionTypeSell, TransactionTypeDividend:
		return t.TotalAmount
	default:
		return decimal.Zero
	}
}

// MatchesSymbol reports whether the transaction concerns the given symbol.
func (t Transaction) MatchesSymbol(symbol string) bool {
	return t.Symbol == strings.ToUpper(symbol)
}
