package domain

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// PriceMap maps a symbol to its current price. Valuation queries take a
// caller-supplied PriceMap built from quote snapshots; holdings whose symbol
// is absent contribute zero, so the map must cover all held symbols for an
// accurate figure.
type PriceMap map[string]decimal.Decimal

// Portfolio owns a cash balance, the per-symbol holdings and the append-only
// transaction ledger, and enforces all money and quantity invariants.
//
// Every mutating operation is atomic: it validates everything first and only
// then applies the full state transition (cash, holding, ledger append).
// A single RWMutex serializes mutations and keeps reads from interleaving
// with them, as each operation touches cash, holdings and ledger as one unit.
type Portfolio struct {
	mu sync.RWMutex

	ownerID           string
	cashBalance       decimal.Decimal
	initialInvestment decimal.Decimal
	holdings          map[string]*Holding
	transactions      []Transaction
}

// NewPortfolio creates a portfolio endowed with the given cash, which also
// seeds the initial-investment baseline used for return percentages.
// The endowment may be zero but not negative.
func NewPortfolio(ownerID string, initialCash decimal.Decimal) (*Portfolio, error) {
	if ownerID == "" {
		return nil, ErrInvalidOwnerID
	}
	if initialCash.IsNegative() {
		return nil, ErrInvalidAmount
	}

	return &Portfolio{
		ownerID:           ownerID,
		cashBalance:       initialCash,
		initialInvestment: initialCash,
		holdings:          make(map[string]*Holding),
	}, nil
}

// OwnerID returns the id of the user owning this portfolio.
func (p *Portfolio) OwnerID() string {
	return p.ownerID
}

// CashBalance returns the available cash.
func (p *Portfolio) CashBalance() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cashBalance
}

// InitialInvestment returns the cumulative capital contributed, the baseline
// for TotalReturnPercentage.
func (p *Portfolio) InitialInvestment() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.initialInvestment
}

// Buy purchases quantity shares at the given snapshot price, debiting
// price×quantity + commission from cash. It fails with ErrInsufficientFunds
// when the total cost exceeds the cash balance, leaving no state change.
// On success the holding for the symbol is created or averaged up and a BUY
// record is appended to the ledger.
func (p *Portfolio) Buy(symbol string, price decimal.Decimal, quantity int64, commission decimal.Decimal) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, ErrInvalidQuantity
	}
	if commission.IsNegative() {
		return Transaction{}, ErrInvalidCommission
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidPrice
	}
	symbol = strings.ToUpper(symbol)

	p.mu.Lock()
	defer p.mu.Unlock()

	totalCost := decimal.NewFromInt(quantity).Mul(price).Add(commission)
	if totalCost.GreaterThan(p.cashBalance) {
		return Transaction{}, ErrInsufficientFunds
	}

	p.cashBalance = p.cashBalance.Sub(totalCost)

	if holding, ok := p.holdings[symbol]; ok {
		// Quantity was validated above; AddShares cannot fail here.
		_ = holding.AddShares(quantity, price)
	} else {
		p.holdings[symbol] = NewHolding(symbol, quantity, price)
	}

	tx := NewTradeTransaction(p.ownerID, symbol, TransactionTypeBuy, quantity, price, commission)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// Sell disposes of quantity shares at the given snapshot price, crediting
// price×quantity − commission to cash. It fails with ErrNoPosition when the
// symbol is not held and ErrInsufficientShares when the held quantity is too
// small, leaving no state change. A fully closed position is removed from
// the holdings map.
func (p *Portfolio) Sell(symbol string, price decimal.Decimal, quantity int64, commission decimal.Decimal) (Transaction, error) {
	if quantity <= 0 {
		return Transaction{}, ErrInvalidQuantity
	}
	if commission.IsNegative() {
		return Transaction{}, ErrInvalidCommission
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidPrice
	}
	symbol = strings.ToUpper(symbol)

	p.mu.Lock()
	defer p.mu.Unlock()

	holding, ok := p.holdings[symbol]
	if !ok {
		return Transaction{}, ErrNoPosition
	}
	if holding.Quantity < quantity {
		return Transaction{}, ErrInsufficientShares
	}

	proceeds := decimal.NewFromInt(quantity).Mul(price).Sub(commission)
	p.cashBalance = p.cashBalance.Add(proceeds)

	// Validated against the held quantity above; RemoveShares cannot fail.
	_ = holding.RemoveShares(quantity)
	if holding.Quantity == 0 {
		delete(p.holdings, symbol)
	}

	tx := NewTradeTransaction(p.ownerID, symbol, TransactionTypeSell, quantity, price, commission)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// AddCash deposits additional capital. It increases both the cash balance
// and the initial-investment baseline: top-ups are contributed capital, not
// return.
func (p *Portfolio) AddCash(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cashBalance = p.cashBalance.Add(amount)
	p.initialInvestment = p.initialInvestment.Add(amount)
	return nil
}

// WithdrawCash removes cash from the portfolio. The initial-investment
// baseline is deliberately left untouched, asymmetric with AddCash.
func (p *Portfolio) WithdrawCash(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if amount.GreaterThan(p.cashBalance) {
		return ErrInsufficientFunds
	}
	p.cashBalance = p.cashBalance.Sub(amount)
	return nil
}

// RecordDividend credits a dividend payment for a symbol to cash and appends
// a DIVIDEND record to the ledger.
func (p *Portfolio) RecordDividend(symbol string, amount decimal.Decimal, notes string) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cashBalance = p.cashBalance.Add(amount)

	tx := NewCashEventTransaction(p.ownerID, symbol, TransactionTypeDividend, amount, notes)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// RecordFee debits an account fee from cash and appends a FEE record to the
// ledger. It fails when the fee exceeds the cash balance.
func (p *Portfolio) RecordFee(symbol string, amount decimal.Decimal, notes string) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrInvalidAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if amount.GreaterThan(p.cashBalance) {
		return Transaction{}, ErrInsufficientFunds
	}
	p.cashBalance = p.cashBalance.Sub(amount)

	tx := NewCashEventTransaction(p.ownerID, symbol, TransactionTypeFee, amount, notes)
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// TotalValue returns cash plus the market value of every holding priced by
// the given map. Held symbols missing from the map contribute zero, so the
// map must cover all held symbols for an accurate figure.
func (p *Portfolio) TotalValue(prices PriceMap) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalValue(prices)
}

func (p *Portfolio) totalValue(prices PriceMap) decimal.Decimal {
	total := p.cashBalance
	for symbol, holding := range p.holdings {
		if price, ok := prices[symbol]; ok {
			total = total.Add(holding.MarketValue(price))
		}
	}
	return total
}

// UnrealizedPL returns the aggregate paper profit or loss across all
// holdings priced by the given map.
func (p *Portfolio) UnrealizedPL(prices PriceMap) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.unrealizedPL(prices)
}

func (p *Portfolio) unrealizedPL(prices PriceMap) decimal.Decimal {
	total := decimal.Zero
	for symbol, holding := range p.holdings {
		if price, ok := prices[symbol]; ok {
			total = total.Add(holding.UnrealizedPL(price))
		}
	}
	return total
}

// RealizedPL accumulates, for every SELL in the ledger,
// quantity × (sellPrice − avgBuyPrice) − commission, where avgBuyPrice is the
// arithmetic mean of the per-share prices of ALL buys of that symbol.
//
// Known limitation, preserved deliberately: the mean covers every buy
// regardless of chronology and ignores the holding's weighted-average cost
// at the time of the sale, so the figure is an approximation.
func (p *Portfolio) RealizedPL() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.realizedPL()
}

func (p *Portfolio) realizedPL() decimal.Decimal {
	type buyStats struct {
		priceSum decimal.Decimal
		count    int64
	}
	buysBySymbol := make(map[string]buyStats)
	for _, tx := range p.transactions {
		if tx.Type == TransactionTypeBuy {
			stats := buysBySymbol[tx.Symbol]
			stats.priceSum = stats.priceSum.Add(tx.PricePerShare)
			stats.count++
			buysBySymbol[tx.Symbol] = stats
		}
	}

	realized := decimal.Zero
	for _, tx := range p.transactions {
		if tx.Type != TransactionTypeSell {
			continue
		}
		stats, ok := buysBySymbol[tx.Symbol]
		if !ok || stats.count == 0 {
			continue
		}
		avgBuyPrice := stats.priceSum.Div(decimal.NewFromInt(stats.count))
		qty := decimal.NewFromInt(tx.Quantity)
		realized = realized.Add(qty.Mul(tx.PricePerShare.Sub(avgBuyPrice)).Sub(tx.Commission))
	}
	return realized
}

// TotalReturnPercentage returns (totalValue − initialInvestment) /
// initialInvestment × 100, or zero when no capital was ever contributed.
func (p *Portfolio) TotalReturnPercentage(prices PriceMap) decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalReturnPercentage(prices)
}

func (p *Portfolio) totalReturnPercentage(prices PriceMap) decimal.Decimal {
	if p.initialInvestment.IsZero() {
		return decimal.Zero
	}
	return p.totalValue(prices).Sub(p.initialInvestment).
		Div(p.initialInvestment).
		Mul(decimal.NewFromInt(100))
}

// Holding returns a snapshot of the position for a symbol, priced at the
// given price, or ErrNoPosition when the symbol is not held.
func (p *Portfolio) Holding(symbol string, price decimal.Decimal) (HoldingSnapshot, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	holding, ok := p.holdings[strings.ToUpper(symbol)]
	if !ok {
		return HoldingSnapshot{}, ErrNoPosition
	}
	return holding.Snapshot(price), nil
}

// Holdings returns snapshots of all positions priced by the given map,
// sorted by symbol. The snapshots are copies; mutating them does not touch
// the portfolio's accounting state.
func (p *Portfolio) Holdings(prices PriceMap) []HoldingSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.holdingSnapshots(prices)
}

func (p *Portfolio) holdingSnapshots(prices PriceMap) []HoldingSnapshot {
	snapshots := make([]HoldingSnapshot, 0, len(p.holdings))
	for symbol, holding := range p.holdings {
		snapshots = append(snapshots, holding.Snapshot(prices[symbol]))
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Symbol < snapshots[j].Symbol
	})
	return snapshots
}

// Transactions returns a copy of the ledger in insertion (chronological)
// order.
func (p *Portfolio) Transactions() []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ledger := make([]Transaction, len(p.transactions))
	copy(ledger, p.transactions)
	return ledger
}

// RecentTransactions returns up to limit ledger records, newest first. The
// ledger is append-only, so insertion order is chronological order.
func (p *Portfolio) RecentTransactions(limit int) []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	if limit > len(p.transactions) {
		limit = len(p.transactions)
	}
	recent := make([]Transaction, 0, limit)
	for i := len(p.transactions) - 1; i >= len(p.transactions)-limit; i-- {
		recent = append(recent, p.transactions[i])
	}
	return recent
}

// DiversityCount returns the number of distinct symbols held.
func (p *Portfolio) DiversityCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.holdings)
}

// LargestHolding returns the symbol of the position with the highest market
// value under the given prices, or the empty string when nothing is held.
func (p *Portfolio) LargestHolding(prices PriceMap) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.largestHolding(prices)
}

func (p *Portfolio) largestHolding(prices PriceMap) string {
	largest := ""
	maxValue := decimal.Zero
	for symbol, holding := range p.holdings {
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		value := holding.MarketValue(price)
		if value.GreaterThan(maxValue) {
			maxValue = value
			largest = symbol
		}
	}
	return largest
}

// Review captures the complete valuation and P&L picture under a single read
// lock, so a concurrent mutation cannot produce a torn reading across the
// individual figures.
type Review struct {
	OwnerID           string
	CashBalance       decimal.Decimal
	TotalValue        decimal.Decimal
	InitialInvestment decimal.Decimal
	ReturnPercentage  decimal.Decimal
	UnrealizedPL      decimal.Decimal
	RealizedPL        decimal.Decimal
	Holdings          []HoldingSnapshot
	LargestHolding    string
	TransactionCount  int
}

// Review returns a consistent snapshot of all derived portfolio metrics
// valued at the given prices.
func (p *Portfolio) Review(prices PriceMap) Review {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Review{
		OwnerID:           p.ownerID,
		CashBalance:       p.cashBalance,
		TotalValue:        p.totalValue(prices),
		InitialInvestment: p.initialInvestment,
		ReturnPercentage:  p.totalReturnPercentage(prices),
		UnrealizedPL:      p.unrealizedPL(prices),
		RealizedPL:        p.realizedPL(),
		Holdings:          p.holdingSnapshots(prices),
		LargestHolding:    p.largestHolding(prices),
		TransactionCount:  len(p.transactions),
	}
}
