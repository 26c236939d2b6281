package domain

import "github.com/shopspring/decimal"

// Holding is a mutable per-symbol position tracking quantity and
// weighted-average cost. It is owned exclusively by one Portfolio: it is
// created on the first buy of a symbol and removed when the quantity reaches
// zero. Callers outside the portfolio only ever see HoldingSnapshot copies.
//
// Invariant: TotalCost == Quantity × AverageCost; a quantity of zero implies
// a zero average cost.
type Holding struct {
	Symbol      string
	Quantity    int64
	AverageCost decimal.Decimal
	TotalCost   decimal.Decimal
}

// HoldingSnapshot is a read-only copy of a holding, optionally enriched with
// the market price it was valued against.
type HoldingSnapshot struct {
	Symbol       string
	Quantity     int64
	AverageCost  decimal.Decimal
	TotalCost    decimal.Decimal
	CurrentPrice decimal.Decimal
	MarketValue  decimal.Decimal
	UnrealizedPL decimal.Decimal
}

// NewHolding creates a holding for the first purchase of a symbol.
func NewHolding(symbol string, quantity int64, price decimal.Decimal) *Holding {
	qty := decimal.NewFromInt(quantity)
	return &Holding{
		Symbol:      symbol,
		Quantity:    quantity,
		AverageCost: price,
		TotalCost:   qty.Mul(price),
	}
}

// AddShares folds an additional purchase into the position, recomputing the
// weighted-average cost as (totalCost + n×price) / (quantity + n).
func (h *Holding) AddShares(quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	additionalCost := decimal.NewFromInt(quantity).Mul(price)
	h.TotalCost = h.TotalCost.Add(additionalCost)
	h.Quantity += quantity
	h.AverageCost = h.TotalCost.Div(decimal.NewFromInt(h.Quantity))
	return nil
}

// RemoveShares reduces the position. Removing more shares than held fails
// without mutating the holding. A fully closed position loses its cost
// basis: a later buy starts a fresh average.
func (h *Holding) RemoveShares(quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > h.Quantity {
		return ErrInsufficientShares
	}

	h.Quantity -= quantity
	if h.Quantity == 0 {
		h.AverageCost = decimal.Zero
		h.TotalCost = decimal.Zero
	} else {
		h.TotalCost = decimal.NewFromInt(h.Quantity).Mul(h.AverageCost)
	}
	return nil
}

// MarketValue returns the position's worth at the given price.
func (h *Holding) MarketValue(currentPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(h.Quantity).Mul(currentPrice)
}

// UnrealizedPL returns the paper profit or loss against the average cost:
// quantity × (currentPrice − averageCost).
func (h *Holding) UnrealizedPL(currentPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(h.Quantity).Mul(currentPrice.Sub(h.AverageCost))
}

// Snapshot returns a read-only copy of the holding valued at the given price.
func (h *Holding) Snapshot(currentPrice decimal.Decimal) HoldingSnapshot {
	return HoldingSnapshot{
		Symbol:       h.Symbol,
		Quantity:     h.Quantity,
		AverageCost:  h.AverageCost,
		TotalCost:    h.TotalCost,
		CurrentPrice: currentPrice,
		MarketValue:  h.MarketValue(currentPrice),
		UnrealizedPL: h.UnrealizedPL(currentPrice),
	}
}
