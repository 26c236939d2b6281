package domain

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Sector classifies a listed company and biases the simulated price drift.
type Sector string

const (
	SectorTechnology Sector = "TECHNOLOGY"
	SectorEnergy     Sector = "ENERGY"
	SectorFinance    Sector = "FINANCE"
	SectorHealthcare Sector = "HEALTHCARE"
	SectorConsumer   Sector = "CONSUMER"
)

// Price simulation parameters. Volatility is the standard deviation of the
// relative move drawn on each tick; sector drifts are added on top.
var (
	simVolatility      = 0.02
	driftTechnology    = 0.001
	driftEnergy        = -0.0005
	minVolumeIncrement = int64(1000)
	maxVolumeIncrement = int64(10000)
)

// Quote tracks the tradable price of one symbol together with its daily
// statistics (open, high, low, previous close, cumulative volume).
//
// A Quote is safe for concurrent use: the market simulator mutates it from
// its own goroutine while portfolio operations read price snapshots.
// Portfolios never hold a live reference to a Quote; they only ever see a
// price copied out by the caller.
type Quote struct {
	mu sync.Mutex

	symbol      string
	companyName string
	sector      Sector

	currentPrice  decimal.Decimal
	openPrice     decimal.Decimal
	dayHigh       decimal.Decimal
	dayLow        decimal.Decimal
	previousClose decimal.Decimal
	volume        int64

	rng *rand.Rand
}

// QuoteSnapshot is an immutable copy of a Quote's state, handed to callers
// instead of the live entity.
type QuoteSnapshot struct {
	Symbol           string
	CompanyName      string
	Sector           Sector
	CurrentPrice     decimal.Decimal
	OpenPrice        decimal.Decimal
	DayHigh          decimal.Decimal
	DayLow           decimal.Decimal
	PreviousClose    decimal.Decimal
	Volume           int64
	PercentageChange decimal.Decimal
}

// NewQuote creates a quote with all daily statistics based at the initial
// price. The random source drives SimulateMove and is injected so tests can
// assert exact outputs.
func NewQuote(symbol, companyName string, initialPrice decimal.Decimal, sector Sector, rng *rand.Rand) (*Quote, error) {
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}
	if initialPrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if rng == nil {
		return nil, errors.New("quote requires a random source")
	}

	price := initialPrice.Round(2)
	return &Quote{
		symbol:        strings.ToUpper(symbol),
		companyName:   companyName,
		sector:        sector,
		currentPrice:  price,
		openPrice:     price,
		dayHigh:       price,
		dayLow:        price,
		previousClose: price,
		rng:           rng,
	}, nil
}

// Symbol returns the quote's ticker symbol.
func (q *Quote) Symbol() string {
	return q.symbol
}

// CurrentPrice returns the last traded price.
func (q *Quote) CurrentPrice() decimal.Decimal {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.currentPrice
}

// SimulateMove applies one random-walk step to the price: a Gaussian relative
// change with fixed volatility plus a small sector drift. The result is
// floored at 99% of the previous price (the price never goes non-positive),
// rounded to cents, and recorded against the day's high/low. Volume grows by
// a bounded random amount.
func (q *Quote) SimulateMove() {
	q.mu.Lock()
	defer q.mu.Unlock()

	trend := q.rng.NormFloat64() * simVolatility
	switch q.sector {
	case SectorTechnology:
		trend += driftTechnology
	case SectorEnergy:
		trend += driftEnergy
	}

	current, _ := q.currentPrice.Float64()
	newPrice := current * (1 + trend)
	if newPrice <= 0 {
		newPrice = current * 0.99
	}

	q.applyPrice(decimal.NewFromFloat(newPrice).Round(2))
	q.volume += q.rng.Int63n(maxVolumeIncrement-minVolumeIncrement+1) + minVolumeIncrement
}

// SetPrice overrides the current price directly, with the same high/low
// bookkeeping as a simulated move. Non-positive prices are rejected.
func (q *Quote) SetPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.applyPrice(price.Round(2))
	return nil
}

// applyPrice updates the current price and day bounds. Callers must hold the
// mutex.
func (q *Quote) applyPrice(price decimal.Decimal) {
	q.currentPrice = price
	if price.GreaterThan(q.dayHigh) {
		q.dayHigh = price
	}
	if price.LessThan(q.dayLow) {
		q.dayLow = price
	}
}

// PercentageChange returns the move from the previous close in percent.
// Returns zero when the previous close is zero.
func (q *Quote) PercentageChange() decimal.Decimal {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.percentageChange()
}

func (q *Quote) percentageChange() decimal.Decimal {
	if q.previousClose.IsZero() {
		return decimal.Zero
	}
	return q.currentPrice.Sub(q.previousClose).
		Div(q.previousClose).
		Mul(decimal.NewFromInt(100))
}

// ResetDailyStats re-bases previous close, open, high and low to the current
// price and zeroes the volume. Called once per trading session.
func (q *Quote) ResetDailyStats() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.previousClose = q.currentPrice
	q.openPrice = q.currentPrice
	q.dayHigh = q.currentPrice
	q.dayLow = q.currentPrice
	q.volume = 0
}

// Snapshot returns a copy of the quote's current state.
func (q *Quote) Snapshot() QuoteSnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()

	return QuoteSnapshot{
		Symbol:           q.symbol,
		CompanyName:      q.companyName,
		Sector:           q.sector,
		CurrentPrice:     q.currentPrice,
		OpenPrice:        q.openPrice,
		DayHigh:          q.dayHigh,
		DayLow:           q.dayLow,
		PreviousClose:    q.previousClose,
		Volume:           q.volume,
		PercentageChange: q.percentageChange(),
	}
}
