package marketsim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/simaogato/stocksim-backend/internal/domain"
)

// Simulator drives the random walk of every quote on the board. It runs in
// its own goroutine, independent of any portfolio: portfolios only ever read
// price snapshots, so no cross-component lock is needed.
type Simulator struct {
	QuoteRepo domain.QuoteRepository

	limiter *rate.Limiter
	log     *slog.Logger
}

// NewSimulator creates a simulator ticking at most once per interval.
func NewSimulator(quoteRepo domain.QuoteRepository, interval time.Duration, log *slog.Logger) *Simulator {
	return &Simulator{
		QuoteRepo: quoteRepo,
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
		log:       log,
	}
}

// Run ticks the market until the context is cancelled.
func (s *Simulator) Run(ctx context.Context) error {
	s.log.Info("market simulator started")
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			s.log.Info("market simulator stopped")
			return ctx.Err()
		}
		if err := s.Tick(ctx); err != nil {
			s.log.Error("market tick failed", "error", err)
		}
	}
}

// Tick applies one simulated price move to every quote on the board.
func (s *Simulator) Tick(ctx context.Context) error {
	quotes, err := s.QuoteRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}
	for _, quote := range quotes {
		quote.SimulateMove()
	}
	return nil
}

// CloseSession re-bases every quote's daily statistics to its current price,
// marking a trading-session boundary.
func (s *Simulator) CloseSession(ctx context.Context) error {
	quotes, err := s.QuoteRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list quotes: %w", err)
	}
	for _, quote := range quotes {
		quote.ResetDailyStats()
	}
	s.log.Info("trading session closed", "quotes", len(quotes))
	return nil
}
