package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	httpadapter "github.com/simaogato/stocksim-backend/internal/adapter/http"
	"github.com/simaogato/stocksim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/stocksim-backend/internal/config"
	"github.com/simaogato/stocksim-backend/internal/logger"
	"github.com/simaogato/stocksim-backend/internal/usecase/marketsim"
	"github.com/simaogato/stocksim-backend/internal/usecase/reporting"
	"github.com/simaogato/stocksim-backend/internal/usecase/seeder"
	"github.com/simaogato/stocksim-backend/internal/usecase/trading"
)

func main() {
	// 1. Load configuration and set up logging
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	// 2. Initialize Repositories (in-memory)
	portfolioRepo := memory.NewPortfolioRepository()
	quoteRepo := memory.NewQuoteRepository()

	// 3. Seed the quote board. A fixed SIM_SEED reproduces the same price
	// walk across runs.
	rng := rand.New(rand.NewSource(cfg.SimSeed))
	marketSeeder := seeder.NewMarketSeeder(quoteRepo, rng)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := marketSeeder.Seed(ctx, seeder.DefaultListings); err != nil {
		log.Error("failed to seed quote board", "error", err)
		os.Exit(1)
	}
	log.Info("quote board seeded", "symbols", len(seeder.DefaultListings))

	// 4. Initialize Services (Use Cases)
	tradingService := trading.NewTradingService(portfolioRepo, quoteRepo)
	reportingService := reporting.NewReportingService(portfolioRepo, quoteRepo)
	simulator := marketsim.NewSimulator(quoteRepo, cfg.SimTickInterval, log)

	// 5. Start the market simulator
	go func() {
		if err := simulator.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("market simulator exited", "error", err)
		}
	}()

	// 6. Start HTTP Server
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	server := httpadapter.NewServer(
		tradingService,
		reportingService,
		simulator,
		quoteRepo,
		cfg.QuoteCacheTTL,
		limiter,
		log,
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		log.Info("http server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	waitForShutdown(httpServer, cancel, cfg, log)
}

// waitForShutdown waits for SIGTERM or SIGINT, stops the simulator and
// gracefully shuts down the HTTP server.
func waitForShutdown(httpServer *http.Server, cancel context.CancelFunc, cfg *config.AppConfig, log *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info("shutting down", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
		return
	}
	log.Info("http server stopped")
}
