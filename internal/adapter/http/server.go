package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/simaogato/stocksim-backend/internal/domain"
	"github.com/simaogato/stocksim-backend/internal/usecase/marketsim"
	"github.com/simaogato/stocksim-backend/internal/usecase/reporting"
	"github.com/simaogato/stocksim-backend/internal/usecase/trading"
)

// quoteBoardCacheKey is the single key under which the rendered quote-board
// response is cached between simulation ticks.
const quoteBoardCacheKey = "quote-board"

// Server exposes the trading engine over REST.
type Server struct {
	TradingService   *trading.TradingService
	ReportingService *reporting.ReportingService
	Simulator        *marketsim.Simulator
	QuoteRepo        domain.QuoteRepository

	quoteCache *cache.Cache
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewServer creates a new HTTP server instance. quoteCacheTTL bounds how
// stale the cached quote-board response may get; the rate limiter is global,
// shared by all clients.
func NewServer(
	tradingService *trading.TradingService,
	reportingService *reporting.ReportingService,
	simulator *marketsim.Simulator,
	quoteRepo domain.QuoteRepository,
	quoteCacheTTL time.Duration,
	limiter *rate.Limiter,
	log *slog.Logger,
) *Server {
	return &Server{
		TradingService:   tradingService,
		ReportingService: reportingService,
		Simulator:        simulator,
		QuoteRepo:        quoteRepo,
		quoteCache:       cache.New(quoteCacheTTL, 2*quoteCacheTTL),
		limiter:          limiter,
		log:              log,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.rateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/portfolios", func(r chi.Router) {
			r.Post("/", s.handleCreatePortfolio)
			r.Route("/{ownerID}", func(r chi.Router) {
				r.Get("/", s.handleGetPortfolio)
				r.Get("/summary", s.handleGetSummary)
				r.Get("/transactions", s.handleListTransactions)
				r.Post("/orders/buy", s.handleBuy)
				r.Post("/orders/sell", s.handleSell)
				r.Post("/cash/deposits", s.handleDeposit)
				r.Post("/cash/withdrawals", s.handleWithdraw)
				r.Post("/dividends", s.handleRecordDividend)
			})
		})

		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", s.handleListQuotes)
			r.Get("/{symbol}", s.handleGetQuote)
			r.Put("/{symbol}/price", s.handleSetPrice)
		})

		r.Post("/market/close", s.handleCloseSession)
	})

	return r
}

// rateLimitMiddleware rejects requests beyond the global rate limit.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.log.Warn("rate limit exceeded", "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON renders a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// mapError translates domain errors into HTTP status codes. Validation
// failures map to 400, insufficient-resource failures to 422, lookups to
// 404/409; anything unknown is a 500.
func (s *Server) mapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidCommission),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidOwnerID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrNoPosition):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrPortfolioNotFound),
		errors.Is(err, domain.ErrQuoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrPortfolioExists),
		errors.Is(err, domain.ErrQuoteExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
