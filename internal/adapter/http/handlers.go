package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/simaogato/stocksim-backend/internal/domain"
	"github.com/simaogato/stocksim-backend/internal/usecase/trading"
)

// handleCreatePortfolio opens a new portfolio with an initial cash endowment.
func (s *Server) handleCreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req createPortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	initialCash, err := decimal.NewFromString(req.InitialCash)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid initial_cash format")
		return
	}

	portfolio, err := s.TradingService.OpenPortfolio(r.Context(), req.OwnerID, initialCash)
	if err != nil {
		s.mapError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, portfolioResponse{
		OwnerID:           portfolio.OwnerID(),
		CashBalance:       portfolio.CashBalance().String(),
		InitialInvestment: portfolio.InitialInvestment().String(),
		Holdings:          []holdingResponse{},
	})
}

// handleGetPortfolio returns the portfolio's balances and holdings snapshot.
func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	portfolio, err := s.TradingService.PortfolioRepo.GetByOwnerID(r.Context(), ownerID)
	if err != nil {
		s.mapError(w, err)
		return
	}
	s.writePortfolio(w, r, http.StatusOK, portfolio)
}

// writePortfolio renders a portfolio with its holdings valued at the current
// quote board.
func (s *Server) writePortfolio(w http.ResponseWriter, r *http.Request, status int, portfolio *domain.Portfolio) {
	prices, err := s.ReportingService.PriceMap(r.Context())
	if err != nil {
		s.mapError(w, err)
		return
	}

	snapshots := portfolio.Holdings(prices)
	holdings := make([]holdingResponse, 0, len(snapshots))
	for _, h := range snapshots {
		holdings = append(holdings, toHoldingResponse(h))
	}

	writeJSON(w, status, portfolioResponse{
		OwnerID:           portfolio.OwnerID(),
		CashBalance:       portfolio.CashBalance().String(),
		InitialInvestment: portfolio.InitialInvestment().String(),
		Holdings:          holdings,
	})
}

// handleGetSummary returns the full valuation and P&L summary.
func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	summary, err := s.ReportingService.GetSummary(r.Context(), ownerID)
	if err != nil {
		s.mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// handleListTransactions returns the portfolio's ledger in chronological
// order.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	portfolio, err := s.TradingService.PortfolioRepo.GetByOwnerID(r.Context(), ownerID)
	if err != nil {
		s.mapError(w, err)
		return
	}

	ledger := portfolio.Transactions()
	transactions := make([]transactionResponse, 0, len(ledger))
	for _, tx := range ledger {
		transactions = append(transactions, toTransactionResponse(tx))
	}
	writeJSON(w, http.StatusOK, transactions)
}

// handleBuy executes a buy order at the quoted price.
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	s.handleOrder(w, r, s.TradingService.ExecuteBuy)
}

// handleSell executes a sell order at the quoted price.
func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	s.handleOrder(w, r, s.TradingService.ExecuteSell)
}

// handleOrder parses an order request and runs it through the given trading
// operation.
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request, execute func(context.Context, trading.OrderInput) (domain.Transaction, error)) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	commission := decimal.Zero
	if req.Commission != "" {
		var err error
		commission, err = decimal.NewFromString(req.Commission)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid commission format")
			return
		}
	}

	tx, err := execute(r.Context(), trading.OrderInput{
		OwnerID:    chi.URLParam(r, "ownerID"),
		Symbol:     req.Symbol,
		Quantity:   req.Quantity,
		Commission: commission,
	})
	if err != nil {
		s.mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// handleDeposit adds cash to the portfolio.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleCashMovement(w, r, s.TradingService.Deposit)
}

// handleWithdraw removes cash from the portfolio.
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handleCashMovement(w, r, s.TradingService.Withdraw)
}

// handleCashMovement parses a cash request and runs it through the given
// trading operation.
func (s *Server) handleCashMovement(w http.ResponseWriter, r *http.Request, execute func(context.Context, trading.CashInput) error) {
	var req cashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount format")
		return
	}

	ownerID := chi.URLParam(r, "ownerID")
	if err := execute(r.Context(), trading.CashInput{OwnerID: ownerID, Amount: amount}); err != nil {
		s.mapError(w, err)
		return
	}

	portfolio, err := s.TradingService.PortfolioRepo.GetByOwnerID(r.Context(), ownerID)
	if err != nil {
		s.mapError(w, err)
		return
	}
	s.writePortfolio(w, r, http.StatusOK, portfolio)
}

// handleRecordDividend credits a dividend payment to the portfolio ledger.
func (s *Server) handleRecordDividend(w http.ResponseWriter, r *http.Request) {
	var req dividendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount format")
		return
	}

	tx, err := s.TradingService.RecordDividend(r.Context(), trading.DividendInput{
		OwnerID: chi.URLParam(r, "ownerID"),
		Symbol:  req.Symbol,
		Amount:  amount,
		Notes:   req.Notes,
	})
	if err != nil {
		s.mapError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(tx))
}

// handleListQuotes returns the whole quote board. The rendered response is
// cached for a short TTL: the board only changes on simulation ticks, and
// this endpoint is the hottest read path.
func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	if cached, ok := s.quoteCache.Get(quoteBoardCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	quotes, err := s.QuoteRepo.List(r.Context())
	if err != nil {
		s.mapError(w, err)
		return
	}

	board := make([]quoteResponse, 0, len(quotes))
	for _, quote := range quotes {
		board = append(board, toQuoteResponse(quote.Snapshot()))
	}

	s.quoteCache.SetDefault(quoteBoardCacheKey, board)
	writeJSON(w, http.StatusOK, board)
}

// handleGetQuote returns a single quote snapshot.
func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.QuoteRepo.GetBySymbol(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		s.mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toQuoteResponse(quote.Snapshot()))
}

// handleSetPrice overrides a quote's price directly.
func (s *Server) handleSetPrice(w http.ResponseWriter, r *http.Request) {
	var req setPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price format")
		return
	}

	quote, err := s.QuoteRepo.GetBySymbol(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		s.mapError(w, err)
		return
	}
	if err := quote.SetPrice(price); err != nil {
		s.mapError(w, err)
		return
	}

	s.quoteCache.Delete(quoteBoardCacheKey)
	writeJSON(w, http.StatusOK, toQuoteResponse(quote.Snapshot()))
}

// handleCloseSession marks a trading-session boundary, re-basing the daily
// statistics of every quote.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Simulator.CloseSession(r.Context()); err != nil {
		s.mapError(w, err)
		return
	}
	s.quoteCache.Delete(quoteBoardCacheKey)
	w.WriteHeader(http.StatusNoContent)
}
