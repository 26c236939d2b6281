package http

import (
	"time"

	"github.com/simaogato/stocksim-backend/internal/domain"
	"github.com/simaogato/stocksim-backend/internal/usecase/reporting"
)

// Request payloads. All money amounts travel as decimal strings so no
// precision is lost in JSON numbers.

type createPortfolioRequest struct {
	OwnerID     string `json:"owner_id"`
	InitialCash string `json:"initial_cash"`
}

type orderRequest struct {
	Symbol     string `json:"symbol"`
	Quantity   int64  `json:"quantity"`
	Commission string `json:"commission"`
}

type cashRequest struct {
	Amount string `json:"amount"`
}

type dividendRequest struct {
	Symbol string `json:"symbol"`
	Amount string `json:"amount"`
	Notes  string `json:"notes"`
}

type setPriceRequest struct {
	Price string `json:"price"`
}

// Response payloads.

type transactionResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Symbol        string    `json:"symbol"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	PricePerShare string    `json:"price_per_share"`
	Commission    string    `json:"commission"`
	TotalAmount   string    `json:"total_amount"`
	CashFlow      string    `json:"cash_flow"`
	Timestamp     time.Time `json:"timestamp"`
	Notes         string    `json:"notes,omitempty"`
}

type holdingResponse struct {
	Symbol       string `json:"symbol"`
	Quantity     int64  `json:"quantity"`
	AverageCost  string `json:"average_cost"`
	TotalCost    string `json:"total_cost"`
	CurrentPrice string `json:"current_price"`
	MarketValue  string `json:"market_value"`
	UnrealizedPL string `json:"unrealized_pl"`
}

type portfolioResponse struct {
	OwnerID           string            `json:"owner_id"`
	CashBalance       string            `json:"cash_balance"`
	InitialInvestment string            `json:"initial_investment"`
	Holdings          []holdingResponse `json:"holdings"`
}

type summaryResponse struct {
	OwnerID           string            `json:"owner_id"`
	CashBalance       string            `json:"cash_balance"`
	PositionsValue    string            `json:"positions_value"`
	TotalValue        string            `json:"total_value"`
	InitialInvestment string            `json:"initial_investment"`
	TotalReturn       string            `json:"total_return"`
	ReturnPercentage  string            `json:"return_percentage"`
	UnrealizedPL      string            `json:"unrealized_pl"`
	RealizedPL        string            `json:"realized_pl"`
	DiversityCount    int               `json:"diversity_count"`
	LargestHolding    string            `json:"largest_holding,omitempty"`
	TransactionCount  int               `json:"transaction_count"`
	Holdings          []holdingResponse `json:"holdings"`
}

type quoteResponse struct {
	Symbol           string `json:"symbol"`
	CompanyName      string `json:"company_name"`
	Sector           string `json:"sector"`
	CurrentPrice     string `json:"current_price"`
	OpenPrice        string `json:"open_price"`
	DayHigh          string `json:"day_high"`
	DayLow           string `json:"day_low"`
	PreviousClose    string `json:"previous_close"`
	Volume           int64  `json:"volume"`
	PercentageChange string `json:"percentage_change"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID.String(),
		OwnerID:       tx.OwnerID,
		Symbol:        tx.Symbol,
		Type:          string(tx.Type),
		Quantity:      tx.Quantity,
		PricePerShare: tx.PricePerShare.String(),
		Commission:    tx.Commission.String(),
		TotalAmount:   tx.TotalAmount.String(),
		CashFlow:      tx.CashFlow().String(),
		Timestamp:     tx.Timestamp,
		Notes:         tx.Notes,
	}
}

func toHoldingResponse(h domain.HoldingSnapshot) holdingResponse {
	return holdingResponse{
		Symbol:       h.Symbol,
		Quantity:     h.Quantity,
		AverageCost:  h.AverageCost.String(),
		TotalCost:    h.TotalCost.String(),
		CurrentPrice: h.CurrentPrice.String(),
		MarketValue:  h.MarketValue.String(),
		UnrealizedPL: h.UnrealizedPL.String(),
	}
}

func toSummaryResponse(summary *reporting.Summary) summaryResponse {
	holdings := make([]holdingResponse, 0, len(summary.Holdings))
	for _, h := range summary.Holdings {
		holdings = append(holdings, toHoldingResponse(h))
	}

	return summaryResponse{
		OwnerID:           summary.OwnerID,
		CashBalance:       summary.CashBalance.String(),
		PositionsValue:    summary.PositionsValue.String(),
		TotalValue:        summary.TotalValue.String(),
		InitialInvestment: summary.InitialInvestment.String(),
		TotalReturn:       summary.TotalReturn.String(),
		ReturnPercentage:  summary.ReturnPercentage.String(),
		UnrealizedPL:      summary.UnrealizedPL.String(),
		RealizedPL:        summary.RealizedPL.String(),
		DiversityCount:    summary.DiversityCount,
		LargestHolding:    summary.LargestHolding,
		TransactionCount:  summary.TransactionCount,
		Holdings:          holdings,
	}
}

func toQuoteResponse(snapshot domain.QuoteSnapshot) quoteResponse {
	return quoteResponse{
		Symbol:           snapshot.Symbol,
		CompanyName:      snapshot.CompanyName,
		Sector:           string(snapshot.Sector),
		CurrentPrice:     snapshot.CurrentPrice.String(),
		OpenPrice:        snapshot.OpenPrice.String(),
		DayHigh:          snapshot.DayHigh.String(),
		DayLow:           snapshot.DayLow.String(),
		PreviousClose:    snapshot.PreviousClose.String(),
		Volume:           snapshot.Volume,
		PercentageChange: snapshot.PercentageChange.StringFixed(2),
	}
}
