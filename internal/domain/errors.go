package domain

import "errors"

// Domain errors returned by portfolio and quote operations. Failed operations
// never leave partially applied state behind.
var (
	ErrInvalidSymbol      = errors.New("symbol cannot be empty")
	ErrInvalidOwnerID     = errors.New("owner id cannot be empty")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidCommission  = errors.New("commission must be non-negative")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoPosition         = errors.New("no position for symbol")
	ErrPortfolioNotFound  = errors.New("portfolio not found")
	ErrPortfolioExists    = errors.New("portfolio already exists")
	ErrQuoteNotFound      = errors.New("quote not found")
	ErrQuoteExists        = errors.New("quote already exists")
)
