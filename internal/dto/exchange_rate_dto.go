package dto

import (
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRatesResponse is the body of GET /currency/rates.
type ExchangeRatesResponse struct {
	Rates  map[string]float64 `json:"rates"`
	AsOf   time.Time          `json:"asOf"`
	Base   string             `json:"base"`
	Source string             `json:"source"` // "live" or "fallback"
}

// ToExchangeRatesResponse converts a domain.RateSnapshot to ExchangeRatesResponse DTO
func ToExchangeRatesResponse(snapshot *domain.RateSnapshot) ExchangeRatesResponse {
	return ExchangeRatesResponse{
		Rates:  snapshot.RatesAsFloat(),
		AsOf:   snapshot.FetchedAt,
		Base:   snapshot.Base,
		Source: string(snapshot.Source),
	}
}

// ConvertAmountParams are the query parameters of GET /currency/convert.
type ConvertAmountParams struct {
	Amount string `form:"amount" binding:"required"` // parsed as a decimal by the handler
	From   string `form:"from" binding:"required,currencycode"`
	To     string `form:"to" binding:"required,currencycode"`
}

// ConvertAmountResponse is the body of GET /currency/convert.
type ConvertAmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
}
