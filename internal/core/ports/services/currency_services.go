package services

import (
	"context"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc serves the cached rate table.
type ExchangeRateReaderSvc interface {
	// GetRates returns the live snapshot when available, otherwise the fallback table.
	// Provider failures never reach the caller; they are recorded in the snapshot's FallbackCause.
	GetRates(ctx context.Context) *domain.RateSnapshot
}

// ConversionSvc converts amounts between currencies through the base currency.
type ConversionSvc interface {
	// Convert is pure: it only uses the given snapshot.
	Convert(amount decimal.Decimal, fromCode, toCode string, snapshot *domain.RateSnapshot) (decimal.Decimal, error)

	// ConvertAmount converts using the latest available snapshot.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)
}
