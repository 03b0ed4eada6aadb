package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ConversionService converts amounts through the snapshot's base currency. It holds no state
// of its own; rates come from the injected reader.
type ConversionService struct {
	rates portssvc.ExchangeRateReaderSvc
}

// NewConversionService creates a ConversionService reading rates from rates.
func NewConversionService(rates portssvc.ExchangeRateReaderSvc) *ConversionService {
	return &ConversionService{rates: rates}
}

var _ portssvc.ConversionSvc = (*ConversionService)(nil)

// Convert returns amount expressed in toCode. Identical codes return amount untouched.
// Otherwise amount/rate[from]*rate[to] is computed at full precision and only the result
// is rounded to the minor unit. A code missing from the snapshot is an error, never a rate of 1.
func (s *ConversionService) Convert(amount decimal.Decimal, fromCode, toCode string, snapshot *domain.RateSnapshot) (decimal.Decimal, error) {
	fromCode = domain.NormalizeCurrencyCode(fromCode)
	toCode = domain.NormalizeCurrencyCode(toCode)
	if fromCode == toCode {
		return amount, nil
	}
	if snapshot == nil {
		return decimal.Zero, fmt.Errorf("%w: no rate snapshot available", apperrors.ErrConversion)
	}

	fromRate, err := lookupRate(snapshot, fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := lookupRate(snapshot, toCode)
	if err != nil {
		return decimal.Zero, err
	}

	amountInBase := amount
	if fromCode != snapshot.Base {
		amountInBase = amount.Div(fromRate)
	}
	result := amountInBase
	if toCode != snapshot.Base {
		result = amountInBase.Mul(toRate)
	}
	return result.Round(domain.MinorUnitPrecision), nil
}

// ConvertAmount converts with the latest snapshot the rate cache can provide.
func (s *ConversionService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = domain.NormalizeCurrencyCode(fromCode)
	toCode = domain.NormalizeCurrencyCode(toCode)
	if fromCode == toCode {
		return amount, nil
	}
	return s.Convert(amount, fromCode, toCode, s.rates.GetRates(ctx))
}

func lookupRate(snapshot *domain.RateSnapshot, code string) (decimal.Decimal, error) {
	rate, ok := snapshot.Rate(code)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s is not in the %s rate table", apperrors.ErrUnknownCurrency, code, snapshot.Source)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s for %s", apperrors.ErrConversion, rate, code)
	}
	return rate, nil
}
