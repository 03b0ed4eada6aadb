package utils

import (
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.Serbian)

var currencySymbols = map[string]string{
	"RSD": "RSD",
	"EUR": "€",
	"USD": "$",
	"CHF": "CHF",
	"GBP": "£",
}

// FormatCurrency renders an amount for display with Serbian grouping and the currency code.
// Example: 1176.47 RSD returns "1.176,47 RSD"
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	rounded := amount.Round(domain.MinorUnitPrecision).InexactFloat64()
	return displayPrinter.Sprintf("%.2f %s", rounded, currencyCode)
}

// CurrencySymbol returns the display symbol for a currency, or the code itself when unknown.
func CurrencySymbol(currencyCode string) string {
	if symbol, ok := currencySymbols[currencyCode]; ok {
		return symbol
	}
	return currencyCode
}
