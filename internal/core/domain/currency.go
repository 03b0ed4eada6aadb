package domain

import "strings"

// BaseCurrency is the reference currency every rate snapshot is expressed against.
const BaseCurrency = "RSD"

// MinorUnitPrecision is the number of decimal places stored for every currency in use.
const MinorUnitPrecision int32 = 2

// NormalizeCurrencyCode upper-cases and trims a currency code.
func NormalizeCurrencyCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCurrencyCode reports whether code looks like an ISO 4217 alpha code.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
