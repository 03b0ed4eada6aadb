package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotSource tells whether a snapshot came from the provider or the built-in table.
type SnapshotSource string

const (
	SnapshotSourceLive     SnapshotSource = "live"
	SnapshotSourceFallback SnapshotSource = "fallback"
)

// RateSnapshot is an immutable table of rates. Rates[code] is the number of units of code
// per one unit of Base, so Rates[Base] is always 1.
type RateSnapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
	Source    SnapshotSource             `json:"source"`

	// FallbackCause is the provider failure that produced a fallback snapshot.
	FallbackCause error `json:"-"`
}

// NewRateSnapshot copies rates into a new snapshot and pins the base rate to 1.
func NewRateSnapshot(base string, rates map[string]decimal.Decimal, fetchedAt time.Time, source SnapshotSource) *RateSnapshot {
	copied := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		copied[NormalizeCurrencyCode(code)] = rate
	}
	copied[base] = decimal.NewFromInt(1)
	return &RateSnapshot{
		Base:      base,
		Rates:     copied,
		FetchedAt: fetchedAt,
		Source:    source,
	}
}

// Rate returns the rate for code. The base currency always resolves to 1.
func (s *RateSnapshot) Rate(code string) (decimal.Decimal, bool) {
	if code == s.Base {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.Rates[code]
	return rate, ok
}

// IsFallback reports whether the snapshot is the built-in degraded table.
func (s *RateSnapshot) IsFallback() bool {
	return s.Source == SnapshotSourceFallback
}

// Age returns how old the snapshot is at now.
func (s *RateSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// RatesAsFloat returns a copy of the table for JSON consumers that expect plain numbers.
func (s *RateSnapshot) RatesAsFloat() map[string]float64 {
	out := make(map[string]float64, len(s.Rates))
	for code, rate := range s.Rates {
		out[code] = rate.InexactFloat64()
	}
	return out
}
