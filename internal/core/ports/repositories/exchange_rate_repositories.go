package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateFetcher reads the current rate table from the external provider.
type ExchangeRateFetcher interface {
	// FetchRates returns units of each currency per one unit of base.
	// Failures are reported as *apperrors.RateFetchError.
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// RateSnapshotReader reads a shared live snapshot.
type RateSnapshotReader interface {
	// LoadSnapshot returns the stored snapshot, or nil with no error when nothing is stored.
	LoadSnapshot(ctx context.Context, base string) (*domain.RateSnapshot, error)
}

// RateSnapshotWriter publishes a live snapshot for other replicas.
type RateSnapshotWriter interface {
	// SaveSnapshot stores snapshot for at most ttl.
	SaveSnapshot(ctx context.Context, snapshot *domain.RateSnapshot, ttl time.Duration) error
}

// RateSnapshotStore combines the shared snapshot operations.
type RateSnapshotStore interface {
	RateSnapshotReader
	RateSnapshotWriter
}
