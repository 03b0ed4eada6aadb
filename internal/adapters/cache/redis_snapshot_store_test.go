package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCodec_KeepsDecimalPrecision(t *testing.T) {
	fetchedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := domain.NewRateSnapshot("RSD", map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.008547008547"),
	}, fetchedAt, domain.SnapshotSourceLive)

	raw, err := encodeSnapshot(snapshot)
	require.NoError(t, err)
	decoded, err := decodeSnapshot(raw)
	require.NoError(t, err)

	assert.Equal(t, "RSD", decoded.Base)
	assert.True(t, fetchedAt.Equal(decoded.FetchedAt))
	assert.Equal(t, "0.008547008547", decoded.Rates["EUR"].String())
	assert.Equal(t, domain.SnapshotSourceLive, decoded.Source)
}

func TestDecodeSnapshot_RejectsIncompleteDocuments(t *testing.T) {
	_, err := decodeSnapshot([]byte(`{"base":"RSD","rates":{}}`))
	assert.Error(t, err)

	_, err = decodeSnapshot([]byte(`not json`))
	assert.Error(t, err)
}

func TestSnapshotKey_IsNormalized(t *testing.T) {
	assert.Equal(t, "rates:snapshot:EUR", snapshotKey(" eur"))
}

func TestSaveSnapshot_SkipsFallback(t *testing.T) {
	// The client points nowhere; a fallback snapshot must not reach it.
	store := NewRedisSnapshotStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}))
	defer store.Close()

	snapshot := domain.NewRateSnapshot("RSD", nil, time.Now(), domain.SnapshotSourceFallback)
	assert.NoError(t, store.SaveSnapshot(context.Background(), snapshot, time.Minute))
}
