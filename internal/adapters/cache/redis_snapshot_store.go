package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "rates:snapshot:"

// storedSnapshot is the JSON document kept in redis. Rates stay as decimal strings.
type storedSnapshot struct {
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetchedAt"`
}

// RedisSnapshotStore shares live rate snapshots between replicas.
type RedisSnapshotStore struct {
	client redis.UniversalClient
}

// NewRedisSnapshotStore wraps an existing client.
func NewRedisSnapshotStore(client redis.UniversalClient) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

// NewRedisSnapshotStoreFromURL parses a redis:// URL and pings the server.
func NewRedisSnapshotStoreFromURL(ctx context.Context, redisURL string) (*RedisSnapshotStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisSnapshotStore{client: client}, nil
}

var _ portsrepo.RateSnapshotStore = (*RedisSnapshotStore)(nil)

func snapshotKey(base string) string {
	return keyPrefix + domain.NormalizeCurrencyCode(base)
}

// LoadSnapshot returns nil, nil when no snapshot is stored for base.
func (s *RedisSnapshotStore) LoadSnapshot(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	raw, err := s.client.Get(ctx, snapshotKey(base)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rate snapshot: %w", err)
	}
	return decodeSnapshot(raw)
}

// SaveSnapshot stores a live snapshot for ttl. Fallback snapshots are never shared.
func (s *RedisSnapshotStore) SaveSnapshot(ctx context.Context, snapshot *domain.RateSnapshot, ttl time.Duration) error {
	if snapshot == nil || snapshot.IsFallback() {
		return nil
	}
	raw, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, snapshotKey(snapshot.Base), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write rate snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

func encodeSnapshot(snapshot *domain.RateSnapshot) ([]byte, error) {
	raw, err := json.Marshal(storedSnapshot{
		Base:      snapshot.Base,
		Rates:     snapshot.Rates,
		FetchedAt: snapshot.FetchedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rate snapshot: %w", err)
	}
	return raw, nil
}

func decodeSnapshot(raw []byte) (*domain.RateSnapshot, error) {
	var stored storedSnapshot
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}
	if stored.Base == "" || len(stored.Rates) == 0 {
		return nil, fmt.Errorf("failed to decode rate snapshot: missing base or rates")
	}
	return domain.NewRateSnapshot(stored.Base, stored.Rates, stored.FetchedAt, domain.SnapshotSourceLive), nil
}
