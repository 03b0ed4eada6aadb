package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/SscSPs/savings_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRatesTTL          = time.Hour
	DefaultRatesFetchTimeout = 5 * time.Second
)

// fallbackRates are units per 1 RSD, used only while the provider is unavailable.
var fallbackRates = map[string]decimal.Decimal{
	"RSD": decimal.NewFromInt(1),
	"EUR": decimal.RequireFromString("0.0085"),
	"USD": decimal.RequireFromString("0.0093"),
	"CHF": decimal.RequireFromString("0.0080"),
	"GBP": decimal.RequireFromString("0.0073"),
}

// RateCache serves the latest exchange-rate table and bounds calls to the provider.
// It is the only writer of its snapshot.
type RateCache struct {
	BaseService
	fetcher      portsrepo.ExchangeRateFetcher
	store        portsrepo.RateSnapshotStore
	metrics      *metrics.Metrics
	base         string
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	mu    sync.RWMutex
	live  *domain.RateSnapshot // last successful provider fetch
	group singleflight.Group
}

// RateCacheOption configures a RateCache.
type RateCacheOption func(*RateCache)

// WithRatesTTL sets how long a live snapshot is served without refetching.
func WithRatesTTL(ttl time.Duration) RateCacheOption {
	return func(c *RateCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithRatesFetchTimeout bounds one provider fetch, including the shared-store lookup.
func WithRatesFetchTimeout(timeout time.Duration) RateCacheOption {
	return func(c *RateCache) {
		if timeout > 0 {
			c.fetchTimeout = timeout
		}
	}
}

// WithBaseCurrency sets the reference currency of every snapshot.
func WithBaseCurrency(code string) RateCacheOption {
	return func(c *RateCache) {
		if code = domain.NormalizeCurrencyCode(code); code != "" {
			c.base = code
		}
	}
}

// WithSnapshotStore shares live snapshots with other replicas.
func WithSnapshotStore(store portsrepo.RateSnapshotStore) RateCacheOption {
	return func(c *RateCache) {
		c.store = store
	}
}

// WithRateMetrics records cache hits, fetches and fallbacks.
func WithRateMetrics(m *metrics.Metrics) RateCacheOption {
	return func(c *RateCache) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) RateCacheOption {
	return func(c *RateCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewRateCache creates a RateCache backed by fetcher.
func NewRateCache(fetcher portsrepo.ExchangeRateFetcher, opts ...RateCacheOption) *RateCache {
	c := &RateCache{
		fetcher:      fetcher,
		metrics:      metrics.NewNoopMetrics(),
		base:         domain.BaseCurrency,
		ttl:          DefaultRatesTTL,
		fetchTimeout: DefaultRatesFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ portssvc.ExchangeRateReaderSvc = (*RateCache)(nil)

// GetRates returns the cached live snapshot while it is younger than the TTL. Otherwise it
// joins (or starts) the single in-flight refresh. When the refresh fails, or ctx ends first,
// the fallback table is returned; it is never cached, so the next call tries the provider again.
func (c *RateCache) GetRates(ctx context.Context) *domain.RateSnapshot {
	if snapshot := c.fresh(); snapshot != nil {
		c.metrics.RateCacheHitsTotal.Inc()
		return snapshot
	}

	ch := c.group.DoChan(c.base, func() (interface{}, error) {
		return c.refresh(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return c.fallback(ctx, res.Err)
		}
		return res.Val.(*domain.RateSnapshot)
	case <-ctx.Done():
		return c.fallback(ctx, apperrors.NewRateFetchError(0, fmt.Errorf("gave up waiting for rates: %w", ctx.Err())))
	}
}

func (c *RateCache) fresh() *domain.RateSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.live != nil && c.isFresh(c.live) {
		return c.live
	}
	return nil
}

func (c *RateCache) isFresh(snapshot *domain.RateSnapshot) bool {
	age := snapshot.Age(c.now())
	return age >= 0 && age < c.ttl
}

func (c *RateCache) install(snapshot *domain.RateSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = snapshot
}

// refresh runs once per flight. It is detached from the first caller's cancellation so that
// one impatient caller cannot fail the fetch for everyone else waiting on it.
func (c *RateCache) refresh(callerCtx context.Context) (*domain.RateSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(callerCtx), c.fetchTimeout)
	defer cancel()

	// A flight that finished just before this one started may already have refreshed.
	if snapshot := c.fresh(); snapshot != nil {
		return snapshot, nil
	}

	if snapshot := c.loadShared(ctx); snapshot != nil {
		c.install(snapshot)
		return snapshot, nil
	}

	rates, err := c.fetcher.FetchRates(ctx, c.base)
	if err == nil {
		err = validateRates(c.base, rates)
	}
	if err != nil {
		c.metrics.RateFetchesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		var fetchErr *apperrors.RateFetchError
		if !errors.As(err, &fetchErr) {
			err = apperrors.NewRateFetchError(0, err)
		}
		return nil, err
	}
	c.metrics.RateFetchesTotal.WithLabelValues(metrics.ResultSuccess).Inc()

	snapshot := domain.NewRateSnapshot(c.base, rates, c.now(), domain.SnapshotSourceLive)
	c.install(snapshot)
	c.LogInfo(ctx, "Exchange rates refreshed",
		slog.String("base", c.base),
		slog.Int("currencies", len(snapshot.Rates)),
	)

	if c.store != nil {
		if err := c.store.SaveSnapshot(ctx, snapshot, c.ttl); err != nil {
			c.LogWarn(ctx, err, "Failed to publish exchange rates to shared store")
		}
	}
	return snapshot, nil
}

func (c *RateCache) loadShared(ctx context.Context) *domain.RateSnapshot {
	if c.store == nil {
		return nil
	}
	snapshot, err := c.store.LoadSnapshot(ctx, c.base)
	if err != nil {
		c.LogWarn(ctx, err, "Failed to read exchange rates from shared store")
		return nil
	}
	if snapshot == nil || snapshot.Base != c.base || snapshot.IsFallback() || !c.isFresh(snapshot) {
		return nil
	}
	if err := validateRates(c.base, snapshot.Rates); err != nil {
		c.LogWarn(ctx, err, "Ignoring invalid exchange rates from shared store")
		return nil
	}
	c.LogDebug(ctx, "Exchange rates loaded from shared store", slog.Time("fetched_at", snapshot.FetchedAt))
	return snapshot
}

func (c *RateCache) fallback(ctx context.Context, cause error) *domain.RateSnapshot {
	c.metrics.RateFallbacksTotal.Inc()
	c.LogWarn(ctx, cause, "Exchange rate provider unavailable, serving fallback rates", slog.String("base", c.base))

	snapshot := domain.NewRateSnapshot(c.base, rebase(fallbackRates, c.base), c.now(), domain.SnapshotSourceFallback)
	snapshot.FallbackCause = cause
	return snapshot
}

// validateRates rejects payloads that would corrupt conversions.
func validateRates(base string, rates map[string]decimal.Decimal) error {
	if len(rates) == 0 {
		return apperrors.NewRateFetchError(0, errors.New("malformed payload: no rates"))
	}
	for code, rate := range rates {
		if !rate.IsPositive() {
			return apperrors.NewRateFetchError(0, fmt.Errorf("malformed payload: non-positive rate for %s", code))
		}
	}
	if rate, ok := rates[base]; ok && !rate.Equal(decimal.NewFromInt(1)) {
		return apperrors.NewRateFetchError(0, fmt.Errorf("malformed payload: base %s has rate %s", base, rate))
	}
	return nil
}

// rebase re-expresses an RSD table against base. Currencies are dropped when base is not in the table.
func rebase(rates map[string]decimal.Decimal, base string) map[string]decimal.Decimal {
	baseRate, ok := rates[base]
	if !ok {
		return map[string]decimal.Decimal{}
	}
	out := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		out[code] = rate.Div(baseRate)
	}
	return out
}
