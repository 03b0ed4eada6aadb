package services

import (
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/metrics"
	"github.com/SscSPs/savings_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The rate cache is shared by conversion and the ledger so that both see one snapshot.
	rateOpts := []RateCacheOption{
		WithRatesTTL(cfg.RatesCacheTTL),
		WithRatesFetchTimeout(cfg.RatesFetchTimeout),
		WithBaseCurrency(cfg.BaseCurrency),
		WithRateMetrics(m),
	}
	if repos.SnapshotStore != nil {
		rateOpts = append(rateOpts, WithSnapshotStore(repos.SnapshotStore))
	}
	rateCache := NewRateCache(repos.RateFetcher, rateOpts...)
	container.ExchangeRate = rateCache

	conversion := NewConversionService(rateCache)
	container.Conversion = conversion

	ledger := NewLedgerService(
		repos.SavingsRepo,
		rateCache,
		conversion,
		WithContributeTimeout(cfg.ContributeTimeout),
		WithLedgerBaseCurrency(cfg.BaseCurrency),
		WithLedgerMetrics(m),
	)
	container.Savings = ledger
	container.Recurring = ledger

	return container
}
