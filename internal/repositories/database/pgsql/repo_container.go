package pgsql

import (
	portsrepo "github.com/SscSPs/savings_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewSavingsRepository returns the PostgreSQL-backed savings repository.
func NewSavingsRepository(dbPool *pgxpool.Pool) portsrepo.SavingsRepositoryFacade {
	return newPgxSavingsRepository(dbPool)
}
