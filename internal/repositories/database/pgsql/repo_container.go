package pgsql

import (
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider creates all pgsql-backed repositories over a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:     newPgxLedgerRepository(pool),
		ProfileRepo:    newPgxRecurrenceRepository(pool),
		EventRepo:      newPgxServiceEventRepository(pool),
		CategoryRepo:   newPgxCategoryRepository(pool),
		AssignmentRepo: newPgxAssignmentRepository(pool),
	}
}
