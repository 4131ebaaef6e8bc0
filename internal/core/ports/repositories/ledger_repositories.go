package repositories

import (
	"context"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// LedgerEntryReader defines read operations for ledger entry data
type LedgerEntryReader interface {
	// FindEntryByID retrieves a specific ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByServiceEventID retrieves every entry carrying the given
	// service-event link (more than one only if duplication was requested).
	FindEntriesByServiceEventID(ctx context.Context, serviceEventID string) ([]domain.LedgerEntry, error)

	// FindFuturePendingByProfile retrieves the pending entries linked to a
	// profile with a due date strictly after the given instant.
	FindFuturePendingByProfile(ctx context.Context, profileID string, after time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated list of entries for an
	// account using token-based pagination, optionally filtered by status
	// and/or profile link. It returns the entries, a token for the next
	// page, and an error.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string, status *domain.EntryStatus, profileID *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerEntryWriter defines write operations for ledger entry data
type LedgerEntryWriter interface {
	// SaveEntry inserts a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry replaces the mutable fields of an existing entry.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntryStatus transitions an entry's status, recording the payment
	// date for PAID transitions.
	UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, paymentDate *time.Time, updatedBy string, updatedAt time.Time) error

	// UpsertScheduleEntries writes recurrence-derived entries keyed by
	// (profile_id, due_date), issued in bounded batches of at most
	// batchSize statements. Existing rows for the same key are updated in
	// place, so regeneration is idempotent.
	UpsertScheduleEntries(ctx context.Context, entries []domain.LedgerEntry, batchSize int) error

	// DeleteFuturePendingByProfile removes pending entries linked to a
	// profile with a due date strictly after the given instant, except
	// those whose due date appears in keepDueDates (the freshly generated
	// schedule). Returns the number of rows removed.
	DeleteFuturePendingByProfile(ctx context.Context, profileID string, after time.Time, keepDueDates []time.Time) (int64, error)

	// DeleteEntriesByServiceEventID removes every entry carrying the given
	// service-event link. Returns the number of rows removed.
	DeleteEntriesByServiceEventID(ctx context.Context, serviceEventID string) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-entry repository interfaces
type LedgerRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
