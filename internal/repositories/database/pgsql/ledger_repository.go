package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_billing_app/internal/models"
	"github.com/fleetops/fleet_billing_app/internal/utils/mapping"
	"github.com/fleetops/fleet_billing_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `entry_id, account_id, description, amount, direction, status, due_date, payment_date, category_id, origin, service_event_id, profile_id, assigned_user, vehicle_id, created_at, created_by, last_updated_at, last_updated_by`

const insertLedgerEntrySQL = `
	INSERT INTO ledger_entries (` + ledgerEntryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

// Regeneration key: one schedule row per (profile_id, due_date). Re-running
// generation updates the existing row instead of stacking duplicates. Only
// pending rows are rewritten; a settled row at a conflicting due date keeps
// its recorded amount.
const upsertScheduleEntrySQL = insertLedgerEntrySQL + `
	ON CONFLICT (profile_id, due_date) WHERE profile_id IS NOT NULL
	DO UPDATE SET
		description = EXCLUDED.description,
		amount = EXCLUDED.amount,
		direction = EXCLUDED.direction,
		category_id = EXCLUDED.category_id,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by
	WHERE ledger_entries.status = 'PENDING'
`

func ledgerEntryArgs(modelEntry models.LedgerEntry) []interface{} {
	return []interface{}{
		modelEntry.EntryID,
		modelEntry.AccountID,
		modelEntry.Description,
		modelEntry.Amount,
		modelEntry.Direction,
		modelEntry.Status,
		modelEntry.DueDate,
		modelEntry.PaymentDate,
		nullIfEmpty(modelEntry.CategoryID),
		modelEntry.Origin,
		modelEntry.ServiceEventID,
		modelEntry.ProfileID,
		nullIfEmpty(modelEntry.AssignedUserID),
		nullIfEmpty(modelEntry.VehicleID),
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	}
}

// SaveEntry inserts a new ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)

	_, err := r.Pool.Exec(ctx, insertLedgerEntrySQL+";", ledgerEntryArgs(modelEntry)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: ledger entry conflicts with an existing schedule row", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save ledger entry %s: %w", modelEntry.EntryID, err)
	}
	return nil
}

// UpdateEntry replaces the mutable fields of an existing entry.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)

	query := `
		UPDATE ledger_entries
		SET description = $2, amount = $3, direction = $4, status = $5,
			due_date = $6, payment_date = $7, category_id = $8,
			assigned_user = $9, vehicle_id = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Description,
		modelEntry.Amount,
		modelEntry.Direction,
		modelEntry.Status,
		modelEntry.DueDate,
		modelEntry.PaymentDate,
		nullIfEmpty(modelEntry.CategoryID),
		nullIfEmpty(modelEntry.AssignedUserID),
		nullIfEmpty(modelEntry.VehicleID),
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger entry %s: %w", modelEntry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryStatus transitions an entry's status in place.
func (r *PgxLedgerRepository) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, paymentDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET status = $2, payment_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, entryID, string(status), paymentDate, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of ledger entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpsertScheduleEntries writes recurrence-derived entries in bounded batches,
// one transaction per chunk so a large schedule never holds a single
// long-running transaction.
func (r *PgxLedgerRepository) UpsertScheduleEntries(ctx context.Context, entries []domain.LedgerEntry, batchSize int) error {
	if len(entries) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(entries)
	}

	for start := 0; start < len(entries); start += batchSize {
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}

		tx, err := r.Begin(ctx)
		if err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for _, entry := range entries[start:end] {
			modelEntry := mapping.ToModelLedgerEntry(entry)
			batch.Queue(upsertScheduleEntrySQL+";", ledgerEntryArgs(modelEntry)...)
		}

		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				batchErr = fmt.Errorf("failed to upsert schedule entry (batch offset %d): %w", start+i, err)
				break
			}
		}
		if closeErr := br.Close(); closeErr != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close schedule upsert batch: %w", closeErr)
		}
		if batchErr != nil {
			_ = r.Rollback(ctx, tx)
			return batchErr
		}
		if err := r.Commit(ctx, tx); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFuturePendingByProfile removes the pending schedule rows of a profile
// past the given instant, sparing the due dates the fresh schedule still
// contains. Manual edits (any non-pending status) are never touched.
func (r *PgxLedgerRepository) DeleteFuturePendingByProfile(ctx context.Context, profileID string, after time.Time, keepDueDates []time.Time) (int64, error) {
	keep := make([]string, 0, len(keepDueDates))
	for _, d := range keepDueDates {
		keep = append(keep, d.Format("2006-01-02"))
	}

	query := `
		DELETE FROM ledger_entries
		WHERE profile_id = $1
		  AND status = 'PENDING'
		  AND due_date > $2
		  AND due_date <> ALL($3::date[]);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, profileID, after, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to delete future pending entries for profile %s: %w", profileID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// DeleteEntriesByServiceEventID removes every entry linked to a service event.
func (r *PgxLedgerRepository) DeleteEntriesByServiceEventID(ctx context.Context, serviceEventID string) (int64, error) {
	query := `DELETE FROM ledger_entries WHERE service_event_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, serviceEventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete entries for service event %s: %w", serviceEventID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// FindEntryByID retrieves a specific entry by its unique identifier.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	modelEntry, err := scanLedgerEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(modelEntry)
	return &domainEntry, nil
}

// FindEntriesByServiceEventID retrieves every entry carrying the given link.
func (r *PgxLedgerRepository) FindEntriesByServiceEventID(ctx context.Context, serviceEventID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE service_event_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, serviceEventID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries for service event %s: %w", serviceEventID, err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

// FindFuturePendingByProfile retrieves the pending schedule rows of a profile
// with a due date strictly after the given instant.
func (r *PgxLedgerRepository) FindFuturePendingByProfile(ctx context.Context, profileID string, after time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE profile_id = $1 AND status = 'PENDING' AND due_date > $2
		ORDER BY due_date;
	`
	rows, err := r.Pool.Query(ctx, query, profileID, after)
	if err != nil {
		return nil, fmt.Errorf("failed to find future pending entries for profile %s: %w", profileID, err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

// ListEntriesByAccount retrieves a paginated list of entries ordered by
// (due_date, created_at) DESC with keyset pagination.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, nextToken *string, status *domain.EntryStatus, profileID *string) ([]domain.LedgerEntry, *string, error) {
	baseQuery := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE account_id = $1`
	args := []interface{}{accountID}
	paramIndex := 2

	if status != nil {
		baseQuery += ` AND status = $` + strconv.Itoa(paramIndex)
		args = append(args, string(*status))
		paramIndex++
	}
	if profileID != nil {
		baseQuery += ` AND profile_id = $` + strconv.Itoa(paramIndex)
		args = append(args, *profileID)
		paramIndex++
	}
	if nextToken != nil && *nextToken != "" {
		dueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		baseQuery += fmt.Sprintf(` AND (due_date, created_at) < ($%d, $%d)`, paramIndex, paramIndex+1)
		args = append(args, dueDate, createdAt)
		paramIndex += 2
	}

	// Fetch one extra row to know whether another page exists.
	baseQuery += ` ORDER BY due_date DESC, created_at DESC LIMIT $` + strconv.Itoa(paramIndex) + `;`
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries, err := collectLedgerEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.DueDate, last.CreatedAt)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var modelEntry models.LedgerEntry
	var categoryID, assignedUser, vehicleID sql.NullString
	err := row.Scan(
		&modelEntry.EntryID,
		&modelEntry.AccountID,
		&modelEntry.Description,
		&modelEntry.Amount,
		&modelEntry.Direction,
		&modelEntry.Status,
		&modelEntry.DueDate,
		&modelEntry.PaymentDate,
		&categoryID,
		&modelEntry.Origin,
		&modelEntry.ServiceEventID,
		&modelEntry.ProfileID,
		&assignedUser,
		&vehicleID,
		&modelEntry.CreatedAt,
		&modelEntry.CreatedBy,
		&modelEntry.LastUpdatedAt,
		&modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return modelEntry, err
	}
	modelEntry.CategoryID = categoryID.String
	modelEntry.AssignedUserID = assignedUser.String
	modelEntry.VehicleID = vehicleID.String
	return modelEntry, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		modelEntry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(modelEntry))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}

// nullIfEmpty maps an empty string to SQL NULL for optional text columns.
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
