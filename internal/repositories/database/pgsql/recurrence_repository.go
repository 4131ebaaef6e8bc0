package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_billing_app/internal/models"
	"github.com/fleetops/fleet_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRecurrenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxRecurrenceRepository creates a new repository for recurrence profiles.
func newPgxRecurrenceRepository(pool *pgxpool.Pool) portsrepo.RecurrenceRepositoryFacade {
	return &PgxRecurrenceRepository{pool: pool}
}

var _ portsrepo.RecurrenceRepositoryFacade = (*PgxRecurrenceRepository)(nil)

const recurrenceProfileColumns = `profile_id, account_id, description, amount, direction, frequency, weekdays, category_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

// SaveProfile inserts a profile or replaces it in full by id. Editing a
// profile is a full replacement so the generator always works from the
// latest definition.
func (r *PgxRecurrenceRepository) SaveProfile(ctx context.Context, profile domain.RecurrenceProfile) error {
	modelProfile := mapping.ToModelRecurrenceProfile(profile)

	query := `
		INSERT INTO recurrence_profiles (` + recurrenceProfileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (profile_id)
		DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			direction = EXCLUDED.direction,
			frequency = EXCLUDED.frequency,
			weekdays = EXCLUDED.weekdays,
			category_id = EXCLUDED.category_id,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		modelProfile.ProfileID,
		modelProfile.AccountID,
		modelProfile.Description,
		modelProfile.Amount,
		modelProfile.Direction,
		modelProfile.Frequency,
		modelProfile.Weekdays,
		nullIfEmpty(modelProfile.CategoryID),
		modelProfile.StartDate,
		modelProfile.EndDate,
		modelProfile.CreatedAt,
		modelProfile.CreatedBy,
		modelProfile.LastUpdatedAt,
		modelProfile.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save recurrence profile %s: %w", modelProfile.ProfileID, err)
	}
	return nil
}

// DeleteProfile removes a profile.
func (r *PgxRecurrenceRepository) DeleteProfile(ctx context.Context, profileID string) error {
	query := `DELETE FROM recurrence_profiles WHERE profile_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete recurrence profile %s: %w", profileID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProfileByID retrieves a specific profile by its unique identifier.
func (r *PgxRecurrenceRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.RecurrenceProfile, error) {
	query := `SELECT ` + recurrenceProfileColumns + ` FROM recurrence_profiles WHERE profile_id = $1;`

	modelProfile, err := scanRecurrenceProfile(r.pool.QueryRow(ctx, query, profileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find recurrence profile by ID %s: %w", profileID, err)
	}

	domainProfile := mapping.ToDomainRecurrenceProfile(modelProfile)
	return &domainProfile, nil
}

// ListProfilesByAccount retrieves all profiles for an account.
func (r *PgxRecurrenceRepository) ListProfilesByAccount(ctx context.Context, accountID string) ([]domain.RecurrenceProfile, error) {
	query := `
		SELECT ` + recurrenceProfileColumns + `
		FROM recurrence_profiles
		WHERE account_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurrence profiles for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var profiles []domain.RecurrenceProfile
	for rows.Next() {
		modelProfile, err := scanRecurrenceProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurrence profile row: %w", err)
		}
		profiles = append(profiles, mapping.ToDomainRecurrenceProfile(modelProfile))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurrence profile rows: %w", err)
	}
	return profiles, nil
}

func scanRecurrenceProfile(row pgx.Row) (models.RecurrenceProfile, error) {
	var modelProfile models.RecurrenceProfile
	var categoryID sql.NullString
	err := row.Scan(
		&modelProfile.ProfileID,
		&modelProfile.AccountID,
		&modelProfile.Description,
		&modelProfile.Amount,
		&modelProfile.Direction,
		&modelProfile.Frequency,
		&modelProfile.Weekdays,
		&categoryID,
		&modelProfile.StartDate,
		&modelProfile.EndDate,
		&modelProfile.CreatedAt,
		&modelProfile.CreatedBy,
		&modelProfile.LastUpdatedAt,
		&modelProfile.LastUpdatedBy,
	)
	if err != nil {
		return modelProfile, err
	}
	modelProfile.CategoryID = categoryID.String
	return modelProfile, nil
}
