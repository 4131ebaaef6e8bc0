package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	"github.com/fleetops/fleet_billing_app/internal/models"
	"github.com/fleetops/fleet_billing_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxServiceEventRepository struct {
	pool *pgxpool.Pool
}

// newPgxServiceEventRepository creates a new repository for service events.
func newPgxServiceEventRepository(pool *pgxpool.Pool) portsrepo.ServiceEventRepositoryFacade {
	return &PgxServiceEventRepository{pool: pool}
}

var _ portsrepo.ServiceEventRepositoryFacade = (*PgxServiceEventRepository)(nil)

const serviceEventColumns = `event_id, account_id, display_number, client_name, kind, completed_at, realized_value, assigned_user, vehicle_id, recurrence_parent_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveEvent inserts a new event, assigning the next per-account display
// number inside the insert so concurrent registrations cannot reuse one.
func (r *PgxServiceEventRepository) SaveEvent(ctx context.Context, event domain.ServiceEvent) (int64, error) {
	modelEvent := mapping.ToModelServiceEvent(event)

	query := `
		INSERT INTO service_events (` + serviceEventColumns + `)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(display_number), 0) + 1 FROM service_events WHERE account_id = $2),
			$3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING display_number;
	`
	var displayNumber int64
	err := r.pool.QueryRow(ctx, query,
		modelEvent.EventID,
		modelEvent.AccountID,
		modelEvent.ClientName,
		modelEvent.Kind,
		modelEvent.CompletedAt,
		modelEvent.RealizedValue,
		nullIfEmpty(modelEvent.AssignedUserID),
		nullIfEmpty(modelEvent.VehicleID),
		modelEvent.RecurrenceParentID,
		modelEvent.CreatedAt,
		modelEvent.CreatedBy,
		modelEvent.LastUpdatedAt,
		modelEvent.LastUpdatedBy,
	).Scan(&displayNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to save service event %s: %w", modelEvent.EventID, err)
	}
	return displayNumber, nil
}

// MarkEventCompleted records the completion timestamp and realized value.
func (r *PgxServiceEventRepository) MarkEventCompleted(ctx context.Context, eventID string, completedAt time.Time, realizedValue decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE service_events
		SET completed_at = $2, realized_value = $3, last_updated_at = $4, last_updated_by = $5
		WHERE event_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, eventID, completedAt, realizedValue, time.Now().UTC(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark service event %s completed: %w", eventID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event.
func (r *PgxServiceEventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	query := `DELETE FROM service_events WHERE event_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete service event %s: %w", eventID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindEventByID retrieves a specific event by its unique identifier.
func (r *PgxServiceEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.ServiceEvent, error) {
	query := `SELECT ` + serviceEventColumns + ` FROM service_events WHERE event_id = $1;`

	modelEvent, err := scanServiceEvent(r.pool.QueryRow(ctx, query, eventID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service event by ID %s: %w", eventID, err)
	}

	domainEvent := mapping.ToDomainServiceEvent(modelEvent)
	return &domainEvent, nil
}

// FindEventsByIDs retrieves multiple events keyed by id. Missing ids are
// absent from the result rather than an error.
func (r *PgxServiceEventRepository) FindEventsByIDs(ctx context.Context, eventIDs []string) (map[string]domain.ServiceEvent, error) {
	events := make(map[string]domain.ServiceEvent, len(eventIDs))
	if len(eventIDs) == 0 {
		return events, nil
	}

	query := `SELECT ` + serviceEventColumns + ` FROM service_events WHERE event_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find service events by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		modelEvent, err := scanServiceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service event row: %w", err)
		}
		domainEvent := mapping.ToDomainServiceEvent(modelEvent)
		events[domainEvent.EventID] = domainEvent
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service event rows: %w", err)
	}
	return events, nil
}

// FindCompletedSiblings retrieves the completed events sharing a recurrence
// parent whose completion timestamp falls in [from, to). The range predicate
// rides the (recurrence_parent_id, completed_at) index.
func (r *PgxServiceEventRepository) FindCompletedSiblings(ctx context.Context, recurrenceParentID string, from, to time.Time) ([]domain.ServiceEvent, error) {
	query := `
		SELECT ` + serviceEventColumns + `
		FROM service_events
		WHERE recurrence_parent_id = $1
		  AND completed_at >= $2
		  AND completed_at < $3
		ORDER BY completed_at DESC, event_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, recurrenceParentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to find completed siblings of parent %s: %w", recurrenceParentID, err)
	}
	defer rows.Close()

	var events []domain.ServiceEvent
	for rows.Next() {
		modelEvent, err := scanServiceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service event row: %w", err)
		}
		events = append(events, mapping.ToDomainServiceEvent(modelEvent))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service event rows: %w", err)
	}
	return events, nil
}

func scanServiceEvent(row pgx.Row) (models.ServiceEvent, error) {
	var modelEvent models.ServiceEvent
	var assignedUser, vehicleID sql.NullString
	err := row.Scan(
		&modelEvent.EventID,
		&modelEvent.AccountID,
		&modelEvent.DisplayNumber,
		&modelEvent.ClientName,
		&modelEvent.Kind,
		&modelEvent.CompletedAt,
		&modelEvent.RealizedValue,
		&assignedUser,
		&vehicleID,
		&modelEvent.RecurrenceParentID,
		&modelEvent.CreatedAt,
		&modelEvent.CreatedBy,
		&modelEvent.LastUpdatedAt,
		&modelEvent.LastUpdatedBy,
	)
	if err != nil {
		return modelEvent, err
	}
	modelEvent.AssignedUserID = assignedUser.String
	modelEvent.VehicleID = vehicleID.String
	return modelEvent, nil
}
