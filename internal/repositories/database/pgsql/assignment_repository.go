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

type PgxAssignmentRepository struct {
	pool *pgxpool.Pool
}

// newPgxAssignmentRepository creates a new repository for vehicle assignments.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepositoryFacade {
	return &PgxAssignmentRepository{pool: pool}
}

var _ portsrepo.AssignmentRepositoryFacade = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, account_id, vehicle_id, service_event_id, starts_at, ends_at, status, created_at, created_by, last_updated_at, last_updated_by`

// SaveAssignment inserts a new assignment.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.VehicleAssignment) error {
	modelAssignment := mapping.ToModelVehicleAssignment(assignment)

	query := `
		INSERT INTO vehicle_assignments (` + assignmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAssignment.AssignmentID,
		modelAssignment.AccountID,
		modelAssignment.VehicleID,
		nullIfEmpty(modelAssignment.ServiceEventID),
		modelAssignment.StartsAt,
		modelAssignment.EndsAt,
		modelAssignment.Status,
		modelAssignment.CreatedAt,
		modelAssignment.CreatedBy,
		modelAssignment.LastUpdatedAt,
		modelAssignment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save assignment %s: %w", modelAssignment.AssignmentID, err)
	}
	return nil
}

// UpdateAssignment replaces the mutable fields of an existing assignment.
func (r *PgxAssignmentRepository) UpdateAssignment(ctx context.Context, assignment domain.VehicleAssignment) error {
	modelAssignment := mapping.ToModelVehicleAssignment(assignment)

	query := `
		UPDATE vehicle_assignments
		SET vehicle_id = $2, service_event_id = $3, starts_at = $4, ends_at = $5,
			status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE assignment_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelAssignment.AssignmentID,
		modelAssignment.VehicleID,
		nullIfEmpty(modelAssignment.ServiceEventID),
		modelAssignment.StartsAt,
		modelAssignment.EndsAt,
		modelAssignment.Status,
		modelAssignment.LastUpdatedAt,
		modelAssignment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", modelAssignment.AssignmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAssignmentByID retrieves a specific assignment by its unique identifier.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE assignment_id = $1;`

	modelAssignment, err := scanAssignment(r.pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find assignment by ID %s: %w", assignmentID, err)
	}

	domainAssignment := mapping.ToDomainVehicleAssignment(modelAssignment)
	return &domainAssignment, nil
}

// FindOpenAssignmentsByVehicle retrieves the non-completed assignments for a
// vehicle. Terminal assignments never block new bookings.
func (r *PgxAssignmentRepository) FindOpenAssignmentsByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM vehicle_assignments
		WHERE vehicle_id = $1 AND status <> 'COMPLETED'
		ORDER BY starts_at;
	`
	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find open assignments for vehicle %s: %w", vehicleID, err)
	}
	defer rows.Close()

	var assignments []domain.VehicleAssignment
	for rows.Next() {
		modelAssignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, mapping.ToDomainVehicleAssignment(modelAssignment))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func scanAssignment(row pgx.Row) (models.VehicleAssignment, error) {
	var modelAssignment models.VehicleAssignment
	var serviceEventID sql.NullString
	err := row.Scan(
		&modelAssignment.AssignmentID,
		&modelAssignment.AccountID,
		&modelAssignment.VehicleID,
		&serviceEventID,
		&modelAssignment.StartsAt,
		&modelAssignment.EndsAt,
		&modelAssignment.Status,
		&modelAssignment.CreatedAt,
		&modelAssignment.CreatedBy,
		&modelAssignment.LastUpdatedAt,
		&modelAssignment.LastUpdatedBy,
	)
	if err != nil {
		return modelAssignment, err
	}
	modelAssignment.ServiceEventID = serviceEventID.String
	return modelAssignment, nil
}
