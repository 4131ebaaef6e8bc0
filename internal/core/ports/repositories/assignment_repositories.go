package repositories

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// AssignmentReader defines read operations for vehicle assignment data
type AssignmentReader interface {
	// FindAssignmentByID retrieves a specific assignment by its unique identifier.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.VehicleAssignment, error)

	// FindOpenAssignmentsByVehicle retrieves the non-completed assignments
	// for a vehicle. Terminal assignments never participate in conflict
	// detection, so the store filters them out.
	FindOpenAssignmentsByVehicle(ctx context.Context, vehicleID string) ([]domain.VehicleAssignment, error)
}

// AssignmentWriter defines write operations for vehicle assignment data
type AssignmentWriter interface {
	// SaveAssignment inserts a new assignment.
	SaveAssignment(ctx context.Context, assignment domain.VehicleAssignment) error

	// UpdateAssignment replaces the mutable fields of an existing assignment.
	UpdateAssignment(ctx context.Context, assignment domain.VehicleAssignment) error
}

// AssignmentRepositoryFacade combines all assignment repository interfaces
type AssignmentRepositoryFacade interface {
	AssignmentReader
	AssignmentWriter
}
