package services

import (
	"context"

	"github.com/fleetops/fleet_billing_app/internal/dto"
)

// AssignmentSvcFacade checks and persists vehicle bookings. Conflict
// detection is advisory: a flagged proposal can still be saved.
type AssignmentSvcFacade interface {
	// CheckConflict evaluates a proposed interval against the vehicle's open
	// assignments. Must be re-run on every change to truck, start or end
	// time; results are never cached.
	CheckConflict(ctx context.Context, accountID string, req dto.ConflictCheckRequest) (*dto.ConflictCheckResult, error)

	// CreateAssignment persists a new booking and returns it together with
	// the advisory conflict evaluation.
	CreateAssignment(ctx context.Context, accountID string, req dto.SaveVehicleAssignmentRequest, actorID string) (*dto.SaveAssignmentResult, error)

	// UpdateAssignment rewrites an existing booking's interval, vehicle or
	// status, re-running conflict detection against the new values.
	UpdateAssignment(ctx context.Context, accountID, assignmentID string, req dto.SaveVehicleAssignmentRequest, actorID string) (*dto.SaveAssignmentResult, error)
}
