package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetops/fleet_billing_app/internal/apperrors"
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	portsrepo "github.com/fleetops/fleet_billing_app/internal/core/ports/repositories"
	portssvc "github.com/fleetops/fleet_billing_app/internal/core/ports/services"
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/fleetops/fleet_billing_app/internal/middleware"
	"github.com/fleetops/fleet_billing_app/internal/utils/overlap"
)

// assignmentService checks and persists vehicle bookings. Conflicts are
// advisory: the caller is told, persistence is never blocked.
type assignmentService struct {
	settings
	assignmentRepo portsrepo.AssignmentRepositoryFacade
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(assignmentRepo portsrepo.AssignmentRepositoryFacade, opts ...Option) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		settings:       applyOptions(opts),
		assignmentRepo: assignmentRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

// CheckConflict evaluates a proposed [start, end) interval against the
// vehicle's open assignments. Re-run on every change to vehicle or times;
// nothing is cached.
func (s *assignmentService) CheckConflict(ctx context.Context, accountID string, req dto.ConflictCheckRequest) (*dto.ConflictCheckResult, error) {
	if !req.StartsAt.Before(req.EndsAt) {
		return nil, fmt.Errorf("%w: start must precede end", apperrors.ErrValidation)
	}

	open, err := s.assignmentRepo.FindOpenAssignmentsByVehicle(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments for vehicle %s: %w", req.VehicleID, err)
	}

	for _, existing := range open {
		if existing.AccountID != accountID || existing.AssignmentID == req.ExcludeAssignmentID {
			continue
		}
		// Terminal assignments are filtered by the store already; guard
		// anyway so the rule holds regardless of the data source.
		if existing.IsTerminal() {
			continue
		}
		if overlap.Intersects(req.StartsAt, req.EndsAt, existing.StartsAt, existing.EndsAt) {
			return &dto.ConflictCheckResult{
				Conflict: true,
				Reason: fmt.Sprintf("vehicle %s is already booked from %s to %s",
					req.VehicleID,
					existing.StartsAt.Format("2006-01-02 15:04"),
					existing.EndsAt.Format("2006-01-02 15:04")),
			}, nil
		}
	}

	return &dto.ConflictCheckResult{Conflict: false}, nil
}

// CreateAssignment persists a new booking, returning the advisory conflict
// evaluation alongside.
func (s *assignmentService) CreateAssignment(ctx context.Context, accountID string, req dto.SaveVehicleAssignmentRequest, actorID string) (*dto.SaveAssignmentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	conflict, err := s.CheckConflict(ctx, accountID, dto.ConflictCheckRequest{
		VehicleID: req.VehicleID,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.AssignmentPlanned
	}

	now := s.now()
	assignment := domain.VehicleAssignment{
		AssignmentID:   uuid.NewString(),
		AccountID:      accountID,
		VehicleID:      req.VehicleID,
		ServiceEventID: req.ServiceEventID,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Status:         status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.assignmentRepo.SaveAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	if conflict.Conflict {
		logger.Warn("Assignment saved despite conflict", slog.String("assignment_id", assignment.AssignmentID), slog.String("reason", conflict.Reason))
	}
	return &dto.SaveAssignmentResult{Assignment: assignment, Conflict: *conflict}, nil
}

// UpdateAssignment rewrites an existing booking, re-running conflict
// detection against the new vehicle and interval.
func (s *assignmentService) UpdateAssignment(ctx context.Context, accountID, assignmentID string, req dto.SaveVehicleAssignmentRequest, actorID string) (*dto.SaveAssignmentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.assignmentRepo.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find assignment %s: %w", assignmentID, err)
	}
	if existing.AccountID != accountID {
		return nil, apperrors.ErrNotFound
	}

	conflict, err := s.CheckConflict(ctx, accountID, dto.ConflictCheckRequest{
		VehicleID:           req.VehicleID,
		StartsAt:            req.StartsAt,
		EndsAt:              req.EndsAt,
		ExcludeAssignmentID: assignmentID,
	})
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.VehicleID = req.VehicleID
	updated.ServiceEventID = req.ServiceEventID
	updated.StartsAt = req.StartsAt
	updated.EndsAt = req.EndsAt
	if req.Status != "" {
		updated.Status = req.Status
	}
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = actorID

	if err := s.assignmentRepo.UpdateAssignment(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update assignment %s: %w", assignmentID, err)
	}

	if conflict.Conflict {
		logger.Warn("Assignment updated despite conflict", slog.String("assignment_id", assignmentID), slog.String("reason", conflict.Reason))
	}
	return &dto.SaveAssignmentResult{Assignment: updated, Conflict: *conflict}, nil
}
