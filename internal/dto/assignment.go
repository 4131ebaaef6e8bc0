package dto

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
)

// ConflictCheckRequest proposes a [StartsAt, EndsAt) booking for a vehicle.
// ExcludeAssignmentID skips the assignment being edited so it never
// conflicts with itself.
type ConflictCheckRequest struct {
	VehicleID           string    `json:"vehicleID" binding:"required"`
	StartsAt            time.Time `json:"startsAt" binding:"required"`
	EndsAt              time.Time `json:"endsAt" binding:"required"`
	ExcludeAssignmentID string    `json:"excludeAssignmentID"`
}

// ConflictCheckResult is advisory: it flags the double booking but never
// blocks persistence.
type ConflictCheckResult struct {
	Conflict bool   `json:"conflict"`
	Reason   string `json:"reason,omitempty"`
}

// SaveVehicleAssignmentRequest creates or updates a booking interval.
type SaveVehicleAssignmentRequest struct {
	VehicleID      string                  `json:"vehicleID" binding:"required"`
	ServiceEventID string                  `json:"serviceEventID"`
	StartsAt       time.Time               `json:"startsAt" binding:"required"`
	EndsAt         time.Time               `json:"endsAt" binding:"required"`
	Status         domain.AssignmentStatus `json:"status" binding:"omitempty,oneof=PLANNED ACTIVE COMPLETED"`
}

// SaveAssignmentResult returns the stored assignment together with the
// advisory conflict evaluation performed against the final interval.
type SaveAssignmentResult struct {
	Assignment domain.VehicleAssignment `json:"assignment"`
	Conflict   ConflictCheckResult      `json:"conflictCheck"`
}
