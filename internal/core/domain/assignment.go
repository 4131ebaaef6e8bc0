package domain

import "time"

// AssignmentStatus is the lifecycle state of a vehicle assignment.
type AssignmentStatus string

const (
	AssignmentPlanned   AssignmentStatus = "PLANNED"
	AssignmentActive    AssignmentStatus = "ACTIVE"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// VehicleAssignment blocks a vehicle for the half-open interval
// [StartsAt, EndsAt). Completed assignments no longer occupy the vehicle
// and are excluded from conflict detection.
type VehicleAssignment struct {
	AssignmentID   string           `json:"assignmentID"` // Primary Key (UUID)
	AccountID      string           `json:"accountID"`    // Owning account (Not Null)
	VehicleID      string           `json:"vehicleID"`
	ServiceEventID string           `json:"serviceEventID,omitempty"` // Nullable
	StartsAt       time.Time        `json:"startsAt"`
	EndsAt         time.Time        `json:"endsAt"`
	Status         AssignmentStatus `json:"status"`
	AuditFields
}

// IsTerminal reports whether the assignment has finished and should be
// ignored when checking for double booking.
func (a VehicleAssignment) IsTerminal() bool {
	return a.Status == AssignmentCompleted
}
