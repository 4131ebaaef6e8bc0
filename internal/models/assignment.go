package models

import "time"

// AssignmentStatus mirrors domain.AssignmentStatus for DB storage.
type AssignmentStatus string

// VehicleAssignment is the DB representation of a vehicle booking interval.
type VehicleAssignment struct {
	AssignmentID   string           `db:"assignment_id"`
	AccountID      string           `db:"account_id"`
	VehicleID      string           `db:"vehicle_id"`
	ServiceEventID string           `db:"service_event_id"`
	StartsAt       time.Time        `db:"starts_at"`
	EndsAt         time.Time        `db:"ends_at"`
	Status         AssignmentStatus `db:"status"`
	AuditFields
}
