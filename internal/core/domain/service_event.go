package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceEventKind distinguishes the two billable units of field work.
type ServiceEventKind string

const (
	KindRental    ServiceEventKind = "RENTAL"
	KindOperation ServiceEventKind = "OPERATION"
)

// ServiceEvent is a unit of business work (a dumpster rental or a field
// operation). Once completed it is immutable except for administrative
// correction. Events sharing a RecurrenceParentID belong to one standing
// agreement and are billed as a single monthly group; that grouping key is
// deliberately distinct from the RecurrenceProfile used for pure financial
// schedules, even though both are "recurrence".
type ServiceEvent struct {
	EventID            string           `json:"eventID"`   // Primary Key (UUID)
	AccountID          string           `json:"accountID"` // Owning account (Not Null)
	DisplayNumber      int64            `json:"displayNumber"`
	ClientName         string           `json:"clientName"`
	Kind               ServiceEventKind `json:"kind"`
	CompletedAt        *time.Time       `json:"completedAt,omitempty"` // nil = in progress
	RealizedValue      decimal.Decimal  `json:"realizedValue"`
	AssignedUserID     string           `json:"assignedUserID,omitempty"` // Nullable
	VehicleID          string           `json:"vehicleID,omitempty"`      // Nullable
	RecurrenceParentID *string          `json:"recurrenceParentID,omitempty"`
	AuditFields
}

// IsCompleted reports whether the event has a completion timestamp.
func (e ServiceEvent) IsCompleted() bool {
	return e.CompletedAt != nil
}
