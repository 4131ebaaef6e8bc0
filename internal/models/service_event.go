package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceEventKind mirrors domain.ServiceEventKind for DB storage.
type ServiceEventKind string

// ServiceEvent is the DB representation of a rental or operation.
type ServiceEvent struct {
	EventID            string           `db:"event_id"`
	AccountID          string           `db:"account_id"`
	DisplayNumber      int64            `db:"display_number"`
	ClientName         string           `db:"client_name"`
	Kind               ServiceEventKind `db:"kind"`
	CompletedAt        *time.Time       `db:"completed_at"`
	RealizedValue      decimal.Decimal  `db:"realized_value"`
	AssignedUserID     string           `db:"assigned_user"`
	VehicleID          string           `db:"vehicle_id"`
	RecurrenceParentID *string          `db:"recurrence_parent_id"`
	AuditFields
}
