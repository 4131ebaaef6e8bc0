package dto

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterServiceEventRequest records a service event, optionally already
// completed (backfills and imports complete in one call).
type RegisterServiceEventRequest struct {
	ClientName         string                  `json:"clientName" binding:"required,max=255"`
	Kind               domain.ServiceEventKind `json:"kind" binding:"required,oneof=RENTAL OPERATION"`
	RealizedValue      decimal.Decimal         `json:"realizedValue"`
	AssignedUserID     string                  `json:"assignedUserID"`
	VehicleID          string                  `json:"vehicleID"`
	RecurrenceParentID *string                 `json:"recurrenceParentID"`
	CompletedAt        *time.Time              `json:"completedAt"`
}

// CompleteServiceEventRequest marks an event completed and feeds billing
// sync. RealizedValue overrides the stored value when present; MarkPaid
// records the resulting ledger entry as already settled.
type CompleteServiceEventRequest struct {
	CompletedAt   *time.Time       `json:"completedAt"`
	RealizedValue *decimal.Decimal `json:"realizedValue"`
	MarkPaid      bool             `json:"markPaid"`
}

// ServiceBillingInput is the contract between event completion (or bulk
// reconciliation) and billing sync. Amount may differ from the event's own
// realized value when the entry aggregates a sibling group.
type ServiceBillingInput struct {
	Event       domain.ServiceEvent
	Amount      decimal.Decimal
	Description string
	// Status, when set, is applied to the resulting entry; on an in-place
	// update a nil Status leaves the existing one untouched.
	Status *domain.EntryStatus
	// Duplicate forces insertion of a new entry even when one already
	// carries this event's link (audit duplication).
	Duplicate bool
}
