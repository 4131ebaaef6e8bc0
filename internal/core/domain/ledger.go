package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle state of a ledger entry.
type EntryStatus string

const (
	Pending   EntryStatus = "PENDING"
	Paid      EntryStatus = "PAID"
	Overdue   EntryStatus = "OVERDUE"
	Cancelled EntryStatus = "CANCELLED"
)

// EntryOrigin records where a ledger entry came from.
type EntryOrigin string

const (
	OriginManual  EntryOrigin = "MANUAL"  // entered by a user
	OriginService EntryOrigin = "SERVICE" // derived from a completed service event
)

// LedgerEntry is a single financial obligation or record with a due date.
// At most one entry may carry a given service-event link at any time, unless
// duplication is explicitly requested for audit purposes. Entries spawned by
// a recurrence profile are uniquely keyed by (profile, due date).
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`   // Primary Key (UUID)
	AccountID   string          `json:"accountID"` // Owning account (Not Null)
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Status      EntryStatus     `json:"status"`
	DueDate     time.Time       `json:"dueDate"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
	CategoryID  string          `json:"categoryID"`
	Origin      EntryOrigin     `json:"origin"`
	// ServiceEventID links a service-derived entry to its canonical event.
	ServiceEventID *string `json:"serviceEventID,omitempty"`
	// ProfileID links a recurrence-derived entry to its profile.
	ProfileID      *string `json:"profileID,omitempty"`
	AssignedUserID string  `json:"assignedUserID,omitempty"` // Nullable
	VehicleID      string  `json:"vehicleID,omitempty"`      // Nullable
	AuditFields
}

// IsFuturePending reports whether the entry is still rewritable by
// schedule reconciliation: pending with a due date strictly after now.
func (e LedgerEntry) IsFuturePending(now time.Time) bool {
	return e.Status == Pending && e.DueDate.After(now)
}
