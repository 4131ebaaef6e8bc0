package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Direction marks whether money flows into or out of the account.
// Shared by categories, recurrence profiles and ledger entries.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)
