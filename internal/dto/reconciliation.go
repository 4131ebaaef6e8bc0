package dto

import "time"

// Reconciliation modes. Update upserts in place; duplicate forces new
// entries even where a service link already exists.
const (
	ModeUpdate    = "update"
	ModeDuplicate = "duplicate"
)

// BulkReconcileRequest asks for a batch of completed events to be
// resynchronized with the ledger.
type BulkReconcileRequest struct {
	Mode     string   `json:"mode" binding:"required,oneof=update duplicate"`
	EventIDs []string `json:"eventIDs" binding:"required,min=1"`
	MarkPaid bool     `json:"markPaid"`
}

// FailedItem identifies one event that could not be processed.
type FailedItem struct {
	EventID string `json:"eventID"`
	Reason  string `json:"reason"`
}

// BulkReconcileResult reports a bulk run: how many items were processed and
// which ones failed. Failures never abort the rest of the batch.
type BulkReconcileResult struct {
	Processed int          `json:"processed"`
	Failed    []FailedItem `json:"failed,omitempty"`
}

// ReconcileGroupRequest folds one recurrence-parent's siblings for the
// month containing ReferenceDate into a single aggregated ledger entry.
type ReconcileGroupRequest struct {
	ReferenceDate time.Time `json:"referenceDate" binding:"required"`
	Mode          string    `json:"mode" binding:"omitempty,oneof=update duplicate"`
	MarkPaid      bool      `json:"markPaid"`
}
