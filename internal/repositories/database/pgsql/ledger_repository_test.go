package pgsql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The schedule rewrite must never touch a row the user already settled. A
// regenerated draft colliding with a PAID or CANCELLED row on the
// (profile_id, due_date) key has to be skipped, not rewritten.
func TestScheduleUpsertOnlyRewritesPendingRows(t *testing.T) {
	clauses := strings.SplitN(upsertScheduleEntrySQL, "DO UPDATE SET", 2)
	assert.Len(t, clauses, 2, "schedule upsert must resolve conflicts via DO UPDATE")

	assert.Contains(t, clauses[1], "WHERE ledger_entries.status = 'PENDING'",
		"conflict update must be guarded so settled rows keep their recorded amount")
	assert.NotContains(t, clauses[1], "status = EXCLUDED.status",
		"conflict update must not overwrite a row's status")
	assert.NotContains(t, clauses[1], "payment_date",
		"conflict update must not overwrite a recorded payment date")
}

func TestScheduleUpsertConflictsOnRegenerationKey(t *testing.T) {
	assert.Contains(t, upsertScheduleEntrySQL, "ON CONFLICT (profile_id, due_date) WHERE profile_id IS NOT NULL",
		"schedule rows are keyed by (profile_id, due_date) under the partial unique index")
}
