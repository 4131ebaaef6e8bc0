package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scheduleEntriesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fbb_schedule_entries_written_total",
		Help: "Ledger entries written by profile schedule reconciliation.",
	})

	groupsReconciled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fbb_groups_reconciled_total",
		Help: "Sibling groups folded into aggregated ledger entries.",
	})

	billingSyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fbb_billing_sync_failures_total",
		Help: "Best-effort billing sync attempts that failed and were logged.",
	})
)
