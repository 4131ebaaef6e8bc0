package mapping

import (
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to its model form.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:        d.EntryID,
		AccountID:      d.AccountID,
		Description:    d.Description,
		Amount:         d.Amount,
		Direction:      models.Direction(d.Direction),
		Status:         models.EntryStatus(d.Status),
		DueDate:        d.DueDate,
		PaymentDate:    d.PaymentDate,
		CategoryID:     d.CategoryID,
		Origin:         models.EntryOrigin(d.Origin),
		ServiceEventID: d.ServiceEventID,
		ProfileID:      d.ProfileID,
		AssignedUserID: d.AssignedUserID,
		VehicleID:      d.VehicleID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to its domain form.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:        m.EntryID,
		AccountID:      m.AccountID,
		Description:    m.Description,
		Amount:         m.Amount,
		Direction:      domain.Direction(m.Direction),
		Status:         domain.EntryStatus(m.Status),
		DueDate:        m.DueDate,
		PaymentDate:    m.PaymentDate,
		CategoryID:     m.CategoryID,
		Origin:         domain.EntryOrigin(m.Origin),
		ServiceEventID: m.ServiceEventID,
		ProfileID:      m.ProfileID,
		AssignedUserID: m.AssignedUserID,
		VehicleID:      m.VehicleID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
