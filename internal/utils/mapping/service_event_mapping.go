package mapping

import (
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/models"
)

// ToModelServiceEvent converts a domain ServiceEvent to its model form.
func ToModelServiceEvent(d domain.ServiceEvent) models.ServiceEvent {
	return models.ServiceEvent{
		EventID:            d.EventID,
		AccountID:          d.AccountID,
		DisplayNumber:      d.DisplayNumber,
		ClientName:         d.ClientName,
		Kind:               models.ServiceEventKind(d.Kind),
		CompletedAt:        d.CompletedAt,
		RealizedValue:      d.RealizedValue,
		AssignedUserID:     d.AssignedUserID,
		VehicleID:          d.VehicleID,
		RecurrenceParentID: d.RecurrenceParentID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainServiceEvent converts a model ServiceEvent to its domain form.
func ToDomainServiceEvent(m models.ServiceEvent) domain.ServiceEvent {
	return domain.ServiceEvent{
		EventID:            m.EventID,
		AccountID:          m.AccountID,
		DisplayNumber:      m.DisplayNumber,
		ClientName:         m.ClientName,
		Kind:               domain.ServiceEventKind(m.Kind),
		CompletedAt:        m.CompletedAt,
		RealizedValue:      m.RealizedValue,
		AssignedUserID:     m.AssignedUserID,
		VehicleID:          m.VehicleID,
		RecurrenceParentID: m.RecurrenceParentID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
