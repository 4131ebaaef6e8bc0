package mapping

import (
	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/models"
)

// ToModelVehicleAssignment converts a domain VehicleAssignment to its model form.
func ToModelVehicleAssignment(d domain.VehicleAssignment) models.VehicleAssignment {
	return models.VehicleAssignment{
		AssignmentID:   d.AssignmentID,
		AccountID:      d.AccountID,
		VehicleID:      d.VehicleID,
		ServiceEventID: d.ServiceEventID,
		StartsAt:       d.StartsAt,
		EndsAt:         d.EndsAt,
		Status:         models.AssignmentStatus(d.Status),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVehicleAssignment converts a model VehicleAssignment to its domain form.
func ToDomainVehicleAssignment(m models.VehicleAssignment) domain.VehicleAssignment {
	return domain.VehicleAssignment{
		AssignmentID:   m.AssignmentID,
		AccountID:      m.AccountID,
		VehicleID:      m.VehicleID,
		ServiceEventID: m.ServiceEventID,
		StartsAt:       m.StartsAt,
		EndsAt:         m.EndsAt,
		Status:         domain.AssignmentStatus(m.Status),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
