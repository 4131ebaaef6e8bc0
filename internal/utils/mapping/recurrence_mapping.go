package mapping

import (
	"time"

	"github.com/fleetops/fleet_billing_app/internal/core/domain"
	"github.com/fleetops/fleet_billing_app/internal/models"
)

// ToModelRecurrenceProfile converts a domain RecurrenceProfile to its model form.
func ToModelRecurrenceProfile(d domain.RecurrenceProfile) models.RecurrenceProfile {
	weekdays := make([]int16, len(d.Weekdays))
	for i, wd := range d.Weekdays {
		weekdays[i] = int16(wd)
	}
	return models.RecurrenceProfile{
		ProfileID:   d.ProfileID,
		AccountID:   d.AccountID,
		Description: d.Description,
		Amount:      d.Amount,
		Direction:   models.Direction(d.Direction),
		Frequency:   models.Frequency(d.Frequency),
		Weekdays:    weekdays,
		CategoryID:  d.CategoryID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRecurrenceProfile converts a model RecurrenceProfile to its domain form.
func ToDomainRecurrenceProfile(m models.RecurrenceProfile) domain.RecurrenceProfile {
	weekdays := make([]time.Weekday, len(m.Weekdays))
	for i, wd := range m.Weekdays {
		weekdays[i] = time.Weekday(wd)
	}
	return domain.RecurrenceProfile{
		ProfileID:   m.ProfileID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Amount:      m.Amount,
		Direction:   domain.Direction(m.Direction),
		Frequency:   domain.Frequency(m.Frequency),
		Weekdays:    weekdays,
		CategoryID:  m.CategoryID,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
