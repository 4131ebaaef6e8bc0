package handlers

import (
	"github.com/fleetops/fleet_billing_app/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators installs struct-level validations that the tag
// language cannot express on gin's shared binding engine.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(saveProfileStructValidation, dto.SaveRecurrenceProfileRequest{})
	v.RegisterStructValidation(conflictCheckStructValidation, dto.ConflictCheckRequest{})
}

// saveProfileStructValidation rejects non-positive amounts and inverted date
// ranges before the request reaches the service.
func saveProfileStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.SaveRecurrenceProfileRequest)

	if !req.Amount.IsPositive() {
		sl.ReportError(req.Amount, "Amount", "amount", "positiveamount", "")
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		sl.ReportError(req.EndDate, "EndDate", "endDate", "endafterstart", "")
	}
}

// conflictCheckStructValidation rejects intervals that do not span any time.
func conflictCheckStructValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.ConflictCheckRequest)

	if !req.EndsAt.After(req.StartsAt) {
		sl.ReportError(req.EndsAt, "EndsAt", "endsAt", "endafterstart", "")
	}
}
