package rental

import (
	"fmt"

	"voyago/models"
)

// stepIndex returns the position of step in the wizard sequence, or -1.
func stepIndex(step string) int {
	for i, s := range models.StepSequence {
		if s == step {
			return i
		}
	}
	return -1
}

// validateStepExit checks the gate for leaving the given step. When the gate
// fails it returns the field group to flag and a user-correctable message.
func validateStepExit(s *models.BookingSession, step string) (group, msg string, ok bool) {
	switch step {
	case models.StepCar:
		if s.Vehicle == nil {
			return "car", "select a vehicle to continue", false
		}

	case models.StepDates:
		if !s.HasPeriod() {
			return "dates", "pickup and dropoff date and time are required", false
		}
		if s.PickupLocation == "" || s.DropoffLocation == "" {
			return "dates", "pickup and dropoff locations are required", false
		}
		if s.Duration.RentalType == "" {
			return "dates", "the selected dates could not be understood", false
		}
		if s.Duration.TotalHours < 0 {
			return "dates", "dropoff must be after pickup", false
		}
		if s.Duration.RentalType == models.RentalTypeHourly {
			if s.Vehicle == nil || !s.Vehicle.HourlyPolicy.Allowed {
				return "dates", "this vehicle cannot be rented by the hour", false
			}
			policy := s.Vehicle.HourlyPolicy
			if s.Duration.Hours < policy.MinHours || s.Duration.Hours > policy.MaxHours {
				return "dates", fmt.Sprintf("hourly rentals must be between %d and %d hours", policy.MinHours, policy.MaxHours), false
			}
		}

	case models.StepOptions:
		// All options are optional.

	case models.StepDriver:
		if s.Driver.Name == "" || s.Driver.License == "" || s.Driver.Phone == "" || s.Driver.Email == "" {
			return "driver", "all primary driver fields are required", false
		}
		for i, d := range s.AdditionalDrivers {
			if d.Name == "" || d.License == "" || d.Phone == "" {
				return "driver", fmt.Sprintf("additional driver %d is missing required fields", i+1), false
			}
		}

	case models.StepSummary:
		if s.Pricing == nil {
			return "summary", "pricing has not been calculated yet", false
		}
	}
	return "", "", true
}

// advanceStep moves the session forward one step if the current step's gate
// passes, clamping at the end of the sequence. A failed gate populates the
// step's error slot and leaves the position unchanged; it is never fatal.
func advanceStep(s *models.BookingSession) {
	idx := stepIndex(s.CurrentStep)
	if idx < 0 {
		s.CurrentStep = models.StepCar
		return
	}
	if idx >= len(models.StepSequence)-1 {
		return
	}
	if group, msg, ok := validateStepExit(s, s.CurrentStep); !ok {
		s.SetError(group, msg)
		return
	}
	s.CurrentStep = models.StepSequence[idx+1]
}

// retreatStep moves the session back one step, clamping at the start. Going
// back never validates.
func retreatStep(s *models.BookingSession) {
	idx := stepIndex(s.CurrentStep)
	if idx <= 0 {
		s.CurrentStep = models.StepCar
		return
	}
	s.CurrentStep = models.StepSequence[idx-1]
}
