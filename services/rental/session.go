package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"voyago/models"
)

// StartSession creates a fresh booking session for the given vehicle,
// snapshotting its rates so catalog changes cannot shift an in-progress
// booking.
func (svc *DefaultSessionService) StartSession(ctx context.Context, vehicleID string) (*models.BookingSession, error) {
	vehicle, err := svc.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, NewRentalError(ErrCodeVehicleNotFound, fmt.Sprintf("vehicle %s not found", vehicleID))
	}

	now := time.Now()
	session := &models.BookingSession{
		SessionID:   uuid.New().String(),
		Vehicle:     vehicle,
		Currency:    vehicle.Currency,
		CurrentStep: models.StepCar,
		Errors:      map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := svc.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}
	return session, nil
}

// GetSession returns the current state of a booking session.
func (svc *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return svc.Store.Get(ctx, sessionID)
}

// SetVehicle snapshots the chosen vehicle onto the session, sets the
// currency, and clears the car error slot. Switching to a different vehicle
// drops option selections and committed pricing, since both belong to the
// previous snapshot.
func (svc *DefaultSessionService) SetVehicle(ctx context.Context, sessionID, vehicleID string) (*models.BookingSession, error) {
	vehicle, err := svc.Vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, NewRentalError(ErrCodeVehicleNotFound, fmt.Sprintf("vehicle %s not found", vehicleID))
	}
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		if s.Vehicle != nil && s.Vehicle.ID != vehicle.ID {
			s.SelectedOptions = nil
			s.Pricing = nil
			s.TotalPrice = nil
		}
		s.Vehicle = vehicle
		s.Currency = vehicle.Currency
		s.ClearError("car")
		return true
	})
}

// mutate loads a session, applies fn, and saves the result. When fn reports
// that pricing inputs changed and the period is complete, a recalculation
// task is issued after the state transition has been committed.
func (svc *DefaultSessionService) mutate(ctx context.Context, sessionID string, fn func(*models.BookingSession) (reprice bool)) (*models.BookingSession, error) {
	session, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	reprice := fn(session)
	session.UpdatedAt = time.Now()

	reprice = reprice && session.Vehicle != nil && session.HasPeriod()
	if reprice {
		session.IsCalculatingPrice = true
	}

	if err := svc.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}
	if reprice && svc.dispatch != nil {
		svc.dispatch(sessionID)
	}
	return session, nil
}

// SetRentalDates stores the four period fields verbatim, recomputes the
// derived duration, and clears the dates error slot. Changing one field
// never silently alters another.
func (svc *DefaultSessionService) SetRentalDates(ctx context.Context, sessionID string, input DatesInput) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		s.PickupDate = input.PickupDate
		s.DropoffDate = input.DropoffDate
		s.PickupTime = input.PickupTime
		s.DropoffTime = input.DropoffTime
		s.PickupLocation = input.PickupLocation
		s.DropoffLocation = input.DropoffLocation

		s.Duration = ComputeDuration(s.PickupDate, s.DropoffDate, s.PickupTime, s.DropoffTime)
		s.ClearError("dates")
		return true
	})
}

// SetSelectedOptions replaces the options list wholesale. Selections are
// resolved against the vehicle snapshot: unknown options are dropped,
// quantities are clamped to the option's maximum, and a quantity of zero or
// less removes the entry.
func (svc *DefaultSessionService) SetSelectedOptions(ctx context.Context, sessionID string, selections []OptionSelection) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		resolved := make([]models.SelectedOption, 0, len(selections))
		if s.Vehicle != nil {
			for _, sel := range selections {
				if sel.Quantity <= 0 {
					continue
				}
				opt, ok := s.Vehicle.OptionByID(sel.ID)
				if !ok {
					svc.Logger.Debug("ignoring unknown option selection",
						zap.String("sessionID", s.SessionID), zap.String("optionID", sel.ID))
					continue
				}
				qty := sel.Quantity
				if opt.MaxQuantity > 0 && qty > opt.MaxQuantity {
					qty = opt.MaxQuantity
				}
				resolved = append(resolved, models.SelectedOption{
					ID:         opt.ID,
					Name:       opt.Name,
					Quantity:   qty,
					UnitPrice:  opt.Price,
					Percentage: opt.Percentage,
					PriceType:  opt.PriceType,
				})
			}
		}
		s.SelectedOptions = resolved
		s.ClearError("options")
		return true
	})
}

// SetInsurance sets both insurance flags and triggers a recalculation.
func (svc *DefaultSessionService) SetInsurance(ctx context.Context, sessionID string, basic, comprehensive bool) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		s.BasicInsurance = basic
		s.ComprehensiveInsurance = comprehensive
		return true
	})
}

// SetDriverInfo merges the submitted driver details into the session and
// clears the driver error slot. Driver changes never affect pricing.
func (svc *DefaultSessionService) SetDriverInfo(ctx context.Context, sessionID string, input DriverInput) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		if input.Name != "" {
			s.Driver.Name = input.Name
		}
		if input.License != "" {
			s.Driver.License = input.License
		}
		if input.Phone != "" {
			s.Driver.Phone = input.Phone
		}
		if input.Email != "" {
			s.Driver.Email = input.Email
		}
		if input.AdditionalDrivers != nil {
			s.AdditionalDrivers = *input.AdditionalDrivers
		}
		if input.SpecialRequirements != "" {
			s.SpecialRequirements = input.SpecialRequirements
		}
		s.ClearError("driver")
		return false
	})
}

// NextStep advances the wizard one step when the current step's gate passes,
// clamping at the last step. A failed gate records the reason in the step's
// error slot and keeps the position.
func (svc *DefaultSessionService) NextStep(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		advanceStep(s)
		return false
	})
}

// PreviousStep moves the wizard back one step, clamping at the first step.
func (svc *DefaultSessionService) PreviousStep(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	return svc.mutate(ctx, sessionID, func(s *models.BookingSession) bool {
		retreatStep(s)
		return false
	})
}

// ResetSession restores the session to its initial empty state under the
// same ID. It is used when the user navigates to a different vehicle's
// booking page, so nothing leaks between vehicles. Resetting an already
// fresh session is a no-op in effect.
func (svc *DefaultSessionService) ResetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	now := time.Now()
	session := &models.BookingSession{
		SessionID:   sessionID,
		CurrentStep: models.StepCar,
		Errors:      map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := svc.Store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store booking session: %w", err)
	}
	return session, nil
}

// CancelSession discards the session entirely.
func (svc *DefaultSessionService) CancelSession(ctx context.Context, sessionID string) error {
	return svc.Store.Delete(ctx, sessionID)
}

// RecalculatePricing asks the backend for availability and authoritative
// pricing, then commits a fresh breakdown — unless a newer request was
// issued while this one was in flight, in which case the response is
// discarded. On failure the previous breakdown is kept as last-known-good
// and the pricing error slot is set.
//
// Sequence numbers are claimed through the store's atomic counter and the
// claim and commit phases run under a per-session lock, so concurrent
// recalculations can never claim the same sequence or commit out of order.
// The backend call itself happens outside the lock.
func (svc *DefaultSessionService) RecalculatePricing(ctx context.Context, sessionID string) error {
	lock := svc.priceLock(sessionID)

	lock.Lock()
	session, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		lock.Unlock()
		return err
	}
	if session.Vehicle == nil || !session.HasPeriod() {
		// Pricing is meaningless before the period is chosen.
		lock.Unlock()
		return nil
	}

	seq, err := svc.Store.NextPriceSeq(ctx, sessionID)
	if err != nil {
		lock.Unlock()
		return err
	}
	session.PriceSeq = seq
	req := AvailabilityRequest{
		VehicleID:   session.Vehicle.ID,
		PickupDate:  session.PickupDate,
		DropoffDate: session.DropoffDate,
		PickupTime:  session.PickupTime,
		DropoffTime: session.DropoffTime,
	}
	if err := svc.Store.Save(ctx, session); err != nil {
		lock.Unlock()
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	lock.Unlock()

	avail, callErr := svc.Backend.CheckAvailability(ctx, req)

	lock.Lock()
	defer lock.Unlock()

	// Reload: the session may have moved on while the call was in flight.
	current, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if current.PriceSeq != seq {
		svc.Logger.Debug("discarding superseded pricing response",
			zap.String("sessionID", sessionID),
			zap.Uint64("responseSeq", seq),
			zap.Uint64("latestSeq", current.PriceSeq))
		return nil
	}

	if callErr != nil {
		current.PricingError = callErr.Error()
		current.SetError("pricing", callErr.Error())
		if err := svc.Store.Save(ctx, current); err != nil {
			return fmt.Errorf("failed to store booking session: %w", err)
		}
		return callErr
	}

	breakdown := buildBreakdown(current, avail)
	total := breakdown.FinalPrice
	current.Pricing = &breakdown
	current.TotalPrice = &total
	current.PricingError = ""
	current.ClearError("pricing")
	if err := svc.Store.Save(ctx, current); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}

	svc.Logger.Debug("pricing committed",
		zap.String("sessionID", sessionID),
		zap.Float64("finalPrice", breakdown.FinalPrice),
		zap.String("rentalType", breakdown.RentalType))
	return nil
}

// ConfirmBooking validates the assembled session, submits it to the booking
// backend, and archives the confirmed record. On any failure the session is
// left intact so the user can correct and retry without re-entering data.
func (svc *DefaultSessionService) ConfirmBooking(ctx context.Context, sessionID string) (*models.Booking, error) {
	session, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if msg := confirmValidationError(session); msg != "" {
		session.SetError("booking", msg)
		session.BookingError = msg
		if err := svc.Store.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to store booking session: %w", err)
		}
		return nil, NewRentalError(ErrCodeValidation, msg)
	}

	submission := BookingSubmission{
		VehicleID:              session.Vehicle.ID,
		PickupDate:             session.PickupDate,
		DropoffDate:            session.DropoffDate,
		PickupTime:             session.PickupTime,
		DropoffTime:            session.DropoffTime,
		PickupLocation:         session.PickupLocation,
		DropoffLocation:        session.DropoffLocation,
		Driver:                 session.Driver,
		AdditionalDrivers:      session.AdditionalDrivers,
		SelectedOptions:        session.SelectedOptions,
		BasicInsurance:         session.BasicInsurance,
		ComprehensiveInsurance: session.ComprehensiveInsurance,
		SpecialRequirements:    session.SpecialRequirements,
		TotalPrice:             *session.TotalPrice,
		Currency:               session.Currency,
	}

	backendID, err := svc.Backend.SubmitBooking(ctx, submission)
	if err != nil {
		session.BookingError = err.Error()
		session.SetError("booking", err.Error())
		if saveErr := svc.Store.Save(ctx, session); saveErr != nil {
			svc.Logger.Error("failed to record booking error on session",
				zap.String("sessionID", sessionID), zap.Error(saveErr))
		}
		return nil, err
	}

	booking := &models.Booking{
		ID:                     uuid.New().String(),
		BackendID:              backendID,
		SessionID:              session.SessionID,
		VehicleID:              session.Vehicle.ID,
		VehicleName:            session.Vehicle.Name,
		PickupDate:             session.PickupDate,
		DropoffDate:            session.DropoffDate,
		PickupTime:             session.PickupTime,
		DropoffTime:            session.DropoffTime,
		PickupLocation:         session.PickupLocation,
		DropoffLocation:        session.DropoffLocation,
		Driver:                 session.Driver,
		AdditionalDrivers:      session.AdditionalDrivers,
		SelectedOptions:        session.SelectedOptions,
		BasicInsurance:         session.BasicInsurance,
		ComprehensiveInsurance: session.ComprehensiveInsurance,
		SpecialRequirements:    session.SpecialRequirements,
		Pricing:                *session.Pricing,
		TotalPrice:             *session.TotalPrice,
		Currency:               session.Currency,
		Status:                 models.BookingStatusConfirmed,
		CreatedAt:              time.Now(),
	}

	if svc.Bookings != nil {
		if err := svc.Bookings.Create(ctx, booking); err != nil {
			// The backend accepted the booking; a failed archive write must
			// not fail the confirmation.
			svc.Logger.Error("failed to archive confirmed booking",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	if err := svc.Store.Delete(ctx, sessionID); err != nil {
		svc.Logger.Warn("failed to clear booking session after confirmation",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	return booking, nil
}

// confirmValidationError returns the first reason the session cannot be
// submitted, or "" when it is complete.
func confirmValidationError(s *models.BookingSession) string {
	if s.Vehicle == nil {
		return "no vehicle selected"
	}
	if !s.HasPeriod() {
		return "rental period is incomplete"
	}
	if s.Driver.Name == "" || s.Driver.License == "" || s.Driver.Phone == "" || s.Driver.Email == "" {
		return "primary driver details are incomplete"
	}
	for i, d := range s.AdditionalDrivers {
		if d.Name == "" || d.License == "" || d.Phone == "" {
			return fmt.Sprintf("additional driver %d is missing required fields", i+1)
		}
	}
	if s.Pricing == nil || s.TotalPrice == nil {
		return "pricing has not been calculated"
	}
	if *s.TotalPrice < 0 {
		return "total price is invalid"
	}
	return ""
}
