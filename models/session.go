package models

import "time"

// Rental types.
const (
	RentalTypeHourly = "hourly"
	RentalTypeDaily  = "daily"
)

// Wizard steps, in flow order.
const (
	StepCar     = "car"
	StepDates   = "dates"
	StepOptions = "options"
	StepDriver  = "driver"
	StepSummary = "summary"
)

// StepSequence is the fixed wizard order. Navigation clamps at both ends.
var StepSequence = []string{StepCar, StepDates, StepOptions, StepDriver, StepSummary}

// IsValidStep reports whether s is one of the wizard steps. Persisted
// sessions are re-checked with this on load.
func IsValidStep(s string) bool {
	for _, step := range StepSequence {
		if step == s {
			return true
		}
	}
	return false
}

// RentalDuration is derived deterministically from the four period fields.
// An empty RentalType means the period is not fully specified yet.
type RentalDuration struct {
	RentalType string  `json:"rental_type,omitempty"` // "" | "hourly" | "daily"
	Days       int     `json:"days"`
	Hours      int     `json:"hours"`
	TotalHours float64 `json:"total_hours"`
}

// Driver holds the primary driver's details. All four fields must be
// non-empty before the driver step can be left.
type Driver struct {
	Name    string `json:"name"`
	License string `json:"license"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// AdditionalDriver is an extra driver on the contract. All three fields
// must be non-empty for the entry to be valid.
type AdditionalDriver struct {
	Name    string `json:"name"`
	License string `json:"license"`
	Phone   string `json:"phone"`
}

// SelectedOption is an option the user has added to the booking, snapshotted
// with its pricing terms at selection time.
type SelectedOption struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Percentage float64 `json:"percentage,omitempty"`
	PriceType  string  `json:"price_type"`
}

// PricingBreakdown is the committed result of a pricing calculation.
// BasePrice, discounts and InsuranceTotal come verbatim from the booking
// backend; OptionsTotal and FinalPrice are computed locally.
type PricingBreakdown struct {
	BasePrice       float64 `json:"base_price"`
	OptionsTotal    float64 `json:"options_total"`
	InsuranceTotal  float64 `json:"insurance_total"`
	WeeklyDiscount  float64 `json:"weekly_discount"`
	MonthlyDiscount float64 `json:"monthly_discount"`
	FinalPrice      float64 `json:"final_price"`
	RentalType      string  `json:"rental_type"`
	RentalDays      int     `json:"rental_days"`
	RentalHours     int     `json:"rental_hours"`
	TotalHours      float64 `json:"total_hours"`
}

// BookingSession is the single mutable aggregate for one in-progress rental
// booking. It is owned by one user session, cached under its SessionID, and
// discarded as a whole.
type BookingSession struct {
	SessionID string `json:"session_id"`

	Vehicle  *Vehicle `json:"vehicle,omitempty"`
	Currency string   `json:"currency,omitempty"`

	PickupDate  string `json:"pickup_date,omitempty"`
	DropoffDate string `json:"dropoff_date,omitempty"`
	PickupTime  string `json:"pickup_time,omitempty"`
	DropoffTime string `json:"dropoff_time,omitempty"`

	PickupLocation  string `json:"pickup_location,omitempty"`
	DropoffLocation string `json:"dropoff_location,omitempty"`

	Duration RentalDuration `json:"duration"`

	Driver            Driver             `json:"driver"`
	AdditionalDrivers []AdditionalDriver `json:"additional_drivers,omitempty"`

	SelectedOptions        []SelectedOption `json:"selected_options,omitempty"`
	BasicInsurance         bool             `json:"basic_insurance"`
	ComprehensiveInsurance bool             `json:"comprehensive_insurance"`

	SpecialRequirements string `json:"special_requirements,omitempty"`

	Pricing    *PricingBreakdown `json:"pricing,omitempty"`
	TotalPrice *float64          `json:"total_price,omitempty"`

	CurrentStep string            `json:"current_step"`
	Errors      map[string]string `json:"errors,omitempty"`

	// Transient flags, reset on load from the session store.
	IsCalculatingPrice bool   `json:"is_calculating_price,omitempty"`
	PricingError       string `json:"pricing_error,omitempty"`
	BookingError       string `json:"booking_error,omitempty"`

	// PriceSeq is the sequence number of the latest issued pricing request.
	// A response is committed only if its sequence still matches.
	PriceSeq uint64 `json:"price_seq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetError records a validation or service error for a field group.
func (s *BookingSession) SetError(group, msg string) {
	if s.Errors == nil {
		s.Errors = make(map[string]string)
	}
	s.Errors[group] = msg
}

// ClearError removes the error slot for a field group, if present.
func (s *BookingSession) ClearError(group string) {
	delete(s.Errors, group)
}

// PricingTaskPayload is the queued request to recompute a session's pricing.
type PricingTaskPayload struct {
	SessionID string `json:"session_id"`
}

// HasPeriod reports whether all four period fields are set.
func (s *BookingSession) HasPeriod() bool {
	return s.PickupDate != "" && s.DropoffDate != "" && s.PickupTime != "" && s.DropoffTime != ""
}
