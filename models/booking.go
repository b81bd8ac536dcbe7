package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusFailed    = "failed"
)

// Booking is the durable record of a confirmed rental, archived after the
// booking backend has accepted the request.
type Booking struct {
	ID        string `bson:"id" json:"id"`
	BackendID string `bson:"backend_id" json:"backend_id"` // reference issued by the booking backend
	SessionID string `bson:"session_id" json:"session_id"`

	VehicleID   string `bson:"vehicle_id" json:"vehicle_id"`
	VehicleName string `bson:"vehicle_name" json:"vehicle_name"`

	PickupDate  string `bson:"pickup_date" json:"pickup_date"`
	DropoffDate string `bson:"dropoff_date" json:"dropoff_date"`
	PickupTime  string `bson:"pickup_time" json:"pickup_time"`
	DropoffTime string `bson:"dropoff_time" json:"dropoff_time"`

	PickupLocation  string `bson:"pickup_location" json:"pickup_location"`
	DropoffLocation string `bson:"dropoff_location" json:"dropoff_location"`

	Driver            Driver             `bson:"driver" json:"driver"`
	AdditionalDrivers []AdditionalDriver `bson:"additional_drivers,omitempty" json:"additional_drivers,omitempty"`

	SelectedOptions        []SelectedOption `bson:"selected_options,omitempty" json:"selected_options,omitempty"`
	BasicInsurance         bool             `bson:"basic_insurance" json:"basic_insurance"`
	ComprehensiveInsurance bool             `bson:"comprehensive_insurance" json:"comprehensive_insurance"`

	SpecialRequirements string `bson:"special_requirements,omitempty" json:"special_requirements,omitempty"`

	Pricing    PricingBreakdown `bson:"pricing" json:"pricing"`
	TotalPrice float64          `bson:"total_price" json:"total_price"`
	Currency   string           `bson:"currency" json:"currency"`

	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
