package models

// Option price types.
const (
	PriceTypeFixed      = "fixed"
	PriceTypeDaily      = "daily"
	PriceTypePercentage = "percentage"
)

// RentalOption is an add-on a vehicle can be booked with (child seat, GPS,
// additional equipment). Percentage options are priced against the rental's
// base price rather than a flat amount.
type RentalOption struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`                       // unit price for fixed/daily options
	Percentage  float64 `bson:"percentage,omitempty" json:"percentage,omitempty"` // used when PriceType == "percentage"
	PriceType   string  `bson:"price_type" json:"price_type"`             // "fixed" | "daily" | "percentage"
	MaxQuantity int     `bson:"max_quantity" json:"max_quantity"`
}

// HourlyPolicy describes whether a vehicle may be rented within a single
// calendar day, and the allowed duration window when it can.
type HourlyPolicy struct {
	Allowed  bool `bson:"allowed" json:"allowed"`
	MinHours int  `bson:"min_hours" json:"min_hours"`
	MaxHours int  `bson:"max_hours" json:"max_hours"`
}

// Vehicle is a rentable car as served by the catalog. The booking session
// keeps a snapshot of this record so that rate changes mid-flow do not shift
// an in-progress booking under the user.
type Vehicle struct {
	ID              string         `bson:"id" json:"id"`
	Name            string         `bson:"name" json:"name"`
	Category        string         `bson:"category" json:"category"` // e.g. "economy", "suv"
	PricePerDay     float64        `bson:"price_per_day" json:"price_per_day"`
	PricePerHour    float64        `bson:"price_per_hour" json:"price_per_hour"`
	Currency        string         `bson:"currency" json:"currency"`
	WeeklyDiscount  float64        `bson:"weekly_discount" json:"weekly_discount"`   // percent, applied server-side
	MonthlyDiscount float64        `bson:"monthly_discount" json:"monthly_discount"` // percent, applied server-side
	HourlyPolicy    HourlyPolicy   `bson:"hourly_policy" json:"hourly_policy"`
	Options         []RentalOption `bson:"options,omitempty" json:"options,omitempty"`
	InsurancePerDay float64        `bson:"insurance_per_day" json:"insurance_per_day"`
}

// OptionByID returns the vehicle's option with the given ID, if any.
func (v *Vehicle) OptionByID(id string) (RentalOption, bool) {
	for _, opt := range v.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return RentalOption{}, false
}

// RentalLocation is a predefined pickup/dropoff point offered by the fleet.
type RentalLocation struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
