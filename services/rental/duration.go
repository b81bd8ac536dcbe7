package rental

import (
	"math"
	"time"

	"voyago/models"
)

// Date and time layouts used across the booking flow.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// ComputeDuration derives the rental classification from the four period
// fields. Missing or unparsable input yields a zeroed result with an empty
// RentalType, which signals "period not specified yet" rather than an error.
//
// Same-day rentals are hourly: Days is 0 and Hours is the elapsed time
// rounded up. Multi-day rentals are daily: Days is the calendar-day
// difference between the two dates (not a duration/24h ceiling) and Hours
// holds the leftover hours past whole days.
//
// A negative TotalHours (dropoff before pickup) is returned as-is; rejecting
// it is the caller's validation concern.
func ComputeDuration(pickupDate, dropoffDate, pickupTime, dropoffTime string) models.RentalDuration {
	if pickupDate == "" || dropoffDate == "" || pickupTime == "" || dropoffTime == "" {
		return models.RentalDuration{}
	}

	pickup, err := time.Parse(dateTimeLayout, pickupDate+" "+pickupTime)
	if err != nil {
		return models.RentalDuration{}
	}
	dropoff, err := time.Parse(dateTimeLayout, dropoffDate+" "+dropoffTime)
	if err != nil {
		return models.RentalDuration{}
	}

	totalHours := dropoff.Sub(pickup).Hours()

	if pickupDate == dropoffDate {
		return models.RentalDuration{
			RentalType: models.RentalTypeHourly,
			Days:       0,
			Hours:      int(math.Ceil(totalHours)),
			TotalHours: totalHours,
		}
	}

	pd, _ := time.Parse(DateLayout, pickupDate)
	dd, _ := time.Parse(DateLayout, dropoffDate)
	days := int(dd.Sub(pd).Hours() / 24)

	return models.RentalDuration{
		RentalType: models.RentalTypeDaily,
		Days:       days,
		Hours:      int(math.Floor(math.Mod(totalHours, 24))),
		TotalHours: totalHours,
	}
}
