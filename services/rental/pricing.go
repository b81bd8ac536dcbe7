package rental

import "voyago/models"

// OptionsTotal sums the selected add-ons. Fixed options cost their unit
// price per quantity regardless of duration, daily options scale with the
// rental's day count, and percentage options are priced against the
// backend-reported base price.
func OptionsTotal(options []models.SelectedOption, basePrice float64, rentalDays int) float64 {
	total := 0.0
	for _, opt := range options {
		switch opt.PriceType {
		case models.PriceTypeDaily:
			total += opt.UnitPrice * float64(opt.Quantity) * float64(rentalDays)
		case models.PriceTypePercentage:
			total += basePrice * (opt.Percentage / 100) * float64(opt.Quantity)
		default: // fixed
			total += opt.UnitPrice * float64(opt.Quantity)
		}
	}
	return total
}

// buildBreakdown assembles the full pricing breakdown for a session from the
// backend's availability response. BasePrice, discounts and InsuranceTotal
// are taken verbatim from the backend, which owns the discount-tier rules;
// only the options subtotal and the grand total are computed here. The
// insurance flag gates inclusion of the insurance total, it never scales it.
func buildBreakdown(s *models.BookingSession, avail *AvailabilityResult) models.PricingBreakdown {
	optionsTotal := OptionsTotal(s.SelectedOptions, avail.BasePrice, s.Duration.Days)

	finalPrice := avail.BasePrice + optionsTotal
	if s.ComprehensiveInsurance {
		finalPrice += avail.InsuranceTotal
	}

	return models.PricingBreakdown{
		BasePrice:       avail.BasePrice,
		OptionsTotal:    optionsTotal,
		InsuranceTotal:  avail.InsuranceTotal,
		WeeklyDiscount:  avail.WeeklyDiscount,
		MonthlyDiscount: avail.MonthlyDiscount,
		FinalPrice:      finalPrice,
		RentalType:      s.Duration.RentalType,
		RentalDays:      s.Duration.Days,
		RentalHours:     s.Duration.Hours,
		TotalHours:      s.Duration.TotalHours,
	}
}
