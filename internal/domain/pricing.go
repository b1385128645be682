package domain

import "time"

// EcoTaxRate is the conservation surcharge applied to the base stay cost.
const EcoTaxRate = 0.05

// StayQuote is the price breakdown for a stay at one destination.
type StayQuote struct {
	PricePerNight float64 `json:"pricePerNight"`
	Nights        int     `json:"nights"`
	Base          float64 `json:"base"`
	EcoTax        float64 `json:"ecoTax"`
	Total         float64 `json:"total"`
}

// ComputeStay prices a stay. It is used for both the live quote and the
// booking commit so the two never diverge.
//
// Nights is the calendar-day difference, never less than 1. The floor does not
// replace date validation: the ledger rejects inverted ranges before pricing.
func ComputeStay(pricePerNight float64, checkin, checkout time.Time) StayQuote {
	nights := DaysBetween(checkin, checkout)
	if nights < 1 {
		nights = 1
	}
	base := pricePerNight * float64(nights)
	ecoTax := roundHalfUp(base * EcoTaxRate)
	return StayQuote{
		PricePerNight: pricePerNight,
		Nights:        nights,
		Base:          base,
		EcoTax:        ecoTax,
		Total:         base + ecoTax,
	}
}

// DaysBetween returns the number of calendar days from one date to another.
// The time-of-day and zone offset of both values are ignored.
func DaysBetween(from, to time.Time) int {
	return int(CalendarDate(to).Sub(CalendarDate(from)) / (24 * time.Hour))
}

// CalendarDate truncates t to midnight UTC of its own calendar date.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
