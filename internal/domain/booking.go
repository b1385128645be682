package domain

import "time"

// BookingStatusConfirmed is the only status a booking ever has.
const BookingStatusConfirmed = "confirmed"

// MaxGuests is the largest party a single booking accepts.
const MaxGuests = 6

// Booking is a confirmed stay. Destination fields are a denormalized copy taken
// at booking time; later catalog changes do not affect past bookings.
// Checkin and Checkout are calendar dates (midnight UTC).
type Booking struct {
	ID              string    `json:"id"`
	DestinationID   int64     `json:"destinationId"`
	DestinationName string    `json:"destinationName"`
	Location        string    `json:"location"`
	HeroImage       string    `json:"heroImage,omitempty"`
	Checkin         time.Time `json:"checkin"`
	Checkout        time.Time `json:"checkout"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	PricePerNight   float64   `json:"pricePerNight"`
	EcoTax          float64   `json:"ecoTax"`
	TotalCost       float64   `json:"totalCost"`
	Status          string    `json:"status"`
	BookedAt        time.Time `json:"bookedAt"`
	Owner           string    `json:"userEmail"`
}

// StayRequest is the user-entered part of a booking.
// Zero Checkin or Checkout means the date was not supplied.
type StayRequest struct {
	Checkin  time.Time
	Checkout time.Time
	Guests   int
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back stays (aEnd == bStart) do not.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ValidateStay checks a request against the existing bookings for the same
// destination. Checks run in order and the first failure wins:
// missing dates, inverted range, date conflict, guest count.
// On success it returns the normalized request (calendar dates, guests
// defaulted to 1 when zero).
func ValidateStay(destinationID int64, req StayRequest, existing []Booking) (StayRequest, error) {
	if req.Checkin.IsZero() || req.Checkout.IsZero() {
		return StayRequest{}, ErrMissingDates
	}
	in, out := CalendarDate(req.Checkin), CalendarDate(req.Checkout)
	if !out.After(in) {
		return StayRequest{}, ErrInvalidRange
	}
	for _, b := range existing {
		if b.DestinationID != destinationID {
			continue
		}
		if Overlaps(in, out, CalendarDate(b.Checkin), CalendarDate(b.Checkout)) {
			return StayRequest{}, ErrDateConflict
		}
	}
	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	if guests < 1 || guests > MaxGuests {
		return StayRequest{}, ErrInvalidGuests
	}
	return StayRequest{Checkin: in, Checkout: out, Guests: guests}, nil
}

// NewBooking builds a confirmed booking from an already validated request.
func NewBooking(id, owner string, dest Destination, req StayRequest, bookedAt time.Time) Booking {
	quote := ComputeStay(dest.PricePerNight, req.Checkin, req.Checkout)
	return Booking{
		ID:              id,
		DestinationID:   dest.ID,
		DestinationName: dest.Name,
		Location:        dest.Location,
		HeroImage:       dest.HeroImage,
		Checkin:         req.Checkin,
		Checkout:        req.Checkout,
		Nights:          quote.Nights,
		Guests:          req.Guests,
		PricePerNight:   dest.PricePerNight,
		EcoTax:          quote.EcoTax,
		TotalCost:       quote.Total,
		Status:          BookingStatusConfirmed,
		BookedAt:        bookedAt,
		Owner:           owner,
	}
}
