package handler

import (
	"errors"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/ecotrip/internal/domain"
)

// BookingRequest is the body of POST /me/bookings. Dates are optional in the
// JSON so a missing date is reported as missing_dates, not a decode error.
type BookingRequest struct {
	DestinationID int64               `json:"destinationId"`
	Checkin       *openapi_types.Date `json:"checkin"`
	Checkout      *openapi_types.Date `json:"checkout"`
	Guests        int                 `json:"guests"`
}

// BookingResponse is a confirmed booking with calendar dates rendered as
// YYYY-MM-DD.
type BookingResponse struct {
	ID              string             `json:"id"`
	DestinationID   int64              `json:"destinationId"`
	DestinationName string             `json:"destinationName"`
	Location        string             `json:"location"`
	HeroImage       string             `json:"heroImage,omitempty"`
	Checkin         openapi_types.Date `json:"checkin"`
	Checkout        openapi_types.Date `json:"checkout"`
	Nights          int                `json:"nights"`
	Guests          int                `json:"guests"`
	PricePerNight   float64            `json:"pricePerNight"`
	EcoTax          float64            `json:"ecoTax"`
	TotalCost       float64            `json:"totalCost"`
	Status          string             `json:"status"`
	BookedAt        time.Time          `json:"bookedAt"`
	UserEmail       string             `json:"userEmail"`
}

// listBookings handles GET /me/bookings.
func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	bookings := sessionFrom(r).Bookings()
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

// createBooking handles POST /me/bookings.
func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingRequest
	if err := decodeJSON(r, &body); err != nil {
		s.requestError(w, r, err)
		return
	}
	if body.DestinationID == 0 {
		s.requestError(w, r, errors.New("destinationId is required"))
		return
	}

	b, err := sessionFrom(r).Book(r.Context(), body.DestinationID, requestToStay(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(b))
}

// --- mapping helpers --------------------------------------------------------

func requestToStay(body BookingRequest) domain.StayRequest {
	req := domain.StayRequest{Guests: body.Guests}
	if body.Checkin != nil {
		req.Checkin = body.Checkin.Time
	}
	if body.Checkout != nil {
		req.Checkout = body.Checkout.Time
	}
	return req
}

func bookingToResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		DestinationID:   b.DestinationID,
		DestinationName: b.DestinationName,
		Location:        b.Location,
		HeroImage:       b.HeroImage,
		Checkin:         openapi_types.Date{Time: b.Checkin},
		Checkout:        openapi_types.Date{Time: b.Checkout},
		Nights:          b.Nights,
		Guests:          b.Guests,
		PricePerNight:   b.PricePerNight,
		EcoTax:          b.EcoTax,
		TotalCost:       b.TotalCost,
		Status:          b.Status,
		BookedAt:        b.BookedAt,
		UserEmail:       b.Owner,
	}
}
