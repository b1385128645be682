package domain

import "errors"

// ErrNotFound is returned by repo, catalog, and service functions when the
// requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a review comment that is too short).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// Booking validation failures. They are checked in the order listed and the
// first failure wins, so callers can show one specific message.
var (
	// ErrMissingDates is returned when check-in or check-out is not supplied.
	ErrMissingDates = errors.New("check-in and check-out dates are required")

	// ErrInvalidRange is returned when check-out is not after check-in.
	ErrInvalidRange = errors.New("check-out must be after check-in")

	// ErrDateConflict is returned when the requested stay overlaps an existing
	// booking for the same destination.
	ErrDateConflict = errors.New("these dates are already booked for this destination")

	// ErrInvalidGuests is returned when the guest count is outside 1–6.
	ErrInvalidGuests = errors.New("guests must be between 1 and 6")
)

// Itinerary mutation failures.
var (
	// ErrCapacityExceeded is returned when adding to a full itinerary.
	ErrCapacityExceeded = errors.New("itinerary is full")

	// ErrAlreadyPresent is returned when the destination is already planned.
	ErrAlreadyPresent = errors.New("destination already in itinerary")

	// ErrIndexOutOfRange is returned for a position that has no entry.
	ErrIndexOutOfRange = errors.New("itinerary index out of range")
)

// ErrForbidden is returned when the session's account type does not allow
// the operation (e.g. a traveler submitting a provider listing).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")
