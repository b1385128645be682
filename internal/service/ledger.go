// Package service contains the business logic for the eco-tourism API.
// Services validate inputs, enforce business rules, and orchestrate the
// catalog and per-user repositories. No storage code lives here.
package service

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkordes/ecotrip/internal/domain"
)

// Booking ids are "ETCP-<year>-<n>" with n drawn from [bookingIDMin, bookingIDMax].
const (
	bookingIDMin  = 10000
	bookingIDMax  = 99999
	maxIDAttempts = 1000
)

var errNoFreeBookingID = errors.New("no free booking id")

// Ledger validates stays and issues bookings. It holds no bookings itself;
// callers pass the ledger they own.
type Ledger struct {
	now  func() time.Time
	intn func(n int) int
}

// NewLedger constructs a Ledger. A nil now uses time.Now and a nil intn uses
// math/rand; tests inject both to get deterministic ids and timestamps.
func NewLedger(now func() time.Time, intn func(n int) int) *Ledger {
	if now == nil {
		now = time.Now
	}
	if intn == nil {
		intn = rand.IntN
	}
	return &Ledger{now: now, intn: intn}
}

// Create validates req against existing and returns the new booking.
// It does not append to existing.
func (l *Ledger) Create(owner string, dest domain.Destination, req domain.StayRequest, existing []domain.Booking) (domain.Booking, error) {
	stay, err := domain.ValidateStay(dest.ID, req, existing)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.Ledger.Create: %w", err)
	}

	now := l.now()
	id, err := l.newID(now, existing)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.Ledger.Create: %w", err)
	}
	return domain.NewBooking(id, owner, dest, stay, now), nil
}

// newID draws ids until one is not already used by existing.
func (l *Ledger) newID(now time.Time, existing []domain.Booking) (string, error) {
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.ID] = struct{}{}
	}
	for range maxIDAttempts {
		n := bookingIDMin + l.intn(bookingIDMax-bookingIDMin+1)
		id := fmt.Sprintf("ETCP-%d-%d", now.Year(), n)
		if _, dup := taken[id]; !dup {
			return id, nil
		}
	}
	return "", errNoFreeBookingID
}
