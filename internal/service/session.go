package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/repo"
)

// Review limits.
const (
	minReviewComment = 10
	reviewCountry    = "Verified Traveler"
)

// Session is one logged-in user's working state: the collections loaded at
// login plus the in-progress itinerary. All methods are safe for concurrent
// use; mutations are serialized by the session's own lock.
//
// Bookings, wishlist, stats, reviews, and listings are persisted on every
// change. The itinerary is persisted only by SaveItinerary.
type Session struct {
	id      string
	user    domain.User
	catalog *catalog.Catalog
	data    *repo.UserData
	ledger  *Ledger

	lastSeen atomic.Int64 // unix nanoseconds of the latest request

	mu        sync.Mutex
	bookings  []domain.Booking
	wishlist  domain.Wishlist
	itinerary domain.Itinerary
	stats     domain.ImpactStats
	reviews   []domain.UserReview
	listings  []domain.Destination
}

// ID returns the opaque session id.
func (s *Session) ID() string { return s.id }

// User returns the session owner.
func (s *Session) User() domain.User { return s.user }

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Session) lastActive() time.Time { return time.Unix(0, s.lastSeen.Load()) }

// ---- bookings --------------------------------------------------------------

// Book validates and records a stay at destID. On success the booking is
// appended to the ledger, impact stats are updated, and both are persisted.
func (s *Session) Book(ctx context.Context, destID int64, req domain.StayRequest) (domain.Booking, error) {
	dest, err := s.catalog.ByID(destID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.Session.Book: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.ledger.Create(s.user.Email, dest, req, s.bookings)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.Session.Book: %w", err)
	}
	s.bookings = append(s.bookings, b)
	s.stats.RecordTrip(dest, b.Nights, b.TotalCost)

	s.data.SaveBookings(ctx, s.user.Email, s.bookings)
	s.data.SaveStats(ctx, s.user.Email, s.stats)
	return b, nil
}

// Bookings returns the ledger in booking order.
func (s *Session) Bookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Booking{}, s.bookings...)
}

// ---- wishlist --------------------------------------------------------------

// WishlistView is the wishlist with its destinations resolved. IDs whose
// destination is no longer in the catalog appear in IDs only.
type WishlistView struct {
	IDs          []int64              `json:"ids"`
	Destinations []domain.Destination `json:"destinations"`
}

// ToggleWishlist adds or removes destID and returns the new membership.
// Adding an id that is not in the catalog returns domain.ErrNotFound;
// removing one always succeeds.
func (s *Session) ToggleWishlist(ctx context.Context, destID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.wishlist.Contains(destID) {
		if _, err := s.catalog.ByID(destID); err != nil {
			return false, fmt.Errorf("service.Session.ToggleWishlist: %w", err)
		}
	}
	member := s.wishlist.Toggle(destID)
	s.data.SaveWishlist(ctx, s.user.Email, s.wishlist)
	return member, nil
}

// Wishlist returns the wishlist in the order items were added.
func (s *Session) Wishlist() WishlistView {
	s.mu.Lock()
	ids := s.wishlist.IDs()
	s.mu.Unlock()

	view := WishlistView{IDs: ids, Destinations: []domain.Destination{}}
	for _, id := range ids {
		if d, err := s.catalog.ByID(id); err == nil {
			view.Destinations = append(view.Destinations, d)
		}
	}
	return view
}

// ---- itinerary -------------------------------------------------------------

// Itinerary returns the planned entries in order.
func (s *Session) Itinerary() []domain.ItineraryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itinerary.Entries()
}

// ItineraryView is the working itinerary with its summary, taken together so
// the two always agree.
type ItineraryView struct {
	Entries []domain.ItineraryEntry `json:"entries"`
	Summary domain.ItinerarySummary `json:"summary"`
}

// ItineraryView returns the planned entries and their summary under one lock.
func (s *Session) ItineraryView() ItineraryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItineraryView{Entries: s.itinerary.Entries(), Summary: s.itinerary.Summarize()}
}

// AddToItinerary plans destID for the default number of nights.
func (s *Session) AddToItinerary(destID int64) error {
	dest, err := s.catalog.ByID(destID)
	if err != nil {
		return fmt.Errorf("service.Session.AddToItinerary: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.itinerary.Add(dest); err != nil {
		return fmt.Errorf("service.Session.AddToItinerary: %w", err)
	}
	return nil
}

// RemoveFromItinerary deletes the entry at index and returns it.
func (s *Session) RemoveFromItinerary(index int) (domain.ItineraryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.itinerary.Remove(index)
	if err != nil {
		return domain.ItineraryEntry{}, fmt.Errorf("service.Session.RemoveFromItinerary: %w", err)
	}
	return e, nil
}

// SetItineraryNights sets the nights of the entry at index and returns the
// clamped value stored.
func (s *Session) SetItineraryNights(index, nights int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.itinerary.SetNights(index, nights)
	if err != nil {
		return 0, fmt.Errorf("service.Session.SetItineraryNights: %w", err)
	}
	return n, nil
}

// MoveItineraryEntry reorders the entry at from to position to.
func (s *Session) MoveItineraryEntry(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.itinerary.Move(from, to); err != nil {
		return fmt.Errorf("service.Session.MoveItineraryEntry: %w", err)
	}
	return nil
}

// ClearItinerary empties the working itinerary. The saved copy is untouched
// until the next SaveItinerary.
func (s *Session) ClearItinerary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary.Clear()
}

// ItinerarySummary aggregates the working itinerary.
func (s *Session) ItinerarySummary() domain.ItinerarySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itinerary.Summarize()
}

// ExportItinerary renders the working itinerary as a downloadable document.
func (s *Session) ExportItinerary() domain.ItineraryExport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itinerary.Export(s.ledger.now())
}

// SaveItinerary persists the working itinerary. Saving an empty itinerary
// removes the stored copy.
func (s *Session) SaveItinerary(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.itinerary.Len() == 0 {
		s.data.Remove(ctx, s.user.Email, repo.KindItinerary)
		return
	}
	s.data.SaveItinerary(ctx, s.user.Email, s.itinerary.Entries())
}

// ---- impact ----------------------------------------------------------------

// Impact is the user's dashboard: lifetime stats, trees to offset them, and
// every badge with its unlock state.
type Impact struct {
	Stats         domain.ImpactStats `json:"stats"`
	TreesToOffset int                `json:"treesToOffset"`
	Badges        []domain.Badge     `json:"badges"`
}

// Impact computes the dashboard from the current stats and wishlist.
func (s *Session) Impact() Impact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Impact{
		Stats:         s.stats,
		TreesToOffset: s.stats.TreesToOffset(),
		Badges:        domain.EvaluateBadges(s.stats, s.wishlist.Len()),
	}
}

// ---- reviews ---------------------------------------------------------------

// SubmitReview attaches a review by the session user to destID and records it
// in the user's history. rating must be 1–5 and the trimmed comment at least
// ten characters; otherwise domain.ErrValidation is returned.
func (s *Session) SubmitReview(ctx context.Context, destID int64, rating int, comment string) (domain.Review, error) {
	dest, err := s.catalog.ByID(destID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.Session.SubmitReview: %w", err)
	}
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("service.Session.SubmitReview: %w: rating must be between 1 and 5", domain.ErrValidation)
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) < minReviewComment {
		return domain.Review{}, fmt.Errorf("service.Session.SubmitReview: %w: comment must be at least %d characters", domain.ErrValidation, minReviewComment)
	}

	r := domain.Review{
		Author:  s.user.Name,
		Country: reviewCountry,
		Rating:  rating,
		Comment: comment,
		Date:    s.ledger.now().Format("2006-01-02"),
		Avatar:  initial(s.user.Name),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.AddReview(destID, r); err != nil {
		return domain.Review{}, fmt.Errorf("service.Session.SubmitReview: %w", err)
	}
	s.reviews = append(s.reviews, domain.UserReview{DestinationID: dest.ID, DestinationName: dest.Name, Review: r})
	s.data.SaveReviews(ctx, s.user.Email, s.reviews)
	return r, nil
}

// Reviews returns the reviews the user has written.
func (s *Session) Reviews() []domain.UserReview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.UserReview{}, s.reviews...)
}

// ---- provider listings -----------------------------------------------------

// AddListing publishes a provider's destination to the catalog and records it
// in the provider's listings. Only provider accounts may list.
func (s *Session) AddListing(ctx context.Context, in ListingInput) (domain.Destination, error) {
	if s.user.AccountType != domain.AccountProvider {
		return domain.Destination{}, fmt.Errorf("service.Session.AddListing: %w", domain.ErrForbidden)
	}
	d, err := in.toDestination()
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Session.AddListing: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID, err = s.data.NextListingID(ctx, s.catalog.MaxID())
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Session.AddListing: %w", err)
	}
	added, err := s.catalog.Add(s.user.Email, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.Session.AddListing: %w", err)
	}
	s.listings = append(s.listings, added)
	s.data.SaveListings(ctx, s.user.Email, s.listings)
	return added, nil
}

// Listings returns the destinations this provider has listed.
func (s *Session) Listings() []domain.Destination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Destination{}, s.listings...)
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
