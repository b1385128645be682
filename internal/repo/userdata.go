package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/ecotrip/internal/domain"
)

// UserData is the typed repository for one user's collections on top of a
// Store.
//
// Reads degrade silently: an absent, unreadable, or corrupt document loads
// as the empty collection and never surfaces an error. Writes are always
// attempted; a failed write is logged and not returned, so a storage outage
// never fails a booking that was already accepted in memory.
//
// NextListingID is the exception: an id that might repeat is worse than a
// failed listing, so its errors are returned.
type UserData struct {
	store Store
	log   *slog.Logger

	seqMu sync.Mutex
}

// NewUserData constructs a UserData over store, logging degradations to log.
func NewUserData(store Store, log *slog.Logger) *UserData {
	return &UserData{store: store, log: log}
}

// Snapshot is everything stored for one user.
type Snapshot struct {
	Bookings  []domain.Booking
	Wishlist  domain.Wishlist
	Itinerary []domain.ItineraryEntry
	Stats     domain.ImpactStats
	Reviews   []domain.UserReview
	Listings  []domain.Destination
}

// LoadAll reads every collection for owner.
func (r *UserData) LoadAll(ctx context.Context, owner string) Snapshot {
	return Snapshot{
		Bookings:  load[[]domain.Booking](ctx, r, Key{owner, KindBookings}),
		Wishlist:  load[domain.Wishlist](ctx, r, Key{owner, KindWishlist}),
		Itinerary: load[[]domain.ItineraryEntry](ctx, r, Key{owner, KindItinerary}),
		Stats:     load[domain.ImpactStats](ctx, r, Key{owner, KindStats}),
		Reviews:   load[[]domain.UserReview](ctx, r, Key{owner, KindReviews}),
		Listings:  load[[]domain.Destination](ctx, r, Key{owner, KindProviderListings}),
	}
}

// SaveBookings persists owner's booking ledger.
func (r *UserData) SaveBookings(ctx context.Context, owner string, bookings []domain.Booking) {
	r.save(ctx, Key{owner, KindBookings}, bookings)
}

// SaveWishlist persists owner's wishlist.
func (r *UserData) SaveWishlist(ctx context.Context, owner string, w domain.Wishlist) {
	r.save(ctx, Key{owner, KindWishlist}, w)
}

// SaveItinerary persists owner's itinerary entries.
func (r *UserData) SaveItinerary(ctx context.Context, owner string, entries []domain.ItineraryEntry) {
	r.save(ctx, Key{owner, KindItinerary}, entries)
}

// SaveStats persists owner's impact statistics.
func (r *UserData) SaveStats(ctx context.Context, owner string, stats domain.ImpactStats) {
	r.save(ctx, Key{owner, KindStats}, stats)
}

// SaveReviews persists owner's review history.
func (r *UserData) SaveReviews(ctx context.Context, owner string, reviews []domain.UserReview) {
	r.save(ctx, Key{owner, KindReviews}, reviews)
}

// SaveListings persists owner's provider listings.
func (r *UserData) SaveListings(ctx context.Context, owner string, listings []domain.Destination) {
	r.save(ctx, Key{owner, KindProviderListings}, listings)
}

// NextListingID reserves a fresh catalog id for a provider listing. The id is
// greater than floor and than every id issued before over the same store,
// including ids of listings whose owners have not logged in since a restart.
func (r *UserData) NextListingID(ctx context.Context, floor int64) (int64, error) {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()

	key := Key{SystemOwner, KindListingSeq}
	var last int64
	raw, err := r.store.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return 0, fmt.Errorf("repo.UserData.NextListingID: %w", err)
	default:
		if err := json.Unmarshal(raw, &last); err != nil {
			return 0, fmt.Errorf("repo.UserData.NextListingID: decode %s: %w", key, err)
		}
	}

	next := max(last, floor) + 1
	raw, err = json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("repo.UserData.NextListingID: %w", err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		return 0, fmt.Errorf("repo.UserData.NextListingID: %w", err)
	}
	return next, nil
}

// Remove deletes one collection for owner. Failures are logged.
func (r *UserData) Remove(ctx context.Context, owner string, kind Kind) {
	key := Key{owner, kind}
	if err := r.store.Remove(ctx, key); err != nil {
		r.log.WarnContext(ctx, "storage remove failed", "key", key.String(), "error", err)
	}
}

// load decodes the document at key. An absent or unusable document yields
// the zero value; a partially decoded document is discarded.
func load[T any](ctx context.Context, r *UserData, key Key) T {
	var zero T
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.log.WarnContext(ctx, "storage read failed, using empty value", "key", key.String(), "error", err)
		}
		return zero
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		r.log.WarnContext(ctx, "stored value corrupt, using empty value", "key", key.String(), "error", err)
		return zero
	}
	return v
}

func (r *UserData) save(ctx context.Context, key Key, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		r.log.ErrorContext(ctx, "storage encode failed", "key", key.String(), "error", err)
		return
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		r.log.WarnContext(ctx, "storage write failed", "key", key.String(), "error", err)
	}
}
