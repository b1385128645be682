// Package repo contains all persistence logic for per-user collections.
// Collections are stored as JSON documents in a key-value Store keyed by
// (owner, kind). Each backend has its own file; no business logic lives here.
package repo

import (
	"context"
	"fmt"
)

// Kind names a per-user collection.
type Kind string

// Collection kinds.
const (
	KindBookings         Kind = "bookings"
	KindWishlist         Kind = "wishlist"
	KindItinerary        Kind = "itinerary"
	KindStats            Kind = "stats"
	KindReviews          Kind = "reviews"
	KindProviderListings Kind = "provider_listings"

	// KindListingSeq holds the last issued provider listing id. It is stored
	// under SystemOwner, not under a user.
	KindListingSeq Kind = "listing_seq"
)

// SystemOwner owns records shared by all users. It is not a valid email, so
// it never collides with a user's keys.
const SystemOwner = "ecotrip"

// Key addresses one collection of one user. Owner is the user's email.
// Keeping the two parts separate means an email containing "_" can never
// collide with another user's key.
type Key struct {
	Owner string
	Kind  Kind
}

// String renders the legacy flat key, e.g. "bookings_ana@example.com".
// It is for logs only; backends never parse it.
func (k Key) String() string {
	return fmt.Sprintf("%s_%s", k.Kind, k.Owner)
}

// Store is the key-value capability the core persists through.
// Values are opaque JSON documents.
type Store interface {
	// Get returns the stored value for key.
	// Returns domain.ErrNotFound if nothing is stored under key.
	Get(ctx context.Context, key Key) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key Key, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key Key) error
}
