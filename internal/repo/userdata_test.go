package repo_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/repo"
)

// ---------------------------------------------------------------------------
// Mock store
// ---------------------------------------------------------------------------

// mockStore is a hand-written test double for repo.Store. Each field is a
// function; a nil field falls through to an in-memory store.
type mockStore struct {
	inner    repo.Store
	getFn    func(ctx context.Context, key repo.Key) ([]byte, error)
	setFn    func(ctx context.Context, key repo.Key, value []byte) error
	removeFn func(ctx context.Context, key repo.Key) error
}

func newMockStore() *mockStore { return &mockStore{inner: repo.NewMemStore()} }

func (m *mockStore) Get(ctx context.Context, key repo.Key) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return m.inner.Get(ctx, key)
}

func (m *mockStore) Set(ctx context.Context, key repo.Key, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return m.inner.Set(ctx, key, value)
}

func (m *mockStore) Remove(ctx context.Context, key repo.Key) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, key)
	}
	return m.inner.Remove(ctx, key)
}

// bufLogger returns a JSON logger writing into the returned buffer.
func bufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

const owner = "ana@example.com"

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestUserData_LoadAll_Empty(t *testing.T) {
	log, buf := bufLogger()
	ud := repo.NewUserData(repo.NewMemStore(), log)

	snap := ud.LoadAll(context.Background(), owner)

	assert.Empty(t, snap.Bookings)
	assert.Equal(t, 0, snap.Wishlist.Len())
	assert.Empty(t, snap.Itinerary)
	assert.Equal(t, domain.ImpactStats{}, snap.Stats)
	assert.Empty(t, snap.Reviews)
	assert.Empty(t, snap.Listings)
	assert.Empty(t, buf.String(), "absent documents are not worth a warning")
}

func TestUserData_RoundTrip(t *testing.T) {
	log, _ := bufLogger()
	ud := repo.NewUserData(repo.NewMemStore(), log)
	ctx := context.Background()

	in := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	booking := domain.Booking{
		ID:            "ETCP-2025-12345",
		DestinationID: 1,
		Owner:         owner,
		Checkin:       in,
		Checkout:      in.AddDate(0, 0, 3),
		Guests:        2,
		Nights:        3,
		TotalCost:     441,
		Status:        domain.BookingStatusConfirmed,
		BookedAt:      in.AddDate(0, 0, -10),
	}
	dest := domain.Destination{ID: 1, Name: "Cloud Forest Lodge", PricePerNight: 140, CarbonFootprint: 12.5, SustainabilityRating: 5}
	stats := domain.ImpactStats{Trips: 1, Carbon: 37.5, EcoPoints: 42}

	ud.SaveBookings(ctx, owner, []domain.Booking{booking})
	ud.SaveWishlist(ctx, owner, domain.NewWishlist([]int64{3, 1}))
	ud.SaveItinerary(ctx, owner, []domain.ItineraryEntry{{Destination: dest, Nights: 4}})
	ud.SaveStats(ctx, owner, stats)
	ud.SaveReviews(ctx, owner, []domain.UserReview{{DestinationID: 1, DestinationName: dest.Name}})
	ud.SaveListings(ctx, owner, []domain.Destination{dest})

	snap := ud.LoadAll(ctx, owner)

	require.Len(t, snap.Bookings, 1)
	assert.Equal(t, booking.ID, snap.Bookings[0].ID)
	assert.True(t, snap.Bookings[0].Checkin.Equal(in))
	assert.Equal(t, []int64{3, 1}, snap.Wishlist.IDs())
	require.Len(t, snap.Itinerary, 1)
	assert.Equal(t, 4, snap.Itinerary[0].Nights)
	assert.Equal(t, "Cloud Forest Lodge", snap.Itinerary[0].Name)
	assert.Equal(t, stats, snap.Stats)
	require.Len(t, snap.Reviews, 1)
	assert.Equal(t, dest.Name, snap.Reviews[0].DestinationName)
	require.Len(t, snap.Listings, 1)
	assert.Equal(t, dest.ID, snap.Listings[0].ID)
}

func TestUserData_CorruptDocumentLoadsEmpty(t *testing.T) {
	store := newMockStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, repo.Key{Owner: owner, Kind: repo.KindStats}, []byte(`{"trips":3,"carbon":`)))
	require.NoError(t, store.Set(ctx, repo.Key{Owner: owner, Kind: repo.KindBookings}, []byte(`{"not":"an array"}`)))

	log, buf := bufLogger()
	snap := repo.NewUserData(store, log).LoadAll(ctx, owner)

	assert.Equal(t, domain.ImpactStats{}, snap.Stats)
	assert.Empty(t, snap.Bookings)
	assert.Contains(t, buf.String(), "stored value corrupt")
}

func TestUserData_ReadFailureLoadsEmpty(t *testing.T) {
	store := newMockStore()
	store.getFn = func(context.Context, repo.Key) ([]byte, error) {
		return nil, errors.New("connection refused")
	}

	log, buf := bufLogger()
	snap := repo.NewUserData(store, log).LoadAll(context.Background(), owner)

	assert.Empty(t, snap.Bookings)
	assert.Contains(t, buf.String(), "storage read failed")
}

func TestUserData_WriteFailureIsLoggedNotReturned(t *testing.T) {
	store := newMockStore()
	var attempts int
	store.setFn = func(context.Context, repo.Key, []byte) error {
		attempts++
		return errors.New("quota exceeded")
	}

	log, buf := bufLogger()
	ud := repo.NewUserData(store, log)

	assert.NotPanics(t, func() {
		ud.SaveStats(context.Background(), owner, domain.ImpactStats{Trips: 1})
	})
	assert.Equal(t, 1, attempts, "the write must still be attempted")
	assert.Contains(t, buf.String(), "storage write failed")
	assert.Contains(t, buf.String(), "stats_"+owner)
}

func TestUserData_Remove(t *testing.T) {
	log, _ := bufLogger()
	store := repo.NewMemStore()
	ud := repo.NewUserData(store, log)
	ctx := context.Background()

	ud.SaveItinerary(ctx, owner, []domain.ItineraryEntry{{Destination: domain.Destination{ID: 1}, Nights: 2}})
	ud.Remove(ctx, owner, repo.KindItinerary)

	_, err := store.Get(ctx, repo.Key{Owner: owner, Kind: repo.KindItinerary})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "bookings_ana@example.com", repo.Key{Owner: owner, Kind: repo.KindBookings}.String())
}

func TestUserData_NextListingID(t *testing.T) {
	log, _ := bufLogger()
	store := repo.NewMemStore()
	ctx := context.Background()

	ud := repo.NewUserData(store, log)
	first, err := ud.NextListingID(ctx, 3)
	require.NoError(t, err)
	second, err := ud.NextListingID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), first)
	assert.Equal(t, int64(5), second)

	// A new process over the same store keeps counting, even when its own
	// catalog only knows the file ids.
	restarted := repo.NewUserData(store, log)
	third, err := restarted.NextListingID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), third)

	// A catalog that has grown past the counter wins.
	fourth, err := restarted.NextListingID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(101), fourth)
}

func TestUserData_NextListingID_Errors(t *testing.T) {
	log, _ := bufLogger()
	ctx := context.Background()
	seqKey := repo.Key{Owner: repo.SystemOwner, Kind: repo.KindListingSeq}

	t.Run("read failure", func(t *testing.T) {
		store := newMockStore()
		store.getFn = func(context.Context, repo.Key) ([]byte, error) { return nil, errors.New("connection reset") }

		_, err := repo.NewUserData(store, log).NextListingID(ctx, 3)

		assert.ErrorContains(t, err, "connection reset")
	})

	t.Run("write failure", func(t *testing.T) {
		store := newMockStore()
		store.setFn = func(context.Context, repo.Key, []byte) error { return errors.New("read-only replica") }

		_, err := repo.NewUserData(store, log).NextListingID(ctx, 3)

		assert.ErrorContains(t, err, "read-only replica")
	})

	t.Run("corrupt counter", func(t *testing.T) {
		store := repo.NewMemStore()
		require.NoError(t, store.Set(ctx, seqKey, []byte(`"seven"`)))

		_, err := repo.NewUserData(store, log).NextListingID(ctx, 3)

		assert.Error(t, err)
	})
}
