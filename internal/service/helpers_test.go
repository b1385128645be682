package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/repo"
	"github.com/pkordes/ecotrip/internal/service"
)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixedIntn always draws n, so booking ids are predictable.
func fixedIntn(n int) func(int) int {
	return func(int) int { return n }
}

// sequentialIntn draws start, start+1, ... so consecutive bookings get
// consecutive ids.
func sequentialIntn(start int) func(int) int {
	next := start
	return func(int) int {
		n := next
		next++
		return n
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDestinations() []domain.Destination {
	return []domain.Destination{
		{
			ID: 1, Name: "Canopy Lodge", Location: "Monteverde", Country: "Costa Rica",
			SustainabilityRating: 5, PricePerNight: 180, CarbonFootprint: 8,
			ActivityTypes: []string{"hiking"}, Certifications: []string{"Green Key"},
			Reviews: []domain.Review{},
		},
		{
			ID: 2, Name: "Fjord Cabin", Location: "Geiranger", Country: "Norway",
			SustainabilityRating: 4, PricePerNight: 240, CarbonFootprint: 5,
			Reviews: []domain.Review{},
		},
		{
			ID: 3, Name: "Desert Camp", Location: "Wadi Rum", Country: "Jordan",
			SustainabilityRating: 3, PricePerNight: 95, CarbonFootprint: 14,
			Reviews: []domain.Review{},
		},
	}
}

// fixture bundles a manager with the store and catalog behind it so tests can
// inspect persisted state or start a second manager over the same store.
type fixture struct {
	store   repo.Store
	catalog *catalog.Catalog
	manager *service.SessionManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithStore(t, repo.NewMemStore())
}

func newFixtureWithStore(t *testing.T, store repo.Store) *fixture {
	t.Helper()
	cat := catalog.New(sampleDestinations())
	data := repo.NewUserData(store, discardLogger())
	ledger := service.NewLedger(fixedClock, sequentialIntn(2345))
	return &fixture{
		store:   store,
		catalog: cat,
		manager: service.NewSessionManager(cat, data, ledger, discardLogger()),
	}
}

func (f *fixture) login(t *testing.T, email, accountType string) *service.Session {
	t.Helper()
	s, err := f.manager.Login(context.Background(), service.LoginInput{
		Email:       email,
		Name:        "ana",
		AccountType: accountType,
	})
	require.NoError(t, err)
	return s
}

// stored loads what the repo holds for owner.
func (f *fixture) stored(owner string) repo.Snapshot {
	return repo.NewUserData(f.store, discardLogger()).LoadAll(context.Background(), owner)
}
