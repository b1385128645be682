package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/handler"
	"github.com/pkordes/ecotrip/internal/middleware"
	"github.com/pkordes/ecotrip/internal/repo"
	"github.com/pkordes/ecotrip/internal/service"
)

// mockDestinations is a test double for handler.DestinationServicer.
// Set only the method fields your test needs.
type mockDestinations struct {
	search func(f catalog.Filter) []domain.Destination
	get    func(id int64) (domain.Destination, error)
	quote  func(id int64, checkin, checkout time.Time) (domain.StayQuote, error)
}

func (m *mockDestinations) Search(f catalog.Filter) []domain.Destination { return m.search(f) }
func (m *mockDestinations) Get(id int64) (domain.Destination, error)      { return m.get(id) }
func (m *mockDestinations) Quote(id int64, in, out time.Time) (domain.StayQuote, error) {
	return m.quote(id, in, out)
}

// compile-time check: mockDestinations must satisfy handler.DestinationServicer.
var _ handler.DestinationServicer = (*mockDestinations)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testDestinations returns eight destinations, one more than an itinerary
// holds. Destination n costs 100*n per night with n kg CO2 per night.
func testDestinations() []domain.Destination {
	out := make([]domain.Destination, 0, 8)
	for n := int64(1); n <= 8; n++ {
		out = append(out, domain.Destination{
			ID:                   n,
			Name:                 fmt.Sprintf("Lodge %d", n),
			Location:             "Monteverde",
			Country:              "Costa Rica",
			SustainabilityRating: int(n%5) + 1,
			Certifications:       []string{"Green Key"},
			ActivityTypes:        []string{"hiking"},
			PricePerNight:        float64(100 * n),
			CarbonFootprint:      float64(n),
			Reviews:              []domain.Review{},
		})
	}
	return out
}

type testAPI struct {
	handler http.Handler
	store   repo.Store
	catalog *catalog.Catalog
}

// newTestAPI wires real services over an in-memory store, exactly as main.go
// wires them, minus the ambient middleware.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := repo.NewMemStore()
	cat := catalog.New(testDestinations())
	data := repo.NewUserData(store, discardLogger())
	ledger := service.NewLedger(func() time.Time { return fixedNow }, nil)
	sessions := service.NewSessionManager(cat, data, ledger, discardLogger())
	srv := handler.NewServer(service.NewDestinationService(cat), sessions, discardLogger())
	return &testAPI{handler: srv.Routes(), store: store, catalog: cat}
}

// do sends a request with an optional JSON body and session id.
func (a *testAPI) do(t *testing.T, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			r = bytes.NewBufferString(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewBuffer(b)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// login starts a session and returns its id.
func (a *testAPI) login(t *testing.T, email, accountType string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/sessions", "", map[string]string{
		"email":       email,
		"name":        "Ana",
		"accountType": accountType,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp handler.SessionResponse
	decode(t, rec, &resp)
	return resp.SessionID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// requireError asserts the status and error code of an error response and
// returns its message.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) string {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body handler.ErrorResponse
	decode(t, rec, &body)
	require.Equal(t, code, body.Error.Code)
	return body.Error.Message
}
