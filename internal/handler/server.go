// Package handler implements the HTTP handlers for the ecotrip API.
// All handlers are methods on Server. They are split into domain-specific
// files (destinations.go, bookings.go, itinerary.go, ...) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/service"
	"github.com/pkordes/ecotrip/openapi"
)

// DestinationServicer defines the catalog operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a double without a catalog file.
type DestinationServicer interface {
	Search(f catalog.Filter) []domain.Destination
	Get(id int64) (domain.Destination, error)
	Quote(id int64, checkin, checkout time.Time) (domain.StayQuote, error)
}

// SessionServicer defines the session lifecycle the handlers depend on.
type SessionServicer interface {
	Login(ctx context.Context, in service.LoginInput) (*service.Session, error)
	Lookup(id string) (*service.Session, error)
	Logout(id string) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	destinations DestinationServicer
	sessions     SessionServicer
	log          *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(destinations DestinationServicer, sessions SessionServicer, log *slog.Logger) *Server {
	return &Server{destinations: destinations, sessions: sessions, log: log}
}

// Routes returns the API router. Routes under /me, and the write routes under
// /destinations, require a session.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.listDestinations)
		r.With(s.requireSession).Post("/", s.createListing)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getDestination)
			r.Get("/quote", s.getQuote)
			r.With(s.requireSession).Post("/reviews", s.createReview)
		})
	})

	r.Post("/sessions", s.createSession)
	r.With(s.requireSession).Delete("/sessions/current", s.deleteSession)

	r.Route("/me", func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/", s.getMe)
		r.Get("/bookings", s.listBookings)
		r.Post("/bookings", s.createBooking)

		r.Get("/wishlist", s.getWishlist)
		r.Post("/wishlist/{id}", s.toggleWishlist)

		r.Route("/itinerary", func(r chi.Router) {
			r.Get("/", s.getItinerary)
			r.Delete("/", s.clearItinerary)
			r.Post("/entries", s.addItineraryEntry)
			r.Patch("/entries/{index}", s.updateItineraryEntry)
			r.Delete("/entries/{index}", s.removeItineraryEntry)
			r.Post("/entries/{index}/move", s.moveItineraryEntry)
			r.Get("/summary", s.getItinerarySummary)
			r.Get("/export", s.exportItinerary)
			r.Post("/save", s.saveItinerary)
		})

		r.Get("/impact", s.getImpact)
		r.Get("/reviews", s.listReviews)
		r.Get("/listings", s.listListings)
	})

	return r
}

// getHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openapi.Document)
}
