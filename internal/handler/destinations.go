package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/service"
)

// DestinationResponse is a destination with its derived average rating.
type DestinationResponse struct {
	domain.Destination
	AverageRating float64 `json:"averageRating"`
}

// QuoteResponse prices a prospective stay.
type QuoteResponse struct {
	DestinationID int64              `json:"destinationId"`
	Checkin       openapi_types.Date `json:"checkin"`
	Checkout      openapi_types.Date `json:"checkout"`
	Nights        int                `json:"nights"`
	PricePerNight float64            `json:"pricePerNight"`
	Base          float64            `json:"base"`
	EcoTax        float64            `json:"ecoTax"`
	Total         float64            `json:"total"`
}

// ReviewRequest is the body of POST /destinations/{id}/reviews.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// listDestinations handles GET /destinations.
// Query parameters: location, activity (repeatable), min_rating, cert
// (repeatable), max_price, q, sort.
func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		s.requestError(w, r, err)
		return
	}

	dests := s.destinations.Search(f)
	out := make([]DestinationResponse, len(dests))
	for i, d := range dests {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// getDestination handles GET /destinations/{id}.
func (s *Server) getDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "destination not found"))
		return
	}

	d, err := s.destinations.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// getQuote handles GET /destinations/{id}/quote?checkin=YYYY-MM-DD&checkout=YYYY-MM-DD.
func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "destination not found"))
		return
	}
	checkin, err := queryDate(r, "checkin")
	if err != nil {
		s.requestError(w, r, err)
		return
	}
	checkout, err := queryDate(r, "checkout")
	if err != nil {
		s.requestError(w, r, err)
		return
	}

	q, err := s.destinations.Quote(id, checkin, checkout)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{
		DestinationID: id,
		Checkin:       openapi_types.Date{Time: checkin},
		Checkout:      openapi_types.Date{Time: checkout},
		Nights:        q.Nights,
		PricePerNight: q.PricePerNight,
		Base:          q.Base,
		EcoTax:        q.EcoTax,
		Total:         q.Total,
	})
}

// createListing handles POST /destinations (provider accounts only).
func (s *Server) createListing(w http.ResponseWriter, r *http.Request) {
	var in service.ListingInput
	if err := decodeJSON(r, &in); err != nil {
		s.requestError(w, r, err)
		return
	}

	d, err := sessionFrom(r).AddListing(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(d))
}

// createReview handles POST /destinations/{id}/reviews.
func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "destination not found"))
		return
	}
	var body ReviewRequest
	if err := decodeJSON(r, &body); err != nil {
		s.requestError(w, r, err)
		return
	}

	review, err := sessionFrom(r).SubmitReview(r.Context(), id, body.Rating, body.Comment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// --- mapping helpers --------------------------------------------------------

func destinationToResponse(d domain.Destination) DestinationResponse {
	if d.Reviews == nil {
		d.Reviews = []domain.Review{}
	}
	return DestinationResponse{Destination: d, AverageRating: d.AverageRating()}
}

// filterFromQuery builds a catalog.Filter from the query string.
func filterFromQuery(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Location:       strings.TrimSpace(q.Get("location")),
		Activities:     q["activity"],
		Certifications: q["cert"],
		Text:           strings.TrimSpace(q.Get("q")),
		Sort:           q.Get("sort"),
	}
	if v := q.Get("min_rating"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return catalog.Filter{}, errors.New("min_rating must be an integer")
		}
		f.MinRating = n
	}
	if v := q.Get("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return catalog.Filter{}, errors.New("max_price must be a number")
		}
		f.MaxPrice = p
	}
	return f, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter. An absent value
// yields the zero time so the service can report missing dates itself.
func queryDate(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(openapi_types.DateFormat, v)
	if err != nil {
		return time.Time{}, errors.New(name + " must be a date in YYYY-MM-DD format")
	}
	return t, nil
}
