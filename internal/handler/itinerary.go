package handler

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkordes/ecotrip/internal/domain"
)

// exportFilename is the download name offered for exported itineraries.
const exportFilename = "etcp-itinerary"

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{
	"name", "location", "country", "nights", "price_per_night",
	"estimated_cost", "sustainability_rating", "certifications", "carbon_footprint",
}

// ItineraryResponse is the working itinerary with its summary.
type ItineraryResponse struct {
	Entries []domain.ItineraryEntry `json:"entries"`
	Summary domain.ItinerarySummary `json:"summary"`
}

// AddEntryRequest is the body of POST /me/itinerary/entries.
type AddEntryRequest struct {
	DestinationID int64 `json:"destinationId"`
}

// UpdateEntryRequest is the body of PATCH /me/itinerary/entries/{index}.
type UpdateEntryRequest struct {
	Nights *int `json:"nights"`
}

// MoveEntryRequest is the body of POST /me/itinerary/entries/{index}/move.
type MoveEntryRequest struct {
	To *int `json:"to"`
}

// getItinerary handles GET /me/itinerary.
func (s *Server) getItinerary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, itineraryResponse(r))
}

// clearItinerary handles DELETE /me/itinerary.
func (s *Server) clearItinerary(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).ClearItinerary()
	w.WriteHeader(http.StatusNoContent)
}

// addItineraryEntry handles POST /me/itinerary/entries.
func (s *Server) addItineraryEntry(w http.ResponseWriter, r *http.Request) {
	var body AddEntryRequest
	if err := decodeJSON(r, &body); err != nil {
		s.requestError(w, r, err)
		return
	}
	if body.DestinationID == 0 {
		s.requestError(w, r, errors.New("destinationId is required"))
		return
	}

	if err := sessionFrom(r).AddToItinerary(body.DestinationID); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryResponse(r))
}

// updateItineraryEntry handles PATCH /me/itinerary/entries/{index}.
// Nights outside 1–30 are clamped, not rejected.
func (s *Server) updateItineraryEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(r, "index")
	if !ok {
		s.requestError(w, r, errors.New("index must be an integer"))
		return
	}
	var body UpdateEntryRequest
	if err := decodeJSON(r, &body); err != nil {
		s.requestError(w, r, err)
		return
	}
	if body.Nights == nil {
		s.requestError(w, r, errors.New("nights is required"))
		return
	}

	if _, err := sessionFrom(r).SetItineraryNights(index, *body.Nights); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse(r))
}

// removeItineraryEntry handles DELETE /me/itinerary/entries/{index}.
func (s *Server) removeItineraryEntry(w http.ResponseWriter, r *http.Request) {
	index, ok := pathInt(r, "index")
	if !ok {
		s.requestError(w, r, errors.New("index must be an integer"))
		return
	}

	if _, err := sessionFrom(r).RemoveFromItinerary(index); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse(r))
}

// moveItineraryEntry handles POST /me/itinerary/entries/{index}/move.
func (s *Server) moveItineraryEntry(w http.ResponseWriter, r *http.Request) {
	from, ok := pathInt(r, "index")
	if !ok {
		s.requestError(w, r, errors.New("index must be an integer"))
		return
	}
	var body MoveEntryRequest
	if err := decodeJSON(r, &body); err != nil {
		s.requestError(w, r, err)
		return
	}
	if body.To == nil {
		s.requestError(w, r, errors.New("to is required"))
		return
	}

	if err := sessionFrom(r).MoveItineraryEntry(from, *body.To); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse(r))
}

// getItinerarySummary handles GET /me/itinerary/summary.
func (s *Server) getItinerarySummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).ItinerarySummary())
}

// saveItinerary handles POST /me/itinerary/save.
func (s *Server) saveItinerary(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r).SaveItinerary(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// exportItinerary handles GET /me/itinerary/export.
// The document is offered as a download. Use ?format=csv to receive CSV;
// default is JSON.
func (s *Server) exportItinerary(w http.ResponseWriter, r *http.Request) {
	doc := sessionFrom(r).ExportItinerary()

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`.csv"`)
		w.Header().Set("Content-Type", "text/csv")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(exportToCSV(doc))
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename+`.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// --- mapping helpers --------------------------------------------------------

func itineraryResponse(r *http.Request) ItineraryResponse {
	view := sessionFrom(r).ItineraryView()
	return ItineraryResponse{Entries: view.Entries, Summary: view.Summary}
}

// exportToCSV encodes one row per planned destination. Certifications within
// a row are pipe-separated ("|") to keep each destination on a single line.
func exportToCSV(doc domain.ItineraryExport) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, d := range doc.Destinations {
		//nolint:errcheck
		w.Write([]string{
			d.Name,
			d.Location,
			d.Country,
			strconv.Itoa(d.Nights),
			strconv.FormatFloat(d.PricePerNight, 'f', -1, 64),
			strconv.FormatFloat(d.EstimatedCost, 'f', -1, 64),
			strconv.Itoa(d.SustainabilityRating),
			strings.Join(d.Certifications, "|"),
			d.CarbonFootprint,
		})
	}
	w.Flush()
	return buf.Bytes()
}
