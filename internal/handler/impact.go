package handler

import "net/http"

// getImpact handles GET /me/impact.
func (s *Server) getImpact(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Impact())
}

// listReviews handles GET /me/reviews.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Reviews())
}

// listListings handles GET /me/listings.
func (s *Server) listListings(w http.ResponseWriter, r *http.Request) {
	listings := sessionFrom(r).Listings()
	out := make([]DestinationResponse, len(listings))
	for i, d := range listings {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}
