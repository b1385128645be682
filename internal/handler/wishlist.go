package handler

import "net/http"

// ToggleResponse reports wishlist membership after a toggle.
type ToggleResponse struct {
	DestinationID int64 `json:"destinationId"`
	Wishlisted    bool  `json:"wishlisted"`
	Count         int   `json:"count"`
}

// getWishlist handles GET /me/wishlist.
func (s *Server) getWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Wishlist())
}

// toggleWishlist handles POST /me/wishlist/{id}.
func (s *Server) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt64(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "destination not found"))
		return
	}

	sess := sessionFrom(r)
	member, err := sess.ToggleWishlist(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{
		DestinationID: id,
		Wishlisted:    member,
		Count:         len(sess.Wishlist().IDs),
	})
}
