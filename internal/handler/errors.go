package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/ecotrip/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail as {"error":{...}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// errorKinds maps domain sentinels to HTTP statuses and error codes.
// Order matters only where one error wraps several sentinels; the first
// match wins.
var errorKinds = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrDateConflict, http.StatusConflict, "date_conflict"},
	{domain.ErrAlreadyPresent, http.StatusConflict, "already_present"},
	{domain.ErrMissingDates, http.StatusUnprocessableEntity, "missing_dates"},
	{domain.ErrInvalidRange, http.StatusUnprocessableEntity, "invalid_range"},
	{domain.ErrInvalidGuests, http.StatusUnprocessableEntity, "invalid_guests"},
	{domain.ErrCapacityExceeded, http.StatusUnprocessableEntity, "capacity_exceeded"},
	{domain.ErrIndexOutOfRange, http.StatusUnprocessableEntity, "index_out_of_range"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
}

// writeError maps err to a status and JSON error body. Errors that match no
// domain sentinel are logged and reported as 500 without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("payload_too_large", "request body too large"))
		return
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			writeJSON(w, k.status, errorBody(k.code, unwrapMessage(err, k.err)))
			return
		}
	}
	s.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// requestError reports a request rejected before reaching the service layer
// (e.g. missing or malformed body).
func (s *Server) requestError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", err.Error()))
}

// unwrapMessage extracts the human-readable part of a wrapped sentinel error.
//
//	"service.Session.SubmitReview: validation error: rating must be between 1 and 5" → "rating must be between 1 and 5"
//	"service.Session.Book: catalog.Catalog.ByID: destination 9: not found"          → "destination 9 not found"
//	"service.Ledger.Create: these dates are already booked for this destination"    → the sentinel text
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error()

	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return marker
	}
	if detail, ok := strings.CutPrefix(msg[i+len(marker):], ": "); ok && detail != "" {
		return detail
	}

	// "<context>: <subject>: not found" reads better as "<subject> not found".
	if before, ok := strings.CutSuffix(msg, ": "+marker); ok {
		if i := strings.LastIndex(before, ": "); i >= 0 {
			before = before[i+2:]
		}
		if before != "" && !strings.Contains(before, ".") {
			return before + " " + marker
		}
	}
	return marker
}
