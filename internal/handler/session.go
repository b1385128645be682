package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/middleware"
	"github.com/pkordes/ecotrip/internal/service"
)

type sessionKey struct{}

// requireSession resolves the X-Session-ID header to a live session and
// stores it in the request context. A missing or unknown id is rejected
// with 401.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.SessionHeader)
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "session required"))
			return
		}
		sess, err := s.sessions.Lookup(id)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "session expired or unknown"))
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session stored by requireSession.
func sessionFrom(r *http.Request) *service.Session {
	sess, _ := r.Context().Value(sessionKey{}).(*service.Session)
	return sess
}

// SessionResponse is returned by POST /sessions.
type SessionResponse struct {
	SessionID string      `json:"sessionId"`
	User      domain.User `json:"user"`
}

// createSession handles POST /sessions.
func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		s.requestError(w, r, err)
		return
	}

	sess, err := s.sessions.Login(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.ID(), User: sess.User()})
}

// deleteSession handles DELETE /sessions/current.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(sessionFrom(r).ID()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getMe handles GET /me.
func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).User())
}
