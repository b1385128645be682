package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/repo"
)

// LoginInput identifies the user starting a session. There are no
// credentials: any well-formed email gets a session.
type LoginInput struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name"`
	AccountType string `json:"accountType" validate:"omitempty,oneof=traveler provider"`
}

// DefaultSessionIdleTTL is how long a session survives without requests.
const DefaultSessionIdleTTL = 24 * time.Hour

// SessionManager creates, finds, and discards sessions. Sessions live in
// process memory; the user's collections live in the repo. A session idle
// for longer than the idle TTL is gone: Lookup stops finding it and Sweep
// frees it.
type SessionManager struct {
	catalog *catalog.Catalog
	data    *repo.UserData
	ledger  *Ledger
	log     *slog.Logger
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager constructs a SessionManager with DefaultSessionIdleTTL.
// Session activity is timed with the ledger's clock.
func NewSessionManager(cat *catalog.Catalog, data *repo.UserData, ledger *Ledger, log *slog.Logger) *SessionManager {
	return &SessionManager{
		catalog:  cat,
		data:     data,
		ledger:   ledger,
		log:      log,
		idleTTL:  DefaultSessionIdleTTL,
		sessions: make(map[string]*Session),
	}
}

// WithIdleTTL sets the idle TTL and returns m. Call it before serving
// requests. A non-positive ttl keeps the current value.
func (m *SessionManager) WithIdleTTL(ttl time.Duration) *SessionManager {
	if ttl > 0 {
		m.idleTTL = ttl
	}
	return m
}

// Login starts a session for in.Email. Every stored collection for that user
// is loaded fresh, replacing whatever a previous session held. The user's
// provider listings are put back into the catalog.
func (m *SessionManager) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := checkStruct(in); err != nil {
		return nil, fmt.Errorf("service.SessionManager.Login: %w", err)
	}
	if in.Name == "" {
		in.Name, _, _ = strings.Cut(in.Email, "@")
	}
	if in.AccountType == "" {
		in.AccountType = domain.AccountTraveler
	}

	snap := m.data.LoadAll(ctx, in.Email)
	for _, l := range snap.Listings {
		if err := m.catalog.Restore(in.Email, l); err != nil {
			m.log.WarnContext(ctx, "stored listing rejected", "owner", in.Email, "id", l.ID, "error", err)
		}
	}

	s := &Session{
		id:        uuid.NewString(),
		user:      domain.User{Email: in.Email, Name: in.Name, AccountType: in.AccountType},
		catalog:   m.catalog,
		data:      m.data,
		ledger:    m.ledger,
		bookings:  snap.Bookings,
		wishlist:  snap.Wishlist,
		itinerary: domain.RestoreItinerary(snap.Itinerary),
		stats:     snap.Stats,
		reviews:   snap.Reviews,
		listings:  snap.Listings,
	}
	s.touch(m.ledger.now())

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.log.InfoContext(ctx, "session started", "session_id", s.id, "account_type", in.AccountType)
	return s, nil
}

// Lookup returns the live session with the given id and marks it active.
// Returns domain.ErrNotFound for an unknown, logged-out, or expired id.
func (m *SessionManager) Lookup(id string) (*Session, error) {
	now := m.ledger.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("service.SessionManager.Lookup: %w", domain.ErrNotFound)
	}
	if m.expired(s, now) {
		delete(m.sessions, id)
		return nil, fmt.Errorf("service.SessionManager.Lookup: session expired: %w", domain.ErrNotFound)
	}
	s.touch(now)
	return s, nil
}

// Sweep discards every expired session and returns how many it removed.
func (m *SessionManager) Sweep() int {
	now := m.ledger.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.InfoContext(ctx, "expired sessions removed", "count", n)
			}
		}
	}
}

// Len returns the number of live sessions, expired ones not yet swept included.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) expired(s *Session, now time.Time) bool {
	return now.Sub(s.lastActive()) > m.idleTTL
}

// Logout discards the session. Persisted collections are kept.
// Returns domain.ErrNotFound for an unknown id.
func (m *SessionManager) Logout(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("service.SessionManager.Logout: %w", domain.ErrNotFound)
	}
	delete(m.sessions, id)
	return nil
}
