// Package catalog holds the destination records loaded at startup.
// Records are validated at the load boundary; malformed entries are
// quarantined and reported instead of reaching the rest of the system.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/ecotrip/internal/domain"
)

// Catalog is the in-memory destination store. It is safe for concurrent use.
// Apart from provider listings and guest reviews, records never change after
// Load.
type Catalog struct {
	mu    sync.RWMutex
	dests []domain.Destination
	byID  map[int64]int
	owner map[int64]string // provider listings only
}

// ErrIDTaken is returned when a listing's id already names another
// destination.
var ErrIDTaken = errors.New("destination id already taken")

// Rejected describes a catalog record that failed validation.
type Rejected struct {
	Index  int
	ID     int64
	Reason string
}

// LoadReport summarizes a Load.
type LoadReport struct {
	Loaded   int
	Rejected []Rejected
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New builds a catalog from already validated destinations.
// Destinations with a duplicate id are ignored.
func New(dests []domain.Destination) *Catalog {
	c := &Catalog{byID: make(map[int64]int, len(dests)), owner: make(map[int64]string)}
	for _, d := range dests {
		if _, dup := c.byID[d.ID]; dup {
			continue
		}
		c.byID[d.ID] = len(c.dests)
		c.dests = append(c.dests, d.Clone())
	}
	return c
}

// Load decodes a JSON array of destination records from r.
// Each record is decoded and validated on its own; invalid records and
// duplicate ids are listed in the report and left out of the catalog.
// An error is returned only when r does not hold a JSON array.
func Load(r io.Reader) (*Catalog, LoadReport, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return New(nil), LoadReport{}, fmt.Errorf("catalog.Load: decode: %w", err)
	}

	var (
		report LoadReport
		valid  []domain.Destination
		seen   = make(map[int64]bool, len(raw))
	)
	for i, msg := range raw {
		var d domain.Destination
		if err := json.Unmarshal(msg, &d); err != nil {
			report.Rejected = append(report.Rejected, Rejected{Index: i, Reason: err.Error()})
			continue
		}
		if err := Validate(d); err != nil {
			report.Rejected = append(report.Rejected, Rejected{Index: i, ID: d.ID, Reason: err.Error()})
			continue
		}
		if seen[d.ID] {
			report.Rejected = append(report.Rejected, Rejected{Index: i, ID: d.ID, Reason: "duplicate id"})
			continue
		}
		seen[d.ID] = true
		valid = append(valid, d)
	}
	report.Loaded = len(valid)
	return New(valid), report, nil
}

// LoadFile loads the catalog at path. A missing or unreadable file yields an
// empty catalog: the failure is logged and the service keeps running over
// zero destinations.
func LoadFile(path string, log *slog.Logger) *Catalog {
	f, err := os.Open(path)
	if err != nil {
		log.Error("catalog unavailable, starting empty", "path", path, "error", err)
		return New(nil)
	}
	defer f.Close()

	c, report, err := Load(f)
	if err != nil {
		log.Error("catalog unreadable, starting empty", "path", path, "error", err)
		return c
	}
	for _, r := range report.Rejected {
		log.Warn("catalog record rejected", "index", r.Index, "id", r.ID, "reason", r.Reason)
	}
	log.Info("catalog loaded", "path", path, "destinations", report.Loaded, "rejected", len(report.Rejected))
	return c
}

// Validate checks a destination against its struct constraints and returns a
// domain.ErrValidation describing the first offending fields.
func Validate(d domain.Destination) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// Len returns the number of destinations.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dests)
}

// All returns copies of every destination in load order.
func (c *Catalog) All() []domain.Destination {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Destination, len(c.dests))
	for i, d := range c.dests {
		out[i] = d.Clone()
	}
	return out
}

// ByID returns a copy of the destination with the given id.
// Returns domain.ErrNotFound if there is none.
func (c *Catalog) ByID(id int64) (domain.Destination, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return domain.Destination{}, fmt.Errorf("catalog.Catalog.ByID: destination %d: %w", id, domain.ErrNotFound)
	}
	return c.dests[i].Clone(), nil
}

// MaxID returns the highest destination id in the catalog, or 0 when empty.
func (c *Catalog) MaxID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var maxID int64
	for _, d := range c.dests {
		maxID = max(maxID, d.ID)
	}
	return maxID
}

// Add validates a provider listing owned by owner and appends it under its
// own id, which the caller reserves beforehand. The stored copy is returned.
// Returns ErrIDTaken if the id already names a destination.
func (c *Catalog) Add(owner string, d domain.Destination) (domain.Destination, error) {
	if err := Validate(d); err != nil {
		return domain.Destination{}, err
	}
	if d.Reviews == nil {
		d.Reviews = []domain.Review{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[d.ID]; ok {
		return domain.Destination{}, fmt.Errorf("catalog.Catalog.Add: destination %d: %w", d.ID, ErrIDTaken)
	}
	c.insert(owner, d)
	return d, nil
}

// Restore re-adds a listing owner stored earlier. Restoring a listing that
// owner already has in the catalog is a no-op; an id held by any other
// destination returns ErrIDTaken and leaves the catalog unchanged.
func (c *Catalog) Restore(owner string, d domain.Destination) error {
	if err := Validate(d); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[d.ID]; ok {
		if o, listed := c.owner[d.ID]; listed && o == owner {
			return nil
		}
		return fmt.Errorf("catalog.Catalog.Restore: destination %d: %w", d.ID, ErrIDTaken)
	}
	if d.Reviews == nil {
		d.Reviews = []domain.Review{}
	}
	c.insert(owner, d)
	return nil
}

// insert appends d. Callers hold c.mu for writing.
func (c *Catalog) insert(owner string, d domain.Destination) {
	c.byID[d.ID] = len(c.dests)
	c.dests = append(c.dests, d.Clone())
	c.owner[d.ID] = owner
}

// AddReview appends a review to a destination.
// Returns domain.ErrNotFound if the destination does not exist.
func (c *Catalog) AddReview(id int64, r domain.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("catalog.Catalog.AddReview: destination %d: %w", id, domain.ErrNotFound)
	}
	c.dests[i].Reviews = append(c.dests[i].Reviews, r)
	return nil
}
