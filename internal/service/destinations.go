package service

import (
	"fmt"
	"time"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
)

// DestinationService serves the public, session-less catalog queries.
type DestinationService struct {
	catalog *catalog.Catalog
}

// NewDestinationService constructs a DestinationService over cat.
func NewDestinationService(cat *catalog.Catalog) *DestinationService {
	return &DestinationService{catalog: cat}
}

// Search returns the destinations matching f.
func (s *DestinationService) Search(f catalog.Filter) []domain.Destination {
	return s.catalog.Search(f)
}

// Get returns a single destination by id.
func (s *DestinationService) Get(id int64) (domain.Destination, error) {
	d, err := s.catalog.ByID(id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return d, nil
}

// Quote prices a prospective stay without booking it. Unlike a booking, an
// inverted range is not rejected: the nights floor of one applies.
func (s *DestinationService) Quote(id int64, checkin, checkout time.Time) (domain.StayQuote, error) {
	d, err := s.catalog.ByID(id)
	if err != nil {
		return domain.StayQuote{}, fmt.Errorf("service.DestinationService.Quote: %w", err)
	}
	if checkin.IsZero() || checkout.IsZero() {
		return domain.StayQuote{}, fmt.Errorf("service.DestinationService.Quote: %w", domain.ErrMissingDates)
	}
	return domain.ComputeStay(d.PricePerNight, checkin, checkout), nil
}
