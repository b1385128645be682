package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pkordes/ecotrip/internal/domain"
)

// Sort orders.
const (
	SortRatingDesc = "rating-desc"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
	SortCarbonAsc  = "carbon-asc"
)

// Filter narrows and orders a search. Zero fields do not filter.
type Filter struct {
	// Location matches the destination location or country, case-insensitively.
	Location string
	// Activities matches destinations offering ANY of the listed activities.
	Activities []string
	// MinRating is the minimum sustainability rating.
	MinRating int
	// Certifications matches destinations holding ANY of the listed certifications.
	Certifications []string
	// MaxPrice is the highest acceptable nightly price. Zero means no limit.
	MaxPrice float64
	// Text matches name, location, country, description, or any activity.
	Text string
	// Sort is one of the Sort* constants. Unknown values sort by rating.
	Sort string
}

// Search returns the destinations matching f, ordered by f.Sort.
// Ties keep catalog order. An empty catalog yields an empty, non-nil slice.
func (c *Catalog) Search(f Filter) []domain.Destination {
	out := []domain.Destination{}
	for _, d := range c.All() {
		if f.matches(d) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, comparator(f.Sort))
	return out
}

func (f Filter) matches(d domain.Destination) bool {
	if loc := strings.ToLower(strings.TrimSpace(f.Location)); loc != "" {
		if !containsFold(d.Location, loc) && !containsFold(d.Country, loc) {
			return false
		}
	}
	if len(f.Activities) > 0 && !anyIn(f.Activities, d.ActivityTypes) {
		return false
	}
	if d.SustainabilityRating < f.MinRating {
		return false
	}
	if len(f.Certifications) > 0 && !anyIn(f.Certifications, d.Certifications) {
		return false
	}
	if f.MaxPrice > 0 && d.PricePerNight > f.MaxPrice {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Text)); q != "" {
		hit := containsFold(d.Name, q) || containsFold(d.Location, q) ||
			containsFold(d.Country, q) || containsFold(d.Description, q) ||
			slices.ContainsFunc(d.ActivityTypes, func(a string) bool { return containsFold(a, q) })
		if !hit {
			return false
		}
	}
	return true
}

func comparator(sort string) func(a, b domain.Destination) int {
	switch sort {
	case SortPriceAsc:
		return func(a, b domain.Destination) int { return cmp.Compare(a.PricePerNight, b.PricePerNight) }
	case SortPriceDesc:
		return func(a, b domain.Destination) int { return cmp.Compare(b.PricePerNight, a.PricePerNight) }
	case SortCarbonAsc:
		return func(a, b domain.Destination) int { return cmp.Compare(a.CarbonFootprint, b.CarbonFootprint) }
	default:
		return func(a, b domain.Destination) int { return cmp.Compare(b.SustainabilityRating, a.SustainabilityRating) }
	}
}

// containsFold reports whether s contains the lower-case query q.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func anyIn(wanted, have []string) bool {
	return slices.ContainsFunc(wanted, func(w string) bool { return slices.Contains(have, w) })
}
