package domain

import "math"

// Itinerary limits.
const (
	MaxItineraryEntries = 7
	DefaultNights       = 2
	MinNights           = 1
	MaxNights           = 30
)

// TreeAbsorptionKg is the CO₂ one tree absorbs in a year, used to turn a
// carbon total into a number of trees to plant.
const TreeAbsorptionKg = 21.7

// ItineraryEntry is a destination snapshot planned for a number of nights.
// The snapshot is embedded so the stored form is the destination record plus
// a "nights" field.
type ItineraryEntry struct {
	Destination
	Nights int `json:"nights"`
}

// Itinerary is an ordered, capacity-bounded list of planned stays.
// Destinations are unique by id. The zero value is an empty itinerary.
type Itinerary struct {
	entries []ItineraryEntry
}

// RestoreItinerary rebuilds an itinerary from stored entries. Entries beyond
// capacity and duplicate destinations are dropped, and nights are clamped,
// so a tampered or stale snapshot cannot break the invariants.
func RestoreItinerary(entries []ItineraryEntry) Itinerary {
	var it Itinerary
	for _, e := range entries {
		if len(it.entries) >= MaxItineraryEntries {
			break
		}
		if it.indexOf(e.ID) >= 0 {
			continue
		}
		e.Destination = e.Destination.Clone()
		e.Nights = ClampNights(e.Nights)
		it.entries = append(it.entries, e)
	}
	return it
}

// Entries returns a copy of the planned entries in order.
func (it *Itinerary) Entries() []ItineraryEntry {
	out := make([]ItineraryEntry, len(it.entries))
	copy(out, it.entries)
	return out
}

// Len returns the number of planned entries.
func (it *Itinerary) Len() int { return len(it.entries) }

// Add appends dest for DefaultNights.
// Returns ErrCapacityExceeded when full and ErrAlreadyPresent for a duplicate.
func (it *Itinerary) Add(dest Destination) error {
	if len(it.entries) >= MaxItineraryEntries {
		return ErrCapacityExceeded
	}
	if it.indexOf(dest.ID) >= 0 {
		return ErrAlreadyPresent
	}
	it.entries = append(it.entries, ItineraryEntry{Destination: dest.Clone(), Nights: DefaultNights})
	return nil
}

// Remove deletes the entry at index and returns it.
func (it *Itinerary) Remove(index int) (ItineraryEntry, error) {
	if !it.valid(index) {
		return ItineraryEntry{}, ErrIndexOutOfRange
	}
	removed := it.entries[index]
	it.entries = append(it.entries[:index], it.entries[index+1:]...)
	return removed, nil
}

// SetNights sets the nights for the entry at index, clamped to
// [MinNights, MaxNights]. It returns the value actually stored.
func (it *Itinerary) SetNights(index, nights int) (int, error) {
	if !it.valid(index) {
		return 0, ErrIndexOutOfRange
	}
	it.entries[index].Nights = ClampNights(nights)
	return it.entries[index].Nights, nil
}

// Move reorders the entry at from so that it ends up at position to.
func (it *Itinerary) Move(from, to int) error {
	if !it.valid(from) || !it.valid(to) {
		return ErrIndexOutOfRange
	}
	e := it.entries[from]
	it.entries = append(it.entries[:from], it.entries[from+1:]...)
	it.entries = append(it.entries[:to], append([]ItineraryEntry{e}, it.entries[to:]...)...)
	return nil
}

// Clear empties the itinerary.
func (it *Itinerary) Clear() {
	it.entries = nil
}

// ItinerarySummary holds the aggregate metrics shown beside the planner.
type ItinerarySummary struct {
	TotalDestinations int     `json:"totalDestinations"`
	TotalNights       int     `json:"totalNights"`
	TotalCarbon       float64 `json:"totalCarbon"`
	AvgSustainability float64 `json:"avgSustainability"`
	TotalCost         float64 `json:"totalCost"`
	TreesToOffset     int     `json:"treesToOffset"`
}

// Summarize aggregates carbon, cost, and sustainability over the entries.
func (it *Itinerary) Summarize() ItinerarySummary {
	var s ItinerarySummary
	ratings := 0
	for _, e := range it.entries {
		s.TotalNights += e.Nights
		s.TotalCarbon += e.CarbonFootprint * float64(e.Nights)
		s.TotalCost += e.PricePerNight * float64(e.Nights)
		ratings += e.SustainabilityRating
	}
	s.TotalDestinations = len(it.entries)
	if s.TotalDestinations > 0 {
		s.AvgSustainability = roundTo1(float64(ratings) / float64(s.TotalDestinations))
	}
	s.TreesToOffset = TreesToOffset(s.TotalCarbon)
	return s
}

// ClampNights bounds a nights value to [MinNights, MaxNights].
func ClampNights(n int) int {
	return max(MinNights, min(MaxNights, n))
}

// TreesToOffset returns how many trees absorb carbonKg of CO₂ in a year.
func TreesToOffset(carbonKg float64) int {
	return int(math.Ceil(carbonKg / TreeAbsorptionKg))
}

func (it *Itinerary) indexOf(destinationID int64) int {
	for i, e := range it.entries {
		if e.ID == destinationID {
			return i
		}
	}
	return -1
}

func (it *Itinerary) valid(index int) bool {
	return index >= 0 && index < len(it.entries)
}
