package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/domain"
)

func dest(id int64) domain.Destination {
	return domain.Destination{
		ID:                   id,
		Name:                 "Lodge",
		Location:             "Somewhere",
		Country:              "Costa Rica",
		PricePerNight:        100,
		CarbonFootprint:      10,
		SustainabilityRating: 4,
	}
}

func TestItinerary_Add_DefaultNights(t *testing.T) {
	var it domain.Itinerary

	require.NoError(t, it.Add(dest(1)))

	entries := it.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.DefaultNights, entries[0].Nights)
	assert.Equal(t, int64(1), entries[0].ID)
}

func TestItinerary_Add_CapacityExceeded(t *testing.T) {
	var it domain.Itinerary
	for i := int64(1); i <= domain.MaxItineraryEntries; i++ {
		require.NoError(t, it.Add(dest(i)))
	}

	err := it.Add(dest(8))

	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, domain.MaxItineraryEntries, it.Len())
}

func TestItinerary_Add_AlreadyPresent(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))

	err := it.Add(dest(1))

	assert.ErrorIs(t, err, domain.ErrAlreadyPresent)
	assert.Equal(t, 1, it.Len())
}

func TestItinerary_Add_CapacityCheckedBeforeDuplicate(t *testing.T) {
	var it domain.Itinerary
	for i := int64(1); i <= domain.MaxItineraryEntries; i++ {
		require.NoError(t, it.Add(dest(i)))
	}

	assert.ErrorIs(t, it.Add(dest(1)), domain.ErrCapacityExceeded)
}

func TestItinerary_Remove(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))
	require.NoError(t, it.Add(dest(2)))

	removed, err := it.Remove(0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed.ID)
	require.Equal(t, 1, it.Len())
	assert.Equal(t, int64(2), it.Entries()[0].ID)
}

func TestItinerary_Remove_OutOfRange(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))

	_, err := it.Remove(1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	_, err = it.Remove(-1)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestItinerary_SetNights_Clamps(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))

	got, err := it.SetNights(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = it.SetNights(0, 99)
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	got, err = it.SetNights(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, 5, it.Entries()[0].Nights)
}

func TestItinerary_SetNights_OutOfRange(t *testing.T) {
	var it domain.Itinerary

	_, err := it.SetNights(0, 3)

	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestItinerary_Move(t *testing.T) {
	var it domain.Itinerary
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, it.Add(dest(i)))
	}

	require.NoError(t, it.Move(0, 2))

	ids := []int64{}
	for _, e := range it.Entries() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []int64{2, 3, 1, 4}, ids)

	assert.ErrorIs(t, it.Move(0, 4), domain.ErrIndexOutOfRange)
}

func TestItinerary_Clear(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))

	it.Clear()

	assert.Equal(t, 0, it.Len())
	assert.Empty(t, it.Entries())
}

func TestItinerary_Summarize(t *testing.T) {
	var it domain.Itinerary
	a, b := dest(1), dest(2)
	a.CarbonFootprint, b.CarbonFootprint = 10, 5
	a.PricePerNight, b.PricePerNight = 100, 80
	a.SustainabilityRating, b.SustainabilityRating = 5, 4
	require.NoError(t, it.Add(a))
	require.NoError(t, it.Add(b))
	_, err := it.SetNights(1, 3)
	require.NoError(t, err)

	s := it.Summarize()

	assert.Equal(t, 35.0, s.TotalCarbon)
	assert.Equal(t, 2, s.TreesToOffset)
	assert.Equal(t, 440.0, s.TotalCost)
	assert.Equal(t, 4.5, s.AvgSustainability)
	assert.Equal(t, 2, s.TotalDestinations)
	assert.Equal(t, 5, s.TotalNights)
}

func TestItinerary_Summarize_Empty(t *testing.T) {
	var it domain.Itinerary

	assert.Equal(t, domain.ItinerarySummary{}, it.Summarize())
}

func TestItinerary_Summarize_AverageRoundsToOneDecimal(t *testing.T) {
	var it domain.Itinerary
	for i, r := range []int{5, 4, 4} {
		d := dest(int64(i + 1))
		d.SustainabilityRating = r
		require.NoError(t, it.Add(d))
	}

	assert.Equal(t, 4.3, it.Summarize().AvgSustainability)
}

func TestItinerary_EntriesAreCopies(t *testing.T) {
	var it domain.Itinerary
	require.NoError(t, it.Add(dest(1)))

	entries := it.Entries()
	entries[0].Nights = 20

	assert.Equal(t, domain.DefaultNights, it.Entries()[0].Nights)
}

func TestRestoreItinerary_Sanitizes(t *testing.T) {
	var stored []domain.ItineraryEntry
	for i := int64(1); i <= 9; i++ {
		stored = append(stored, domain.ItineraryEntry{Destination: dest(i), Nights: 40})
	}
	stored = append([]domain.ItineraryEntry{{Destination: dest(1), Nights: 0}}, stored...)

	it := domain.RestoreItinerary(stored)

	entries := it.Entries()
	require.Len(t, entries, domain.MaxItineraryEntries)
	assert.Equal(t, 1, entries[0].Nights, "first copy of a duplicate wins and is clamped up")
	assert.Equal(t, 30, entries[1].Nights)
	assert.Equal(t, int64(7), entries[6].ID)
}

func TestTreesToOffset(t *testing.T) {
	assert.Equal(t, 0, domain.TreesToOffset(0))
	assert.Equal(t, 1, domain.TreesToOffset(1))
	assert.Equal(t, 2, domain.TreesToOffset(35))
}
