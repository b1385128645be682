package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/ecotrip/internal/catalog"
	"github.com/pkordes/ecotrip/internal/domain"
	"github.com/pkordes/ecotrip/internal/service"
)

func newDestinationService() *service.DestinationService {
	return service.NewDestinationService(catalog.New(sampleDestinations()))
}

func TestDestinationService_Get(t *testing.T) {
	svc := newDestinationService()

	d, err := svc.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Fjord Cabin", d.Name)

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDestinationService_Search(t *testing.T) {
	svc := newDestinationService()

	got := svc.Search(catalog.Filter{Sort: catalog.SortPriceAsc})

	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestDestinationService_Quote(t *testing.T) {
	svc := newDestinationService()

	q, err := svc.Quote(1, day(2025, 4, 1), day(2025, 4, 4))

	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, 180.0, q.PricePerNight)
	assert.InDelta(t, 540.0, q.Base, 1e-9)
	assert.InDelta(t, 27.0, q.EcoTax, 1e-9)
	assert.InDelta(t, 567.0, q.Total, 1e-9)
}

func TestDestinationService_Quote_InvertedRangeFloorsToOneNight(t *testing.T) {
	svc := newDestinationService()

	q, err := svc.Quote(1, day(2025, 4, 4), day(2025, 4, 1))

	require.NoError(t, err)
	assert.Equal(t, 1, q.Nights)
}

func TestDestinationService_Quote_Errors(t *testing.T) {
	svc := newDestinationService()

	_, err := svc.Quote(1, day(2025, 4, 1), time.Time{})
	assert.ErrorIs(t, err, domain.ErrMissingDates)

	_, err = svc.Quote(99, day(2025, 4, 1), day(2025, 4, 4))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
