package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	searchapp "dreamstay/internal/app/handlers/search"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
	"dreamstay/internal/infra/storage/memory"
)

type searchFixture struct {
	properties *memory.PropertyRepository
	inventory  *memory.InventoryRepository
	handler    *searchapp.SearchStaysHandler
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()
	properties := memory.NewPropertyRepository()
	inventory := memory.NewInventoryRepository()
	factory := memory.Factory{
		PropertyRepo:  properties,
		InventoryRepo: inventory,
		BookingRepo:   memory.NewBookingRepository(properties),
	}
	return &searchFixture{
		properties: properties,
		inventory:  inventory,
		handler:    &searchapp.SearchStaysHandler{UoWFactory: factory},
	}
}

// addProperty creates an approved listing and opens the given nights at the
// given whole-unit prices. A nil price closes the night instead.
func (f *searchFixture) addProperty(t *testing.T, title, location string, nights map[string]string) int64 {
	t.Helper()
	prop := &domainproperty.Property{
		HostID:    1,
		Title:     title,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, f.properties.Insert(context.Background(), prop))
	prop.IsApproved = true
	require.NoError(t, f.properties.Save(context.Background(), prop))

	for raw, priceRaw := range nights {
		d, err := stay.ParseDate(raw)
		require.NoError(t, err)
		price, err := money.ParsePositive(priceRaw)
		require.NoError(t, err)
		require.NoError(t, f.inventory.Insert(context.Background(), domaininventory.Record{
			PropertyID:  prop.ID,
			Date:        d,
			Price:       price,
			IsAvailable: true,
			CreatedAt:   time.Now().UTC(),
		}))
	}
	return prop.ID
}

// TestSearch_exactRequiresEveryNight verifies that exact mode only returns
// properties bookable for the entire stay: a single missing night excludes
// the listing.
func TestSearch_exactRequiresEveryNight(t *testing.T) {
	f := newSearchFixture(t)
	full := f.addProperty(t, "Harbour House", "Porto", map[string]string{
		"2026-07-01": "100.00",
		"2026-07-02": "110.00",
		"2026-07-03": "120.00",
	})
	f.addProperty(t, "Hillside Cabin", "Porto", map[string]string{
		"2026-07-01": "90.00",
		// July 2 missing
		"2026-07-03": "90.00",
	})

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "porto",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-04",
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)

	got := resp.Items[0]
	require.Equal(t, full, got.PropertyID)
	require.True(t, got.FullyAvailable)
	require.Equal(t, 3, got.TotalNights)
	require.Equal(t, "330.00", got.TotalPrice)
	require.Equal(t, "110.00", got.PricePerNight)
	require.Empty(t, got.Nights)
}

// TestSearch_partialReturnsBreakdown verifies that partial mode includes
// properties with gaps, reports each night individually, and omits pricing
// totals for incomplete stays.
func TestSearch_partialReturnsBreakdown(t *testing.T) {
	f := newSearchFixture(t)
	f.addProperty(t, "Hillside Cabin", "Porto", map[string]string{
		"2026-07-01": "90.00",
		"2026-07-03": "95.00",
	})

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "Porto",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-04",
		Mode:     searchapp.ModePartial,
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	got := resp.Items[0]
	require.False(t, got.FullyAvailable)
	require.Empty(t, got.TotalPrice)
	require.Empty(t, got.PricePerNight)
	require.Len(t, got.Nights, 3)

	require.Equal(t, "2026-07-01", got.Nights[0].Date)
	require.True(t, got.Nights[0].Available)
	require.Equal(t, "90.00", got.Nights[0].Price)

	require.Equal(t, "2026-07-02", got.Nights[1].Date)
	require.False(t, got.Nights[1].Available)
	require.Empty(t, got.Nights[1].Price)

	require.True(t, got.Nights[2].Available)
}

// TestSearch_partialStillExcludesDeadListings verifies that partial mode
// needs at least one bookable night.
func TestSearch_partialStillExcludesDeadListings(t *testing.T) {
	f := newSearchFixture(t)
	f.addProperty(t, "Empty Flat", "Porto", map[string]string{})

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "Porto",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-03",
		Mode:     searchapp.ModePartial,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Items)
	require.Zero(t, resp.Total)
}

// TestSearch_reservedNightExcludes verifies that a reserved night behaves
// like a missing one for exact mode.
func TestSearch_reservedNightExcludes(t *testing.T) {
	f := newSearchFixture(t)
	id := f.addProperty(t, "Harbour House", "Porto", map[string]string{
		"2026-07-01": "100.00",
		"2026-07-02": "100.00",
	})
	d, err := stay.ParseDate("2026-07-02")
	require.NoError(t, err)
	require.NoError(t, f.inventory.Reserve(context.Background(), id, []stay.DateKey{d}))

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "Porto",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-03",
	})
	require.NoError(t, err)
	require.Empty(t, resp.Items)
}

// TestSearch_pagination verifies deterministic ordering by property id and
// that Total counts matches before the page is cut.
func TestSearch_pagination(t *testing.T) {
	f := newSearchFixture(t)
	nights := map[string]string{"2026-07-01": "100.00"}
	first := f.addProperty(t, "Stay One", "Faro", nights)
	second := f.addProperty(t, "Stay Two", "Faro", nights)
	third := f.addProperty(t, "Stay Three", "Faro", nights)

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "Faro",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-02",
		Limit:    2,
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Items, 2)
	require.Equal(t, first, resp.Items[0].PropertyID)
	require.Equal(t, second, resp.Items[1].PropertyID)

	resp, err = f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Location: "Faro",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-02",
		Limit:    2,
		Offset:   2,
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	require.Len(t, resp.Items, 1)
	require.Equal(t, third, resp.Items[0].PropertyID)
}

// TestSearch_titleFilter verifies the case-insensitive substring match on
// titles alongside the location filter.
func TestSearch_titleFilter(t *testing.T) {
	f := newSearchFixture(t)
	nights := map[string]string{"2026-07-01": "100.00"}
	f.addProperty(t, "Harbour House", "Porto", nights)
	match := f.addProperty(t, "Hillside Cabin", "Porto", nights)

	resp, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		Title:    "cabin",
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-02",
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, match, resp.Items[0].PropertyID)
}

func TestSearch_invalidModeRejected(t *testing.T) {
	f := newSearchFixture(t)

	_, err := f.handler.Handle(context.Background(), searchapp.SearchStaysQuery{
		CheckIn:  "2026-07-01",
		CheckOut: "2026-07-02",
		Mode:     "fuzzy",
	})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}
