package destinations_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/app/handlers/destinations"
	domainbooking "dreamstay/internal/domain/booking"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
	"dreamstay/internal/infra/storage/memory"
)

type trendingFixture struct {
	properties *memory.PropertyRepository
	bookings   *memory.BookingRepository
	factory    memory.Factory
	clock      time.Time
}

func newTrendingFixture(t *testing.T) *trendingFixture {
	t.Helper()
	properties := memory.NewPropertyRepository()
	bookings := memory.NewBookingRepository(properties)
	return &trendingFixture{
		properties: properties,
		bookings:   bookings,
		factory: memory.Factory{
			PropertyRepo:  properties,
			InventoryRepo: memory.NewInventoryRepository(),
			BookingRepo:   bookings,
		},
		clock: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *trendingFixture) handler(ttl time.Duration) *destinations.TrendingHandler {
	return &destinations.TrendingHandler{
		UoWFactory: f.factory,
		TTL:        ttl,
		Now:        func() time.Time { return f.clock },
	}
}

// confirm books n confirmed stays in the given location.
func (f *trendingFixture) confirm(t *testing.T, location string, n int) {
	t.Helper()
	ctx := context.Background()
	prop := &domainproperty.Property{HostID: 1, Title: "Stay in " + location, Location: location, CreatedAt: f.clock}
	require.NoError(t, f.properties.Insert(ctx, prop))

	checkIn, err := stay.ParseDate("2026-07-01")
	require.NoError(t, err)
	checkOut, err := stay.ParseDate("2026-07-02")
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		b := &domainbooking.Booking{
			PropertyID: prop.ID,
			GuestID:    int64(i + 1),
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			TotalPrice: 10000,
			Status:     domainbooking.StatusConfirmed,
			CreatedAt:  f.clock,
		}
		require.NoError(t, f.bookings.Insert(ctx, b))
	}
}

// TestTrending_ranking verifies ordering by confirmed reservations with the
// location name as tie breaker, and that the limit caps the list.
func TestTrending_ranking(t *testing.T) {
	f := newTrendingFixture(t)
	f.confirm(t, "Lisbon", 3)
	f.confirm(t, "Porto", 5)
	f.confirm(t, "Faro", 3)

	h := f.handler(destinations.DefaultTTL)
	resp, err := h.Handle(context.Background(), destinations.TrendingQuery{Limit: 2})
	require.NoError(t, err)
	require.False(t, resp.Cached)
	require.Len(t, resp.Trending, 2)
	require.Equal(t, "Porto", resp.Trending[0].Location)
	require.Equal(t, int64(5), resp.Trending[0].Reservations)
	require.Equal(t, "Faro", resp.Trending[1].Location)
}

// TestTrending_cacheWindow verifies the TTL behavior: a repeat query inside
// the window serves the cached rows even after new bookings land, and the
// first query past the window sees them.
func TestTrending_cacheWindow(t *testing.T) {
	f := newTrendingFixture(t)
	f.confirm(t, "Lisbon", 2)

	h := f.handler(5 * time.Minute)
	first, err := h.Handle(context.Background(), destinations.TrendingQuery{})
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Len(t, first.Trending, 1)

	f.confirm(t, "Porto", 4)

	f.clock = f.clock.Add(4 * time.Minute)
	second, err := h.Handle(context.Background(), destinations.TrendingQuery{})
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Trending, second.Trending)

	f.clock = f.clock.Add(2 * time.Minute)
	third, err := h.Handle(context.Background(), destinations.TrendingQuery{})
	require.NoError(t, err)
	require.False(t, third.Cached)
	require.Len(t, third.Trending, 2)
	require.Equal(t, "Porto", third.Trending[0].Location)
}

func TestTrending_negativeLimitRejected(t *testing.T) {
	f := newTrendingFixture(t)
	h := f.handler(destinations.DefaultTTL)

	_, err := h.Handle(context.Background(), destinations.TrendingQuery{Limit: -1})
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}
