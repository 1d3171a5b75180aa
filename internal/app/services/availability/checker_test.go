package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/app/services/availability"
	domaininventory "dreamstay/internal/domain/inventory"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
	"dreamstay/internal/infra/storage/memory"
)

func seedNight(t *testing.T, repo *memory.InventoryRepository, propertyID int64, date string, price money.Amount, available bool) {
	t.Helper()
	d, err := stay.ParseDate(date)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), domaininventory.Record{
		PropertyID:  propertyID,
		Date:        d,
		Price:       price,
		IsAvailable: available,
		CreatedAt:   time.Now().UTC(),
	}))
}

// TestCheck_allNightsBookable verifies the happy path: every night present
// and bookable comes back in ascending order with an exact total.
func TestCheck_allNightsBookable(t *testing.T) {
	repo := memory.NewInventoryRepository()
	seedNight(t, repo, 1, "2026-07-01", 10000, true)
	seedNight(t, repo, 1, "2026-07-02", 10000, true)
	seedNight(t, repo, 1, "2026-07-03", 10000, true)

	s, err := stay.ParseRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)

	records, err := availability.Check(context.Background(), repo, 1, s)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "2026-07-01", records[0].Date.String())
	require.Equal(t, "2026-07-03", records[2].Date.String())
	require.Equal(t, "300.00", availability.TotalPrice(records).String())
}

// TestCheck_missingNightFailsWholeRange verifies all-or-none: one absent
// night fails the entire stay with a conflict.
func TestCheck_missingNightFailsWholeRange(t *testing.T) {
	repo := memory.NewInventoryRepository()
	seedNight(t, repo, 1, "2026-07-01", 10000, true)
	seedNight(t, repo, 1, "2026-07-03", 10000, true)

	s, err := stay.ParseRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)

	_, err = availability.Check(context.Background(), repo, 1, s)
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

// TestCheck_nonBookableNightFails verifies that an existing but unavailable
// night counts the same as a missing one.
func TestCheck_nonBookableNightFails(t *testing.T) {
	repo := memory.NewInventoryRepository()
	seedNight(t, repo, 1, "2026-07-01", 10000, true)
	seedNight(t, repo, 1, "2026-07-02", 10000, false)

	s, err := stay.ParseRange("2026-07-01", "2026-07-03")
	require.NoError(t, err)

	_, err = availability.Check(context.Background(), repo, 1, s)
	require.True(t, apperr.IsKind(err, apperr.KindConflict))
}

// TestCheck_checkOutNightNotRequired verifies the half-open range: the
// check-out date needs no inventory record.
func TestCheck_checkOutNightNotRequired(t *testing.T) {
	repo := memory.NewInventoryRepository()
	seedNight(t, repo, 1, "2026-07-01", 12550, true)

	s, err := stay.ParseRange("2026-07-01", "2026-07-02")
	require.NoError(t, err)

	records, err := availability.Check(context.Background(), repo, 1, s)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "125.50", availability.TotalPrice(records).String())
}
