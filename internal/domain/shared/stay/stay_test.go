package stay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/stay"
)

func TestParseDate(t *testing.T) {
	d, err := stay.ParseDate("2026-07-01")
	require.NoError(t, err)
	require.Equal(t, "2026-07-01", d.String())
	require.Equal(t, time.UTC, d.Time().Location())
}

// TestParseDate_rejectsOtherFormats verifies that anything but YYYY-MM-DD is
// a validation error, including timestamps and slashed dates.
func TestParseDate_rejectsOtherFormats(t *testing.T) {
	for _, raw := range []string{"", "01-07-2026", "2026/07/01", "2026-07-01T00:00:00Z", "July 1 2026", "2026-13-40"} {
		_, err := stay.ParseDate(raw)
		require.Error(t, err, "input %q", raw)
		require.True(t, apperr.IsKind(err, apperr.KindValidation), "input %q", raw)
	}
}

// TestNew_zeroNights verifies that check_in == check_out is rejected rather
// than treated as a free zero-night booking.
func TestNew_zeroNights(t *testing.T) {
	day := mustDate(t, "2026-07-01")
	_, err := stay.New(day, day)
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestNew_inverted(t *testing.T) {
	_, err := stay.ParseRange("2026-07-05", "2026-07-01")
	require.Error(t, err)
	require.True(t, apperr.IsKind(err, apperr.KindValidation))
}

// TestDates_halfOpen verifies the half-open contract: a three night stay
// spans exactly three date keys and the check-out date is not among them.
func TestDates_halfOpen(t *testing.T) {
	s, err := stay.ParseRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)
	require.Equal(t, 3, s.Nights())

	dates := s.Dates()
	require.Len(t, dates, 3)
	require.Equal(t, "2026-07-01", dates[0].String())
	require.Equal(t, "2026-07-02", dates[1].String())
	require.Equal(t, "2026-07-03", dates[2].String())
}

func TestDates_singleNight(t *testing.T) {
	s, err := stay.ParseRange("2026-07-01", "2026-07-02")
	require.NoError(t, err)
	require.Equal(t, 1, s.Nights())
	require.Len(t, s.Dates(), 1)
}

// TestOverlaps_backToBack verifies that a stay ending on a date does not
// overlap a stay starting that same date: the check-out day belongs to the
// next guest.
func TestOverlaps_backToBack(t *testing.T) {
	first, err := stay.ParseRange("2026-07-01", "2026-07-04")
	require.NoError(t, err)
	second, err := stay.ParseRange("2026-07-04", "2026-07-06")
	require.NoError(t, err)

	require.False(t, first.Overlaps(second))
	require.False(t, second.Overlaps(first))

	third, err := stay.ParseRange("2026-07-03", "2026-07-05")
	require.NoError(t, err)
	require.True(t, first.Overlaps(third))
}

func TestDateOf_truncatesToUTCDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	instant := time.Date(2026, 7, 1, 22, 30, 0, 0, loc)

	d := stay.DateOf(instant)
	require.Equal(t, "2026-07-02", d.String())
}

func mustDate(t *testing.T, raw string) stay.DateKey {
	t.Helper()
	d, err := stay.ParseDate(raw)
	require.NoError(t, err)
	return d
}
