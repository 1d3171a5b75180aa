package money_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/domain/shared/money"
)

func TestParse(t *testing.T) {
	cases := map[string]money.Amount{
		"120":    12000,
		"120.5":  12050,
		"120.50": 12050,
		"0.01":   1,
		"99.90":  9990,
	}
	for raw, want := range cases {
		got, err := money.Parse(raw)
		require.NoError(t, err, "input %q", raw)
		require.Equal(t, want, got, "input %q", raw)
	}
}

// TestParse_rejectsExcessPrecision verifies sub-cent amounts are rejected,
// never silently rounded.
func TestParse_rejectsExcessPrecision(t *testing.T) {
	_, err := money.Parse("10.123")
	require.ErrorIs(t, err, money.ErrMalformedAmount)
}

func TestParse_rejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "abc", "10.", "..", "1,50"} {
		_, err := money.Parse(raw)
		require.Error(t, err, "input %q", raw)
	}
}

// TestParse_rejectsOverflowingDigits verifies that an absurdly long digit
// string fails cleanly instead of wrapping the int64 accumulator into a
// plausible-looking amount.
func TestParse_rejectsOverflowingDigits(t *testing.T) {
	_, err := money.Parse("9999999999999999999999999")
	require.ErrorIs(t, err, money.ErrMalformedAmount)

	_, err = money.ParsePositive("1234567890123456789012345.00")
	require.ErrorIs(t, err, money.ErrMalformedAmount)

	// Leading zeros do not count against the digit limit.
	got, err := money.Parse("000000000000000000012.50")
	require.NoError(t, err)
	require.Equal(t, money.Amount(1250), got)

	// The longest accepted magnitude still parses exactly.
	got, err = money.Parse("9999999999999999.99")
	require.NoError(t, err)
	require.Equal(t, money.Amount(999999999999999999), got)
}

func TestParsePositive(t *testing.T) {
	_, err := money.ParsePositive("0")
	require.ErrorIs(t, err, money.ErrNotPositive)
	_, err = money.ParsePositive("-5")
	require.ErrorIs(t, err, money.ErrNotPositive)
}

// TestString_alwaysTwoDecimals verifies amounts render with exactly two
// fractional digits, matching what callers see in responses.
func TestString_alwaysTwoDecimals(t *testing.T) {
	require.Equal(t, "300.00", money.Amount(30000).String())
	require.Equal(t, "0.05", money.Amount(5).String())
	require.Equal(t, "-12.30", money.Amount(-1230).String())
}

// TestSum_exact verifies that summing three nights at 100.00 yields exactly
// 300.00 with no drift.
func TestSum_exact(t *testing.T) {
	night := money.Amount(10000)
	total := money.Sum([]money.Amount{night, night, night})
	require.Equal(t, money.Amount(30000), total)
	require.Equal(t, "300.00", total.String())
}

func TestDivRound(t *testing.T) {
	// 100.00 over 3 nights: 33.33 after half-away-from-zero rounding.
	require.Equal(t, money.Amount(3333), money.Amount(10000).DivRound(3))
	// 0.05 over 2: rounds up to 0.03.
	require.Equal(t, money.Amount(3), money.Amount(5).DivRound(2))
	require.Equal(t, money.Amount(0), money.Amount(100).DivRound(0))
}
