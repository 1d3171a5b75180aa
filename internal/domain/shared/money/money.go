// Package money keeps nightly prices and booking totals in integer minor
// units to avoid floating point drift. The engine treats price as an opaque
// decimal; no currency arithmetic happens here.
package money

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedAmount = errors.New("money: malformed decimal amount")
	ErrNotPositive     = errors.New("money: amount must be positive")
)

// Amount is a decimal value with two fractional digits, stored as minor units.
type Amount int64

// maxWholeDigits keeps parsed values well inside int64 after the two minor
// digits are appended; longer inputs would overflow the accumulator.
const maxWholeDigits = 16

// Parse accepts "120", "120.5" or "120.50" and returns the exact amount.
// More than two fractional digits is rejected rather than rounded.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMalformedAmount
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole, frac = s[:idx], s[idx+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrMalformedAmount
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if trimmed := strings.TrimLeft(whole, "0"); len(trimmed) > maxWholeDigits {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	var units int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
		}
		units = units*10 + int64(r-'0')
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
		}
		units = units*10 + int64(r-'0')
	}
	if neg {
		units = -units
	}
	return Amount(units), nil
}

// ParsePositive parses and additionally requires a strictly positive value.
func ParsePositive(s string) (Amount, error) {
	a, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if a <= 0 {
		return 0, ErrNotPositive
	}
	return a, nil
}

// String renders the amount with exactly two fractional digits, e.g. "300.00".
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (a Amount) Add(other Amount) Amount {
	return a + other
}

func (a Amount) IsPositive() bool {
	return a > 0
}

// Sum folds a slice of amounts; the exact total, no rounding.
func Sum(amounts []Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// DivRound divides the amount by n, rounding half away from zero to the minor
// unit. Display use only; stored totals stay unrounded sums.
func (a Amount) DivRound(n int) Amount {
	if n <= 0 {
		return 0
	}
	v := int64(a)
	d := int64(n)
	if v >= 0 {
		return Amount((v + d/2) / d)
	}
	return Amount((v - d/2) / d)
}
