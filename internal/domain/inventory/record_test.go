package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dreamstay/internal/domain/inventory"
)

// TestBookable verifies the three-flag gate: a night sells only when offered,
// not withheld and not already sold.
func TestBookable(t *testing.T) {
	cases := []struct {
		name      string
		available bool
		blocked   bool
		reserved  bool
		want      bool
	}{
		{"open night", true, false, false, true},
		{"not offered", false, false, false, false},
		{"blocked", true, true, false, false},
		{"already reserved", true, false, true, false},
		{"blocked and reserved", true, true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := inventory.Record{IsAvailable: tc.available, IsBlocked: tc.blocked, IsReserved: tc.reserved}
			require.Equal(t, tc.want, rec.Bookable())
		})
	}
}

func TestMutationEmpty(t *testing.T) {
	require.True(t, inventory.Mutation{}.Empty())

	blocked := true
	require.False(t, inventory.Mutation{IsBlocked: &blocked}.Empty())
}
