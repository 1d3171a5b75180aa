// Package inventory owns the per-property, per-date availability record: the
// unit of bookable inventory. A property has at most one record per calendar
// date; the (property_id, date) pair is unique in every store implementation.
package inventory

import (
	"context"
	"time"

	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

// Record is one night of inventory for a property.
//
// IsReserved is owned exclusively by the reservation commit protocol; hosts
// never set it directly, and no host mutation may touch a record while it is
// reserved.
type Record struct {
	PropertyID  int64
	Date        stay.DateKey
	Price       money.Amount
	IsAvailable bool
	IsBlocked   bool
	IsReserved  bool
	CreatedAt   time.Time
}

// Bookable reports whether the night can enter a new booking: offered by the
// host, not withheld, not already sold.
func (r Record) Bookable() bool {
	return r.IsAvailable && !r.IsBlocked && !r.IsReserved
}

// Mutation carries a host edit; nil fields are left untouched.
type Mutation struct {
	Price       *money.Amount
	IsAvailable *bool
	IsBlocked   *bool
}

func (m Mutation) Empty() bool {
	return m.Price == nil && m.IsAvailable == nil && m.IsBlocked == nil
}

// Repository is the inventory record store. Implementations return apperr
// kinds: NotFound for absent records, Conflict for duplicate inserts and lost
// reservation races, Storage for infrastructure failures.
type Repository interface {
	// Get returns the record for one (property, date) key.
	Get(ctx context.Context, propertyID int64, date stay.DateKey) (*Record, error)

	// Range returns existing records in [from, to) ordered by date ascending.
	// Missing dates are simply absent, never zero-filled.
	Range(ctx context.Context, propertyID int64, from, to stay.DateKey) ([]Record, error)

	// Bookable returns the records among the given dates that are currently
	// bookable, ordered by date ascending.
	Bookable(ctx context.Context, propertyID int64, dates []stay.DateKey) ([]Record, error)

	// Insert creates a record and fails with Conflict when one already exists
	// for the (property, date) key. The store never silently overwrites.
	Insert(ctx context.Context, rec Record) error

	// Apply updates the non-nil mutation fields on an existing record. The
	// update is refused with Conflict when the record is reserved.
	Apply(ctx context.Context, propertyID int64, date stay.DateKey, m Mutation) error

	// Reserve flips IsReserved on every given date, in ascending order, using
	// a per-row reserved guard. If any night was lost to a concurrent commit
	// the whole call fails with Conflict and the surrounding transaction must
	// roll back.
	Reserve(ctx context.Context, propertyID int64, dates []stay.DateKey) error
}
