package uow

import (
	"context"

	domainbooking "dreamstay/internal/domain/booking"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
)

// UnitOfWork coordinates the reservation core's repositories inside one
// transaction boundary. The check-then-reserve sequence of a booking commit
// must run entirely within a single unit; either the booking row and every
// flipped inventory record commit together, or none do.
type UnitOfWork interface {
	Properties() domainproperty.Repository
	Inventory() domaininventory.Repository
	Bookings() domainbooking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
