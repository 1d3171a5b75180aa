package memory

import (
	"context"
	"errors"

	"dreamstay/internal/app/uow"
	domainbooking "dreamstay/internal/domain/booking"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	PropertyRepo  domainproperty.Repository
	InventoryRepo domaininventory.Repository
	BookingRepo   domainbooking.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. Writes are not rolled
// back on failure; the inventory repository keeps the reservation path
// atomic on its own by checking every night under one lock before flipping
// any of them.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PropertyRepo == nil || f.InventoryRepo == nil || f.BookingRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		properties: f.PropertyRepo,
		inventory:  f.InventoryRepo,
		bookings:   f.BookingRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	properties domainproperty.Repository
	inventory  domaininventory.Repository
	bookings   domainbooking.Repository
}

func (u *Unit) Properties() domainproperty.Repository {
	return u.properties
}

func (u *Unit) Inventory() domaininventory.Repository {
	return u.inventory
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
