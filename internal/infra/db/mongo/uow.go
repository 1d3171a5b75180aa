package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dreamstay/internal/app/uow"
	domainbooking "dreamstay/internal/domain/booking"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
)

// Factory wires Mongo sessions into the generic UnitOfWork interface. The
// reservation commit protocol depends on this boundary: the per-night
// reserved-flag updates and the booking insert land in one transaction.
type Factory struct {
	DB *mongo.Database

	PropertyRepo  domainproperty.Repository
	InventoryRepo domaininventory.Repository
	BookingRepo   domainbooking.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(f.DB.ReadConcern()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:    session,
		properties: f.PropertyRepo,
		inventory:  f.InventoryRepo,
		bookings:   f.BookingRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

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
	defer u.session.EndSession(ctx)
	if err := u.session.CommitTransaction(ctx); err != nil {
		if isWriteConflict(err) {
			return apperr.Conflict("commit lost a concurrent update, please retry")
		}
		return err
	}
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the session visible to the repositories, so their
// reads and writes join the transaction.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
