package inventory

import (
	"context"
	"time"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	domaininventory "dreamstay/internal/domain/inventory"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
	"dreamstay/internal/domain/shared/money"
	"dreamstay/internal/domain/shared/stay"
)

const addRecordKey = "inventory.add_record"

// AddRecordCommand creates a single inventory record. Unlike the bulk path
// it is strict: a past or duplicate date is an error, not a skip, and the
// night defaults to available since adding one date is an offer to sell it.
type AddRecordCommand struct {
	HostID      int64
	PropertyID  int64
	Date        string
	Price       string
	IsAvailable *bool
}

func (c AddRecordCommand) Key() string { return addRecordKey }

func (c AddRecordCommand) Validate() error {
	if c.PropertyID <= 0 {
		return apperr.Validation("property id is required")
	}
	if _, err := stay.ParseDate(c.Date); err != nil {
		return err
	}
	if _, err := money.ParsePositive(c.Price); err != nil {
		return apperr.Validation("price must be a positive amount with at most two decimals")
	}
	return nil
}

type AddRecordHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *AddRecordHandler) Handle(ctx context.Context, cmd AddRecordCommand) (*dto.CalendarEntry, error) {
	date, err := stay.ParseDate(cmd.Date)
	if err != nil {
		return nil, err
	}
	price, err := money.ParsePositive(cmd.Price)
	if err != nil {
		return nil, apperr.Validation("price must be a positive amount with at most two decimals")
	}
	now := clockNow(h.Now)
	if date.Before(stay.DateOf(now)) {
		return nil, apperr.Validation("cannot add availability for past dates")
	}

	ctx, scope, err := enterUnit(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	entry, err := h.handle(ctx, scope.unit, cmd.HostID, cmd.PropertyID, date, price, cmd.IsAvailable, now)
	if err := scope.finish(ctx, err); err != nil {
		return nil, err
	}
	return entry, nil
}

func (h *AddRecordHandler) handle(ctx context.Context, unit uow.UnitOfWork, hostID, propertyID int64, date stay.DateKey, price money.Amount, isAvailable *bool, now time.Time) (*dto.CalendarEntry, error) {
	if _, err := loadOwnedProperty(ctx, unit, propertyID, hostID); err != nil {
		return nil, err
	}
	rec := domaininventory.Record{
		PropertyID:  propertyID,
		Date:        date,
		Price:       price,
		IsAvailable: true,
		CreatedAt:   now.UTC(),
	}
	if isAvailable != nil {
		rec.IsAvailable = *isAvailable
	}
	if err := unit.Inventory().Insert(ctx, rec); err != nil {
		return nil, err
	}
	return &dto.CalendarEntry{
		Date:        rec.Date.String(),
		Price:       rec.Price.String(),
		IsAvailable: rec.IsAvailable,
		IsBlocked:   rec.IsBlocked,
		IsReserved:  rec.IsReserved,
	}, nil
}

// loadOwnedProperty authorizes a host mutation: the property must exist and
// belong to the acting host.
func loadOwnedProperty(ctx context.Context, unit uow.UnitOfWork, propertyID, hostID int64) (*domainproperty.Property, error) {
	prop, err := unit.Properties().ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.OwnedBy(hostID) {
		return nil, apperr.Authorization("property does not belong to this host")
	}
	return prop, nil
}

func clockNow(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now()
}
