// Package property holds the host-facing listing operations. Listings feed
// the reservation engine read-only: the booking path never mutates them
// beyond the approval flag an admin flips.
package property

import (
	"context"
	"errors"
	"time"

	"dreamstay/internal/app/dto"
	"dreamstay/internal/app/uow"
	domainproperty "dreamstay/internal/domain/property"
	"dreamstay/internal/domain/shared/apperr"
)

const createPropertyKey = "property.create"

var ErrUnitOfWorkRequired = errors.New("property: unit of work required")

type CreatePropertyCommand struct {
	HostID      int64
	Title       string
	Description string
	Location    string
}

func (c CreatePropertyCommand) Key() string { return createPropertyKey }

func (c CreatePropertyCommand) Validate() error {
	if c.HostID <= 0 {
		return apperr.Validation("host id is required")
	}
	_, err := domainproperty.NewProperty(c.HostID, c.Title, c.Description, c.Location, time.Now())
	return err
}

// CreatePropertyHandler registers a listing. New listings start unapproved
// and stay invisible to guests until an admin approves them.
type CreatePropertyHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *CreatePropertyHandler) Handle(ctx context.Context, cmd CreatePropertyCommand) (*dto.PropertyDTO, error) {
	prop, err := domainproperty.NewProperty(cmd.HostID, cmd.Title, cmd.Description, cmd.Location, h.now())
	if err != nil {
		return nil, err
	}

	ctx, scope, err := enterUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	insertErr := scope.unit.Properties().Insert(ctx, prop)
	if err := scope.finish(ctx, insertErr); err != nil {
		return nil, err
	}
	result := dto.MapProperty(prop)
	return &result, nil
}

func (h *CreatePropertyHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type unitScope struct {
	unit    uow.UnitOfWork
	managed bool
}

func enterUnit(ctx context.Context, factory uow.UoWFactory) (context.Context, *unitScope, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return ctx, &unitScope{unit: unit}, nil
	}
	if factory == nil {
		return ctx, nil, ErrUnitOfWorkRequired
	}
	unit, err := factory.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return ctx, nil, err
	}
	return uow.BindContext(ctx, unit), &unitScope{unit: unit, managed: true}, nil
}

func (s *unitScope) finish(ctx context.Context, err error) error {
	if !s.managed {
		return err
	}
	if err != nil {
		_ = s.unit.Rollback(ctx)
		return err
	}
	return s.unit.Commit(ctx)
}
