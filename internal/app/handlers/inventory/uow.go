package inventory

import (
	"context"
	"errors"

	"dreamstay/internal/app/uow"
)

var ErrUnitOfWorkRequired = errors.New("inventory: unit of work required")

// unitScope tracks whether the handler began its own unit of work or joined
// one injected by the transaction middleware.
type unitScope struct {
	unit    uow.UnitOfWork
	managed bool
}

func enterUnit(ctx context.Context, factory uow.UoWFactory, opts uow.TxOptions) (context.Context, *unitScope, error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return ctx, &unitScope{unit: unit}, nil
	}
	if factory == nil {
		return ctx, nil, ErrUnitOfWorkRequired
	}
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return ctx, nil, err
	}
	return uow.BindContext(ctx, unit), &unitScope{unit: unit, managed: true}, nil
}

// finish commits a managed unit on success and rolls it back otherwise. For
// a joined unit the outer middleware owns the boundary and finish is a no-op.
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
