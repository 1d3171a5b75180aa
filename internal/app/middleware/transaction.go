package middleware

import (
	"context"
	"errors"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/uow"
)

var ErrUnitOfWorkMissing = errors.New("middleware: unit of work not found")

type TxOptionsProvider func(cmd commands.Command) uow.TxOptions

// Transaction opens a unit of work per dispatched command, commits when the
// handler succeeds and rolls back on every other exit path. Handlers find the
// unit through uow.FromContext.
func Transaction(factory uow.UoWFactory, optsProvider TxOptionsProvider) CommandMiddleware {
	if factory == nil {
		panic("middleware: uow factory required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			opts := uow.TxOptions{}
			if optsProvider != nil {
				opts = optsProvider(cmd)
			}
			unit, err := factory.Begin(ctx, opts)
			if err != nil {
				return nil, err
			}
			execCtx := uow.BindContext(ctx, unit)
			committed := false
			defer func() {
				if !committed {
					_ = unit.Rollback(execCtx)
				}
			}()

			res, err := nextFn(execCtx, cmd)
			if err != nil {
				return nil, err
			}
			if err := unit.Commit(execCtx); err != nil {
				return nil, err
			}
			committed = true
			return res, nil
		})
	}
}
