package middleware

import (
	"context"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/queries"
)

// SelfValidating is implemented by commands and queries that can check their
// own shape before any store access happens.
type SelfValidating interface {
	Validate() error
}

// Validation rejects malformed commands before the transaction middleware
// opens a unit of work for them.
func Validation() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if v, ok := cmd.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return nextFn(ctx, cmd)
		})
	}
}

// QueryValidation is the read-side counterpart of Validation.
func QueryValidation() QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if v, ok := q.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return nextFn(ctx, q)
		})
	}
}
