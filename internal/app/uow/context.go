package uow

import (
	"context"
	"errors"
)

var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

type ctxKey struct{}

// ContextWithUnitOfWork stores the provided unit of work in context.
func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, unit)
}

// FromContext retrieves a unit of work from context if present.
func FromContext(ctx context.Context) (UnitOfWork, bool) {
	val := ctx.Value(ctxKey{})
	if val == nil {
		return nil, false
	}
	unit, ok := val.(UnitOfWork)
	return unit, ok
}

// ContextInjector is implemented by units whose repositories need session
// state carried in the context. The mongo unit uses it to put the session
// into the context so repository calls join the transaction.
type ContextInjector interface {
	InjectContext(ctx context.Context) context.Context
}

// BindContext attaches a freshly begun unit to the context. Every caller of
// UoWFactory.Begin must run repository calls against the returned context,
// not the original one: skipping the injector would silently run the unit's
// reads and writes outside its transaction.
func BindContext(ctx context.Context, unit UnitOfWork) context.Context {
	if injector, ok := unit.(ContextInjector); ok {
		ctx = injector.InjectContext(ctx)
	}
	return ContextWithUnitOfWork(ctx, unit)
}
