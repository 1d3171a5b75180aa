package queries

import (
	"context"
	"fmt"
)

type queryHandler func(ctx context.Context, query Query) (any, error)

// InMemoryBus routes queries to handlers registered by key.
type InMemoryBus struct {
	handlers map[string]queryHandler
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]queryHandler)}
}

// RegisterRaw attaches a raw handler function to the provided query key.
func (b *InMemoryBus) RegisterRaw(key string, handler queryHandler) {
	if key == "" {
		panic("queries: empty key registration")
	}
	b.handlers[key] = handler
}

// Ask executes the registered handler for the provided query.
func (b *InMemoryBus) Ask(ctx context.Context, query Query) (any, error) {
	h, ok := b.handlers[query.Key()]
	if !ok {
		return nil, ErrHandlerNotFound
	}
	return h(ctx, query)
}

// RegisterHandler registers a strongly typed handler on the in-memory bus.
func RegisterHandler[Q Query, R any](bus *InMemoryBus, key string, handler Handler[Q, R]) {
	if bus == nil {
		panic("queries: nil bus")
	}
	bus.RegisterRaw(key, func(ctx context.Context, raw Query) (any, error) {
		query, ok := any(raw).(Q)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, key)
		}
		return handler.Handle(ctx, query)
	})
}
