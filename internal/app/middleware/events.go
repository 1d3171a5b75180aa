package middleware

import (
	"context"
	"log/slog"
	"sync"

	"dreamstay/internal/app/commands"
	"dreamstay/internal/app/policies"
)

// Event is a publish request buffered by a command handler while its
// transaction is still open.
type Event struct {
	Topic   string
	Key     string
	Payload []byte
	Headers map[string]string
}

// EventBuffer collects events appended during command handling so they can
// be published after the surrounding transaction commits.
type EventBuffer struct {
	mu      sync.Mutex
	pending []Event
}

func (b *EventBuffer) Append(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, ev)
}

func (b *EventBuffer) drain() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

type eventBufferKey struct{}

func ContextWithEventBuffer(ctx context.Context, buf *EventBuffer) context.Context {
	return context.WithValue(ctx, eventBufferKey{}, buf)
}

func EventBufferFromContext(ctx context.Context) (*EventBuffer, bool) {
	buf, ok := ctx.Value(eventBufferKey{}).(*EventBuffer)
	return buf, ok
}

// EventDispatch publishes events buffered by the handler once the inner bus
// (including the transaction wrapper) returns success. Publish failures are
// logged and swallowed: the command already committed. A nil publisher
// disables fan-out entirely.
func EventDispatch(pub policies.EventPublisher, logger *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			buf := &EventBuffer{}
			res, err := nextFn(ContextWithEventBuffer(ctx, buf), cmd)
			if err != nil {
				return nil, err
			}
			if pub == nil {
				return res, nil
			}
			for _, ev := range buf.drain() {
				if perr := pub.Publish(ctx, ev.Topic, ev.Key, ev.Payload, ev.Headers); perr != nil {
					if logger != nil {
						logger.Error("event publish failed", "topic", ev.Topic, "key", ev.Key, "error", perr)
					}
				}
			}
			return res, nil
		})
	}
}
