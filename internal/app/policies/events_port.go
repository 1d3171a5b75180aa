package policies

import "context"

// EventPublisher is the outbound port for domain event fan-out. The kafka
// producer implements it in production; a nil publisher disables fan-out.
// Publishing happens after the owning transaction commits and is best effort:
// a failed publish is logged, never rolled back into the booking path.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}
