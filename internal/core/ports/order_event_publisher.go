package ports

import (
	"context"

	"makanapa/internal/core/domain/model/order"
)

// OrderEventPublisher forwards committed lifecycle transitions to downstream
// consumers. Publishing is best effort: callers log a failure and carry on.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}
