package eventbus

import (
	"context"

	"github.com/untangle-ai/agent-broker/internal/domain/event"
)

type Handler func(ctx context.Context, e event.Event)

type Subscription interface {
	Unsubscribe()
}

// EventBus fans broker events out to observers. Publish failures are
// observability losses, not dispatch failures; callers log and continue.
type EventBus interface {
	Publish(ctx context.Context, e event.Event) error
	Subscribe(ctx context.Context, ch event.Channel, handler Handler) (Subscription, error)
}
