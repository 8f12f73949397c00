package providers

import (
	"context"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.LookupEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.LookupEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelLookups is the channel carrying every completed lookup
	EventChannelLookups = "lookups:completed"

	// EventChannelRiskPrefix is the prefix for risk-specific channels
	EventChannelRiskPrefix = "lookups:risk:"
)

// GetRiskChannel returns the channel name for a specific risk grade
func GetRiskChannel(risk entities.Risk) string {
	return EventChannelRiskPrefix + string(risk)
}
