package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/entities"
	"github.com/zatekoja/Drugfoodinteractiondesign/internal/domain/providers"
)

// MemoryEventBus is an in-process EventBus used when Redis is not
// configured. Events only reach subscribers in the same process.
type MemoryEventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.LookupEvent]struct{}
	closed      bool
}

// NewMemoryEventBus creates a new in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{
		subscribers: make(map[string]map[chan *entities.LookupEvent]struct{}),
	}
}

// Publish delivers an event to every subscriber on the channel. Slow
// subscribers have the event dropped rather than blocking the publisher.
func (b *MemoryEventBus) Publish(_ context.Context, channel string, event *entities.LookupEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return fmt.Errorf("event bus is closed")
	}

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
		}
	}
	return nil
}

// Subscribe subscribes to events on a channel. The subscription is removed
// when ctx is cancelled.
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.LookupEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("event bus is closed")
	}

	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.LookupEvent]struct{})
	}

	eventChan := make(chan *entities.LookupEvent, 100)
	b.subscribers[channel][eventChan] = struct{}{}

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

func (b *MemoryEventBus) removeSubscriber(channel string, eventChan chan *entities.LookupEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}

	delete(subscribers, eventChan)
	close(eventChan)
	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}

// Unsubscribe drops every subscriber on the channel
func (b *MemoryEventBus) Unsubscribe(_ context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	return nil
}

// Close closes the event bus and all subscriptions
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	return nil
}
