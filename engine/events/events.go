// Package events implements single-pass event dispatch to subscribers.
// Handlers observe events but cannot emit new ones into the same pass.
package events

import "github.com/nathoo/spinwheel/types"

// Event types emitted by the engine.
const (
	SpinStarted   = "spin_started"
	SpinSettled   = "spin_settled"
	SpinCancelled = "spin_cancelled"
	ItemAdded     = "item_added"
	ItemRemoved   = "item_removed"
	ItemsReplaced = "items_replaced"
	ItemsCleared  = "items_cleared"
)

// Any subscribes a handler to every event type.
const Any = "*"

// Handler receives one event.
type Handler func(types.Event)

// Bus fans events out to subscribers in subscription order.
type Bus struct {
	subs []subscription
}

type subscription struct {
	eventType string
	handler   Handler
}

// Subscribe registers h for events of the given type, or Any.
func (b *Bus) Subscribe(eventType string, h Handler) {
	b.subs = append(b.subs, subscription{eventType: eventType, handler: h})
}

// Dispatch delivers each event to matching handlers. Single pass, no
// recursion. Returns the number of deliveries.
func (b *Bus) Dispatch(evs []types.Event) int {
	subs := b.subs // handlers subscribing mid-dispatch wait for the next pass
	n := 0
	for _, ev := range evs {
		for _, s := range subs {
			if s.eventType != Any && s.eventType != ev.Type {
				continue
			}
			s.handler(ev)
			n++
		}
	}
	return n
}
