// Package broadcast implements the outbound fan-out boundary: an in-process,
// channel-based reference adapter grounded on the teacher's per-player
// notification stream registry (notifications.go), generalized from
// per-player-only delivery to arbitrary topics (a user id or an entity id).
package broadcast

import (
	"sync"

	"github.com/decred/slog"
)

// Event is one outbound message addressed to a topic.
type Event struct {
	Kind    string
	Topic   string
	Payload interface{}
}

// Subscriber receives events for the topics it is subscribed to. Delivery
// is asynchronous and best-effort: a slow or closed subscriber never blocks
// or fails the originating event.
type Subscriber interface {
	Deliver(ev Event)
}

// Broadcaster is the narrow interface SPEC_FULL §6 external collaborators
// depend on.
type Broadcaster interface {
	Send(topic string, ev Event)
	Subscribe(topic string, sub Subscriber) (unsubscribe func())
}

// InProcess is a Broadcaster backed by an in-memory per-topic subscriber
// registry, matching the teacher's `notificationMu`-guarded
// `map[string]*subscriberStream` with fire-and-forget sends.
type InProcess struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriberHandle]Subscriber
	log  slog.Logger
}

type subscriberHandle struct{}

// NewInProcess creates an empty in-process broadcaster.
func NewInProcess(log slog.Logger) *InProcess {
	return &InProcess{
		subs: make(map[string]map[*subscriberHandle]Subscriber),
		log:  log,
	}
}

// Subscribe registers sub to receive events sent to topic, returning a
// function that removes the registration.
func (b *InProcess) Subscribe(topic string, sub Subscriber) func() {
	handle := &subscriberHandle{}

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*subscriberHandle]Subscriber)
	}
	b.subs[topic][handle] = sub
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs[topic], handle)
		if len(b.subs[topic]) == 0 {
			delete(b.subs, topic)
		}
		b.mu.Unlock()
	}
}

// Send delivers ev to every current subscriber of topic, each in its own
// goroutine so one slow subscriber cannot delay another or the caller.
func (b *InProcess) Send(topic string, ev Event) {
	b.mu.RLock()
	recipients := make([]Subscriber, 0, len(b.subs[topic]))
	for _, sub := range b.subs[topic] {
		recipients = append(recipients, sub)
	}
	b.mu.RUnlock()

	if len(recipients) == 0 {
		if b.log != nil {
			b.log.Debugf("no subscribers for topic %s, dropping %s event", topic, ev.Kind)
		}
		return
	}

	for _, sub := range recipients {
		go func(s Subscriber) {
			defer func() {
				if r := recover(); r != nil && b.log != nil {
					b.log.Errorf("recovered panic delivering %s event to topic %s: %v", ev.Kind, topic, r)
				}
			}()
			s.Deliver(ev)
		}(sub)
	}
}

var _ Broadcaster = (*InProcess)(nil)
