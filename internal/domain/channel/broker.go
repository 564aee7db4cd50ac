// Package channel implements the keyed data channel used to deliver payloads
// to panel instances.
//
// Delivery is synchronous, in subscription order, and at-most-once: a payload
// published to a key with no current subscribers is dropped, never buffered.
// Channel entries are created lazily and outlive panel registration; hiding or
// destroying a panel does not tear down its subscriptions.
package channel

import (
	"sync"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/monitoring"
	"go.uber.org/zap"
)

// Callback receives a published payload
type Callback func(data interface{})

// Subscription identifies a single registered callback so it can be removed
type Subscription struct {
	broker *Broker
	key    string
	seq    uint64
}

// Broker routes payloads to subscribers by canonical panel key
type Broker struct {
	mu      sync.Mutex
	subs    map[string][]entry
	nextSeq uint64
	log     *logging.Logger
	metrics *monitoring.Metrics
}

type entry struct {
	seq uint64
	fn  Callback
}

// NewBroker creates a data channel broker
func NewBroker(log *logging.Logger) *Broker {
	if log == nil {
		log = logging.NewNop()
	}
	return &Broker{
		subs: make(map[string][]entry),
		log:  log.Named("channel"),
	}
}

// WithMetrics adds metrics tracking to the broker
func (b *Broker) WithMetrics(metrics *monitoring.Metrics) *Broker {
	b.metrics = metrics
	return b
}

// Subscribe appends fn to the subscriber list for key. Callbacks are invoked
// in subscription order. The same function may be subscribed more than once;
// it will then be invoked once per subscription.
func (b *Broker) Subscribe(key string, fn Callback) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	sub := &Subscription{broker: b, key: key, seq: b.nextSeq}
	b.subs[key] = append(b.subs[key], entry{seq: sub.seq, fn: fn})

	if b.metrics != nil {
		b.metrics.Subscribers.Inc()
	}
	return sub
}

// Cancel removes the subscription. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.broker == nil {
		return
	}
	s.broker.unsubscribe(s.key, s.seq)
	s.broker = nil
}

func (b *Broker) unsubscribe(key string, seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.subs[key]
	for i, e := range entries {
		if e.seq == seq {
			b.subs[key] = append(entries[:i:i], entries[i+1:]...)
			if b.metrics != nil {
				b.metrics.Subscribers.Dec()
			}
			return
		}
	}
}

// Publish synchronously invokes every subscriber currently registered for
// key, in subscription order. With no subscribers the payload is dropped;
// this is deliberate fire-and-forget delivery, not an error.
//
// Callbacks run without the broker lock held, so they may subscribe,
// cancel, or publish reentrantly. They observe the subscriber list as it
// was when Publish was called.
func (b *Broker) Publish(key string, data interface{}) {
	b.mu.Lock()
	entries := b.subs[key]
	snapshot := make([]entry, len(entries))
	copy(snapshot, entries)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		b.log.Debug("payload dropped, no subscribers", zap.String("key", key))
		if b.metrics != nil {
			b.metrics.DataDropped.Inc()
		}
		return
	}

	for _, e := range snapshot {
		e.fn(data)
	}
	if b.metrics != nil {
		b.metrics.DataPublished.Inc()
	}
}

// SubscriberCount returns the number of live subscriptions for key
func (b *Broker) SubscriberCount(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}

// Purge drops every subscription for key. The lifecycle path never calls
// this; it exists for consumers that want explicit channel teardown.
func (b *Broker) Purge(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.Subscribers.Sub(float64(len(b.subs[key])))
	}
	delete(b.subs, key)
}
