package channel

import (
	"testing"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var order []int
	b.Subscribe("settings::user1", func(data interface{}) {
		order = append(order, 1)
	})
	b.Subscribe("settings::user1", func(data interface{}) {
		order = append(order, 2)
	})

	b.Publish("settings::user1", "payload")

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected delivery order [1 2], got %v", order)
	}
}

func TestPublishPayload(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var got interface{}
	var calls int
	b.Subscribe("settings::user1", func(data interface{}) {
		got = data
		calls++
	})

	payload := map[string]string{"theme": "dark"}
	b.Publish("settings::user1", payload)

	if calls != 1 {
		t.Fatalf("Expected exactly one invocation, got %d", calls)
	}
	if m, ok := got.(map[string]string); !ok || m["theme"] != "dark" {
		t.Errorf("Expected payload to round-trip, got %v", got)
	}
}

func TestPublishNoSubscribersDrops(t *testing.T) {
	b := NewBroker(logging.NewNop())

	// Must not panic or create observable state
	b.Publish("missing", "payload")

	if n := b.SubscriberCount("missing"); n != 0 {
		t.Errorf("Expected no subscribers after drop, got %d", n)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var calls int
	sub := b.Subscribe("settings::user1", func(data interface{}) {
		calls++
	})

	b.Publish("settings::user1", "first")
	sub.Cancel()
	b.Publish("settings::user1", "second")

	if calls != 1 {
		t.Errorf("Expected one delivery before cancel, got %d", calls)
	}

	// Cancelling again is a no-op
	sub.Cancel()
}

func TestCancelMiddleSubscriberKeepsOrder(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var order []string
	b.Subscribe("k", func(data interface{}) { order = append(order, "a") })
	mid := b.Subscribe("k", func(data interface{}) { order = append(order, "b") })
	b.Subscribe("k", func(data interface{}) { order = append(order, "c") })

	mid.Cancel()
	b.Publish("k", nil)

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("Expected [a c], got %v", order)
	}
}

func TestDuplicateSubscriptionInvokedTwice(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var calls int
	fn := func(data interface{}) { calls++ }
	b.Subscribe("k", fn)
	b.Subscribe("k", fn)

	b.Publish("k", nil)

	if calls != 2 {
		t.Errorf("Expected duplicate subscription to fire twice, got %d", calls)
	}
}

func TestReentrantSubscribeNotObservedByCurrentPublish(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var lateCalls int
	b.Subscribe("k", func(data interface{}) {
		b.Subscribe("k", func(data interface{}) { lateCalls++ })
	})

	b.Publish("k", nil)
	if lateCalls != 0 {
		t.Error("Subscriber added during publish must not observe the same publish")
	}

	b.Publish("k", nil)
	if lateCalls != 1 {
		t.Errorf("Expected late subscriber to fire on next publish, got %d", lateCalls)
	}
}

func TestPurge(t *testing.T) {
	b := NewBroker(logging.NewNop())

	var calls int
	b.Subscribe("k", func(data interface{}) { calls++ })
	b.Purge("k")
	b.Publish("k", nil)

	if calls != 0 {
		t.Errorf("Expected no delivery after purge, got %d", calls)
	}
}
