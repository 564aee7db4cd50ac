package events

import (
	"testing"
	"time"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
)

func TestPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(logging.NewNop())
	defer hub.Close()

	_, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()

	hub.Publish(types.Event{Type: types.EventShown, Key: "settings", Kind: "settings"})

	for i, ch := range []<-chan types.Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Type != types.EventShown || evt.Key != "settings" {
				t.Errorf("Subscriber %d got wrong event: %+v", i, evt)
			}
			if evt.Timestamp.IsZero() {
				t.Error("Publish should stamp the timestamp")
			}
		default:
			t.Errorf("Subscriber %d received nothing", i)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(logging.NewNop())
	defer hub.Close()

	subID, ch := hub.Subscribe()
	hub.Unsubscribe(subID)

	select {
	case _, open := <-ch:
		if open {
			t.Error("Channel should be closed after unsubscribe")
		}
	case <-time.After(time.Second):
		t.Error("Channel should be closed, not blocked")
	}

	// Unknown id is a no-op
	hub.Unsubscribe("missing")
}

func TestSlowConsumerDropsEvents(t *testing.T) {
	hub := NewHub(logging.NewNop())
	defer hub.Close()

	_, ch := hub.Subscribe()

	// Overfill the buffer; Publish must never block
	for i := 0; i < bufferSize+10; i++ {
		hub.Publish(types.Event{Type: types.EventData, Key: "k"})
	}

	if got := len(ch); got != bufferSize {
		t.Errorf("Expected buffer capped at %d events, got %d", bufferSize, got)
	}
}

func TestPublishAfterClose(t *testing.T) {
	hub := NewHub(logging.NewNop())
	_, ch := hub.Subscribe()

	hub.Close()
	hub.Publish(types.Event{Type: types.EventShown, Key: "k"})
	hub.Close()

	if _, open := <-ch; open {
		t.Error("Subscriber channel should be closed after hub close")
	}
}
