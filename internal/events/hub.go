// Package events fans lifecycle events out to streaming consumers.
//
// The hub decouples the lifecycle controller from the WebSocket layer:
// the controller publishes transitions, each connected client drains its
// own buffered channel. Slow consumers lose events rather than blocking
// the lifecycle path.
package events

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/monitoring"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// subscriber buffer; events beyond this are dropped per-client
const bufferSize = 64

// Hub broadcasts lifecycle events to subscribers
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan types.Event
	closed      bool
	log         *logging.Logger
	metrics     *monitoring.Metrics
}

// NewHub creates an event hub
func NewHub(log *logging.Logger) *Hub {
	if log == nil {
		log = logging.NewNop()
	}
	return &Hub{
		subscribers: make(map[string]chan types.Event),
		log:         log.Named("events"),
	}
}

// WithMetrics adds metrics tracking to the hub
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// Subscribe registers a new consumer and returns its id and event channel
func (h *Hub) Subscribe() (string, <-chan types.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subID := uuid.New().String()
	ch := make(chan types.Event, bufferSize)
	if h.closed {
		close(ch)
		return subID, ch
	}
	h.subscribers[subID] = ch
	return subID, ch
}

// Unsubscribe removes a consumer and closes its channel. No-op for unknown ids.
func (h *Hub) Unsubscribe(subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[subID]; ok {
		delete(h.subscribers, subID)
		close(ch)
	}
}

// Publish delivers evt to every subscriber without blocking. The timestamp
// is stamped here when the caller left it zero.
func (h *Hub) Publish(evt types.Event) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for subID, ch := range h.subscribers {
		select {
		case ch <- evt:
			if h.metrics != nil {
				h.metrics.WSEvents.Inc()
			}
		default:
			h.log.Debug("dropping event for slow consumer",
				zap.String("subscriber", subID),
				zap.String("type", string(evt.Type)))
		}
	}
}

// Close shuts down the hub and closes every subscriber channel
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for subID, ch := range h.subscribers {
		delete(h.subscribers, subID)
		close(ch)
	}
}
