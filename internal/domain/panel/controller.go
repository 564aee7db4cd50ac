package panel

import (
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/channel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/events"
	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/monitoring"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
	"go.uber.org/zap"
)

// Controller orchestrates panel lifecycle: it resolves identities to live
// records or requests creation from the factory, sequences lifecycle hooks,
// and routes payload data through the data channel before activation.
//
// All operations are synchronous and run to completion on the caller's
// goroutine. Hooks are invoked with no controller or registry lock held, so
// hook bodies may call back into the controller; bulk operations iterate
// snapshots for the same reason.
type Controller struct {
	registry *Registry
	broker   *channel.Broker
	factory  Factory
	log      *logging.Logger
	metrics  *monitoring.Metrics
	events   *events.Hub
}

// NewController creates a lifecycle controller
func NewController(registry *Registry, broker *channel.Broker, factory Factory, log *logging.Logger) *Controller {
	if log == nil {
		log = logging.NewNop()
	}
	return &Controller{
		registry: registry,
		broker:   broker,
		factory:  factory,
		log:      log.Named("lifecycle"),
	}
}

// WithMetrics adds metrics tracking to the controller
func (c *Controller) WithMetrics(metrics *monitoring.Metrics) *Controller {
	c.metrics = metrics
	return c
}

// WithEvents adds lifecycle event publication to the controller
func (c *Controller) WithEvents(hub *events.Hub) *Controller {
	c.events = hub
	return c
}

// ShowOption configures a Show call
type ShowOption func(*showConfig)

type showConfig struct {
	instance      string
	data          interface{}
	hasData       bool
	destroyOnHide bool
}

// WithInstance shows a discriminated instance of the kind
func WithInstance(instance string) ShowOption {
	return func(cfg *showConfig) { cfg.instance = instance }
}

// WithData delivers a payload to the panel's key before the show-begin hook
func WithData(data interface{}) ShowOption {
	return func(cfg *showConfig) {
		cfg.data = data
		cfg.hasData = true
	}
}

// WithDestroyOnHide marks the record for destruction when hide completes
func WithDestroyOnHide() ShowOption {
	return func(cfg *showConfig) { cfg.destroyOnHide = true }
}

// Show resolves or creates the panel for kind and activates it. Returns the
// handle and true on success; every failure is non-fatal and reported as a
// warning or error log plus a nil result.
func (c *Controller) Show(kind types.Kind, opts ...ShowOption) (Handle, bool) {
	var cfg showConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ident := id.New(kind, cfg.instance)
	if err := ident.Validate(); err != nil {
		c.log.Warn("show skipped, invalid identity", zap.Error(err))
		c.countFailure(kind, "invalid_identity")
		return nil, false
	}

	rec, ok := c.registry.Lookup(ident)
	if !ok {
		h, created := c.create(ident)
		if !created {
			return nil, false
		}
		replaced := c.registry.Register(ident, h, cfg.destroyOnHide)
		if replaced {
			c.publishEvent(types.EventReplaced, ident)
		}
		rec = Record{Identity: ident, Handle: h, DestroyOnHide: cfg.destroyOnHide}
	}

	handle := rec.Handle

	// Ordering guarantee: a subscriber registered for this identity observes
	// the payload strictly before the show-begin hook fires.
	if cfg.hasData {
		c.broker.Publish(ident.Key(), cfg.data)
	}

	hooks := handle.Hooks()
	hooks.emitShowBegin(handle)

	// A show-begin hook may have destroyed this panel reentrantly; in that
	// case the record is gone and activation is skipped.
	if !c.registry.SetActive(ident, true) {
		c.log.Warn("panel removed during show, activation skipped",
			zap.String("key", ident.Key()))
		c.countFailure(kind, "removed_during_show")
		return nil, false
	}
	handle.SetVisible(true)

	hooks.emitShowComplete(handle)

	c.log.Debug("panel shown",
		zap.String("key", ident.Key()),
		zap.String("handle", handle.ID().String()))
	if c.metrics != nil {
		c.metrics.PanelsShown.WithLabelValues(string(kind)).Inc()
	}
	c.publishEvent(types.EventShown, ident)

	return handle, true
}

// create requests a new handle from the factory and prepares its identity
func (c *Controller) create(ident id.Identity) (Handle, bool) {
	obj, ok := c.factory.Create(ident.Kind)
	if !ok {
		c.log.Warn("no template registered for kind",
			zap.String("kind", string(ident.Kind)))
		c.countFailure(ident.Kind, "no_template")
		return nil, false
	}

	h, ok := obj.(Handle)
	if !ok {
		// The factory produced something that cannot act as a panel. Hand it
		// back for destruction rather than leaking it.
		c.factory.Destroy(obj)
		c.log.Error("factory object lacks panel capability",
			zap.String("kind", string(ident.Kind)))
		c.countFailure(ident.Kind, "missing_capability")
		return nil, false
	}

	if ident.Instance != "" {
		h.SetInstance(ident.Instance)
	}
	return h, true
}

// Hide deactivates the panel for (kind, instance). With an empty instance it
// deactivates every registered panel of the kind. Unknown identities and
// already-inactive panels are silent no-ops.
func (c *Controller) Hide(kind types.Kind, instance string) {
	if instance == "" {
		c.HideAllOfKind(kind)
		return
	}

	rec, ok := c.registry.Lookup(id.New(kind, instance))
	if !ok {
		return
	}
	c.hideRecord(rec)
}

// HideAllOfKind hides every registered panel of kind, iterating a snapshot
// so hide-triggered destruction cannot corrupt the walk
func (c *Controller) HideAllOfKind(kind types.Kind) {
	for _, rec := range c.registry.AllOfKind(kind) {
		c.hideRecord(rec)
	}
}

// HideAll hides every registered panel
func (c *Controller) HideAll() {
	for _, rec := range c.registry.All() {
		c.hideRecord(rec)
	}
}

func (c *Controller) hideRecord(rec Record) {
	if !rec.Active {
		return
	}

	handle := rec.Handle
	hooks := handle.Hooks()
	hooks.emitHideBegin(handle)

	// Skip the rest when a hide-begin hook already removed the record
	if !c.registry.SetActive(rec.Identity, false) {
		return
	}
	handle.SetVisible(false)

	hooks.emitHideComplete(handle)

	c.log.Debug("panel hidden", zap.String("key", rec.Identity.Key()))
	if c.metrics != nil {
		c.metrics.PanelsHidden.WithLabelValues(string(rec.Identity.Kind)).Inc()
	}
	c.publishEvent(types.EventHidden, rec.Identity)

	if rec.DestroyOnHide {
		c.Destroy(handle)
	}
}

// Destroy removes the panel holding h from the registry and requests the
// factory release the underlying object. Destroying an unregistered handle
// is a no-op, so double destroy is safe.
func (c *Controller) Destroy(h Handle) {
	rec, ok := c.registry.RemoveHandle(h)
	if !ok {
		return
	}

	c.factory.Destroy(h)

	c.log.Debug("panel destroyed", zap.String("key", rec.Identity.Key()))
	if c.metrics != nil {
		c.metrics.PanelsDestroyed.WithLabelValues(string(rec.Identity.Kind)).Inc()
	}
	c.publishEvent(types.EventDestroyed, rec.Identity)
}

// DestroyAllOfKind destroys every registered panel of kind
func (c *Controller) DestroyAllOfKind(kind types.Kind) {
	for _, rec := range c.registry.AllOfKind(kind) {
		c.Destroy(rec.Handle)
	}
}

// IsActive reports whether the panel for (kind, instance) exists and is active
func (c *Controller) IsActive(kind types.Kind, instance string) bool {
	rec, ok := c.registry.Lookup(id.New(kind, instance))
	return ok && rec.Active
}

// ActiveOfKind returns the active records of kind
func (c *Controller) ActiveOfKind(kind types.Kind) []Record {
	return c.registry.ActiveOfKind(kind)
}

// Component returns capability T from the panel for (kind, instance). With
// an empty instance and multiple records of the kind, the first record in
// insertion order wins.
func Component[T any](c *Controller, kind types.Kind, instance string) (T, bool) {
	var zero T

	var h Handle
	if instance != "" {
		rec, ok := c.registry.Lookup(id.New(kind, instance))
		if !ok {
			return zero, false
		}
		h = rec.Handle
	} else {
		recs := c.registry.AllOfKind(kind)
		if len(recs) == 0 {
			return zero, false
		}
		h = recs[0].Handle
	}

	return Capability[T](h)
}

// SendData publishes a payload to whatever is subscribed under key. Without
// subscribers the payload is dropped, by design.
func (c *Controller) SendData(key string, data interface{}) {
	c.broker.Publish(key, data)
	c.publishEvent(types.EventData, id.Parse(key))
}

// SendDataToKind publishes a payload to every registered panel of kind,
// under each record's own key
func (c *Controller) SendDataToKind(kind types.Kind, data interface{}) {
	for _, rec := range c.registry.AllOfKind(kind) {
		c.broker.Publish(rec.Identity.Key(), data)
	}
	c.publishEvent(types.EventData, id.Identity{Kind: kind})
}

// Subscribe registers a data callback for key. Cancel the returned
// subscription to unsubscribe; cancelling twice is a no-op.
func (c *Controller) Subscribe(key string, fn channel.Callback) *channel.Subscription {
	return c.broker.Subscribe(key, fn)
}

// Registry exposes the underlying registry for read-side consumers
func (c *Controller) Registry() *Registry {
	return c.registry
}

func (c *Controller) publishEvent(eventType types.EventType, ident id.Identity) {
	if c.events == nil {
		return
	}
	var state types.State
	switch eventType {
	case types.EventShown:
		state = types.StateActive
	case types.EventHidden, types.EventReplaced:
		state = types.StateHidden
	case types.EventDestroyed:
		state = types.StateDestroyed
	}
	c.events.Publish(types.Event{
		Type:     eventType,
		Key:      ident.Key(),
		Kind:     ident.Kind,
		Instance: ident.Instance,
		State:    state,
	})
}

func (c *Controller) countFailure(kind types.Kind, reason string) {
	if c.metrics != nil {
		c.metrics.ShowFailures.WithLabelValues(string(kind), reason).Inc()
	}
}
