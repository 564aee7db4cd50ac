// Package panel implements the panel registry and lifecycle controller.
//
// The registry tracks every live panel record under its canonical key with a
// secondary index by kind; both indices move together atomically. The
// controller drives show/hide/destroy sequences over those records: it asks
// the external factory for new handles, delivers payload data through the
// data channel before activation, and invokes the four lifecycle hooks
// synchronously in a fixed order.
//
// Failure handling is uniformly non-fatal: a missing template, a malformed
// factory object, or an unknown identity degrades to "panel not shown /
// operation skipped" with a warning or error log, never a panic or process
// exit.
//
// Example Usage:
//
//	registry := panel.NewRegistry(logger)
//	controller := panel.NewController(registry, broker, factory, logger)
//	handle, ok := controller.Show("settings", panel.WithInstance("user1"), panel.WithData(payload))
//	controller.Hide("settings", "user1")
package panel
