// Package scene seeds the panel registry from panels that already exist in
// the running application.
//
// Discovery runs once at startup: every enumerated handle is registered
// under its own identity, then forced invisible and inactive so the world
// starts from the "all panels hidden" baseline regardless of how the scene
// was authored.
package scene

import (
	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"go.uber.org/zap"
)

// Enumerator lists panel handles already present in the application
type Enumerator interface {
	ExistingPanels() []panel.Handle
}

// Discovery registers pre-existing panels into a registry
type Discovery struct {
	registry *panel.Registry
	source   Enumerator
	log      *logging.Logger
}

// NewDiscovery creates a scene discovery pass
func NewDiscovery(registry *panel.Registry, source Enumerator, log *logging.Logger) *Discovery {
	if log == nil {
		log = logging.NewNop()
	}
	return &Discovery{
		registry: registry,
		source:   source,
		log:      log.Named("scene"),
	}
}

// Run enumerates existing panels and registers each one hidden. Malformed
// entries are skipped with a warning; the pass never fails as a whole.
// Returns the number of panels registered.
func (d *Discovery) Run() int {
	handles := d.source.ExistingPanels()
	d.log.Info("discovering scene panels", zap.Int("found", len(handles)))

	var registered, skipped int
	for _, h := range handles {
		if h == nil {
			skipped++
			continue
		}

		ident := id.New(h.Kind(), h.Instance())
		if err := ident.Validate(); err != nil {
			d.log.Warn("skipping scene panel with invalid identity",
				zap.String("handle", h.ID().String()),
				zap.Error(err))
			skipped++
			continue
		}

		d.registry.Register(ident, h, false)
		h.SetVisible(false)

		registered++
	}

	d.log.Info("scene discovery complete",
		zap.Int("registered", registered),
		zap.Int("skipped", skipped))
	return registered
}
