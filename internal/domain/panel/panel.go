package panel

import (
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
)

// Handle is the contract every panel object must satisfy. The backend never
// owns the underlying visual object; it only drives visibility and hooks
// through this interface. Objects are created and released by a Factory.
type Handle interface {
	// ID returns the stable handle identifier assigned at creation
	ID() id.HandleID

	// Kind returns the panel classification
	Kind() types.Kind

	// Instance returns the instance discriminator, empty for singletons
	Instance() string

	// SetInstance assigns the instance discriminator. The controller calls
	// this on newly created handles before registration; it is the supported
	// way to re-identify a handle, not a privileged field write.
	SetInstance(instance string)

	// SetVisible toggles the underlying object's visual activation
	SetVisible(visible bool)

	// Hooks exposes the lifecycle hook registration points
	Hooks() *Hooks
}

// Factory creates and destroys underlying panel objects for the controller.
// Create returns false, never panics, when no template is registered for the
// kind. The returned object is expected to satisfy Handle; the controller
// destroys anything that does not.
type Factory interface {
	Create(kind types.Kind) (interface{}, bool)
	Destroy(obj interface{})
}

// Capability reports whether the handle implements capability T and returns
// it. Capabilities are plain interfaces implemented by concrete handles.
func Capability[T any](h Handle) (T, bool) {
	v, ok := h.(T)
	return v, ok
}
