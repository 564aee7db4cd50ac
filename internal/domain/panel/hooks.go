package panel

import "sync"

// HookFunc observes a lifecycle transition on a handle
type HookFunc func(h Handle)

// Hooks holds the four lifecycle hook points of a panel. Callbacks are
// invoked synchronously in registration order over a snapshot, so a hook
// body may register or remove hooks, or call back into the controller,
// without corrupting the list being iterated.
//
// Concrete handles hold a Hooks value in an unexported field and return its
// address from their Hooks method. Embedding the struct does not work here:
// the embedded field is itself named Hooks and shadows any promoted method of
// that name, leaving the accessor out of the handle's method set.
type Hooks struct {
	mu           sync.Mutex
	showBegin    []HookFunc
	showComplete []HookFunc
	hideBegin    []HookFunc
	hideComplete []HookFunc
}

// OnShowBegin registers fn to run before a show transition activates the panel
func (h *Hooks) OnShowBegin(fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.showBegin = append(h.showBegin, fn)
}

// OnShowComplete registers fn to run after a show transition completes
func (h *Hooks) OnShowComplete(fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.showComplete = append(h.showComplete, fn)
}

// OnHideBegin registers fn to run before a hide transition deactivates the panel
func (h *Hooks) OnHideBegin(fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hideBegin = append(h.hideBegin, fn)
}

// OnHideComplete registers fn to run after a hide transition completes
func (h *Hooks) OnHideComplete(fn HookFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hideComplete = append(h.hideComplete, fn)
}

func (h *Hooks) emit(pick func() []HookFunc, p Handle) {
	h.mu.Lock()
	fns := append([]HookFunc(nil), pick()...)
	h.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

func (h *Hooks) emitShowBegin(p Handle) {
	h.emit(func() []HookFunc { return h.showBegin }, p)
}

func (h *Hooks) emitShowComplete(p Handle) {
	h.emit(func() []HookFunc { return h.showComplete }, p)
}

func (h *Hooks) emitHideBegin(p Handle) {
	h.emit(func() []HookFunc { return h.hideBegin }, p)
}

func (h *Hooks) emitHideComplete(p Handle) {
	h.emit(func() []HookFunc { return h.hideComplete }, p)
}
