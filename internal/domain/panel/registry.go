package panel

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/monitoring"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
	"go.uber.org/zap"
)

// Record is the registry's bookkeeping entry for one live panel
type Record struct {
	Identity      id.Identity
	Handle        Handle
	Active        bool
	DestroyOnHide bool
	RegisteredAt  time.Time
}

// Info returns the externally visible view of the record
func (r Record) Info() types.PanelInfo {
	state := types.StateHidden
	if r.Active {
		state = types.StateActive
	}
	return types.PanelInfo{
		Key:           r.Identity.Key(),
		Kind:          r.Identity.Kind,
		Instance:      r.Identity.Instance,
		HandleID:      r.Handle.ID().String(),
		State:         state,
		Active:        r.Active,
		DestroyOnHide: r.DestroyOnHide,
		RegisteredAt:  r.RegisteredAt,
	}
}

// Registry tracks every live panel record, indexed by canonical key and
// grouped by kind. Both indices are updated under one mutex as a single
// atomic step; a reader never observes one without the other.
type Registry struct {
	mu      sync.RWMutex
	byKey   map[string]*Record
	byKind  map[types.Kind][]*Record
	log     *logging.Logger
	metrics *monitoring.Metrics
}

// NewRegistry creates an empty panel registry
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.NewNop()
	}
	return &Registry{
		byKey:  make(map[string]*Record),
		byKind: make(map[types.Kind][]*Record),
		log:    log.Named("registry"),
	}
}

// WithMetrics adds metrics tracking to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// Register inserts a record for identity, replacing any existing record
// under the same key. Replacement is last-write-wins: the previous handle is
// dropped from both indices with a warning, not an error. Returns true when
// an existing record was replaced.
func (r *Registry) Register(ident id.Identity, h Handle, destroyOnHide bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ident.Key()
	replaced := false

	if prev, ok := r.byKey[key]; ok {
		r.removeFromKindLocked(prev)
		if prev.Active && r.metrics != nil {
			r.metrics.PanelsActive.Dec()
		}
		replaced = true
		r.log.Warn("replacing existing panel registration",
			zap.String("key", key),
			zap.String("old_handle", prev.Handle.ID().String()),
			zap.String("new_handle", h.ID().String()))
		if r.metrics != nil {
			r.metrics.PanelsReplaced.WithLabelValues(string(ident.Kind)).Inc()
		}
	}

	rec := &Record{
		Identity:      ident,
		Handle:        h,
		DestroyOnHide: destroyOnHide,
		RegisteredAt:  time.Now(),
	}
	r.byKey[key] = rec
	r.byKind[ident.Kind] = append(r.byKind[ident.Kind], rec)

	return replaced
}

// Lookup returns a copy of the record for identity
func (r *Registry) Lookup(ident id.Identity) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byKey[ident.Key()]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// AllOfKind returns copies of every record of kind, in insertion order.
// The returned slice is a snapshot; callers may iterate it while hooks
// mutate the registry.
func (r *Registry) AllOfKind(kind types.Kind) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.byKind[kind]
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, *rec)
	}
	return out
}

// ActiveOfKind returns copies of the active records of kind
func (r *Registry) ActiveOfKind(kind types.Kind) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, rec := range r.byKind[kind] {
		if rec.Active {
			out = append(out, *rec)
		}
	}
	return out
}

// All returns copies of every record across kinds
func (r *Registry) All() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.byKey))
	for _, recs := range r.byKind {
		for _, rec := range recs {
			out = append(out, *rec)
		}
	}
	return out
}

// Remove deletes the record for identity from both indices. No-op when the
// identity is not registered.
func (r *Registry) Remove(ident id.Identity) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(ident.Key())
}

// RemoveHandle deletes whichever record currently holds h. No-op when h is
// not registered, which makes destroy idempotent.
func (r *Registry) RemoveHandle(h Handle) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, rec := range r.byKey {
		if rec.Handle == h {
			return r.removeLocked(key)
		}
	}
	return Record{}, false
}

// SetActive flips the active flag on the record for identity. Returns false
// when the record no longer exists, which a reentrant destroy can cause.
func (r *Registry) SetActive(ident id.Identity, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byKey[ident.Key()]
	if !ok {
		return false
	}
	if rec.Active != active && r.metrics != nil {
		if active {
			r.metrics.PanelsActive.Inc()
		} else {
			r.metrics.PanelsActive.Dec()
		}
	}
	rec.Active = active
	return true
}

// Len returns the number of registered panels
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}

// Stats returns registry statistics
func (r *Registry) Stats() types.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := types.Stats{Kinds: make(map[types.Kind]int)}
	for _, rec := range r.byKey {
		stats.TotalPanels++
		if rec.Active {
			stats.ActivePanels++
		}
		stats.Kinds[rec.Identity.Kind]++
	}
	return stats
}

func (r *Registry) removeLocked(key string) (Record, bool) {
	rec, ok := r.byKey[key]
	if !ok {
		return Record{}, false
	}

	delete(r.byKey, key)
	r.removeFromKindLocked(rec)
	if rec.Active && r.metrics != nil {
		r.metrics.PanelsActive.Dec()
	}
	return *rec, true
}

func (r *Registry) removeFromKindLocked(rec *Record) {
	kind := rec.Identity.Kind
	recs := r.byKind[kind]
	for i, cand := range recs {
		if cand == rec {
			r.byKind[kind] = append(recs[:i:i], recs[i+1:]...)
			break
		}
	}
	if len(r.byKind[kind]) == 0 {
		delete(r.byKind, kind)
	}
}
