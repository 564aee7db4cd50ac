// Package id provides panel identity derivation and handle ID generation.
//
// A panel is named by its kind plus an optional instance discriminator. The
// canonical key is the kind alone when the discriminator is empty, otherwise
// kind and discriminator joined by the reserved separator. Distinct
// (kind, instance) pairs always map to distinct keys as long as callers never
// embed the separator in an instance id, which Validate enforces.
//
// Handle IDs are prefixed ULIDs (pnl_*), lexicographically sortable and
// unique across the process.
package id

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
)

// Separator joins kind and instance in a canonical key. It is reserved:
// instance ids containing it are rejected.
const Separator = "::"

// Identity names a panel instance
type Identity struct {
	Kind     types.Kind
	Instance string
}

// New builds an identity from a kind and an optional instance discriminator
func New(kind types.Kind, instance string) Identity {
	return Identity{Kind: kind, Instance: instance}
}

// Key returns the canonical key for this identity
func (i Identity) Key() string {
	if i.Instance == "" {
		return string(i.Kind)
	}
	return string(i.Kind) + Separator + i.Instance
}

// Validate reports whether the identity can produce a collision-free key
func (i Identity) Validate() error {
	if i.Kind == "" {
		return fmt.Errorf("panel kind cannot be empty")
	}
	if strings.Contains(string(i.Kind), Separator) {
		return fmt.Errorf("panel kind %q contains reserved separator %q", i.Kind, Separator)
	}
	if strings.Contains(i.Instance, Separator) {
		return fmt.Errorf("instance id %q contains reserved separator %q", i.Instance, Separator)
	}
	return nil
}

// Parse splits a canonical key back into an identity
func Parse(key string) Identity {
	kind, instance, found := strings.Cut(key, Separator)
	if !found {
		return Identity{Kind: types.Kind(key)}
	}
	return Identity{Kind: types.Kind(kind), Instance: instance}
}
