package types

import "time"

// Kind classifies a panel's role. The set is open: consumers define their own
// kinds (e.g. "main_menu", "settings", "inventory").
type Kind string

// State is the externally observable lifecycle state of a panel. Show and
// hide transitions are synchronous, so only the settled states surface.
type State string

const (
	StateHidden    State = "hidden"
	StateActive    State = "active"
	StateDestroyed State = "destroyed"
)

// PanelInfo is the externally visible view of a registered panel
type PanelInfo struct {
	Key           string    `json:"key"`
	Kind          Kind      `json:"kind"`
	Instance      string    `json:"instance,omitempty"`
	HandleID      string    `json:"handle_id"`
	State         State     `json:"state"`
	Active        bool      `json:"active"`
	DestroyOnHide bool      `json:"destroy_on_hide"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// Stats contains registry statistics
type Stats struct {
	TotalPanels  int          `json:"total_panels"`
	ActivePanels int          `json:"active_panels"`
	Kinds        map[Kind]int `json:"kinds"`
}
