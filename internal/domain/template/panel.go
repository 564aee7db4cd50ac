package template

import (
	"sync/atomic"

	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
)

// Panel is the concrete handle produced by the template factory
type Panel struct {
	hooks panel.Hooks

	handleID id.HandleID
	kind     types.Kind
	instance string
	title    string
	visible  atomic.Bool
}

func newPanel(kind types.Kind, title string) *Panel {
	return &Panel{
		handleID: id.NewHandleID(),
		kind:     kind,
		title:    title,
	}
}

// ID returns the handle identifier
func (p *Panel) ID() id.HandleID { return p.handleID }

// Kind returns the panel classification
func (p *Panel) Kind() types.Kind { return p.kind }

// Instance returns the instance discriminator
func (p *Panel) Instance() string { return p.instance }

// SetInstance assigns the instance discriminator
func (p *Panel) SetInstance(instance string) { p.instance = instance }

// SetVisible toggles visual activation
func (p *Panel) SetVisible(visible bool) { p.visible.Store(visible) }

// Hooks exposes the lifecycle hook registration points
func (p *Panel) Hooks() *panel.Hooks { return &p.hooks }

// Visible reports the current visual state
func (p *Panel) Visible() bool { return p.visible.Load() }

// Title returns the template title
func (p *Panel) Title() string { return p.title }

// Badger is the badge-count capability some panels expose
type Badger interface {
	SetBadge(count int)
	Badge() int
}

// NotifyPanel is a Panel carrying a badge counter capability
type NotifyPanel struct {
	Panel

	badge atomic.Int64
}

func newNotifyPanel(kind types.Kind, title string) *NotifyPanel {
	p := &NotifyPanel{}
	p.handleID = id.NewHandleID()
	p.kind = kind
	p.title = title
	return p
}

// SetBadge updates the badge counter
func (p *NotifyPanel) SetBadge(count int) { p.badge.Store(int64(count)) }

// Badge returns the badge counter
func (p *NotifyPanel) Badge() int { return int(p.badge.Load()) }

var (
	_ panel.Handle = (*Panel)(nil)
	_ panel.Handle = (*NotifyPanel)(nil)
	_ Badger       = (*NotifyPanel)(nil)
)
