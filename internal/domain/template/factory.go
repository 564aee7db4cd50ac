// Package template implements the panel factory backed by a static YAML
// manifest.
//
// Template registration is external configuration, not runtime state: the
// manifest is loaded once at startup and maps each panel kind to its title
// and default behavior. The factory produces concrete Panel handles for
// registered kinds and reports absence, never an error, for unknown ones.
package template

import (
	"fmt"
	"os"
	"sync"

	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Template describes how to build panels of one kind
type Template struct {
	Title         string `yaml:"title"`
	DestroyOnHide bool   `yaml:"destroy_on_hide"`
	Badge         bool   `yaml:"badge"`
}

// Manifest is the on-disk template configuration
type Manifest struct {
	Templates map[types.Kind]Template `yaml:"templates"`
}

// LoadManifest reads and parses a YAML template manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses YAML manifest bytes
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Templates == nil {
		m.Templates = make(map[types.Kind]Template)
	}
	return &m, nil
}

// Factory produces panel handles from registered templates
type Factory struct {
	mu        sync.RWMutex
	templates map[types.Kind]Template
	log       *logging.Logger
}

// NewFactory creates a factory over the manifest's templates
func NewFactory(manifest *Manifest, log *logging.Logger) *Factory {
	if log == nil {
		log = logging.NewNop()
	}
	templates := make(map[types.Kind]Template)
	if manifest != nil {
		for kind, tmpl := range manifest.Templates {
			templates[kind] = tmpl
		}
	}
	return &Factory{
		templates: templates,
		log:       log.Named("factory"),
	}
}

// RegisterTemplate adds or overwrites the template for kind
func (f *Factory) RegisterTemplate(kind types.Kind, tmpl Template) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templates[kind] = tmpl
}

// Template returns the template registered for kind
func (f *Factory) Template(kind types.Kind) (Template, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	tmpl, ok := f.templates[kind]
	return tmpl, ok
}

// Kinds returns every registered template kind
func (f *Factory) Kinds() []types.Kind {
	f.mu.RLock()
	defer f.mu.RUnlock()

	kinds := make([]types.Kind, 0, len(f.templates))
	for kind := range f.templates {
		kinds = append(kinds, kind)
	}
	return kinds
}

// Create instantiates a panel object for kind. Returns false when no
// template is registered.
func (f *Factory) Create(kind types.Kind) (interface{}, bool) {
	tmpl, ok := f.Template(kind)
	if !ok {
		return nil, false
	}

	title := tmpl.Title
	if title == "" {
		title = string(kind)
	}

	if tmpl.Badge {
		return newNotifyPanel(kind, title), true
	}
	return newPanel(kind, title), true
}

// Destroy releases a panel object previously produced by Create
func (f *Factory) Destroy(obj interface{}) {
	switch p := obj.(type) {
	case *NotifyPanel:
		f.log.Debug("destroying panel", zap.String("handle", p.ID().String()))
	case *Panel:
		f.log.Debug("destroying panel", zap.String("handle", p.ID().String()))
	default:
		f.log.Debug("destroying non-panel object")
	}
}
