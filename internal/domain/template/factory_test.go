package template

import (
	"testing"

	"github.com/GriffinCanCode/PanelOS/backend/internal/domain/panel"
	"github.com/GriffinCanCode/PanelOS/backend/internal/logging"
)

const manifestYAML = `
templates:
  settings:
    title: Settings
  inventory:
    title: Inventory
    badge: true
  toast:
    title: Toast
    destroy_on_hide: true
`

func loadTestFactory(t *testing.T) *Factory {
	t.Helper()
	manifest, err := ParseManifest([]byte(manifestYAML))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}
	return NewFactory(manifest, logging.NewNop())
}

func TestCreateRegisteredKind(t *testing.T) {
	f := loadTestFactory(t)

	obj, ok := f.Create("settings")
	if !ok {
		t.Fatal("Create should succeed for a registered kind")
	}

	h, ok := obj.(panel.Handle)
	if !ok {
		t.Fatal("Factory object should satisfy the panel contract")
	}
	if h.Kind() != "settings" {
		t.Errorf("Expected kind 'settings', got %q", h.Kind())
	}

	p := obj.(*Panel)
	if p.Title() != "Settings" {
		t.Errorf("Expected title from template, got %q", p.Title())
	}
	if p.Visible() {
		t.Error("New panels start invisible")
	}
}

func TestCreateUnknownKind(t *testing.T) {
	f := loadTestFactory(t)

	if _, ok := f.Create("main_menu"); ok {
		t.Error("Create should report absence for unknown kinds, not error")
	}
}

func TestBadgeCapability(t *testing.T) {
	f := loadTestFactory(t)

	obj, _ := f.Create("inventory")
	h := obj.(panel.Handle)

	badger, ok := panel.Capability[Badger](h)
	if !ok {
		t.Fatal("Inventory template should expose the badge capability")
	}
	badger.SetBadge(3)
	if badger.Badge() != 3 {
		t.Errorf("Expected badge 3, got %d", badger.Badge())
	}

	plain, _ := f.Create("settings")
	if _, ok := panel.Capability[Badger](plain.(panel.Handle)); ok {
		t.Error("Plain panels must not expose the badge capability")
	}
}

func TestTemplateDefaults(t *testing.T) {
	f := loadTestFactory(t)

	tmpl, ok := f.Template("toast")
	if !ok || !tmpl.DestroyOnHide {
		t.Error("Toast template should default to destroy-on-hide")
	}

	if _, ok := f.Template("missing"); ok {
		t.Error("Unknown kind should have no template")
	}
}

func TestRegisterTemplate(t *testing.T) {
	f := NewFactory(nil, logging.NewNop())

	f.RegisterTemplate("dialog", Template{Title: "Dialog"})
	if _, ok := f.Create("dialog"); !ok {
		t.Error("Create should succeed after RegisterTemplate")
	}
	if len(f.Kinds()) != 1 {
		t.Errorf("Expected 1 kind, got %d", len(f.Kinds()))
	}
}

func TestParseManifestInvalid(t *testing.T) {
	if _, err := ParseManifest([]byte("templates: [not a map")); err == nil {
		t.Error("Expected parse error for malformed YAML")
	}
}

func TestEveryTemplateKindSatisfiesHandle(t *testing.T) {
	f := loadTestFactory(t)

	for _, kind := range f.Kinds() {
		obj, ok := f.Create(kind)
		if !ok {
			t.Fatalf("Create(%q) failed", kind)
		}
		h, ok := obj.(panel.Handle)
		if !ok {
			t.Fatalf("%q panel does not satisfy the handle contract", kind)
		}
		if h.Hooks() == nil {
			t.Fatalf("%q panel must expose its hook set", kind)
		}
		h.Hooks().OnShowBegin(func(panel.Handle) {})
	}
}

func TestDistinctHandleIDs(t *testing.T) {
	f := loadTestFactory(t)

	a, _ := f.Create("settings")
	b, _ := f.Create("settings")
	if a.(*Panel).ID() == b.(*Panel).ID() {
		t.Error("Each created panel needs a unique handle ID")
	}
}
