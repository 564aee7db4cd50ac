package id

import (
	"testing"

	"github.com/GriffinCanCode/PanelOS/backend/internal/shared/types"
)

func TestKeyWithoutInstance(t *testing.T) {
	ident := New("settings", "")
	if ident.Key() != "settings" {
		t.Errorf("Expected key 'settings', got %q", ident.Key())
	}
}

func TestKeyWithInstance(t *testing.T) {
	ident := New("settings", "user1")
	if ident.Key() != "settings::user1" {
		t.Errorf("Expected key 'settings::user1', got %q", ident.Key())
	}
}

func TestKeyInjective(t *testing.T) {
	pairs := []Identity{
		New("settings", ""),
		New("settings", "user1"),
		New("settings", "user2"),
		New("inventory", ""),
		New("inventory", "user1"),
		New("main_menu", ""),
	}

	seen := make(map[string]Identity)
	for _, ident := range pairs {
		if prev, ok := seen[ident.Key()]; ok {
			t.Errorf("Key collision: %v and %v both map to %q", prev, ident, ident.Key())
		}
		seen[ident.Key()] = ident
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    types.Kind
		inst    string
		wantErr bool
	}{
		{"plain kind", "settings", "", false},
		{"kind with instance", "settings", "user1", false},
		{"empty kind", "", "user1", true},
		{"separator in instance", "settings", "a::b", true},
		{"separator in kind", "set::tings", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.kind, tt.inst).Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, ident := range []Identity{
		New("settings", ""),
		New("settings", "user1"),
	} {
		if got := Parse(ident.Key()); got != ident {
			t.Errorf("Parse(%q) = %v, want %v", ident.Key(), got, ident)
		}
	}
}

func TestHandleIDPrefix(t *testing.T) {
	h := NewHandleID()
	if len(h) == 0 || h[:4] != "pnl_" {
		t.Errorf("Expected pnl_ prefix, got %q", h)
	}

	if NewHandleID() == h {
		t.Error("Expected unique handle IDs")
	}
}
