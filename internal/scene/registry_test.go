package scene

import (
	"errors"
	"testing"
)

func defaultLayers(t *testing.T) []*Layer {
	t.Helper()
	layers, err := DefaultConfig().BuildLayers()
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	return layers
}

func TestRegistryOrdering(t *testing.T) {
	layers := defaultLayers(t)
	// Reverse the input; the registry sorts by z-index.
	for i, j := 0, len(layers)-1; i < j; i, j = i+1, j-1 {
		layers[i], layers[j] = layers[j], layers[i]
	}

	r, err := NewRegistry(layers)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	got := r.Layers()
	for i := 1; i < len(got); i++ {
		if got[i-1].ZIndex > got[i].ZIndex {
			t.Fatalf("layers not sorted back to front: %v", got)
		}
	}
	if r.Background().ID != "mouth-inside" {
		t.Errorf("background = %s", r.Background().ID)
	}

	wantShapes := []string{"o", "u", "e", "i", "a"}
	shapes := r.Shapes()
	if len(shapes) != len(wantShapes) {
		t.Fatalf("shapes = %v, want %v", shapes, wantShapes)
	}
	for i := range wantShapes {
		if shapes[i] != wantShapes[i] {
			t.Errorf("shapes[%d] = %q, want %q", i, shapes[i], wantShapes[i])
		}
	}

	if l, ok := r.Overlay("i"); !ok || l.ID != "mouth-i" {
		t.Errorf("Overlay(i) = %v, %v", l, ok)
	}
	if _, ok := r.Overlay("x"); ok {
		t.Errorf("Overlay(x) should not exist")
	}
	if l, ok := r.Layer("mouth-u"); !ok || l.Shape != "u" {
		t.Errorf("Layer(mouth-u) = %v, %v", l, ok)
	}
}

func TestRegistryErrors(t *testing.T) {
	bg := func(id string) *Layer { return &Layer{ID: id, Kind: KindBackground} }
	vowel := func(id, shape string) *Layer { return &Layer{ID: id, Kind: KindVowel, Shape: shape} }

	tests := []struct {
		name   string
		layers []*Layer
		want   error
	}{
		{"no background", []*Layer{vowel("a", "a")}, ErrNoBackground},
		{"two backgrounds", []*Layer{bg("bg1"), bg("bg2")}, ErrMultipleBackgrounds},
		{"duplicate id", []*Layer{bg("x"), vowel("x", "a")}, ErrDuplicateID},
		{"duplicate shape", []*Layer{bg("bg"), vowel("a1", "a"), vowel("a2", "a")}, ErrDuplicateShape},
		{"overlay without shape", []*Layer{bg("bg"), vowel("a", "")}, ErrInvalidLayer},
		{"overlay with reserved shape", []*Layer{bg("bg"), vowel("mouth-none", "none")}, ErrInvalidLayer},
		{"missing id", []*Layer{{Kind: KindBackground}}, ErrInvalidLayer},
		{"bad kind", []*Layer{bg("bg"), {ID: "q", Kind: LayerKind(7)}}, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.layers)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewRegistry error = %v, want %v", err, tt.want)
			}
		})
	}
}
