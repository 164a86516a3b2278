package scene

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrNoBackground        = errors.New("no background layer")
	ErrMultipleBackgrounds = errors.New("more than one background layer")
	ErrDuplicateID         = errors.New("duplicate layer id")
	ErrDuplicateShape      = errors.New("duplicate mouth shape")
	ErrUnknownKind         = errors.New("unknown layer type")
	ErrInvalidLayer        = errors.New("invalid layer")
)

// Registry holds the layers of a scene, ordered back to front.
type Registry struct {
	layers     []*Layer
	byID       map[string]*Layer
	byShape    map[string]*Layer
	background *Layer
}

func NewRegistry(layers []*Layer) (*Registry, error) {
	r := &Registry{
		layers:  make([]*Layer, 0, len(layers)),
		byID:    make(map[string]*Layer, len(layers)),
		byShape: make(map[string]*Layer, len(layers)),
	}

	for _, layer := range layers {
		if layer.ID == "" {
			return nil, fmt.Errorf("%w: layer %q has no id", ErrInvalidLayer, layer.Name)
		}
		if _, ok := r.byID[layer.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, layer.ID)
		}
		r.byID[layer.ID] = layer

		switch layer.Kind {
		case KindBackground:
			if r.background != nil {
				return nil, fmt.Errorf("%w: %q and %q", ErrMultipleBackgrounds, r.background.ID, layer.ID)
			}
			r.background = layer
		case KindVowel:
			if layer.Shape == "" {
				return nil, fmt.Errorf("%w: overlay %q has no shape", ErrInvalidLayer, layer.ID)
			}
			if layer.Shape == ShapeNone {
				return nil, fmt.Errorf("%w: overlay %q uses the reserved shape %q", ErrInvalidLayer, layer.ID, ShapeNone)
			}
			if other, ok := r.byShape[layer.Shape]; ok {
				return nil, fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateShape, layer.Shape, other.ID, layer.ID)
			}
			r.byShape[layer.Shape] = layer
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnknownKind, layer.Kind)
		}

		r.layers = append(r.layers, layer)
	}

	if r.background == nil {
		return nil, ErrNoBackground
	}

	sort.SliceStable(r.layers, func(i, j int) bool {
		return r.layers[i].ZIndex < r.layers[j].ZIndex
	})
	return r, nil
}

// Layers returns every layer, back to front.
func (r *Registry) Layers() []*Layer { return r.layers }

func (r *Registry) Background() *Layer { return r.background }

func (r *Registry) Layer(id string) (*Layer, bool) {
	l, ok := r.byID[id]
	return l, ok
}

// Overlay returns the vowel layer for shape.
func (r *Registry) Overlay(shape string) (*Layer, bool) {
	l, ok := r.byShape[shape]
	return l, ok
}

// Overlays returns the vowel layers, back to front.
func (r *Registry) Overlays() []*Layer {
	out := make([]*Layer, 0, len(r.byShape))
	for _, l := range r.layers {
		if l.Kind == KindVowel {
			out = append(out, l)
		}
	}
	return out
}

// Shapes lists the overlay shapes, back to front.
func (r *Registry) Shapes() []string {
	overlays := r.Overlays()
	shapes := make([]string, len(overlays))
	for i, l := range overlays {
		shapes[i] = l.Shape
	}
	return shapes
}
