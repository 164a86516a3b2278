package feature

import (
	"errors"
	"fmt"
	"strings"

	"mouthfit/internal/scene"
)

// ShapeNone selects the background as the adjustable layer.
const ShapeNone = scene.ShapeNone

var ErrUnknownShape = errors.New("unknown mouth shape")

// Selector shows one overlay at a time and tracks the layer the adjustment
// panel operates on.
type Selector struct {
	registry *scene.Registry
	current  *scene.Layer
	shape    string
}

// NewSelector starts with every overlay hidden and the background current.
func NewSelector(registry *scene.Registry) *Selector {
	s := &Selector{registry: registry}
	s.hideOverlays()
	s.current = registry.Background()
	s.shape = ShapeNone
	return s
}

func (s *Selector) hideOverlays() {
	for _, layer := range s.registry.Overlays() {
		layer.Visible = false
	}
}

// Show hides every overlay, then shows the one for shape and makes it
// current. ShapeNone makes the background current. An unknown shape leaves
// every overlay hidden, makes the background current and returns
// ErrUnknownShape.
func (s *Selector) Show(shape string) (*scene.Layer, error) {
	shape = strings.ToLower(strings.TrimSpace(shape))
	s.hideOverlays()

	background := s.registry.Background()
	background.Visible = true

	if shape == ShapeNone || shape == "" {
		s.current, s.shape = background, ShapeNone
		return s.current, nil
	}

	layer, ok := s.registry.Overlay(shape)
	if !ok {
		s.current, s.shape = background, ShapeNone
		return s.current, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}

	layer.Visible = true
	s.current, s.shape = layer, shape
	return layer, nil
}

func (s *Selector) Current() *scene.Layer { return s.current }

func (s *Selector) Shape() string { return s.shape }

// CurrentName is the label shown next to the sliders.
func (s *Selector) CurrentName() string {
	if s.current == nil {
		return ""
	}
	return s.current.DisplayName
}
