package feature

import (
	"math"

	"mouthfit/internal/scene"
)

// Damping is 1 at the container centre and falls off linearly to 0 at the
// corner radius. Pointers beyond the corner radius are clamped to 0.
func Damping(container scene.Container, rel scene.Vec2) float64 {
	maxDistance := container.CornerRadius()
	if maxDistance == 0 {
		return 0
	}
	return math.Max(0, 1-rel.Len()/maxDistance)
}

// UpdateParallax recomputes the parallax translation of every layer for a
// pointer at screen position pointer. Pointers outside the container are
// ignored and false is returned. Base offsets are left untouched.
func UpdateParallax(layers []*scene.Layer, container scene.Container, pointer scene.Vec2) bool {
	if !container.Contains(pointer) {
		return false
	}

	rel := pointer.Sub(container.Center())
	damping := Damping(container, rel)
	for _, layer := range layers {
		layer.Parallax = rel.Scale(layer.Speed * damping)
	}
	return true
}
