package studio

import (
	"errors"

	"mouthfit/internal/feature"
	"mouthfit/internal/gap"
	"mouthfit/internal/scene"
)

var ErrNoLayer = errors.New("no layer to check")

// Scenario is a scripted edit: show a shape, move the pointer, set sliders.
// Nil fields are left alone.
type Scenario struct {
	Shape string
	// Pointer is relative to the container's top-left corner.
	Pointer          *scene.Vec2
	PosY, PosX, Size *float64
}

// Run applies the scenario in the order a user would (shape, then pointer,
// then sliders) and checks the gap once. The returned bool reports whether
// the pointer was inside the container; it is true when no pointer was given.
func (s *Studio) Run(sc Scenario) (gap.Result, bool, error) {
	if sc.Shape != "" {
		if _, err := s.Show(sc.Shape); err != nil {
			return gap.Result{}, false, err
		}
	}

	pointerOK := true
	if sc.Pointer != nil {
		c := s.Container()
		pointerOK = s.PointerMove(sc.Pointer.Add(scene.Vec2{X: c.Left, Y: c.Top}))
	}

	sliders := []struct {
		kind feature.SliderKind
		v    *float64
	}{
		{feature.SliderPosY, sc.PosY},
		{feature.SliderPosX, sc.PosX},
		{feature.SliderSize, sc.Size},
	}
	for _, sl := range sliders {
		if sl.v != nil {
			s.SetSlider(sl.kind, *sl.v)
		}
	}

	res, ok := s.CheckGap()
	if !ok {
		return gap.Result{}, pointerOK, ErrNoLayer
	}
	return res, pointerOK, nil
}
