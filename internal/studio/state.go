package studio

import (
	"mouthfit/internal/feature"
	"mouthfit/internal/scene"
)

// LayerState is the part of a layer the user can change.
type LayerState struct {
	BaseX, BaseY        float64
	WidthPct, HeightPct float64
	Adjusted            bool
}

// State is what survives a reload of the config.
type State struct {
	Shape      string
	Sliders    map[feature.SliderKind]float64
	Layers     map[string]LayerState
	Container  scene.Container
	Pointer    scene.Vec2
	HasPointer bool
}

func (s *Studio) State() State {
	st := State{
		Shape:      s.selector.Shape(),
		Sliders:    make(map[feature.SliderKind]float64, 3),
		Layers:     make(map[string]LayerState, len(s.registry.Layers())),
		Container:  s.container,
		Pointer:    s.pointer,
		HasPointer: s.hasPointer,
	}
	for _, kind := range s.panel.Sliders() {
		st.Sliders[kind] = s.panel.Slider(kind).Value
	}
	for _, layer := range s.registry.Layers() {
		st.Layers[layer.ID] = LayerState{
			BaseX:     layer.BaseX,
			BaseY:     layer.BaseY,
			WidthPct:  layer.WidthPct,
			HeightPct: layer.HeightPct,
			Adjusted:  layer.Adjusted,
		}
	}
	return st
}

// Restore applies a state taken from another session. Layers are matched by
// id; layers and shapes that no longer exist are skipped.
func (s *Studio) Restore(st State) {
	for _, layer := range s.registry.Layers() {
		ls, ok := st.Layers[layer.ID]
		if !ok {
			continue
		}
		layer.BaseX, layer.BaseY = ls.BaseX, ls.BaseY
		layer.WidthPct, layer.HeightPct = ls.WidthPct, ls.HeightPct
		layer.Adjusted = ls.Adjusted
	}
	for kind, v := range st.Sliders {
		if slider := s.panel.Slider(kind); slider != nil {
			slider.Set(v)
		}
	}

	if st.Shape != "" {
		if _, err := s.selector.Show(st.Shape); err != nil {
			s.log.Warn().Err(err).Msg("restore shape")
		}
	}
	if st.Container.Width > 0 && st.Container.Height > 0 {
		s.container = st.Container
	}
	if st.HasPointer {
		s.PointerMove(st.Pointer)
	}
	s.pending = true
}
