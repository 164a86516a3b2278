package feature

import (
	"math"

	"mouthfit/internal/scene"
)

type SliderKind int

const (
	SliderPosY SliderKind = iota
	SliderPosX
	SliderSize
)

func (k SliderKind) String() string {
	switch k {
	case SliderPosY:
		return "pos-y"
	case SliderPosX:
		return "pos-x"
	case SliderSize:
		return "size"
	}
	return "unknown"
}

// Slider mirrors an <input type=range>: values snap to Step and clamp to
// [Min, Max].
type Slider struct {
	Label          string
	Min, Max, Step float64
	Value, Default float64
}

func NewSlider(label string, cfg scene.SliderConfig) Slider {
	s := Slider{
		Label: label,
		Min:   float64(cfg.Min),
		Max:   float64(cfg.Max),
		Step:  float64(cfg.Step),
	}
	if s.Max < s.Min {
		s.Min, s.Max = s.Max, s.Min
	}
	s.Default = s.snap(cfg.Value.Float(s.Min))
	s.Value = s.Default
	return s
}

// snap rounds v to the step grid inside [Min, Max]. NaN falls back to
// Default, the way a range input discards an unparsable value.
func (s Slider) snap(v float64) float64 {
	if math.IsNaN(v) {
		v = s.Default
	}
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Set stores v after snapping and clamping and reports whether the value
// changed.
func (s *Slider) Set(v float64) bool {
	v = s.snap(v)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// SetFraction sets the value from a 0..1 track position.
func (s *Slider) SetFraction(f float64) bool {
	return s.Set(s.Min + f*(s.Max-s.Min))
}

// Fraction is the value's position along the track, 0..1.
func (s Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Panel holds the three adjustment sliders.
type Panel struct {
	PosY, PosX, Size Slider
}

func NewPanel(cfg scene.SlidersConfig) *Panel {
	return &Panel{
		PosY: NewSlider("Vertical", cfg.PosY),
		PosX: NewSlider("Horizontal", cfg.PosX),
		Size: NewSlider("Size", cfg.Size),
	}
}

func (p *Panel) Slider(kind SliderKind) *Slider {
	switch kind {
	case SliderPosY:
		return &p.PosY
	case SliderPosX:
		return &p.PosX
	case SliderSize:
		return &p.Size
	}
	return nil
}

// Sliders returns the sliders in display order.
func (p *Panel) Sliders() []SliderKind {
	return []SliderKind{SliderPosY, SliderPosX, SliderSize}
}

// Reset puts every slider back to its default value.
func (p *Panel) Reset() {
	p.PosY.Value = p.PosY.Default
	p.PosX.Value = p.PosX.Default
	p.Size.Value = p.Size.Default
}

// Apply writes the current slider values to layer.
func (p *Panel) Apply(layer *scene.Layer) {
	ApplyAdjustments(layer, p.PosY.Value, p.PosX.Value, p.Size.Value)
}

// ApplyAdjustments shifts layer's base offset from the centred -50% by the
// slider offsets and sizes it to size percent of the container. The layer is
// marked adjusted, which enables its fixed lift.
func ApplyAdjustments(layer *scene.Layer, yOffset, xOffset, size float64) {
	if layer == nil {
		return
	}
	layer.BaseX = scene.DefaultBase + xOffset
	layer.BaseY = scene.DefaultBase + yOffset
	layer.Adjusted = true
	layer.WidthPct = size
	layer.HeightPct = size
}
