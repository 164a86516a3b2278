package feature

import (
	"math"
	"testing"

	"mouthfit/internal/scene"
)

func TestSliderSnapAndClamp(t *testing.T) {
	s := NewSlider("Size", scene.SliderConfig{Min: 10, Max: 200, Step: 5})
	if s.Value != 10 {
		t.Errorf("slider without a value should start at Min, got %v", s.Value)
	}

	tests := []struct {
		in, want float64
		changed  bool
	}{
		{in: 52, want: 50, changed: true},
		{in: 53, want: 55, changed: true},
		{in: 55, want: 55, changed: false},
		{in: 500, want: 200, changed: true},
		{in: math.NaN(), want: 10, changed: true}, // falls back to the default
		{in: -3, want: 10, changed: false},
	}
	for _, tt := range tests {
		changed := s.Set(tt.in)
		if s.Value != tt.want || changed != tt.changed {
			t.Errorf("Set(%v) -> %v (changed %v), want %v (changed %v)", tt.in, s.Value, changed, tt.want, tt.changed)
		}
	}

	s.SetFraction(0.5)
	if s.Value != 105 {
		t.Errorf("SetFraction(0.5) = %v, want 105", s.Value)
	}
	if f := s.Fraction(); f != 0.5 {
		t.Errorf("Fraction = %v, want 0.5", f)
	}
}

func TestPanelDefaults(t *testing.T) {
	p := NewPanel(scene.DefaultConfig().Sliders)
	if p.PosY.Value != 0 || p.PosX.Value != 0 || p.Size.Value != 100 {
		t.Errorf("panel defaults = %v/%v/%v", p.PosY.Value, p.PosX.Value, p.Size.Value)
	}
	if p.Slider(SliderPosX) != &p.PosX || p.Slider(SliderKind(9)) != nil {
		t.Errorf("Slider lookup is wrong")
	}

	p.Slider(SliderPosY).Set(12)
	p.Slider(SliderSize).Set(40)
	p.Reset()
	if p.PosY.Value != 0 || p.Size.Value != 100 {
		t.Errorf("Reset did not restore defaults: %v/%v", p.PosY.Value, p.Size.Value)
	}
}

func TestApplyAdjustments(t *testing.T) {
	layer := &scene.Layer{BaseX: -50, BaseY: -50, WidthPct: 100, HeightPct: 100, Parallax: scene.Vec2{X: 4}}

	ApplyAdjustments(layer, -10, 15, 80)
	if layer.BaseX != -35 || layer.BaseY != -60 {
		t.Errorf("base offset = %v, %v", layer.BaseX, layer.BaseY)
	}
	if layer.WidthPct != 80 || layer.HeightPct != 80 {
		t.Errorf("size = %v x %v", layer.WidthPct, layer.HeightPct)
	}
	if !layer.Adjusted {
		t.Errorf("layer not marked adjusted")
	}
	if layer.Parallax.X != 4 {
		t.Errorf("adjustment touched the parallax translation")
	}

	ApplyAdjustments(nil, 1, 1, 1)
}
