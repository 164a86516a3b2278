package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Layers) != 6 {
		t.Fatalf("expected 6 default layers, got %d", len(cfg.Layers))
	}
	bg := cfg.Layers[0]
	if bg.ID != "mouth-inside" || bg.Type != "background" || bg.Shape != "" {
		t.Errorf("unexpected background config: %+v", bg)
	}
	a := cfg.Layers[5]
	if a.ID != "mouth-a" || a.Type != "vowel" || a.Shape != "a" || a.DisplayName != "mouth_a.png" {
		t.Errorf("unexpected overlay config: %+v", a)
	}

	if cfg.Gap.ScanSize != 30 || cfg.Gap.DrawBiasY.Float(0) != 60 || cfg.Gap.Backdrop != "#00FF00" {
		t.Errorf("unexpected gap defaults: %+v", cfg.Gap)
	}
	if sig := cfg.Gap.Signature; sig.MinGreen != 200 || sig.MaxRed != 100 || sig.MaxBlue != 100 {
		t.Errorf("unexpected signature defaults: %+v", sig)
	}
	if s := cfg.Sliders.Size; s.Min != 10 || s.Max != 200 || s.Value.Float(0) != 100 || s.Step != 1 {
		t.Errorf("unexpected size slider defaults: %+v", s)
	}
	if cfg.InitialShape != "none" {
		t.Errorf("initial shape = %q, want none", cfg.InitialShape)
	}
}

func TestParseConfigTolerantNumbers(t *testing.T) {
	data := []byte(`{
		"container": {"width": "480", "height": 320},
		"gap": {"draw_bias_y": 0, "scan_size": 20},
		"sliders": {"pos_x": {"min": -10, "max": 10, "value": "5"}},
		"layers": [
			{"name": "inside.png", "speed": "0.02", "z_index": 1},
			{"name": "lips-wide.png", "shape": "A", "speed": 0.2, "z_index": 2, "size": 80, "lift_y": 0}
		]
	}`)

	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Container.Width != 480 || cfg.Container.Height != 320 {
		t.Errorf("container = %+v", cfg.Container)
	}
	if cfg.Gap.DrawBiasY.Float(-1) != 0 {
		t.Errorf("explicit zero draw bias was replaced: %v", cfg.Gap.DrawBiasY.Float(-1))
	}
	if cfg.Gap.ScanSize != 20 {
		t.Errorf("scan size = %d", cfg.Gap.ScanSize)
	}
	if px := cfg.Sliders.PosX; px.Min != -10 || px.Max != 10 || px.Value.Float(0) != 5 {
		t.Errorf("pos_x slider = %+v", px)
	}

	layers, err := cfg.BuildLayers()
	if err != nil {
		t.Fatalf("BuildLayers: %v", err)
	}
	if layers[0].Kind != KindBackground || layers[0].Speed != 0.02 || !layers[0].Visible {
		t.Errorf("background layer = %+v", layers[0])
	}
	over := layers[1]
	if over.Shape != "a" || over.ID != "lips-wide" || over.Visible {
		t.Errorf("overlay layer = %+v", over)
	}
	if over.WidthPct != 80 || over.HeightPct != 80 || over.LiftY != 0 {
		t.Errorf("overlay sizing = %v/%v lift %v", over.WidthPct, over.HeightPct, over.LiftY)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown type", `{"layers":[{"name":"x.png","type":"sky"}]}`, ErrUnknownKind},
		{"negative speed", `{"layers":[{"name":"inside.png","speed":-1}]}`, ErrInvalidLayer},
		{"zero size", `{"layers":[{"name":"inside.png","size":0}]}`, ErrInvalidLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			_, err = cfg.BuildLayers()
			if !errors.Is(err, tt.want) {
				t.Errorf("BuildLayers error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseConfig([]byte(`{"container": {"width": "wide"}}`)); err == nil {
		t.Errorf("expected an error for a non-numeric width")
	}
	for _, v := range []string{`"NaN"`, `"Inf"`, `"-Infinity"`} {
		data := `{"sliders": {"pos_x": {"value": ` + v + `}}}`
		if _, err := ParseConfig([]byte(data)); err == nil {
			t.Errorf("expected an error for slider value %s", v)
		}
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	data, err := DefaultConfig().Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), dir)
	}
	if len(cfg.Layers) != 6 || cfg.Layers[3].Shape != "e" {
		t.Errorf("layers did not survive a round trip: %+v", cfg.Layers)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
