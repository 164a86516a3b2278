package scene

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// Number accepts a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s: not finite", data)
	}
	*n = Number(v)
	return nil
}

func (n *Number) Float(def float64) float64 {
	if n == nil {
		return def
	}
	return float64(*n)
}

func num(v float64) *Number {
	n := Number(v)
	return &n
}

type Config struct {
	Container    ContainerConfig `json:"container"`
	Gap          GapConfig       `json:"gap"`
	Sliders      SlidersConfig   `json:"sliders"`
	InitialShape string          `json:"initial_shape"`
	Layers       []LayerConfig   `json:"layers"`

	// Path is the file the config was read from, empty for the default.
	Path string `json:"-"`
}

type ContainerConfig struct {
	Width  Number `json:"width"`
	Height Number `json:"height"`
}

type GapConfig struct {
	CanvasWidth   int              `json:"canvas_width"`
	CanvasHeight  int              `json:"canvas_height"`
	ScanSize      int              `json:"scan_size"`
	DrawBiasY     *Number          `json:"draw_bias_y"`
	Backdrop      string           `json:"backdrop"`
	Interpolation string           `json:"interpolation"`
	Signature     *SignatureConfig `json:"signature"`
}

// SignatureConfig is the colour test for a backdrop pixel:
// G > MinGreen, R < MaxRed and B < MaxBlue.
type SignatureConfig struct {
	MinGreen int `json:"min_green"`
	MaxRed   int `json:"max_red"`
	MaxBlue  int `json:"max_blue"`
}

type SliderConfig struct {
	Min   Number  `json:"min"`
	Max   Number  `json:"max"`
	Step  Number  `json:"step"`
	Value *Number `json:"value"`
}

type SlidersConfig struct {
	PosY SliderConfig `json:"pos_y"`
	PosX SliderConfig `json:"pos_x"`
	Size SliderConfig `json:"size"`
}

type LayerConfig struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Shape       string  `json:"shape"`
	Speed       Number  `json:"speed"`
	ZIndex      int     `json:"z_index"`
	Size        *Number `json:"size"`
	LiftY       *Number `json:"lift_y"`
}

// DefaultLayers is the stock mouth set, back to front.
func DefaultLayers() []LayerConfig {
	return []LayerConfig{
		{Name: "mouth_inside.jpg", Speed: 0.05, ZIndex: 1},
		{Name: "mouth_o.png", Speed: 0.1, ZIndex: 2},
		{Name: "mouth_u.png", Speed: 0.1, ZIndex: 3},
		{Name: "mouth_e.png", Speed: 0.1, ZIndex: 4},
		{Name: "mouth_i.png", Speed: 0.1, ZIndex: 5},
		{Name: "mouth_a.png", Speed: 0.1, ZIndex: 6},
	}
}

func DefaultConfig() *Config {
	cfg := &Config{Layers: DefaultLayers()}
	cfg.applyDefaults()
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Layers) == 0 {
		cfg.Layers = DefaultLayers()
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Marshal encodes the config with every default filled in.
func (cfg *Config) Marshal() ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(cfg, "", "  ")
}

// Dir is the directory asset names are resolved against.
func (cfg *Config) Dir() string {
	if cfg.Path == "" {
		return ""
	}
	return filepath.Dir(cfg.Path)
}

func (s *SliderConfig) applyDefaults(lo, hi, value float64) {
	if s.Min == 0 && s.Max == 0 {
		s.Min, s.Max = Number(lo), Number(hi)
	}
	if s.Step <= 0 {
		s.Step = 1
	}
	if s.Value == nil {
		s.Value = num(value)
	}
}

func (cfg *Config) applyDefaults() {
	if cfg.Container.Width <= 0 {
		cfg.Container.Width = 600
	}
	if cfg.Container.Height <= 0 {
		cfg.Container.Height = 600
	}

	g := &cfg.Gap
	if g.CanvasWidth <= 0 {
		g.CanvasWidth = 400
	}
	if g.CanvasHeight <= 0 {
		g.CanvasHeight = 400
	}
	if g.ScanSize <= 0 {
		g.ScanSize = 30
	}
	if g.DrawBiasY == nil {
		g.DrawBiasY = num(60)
	}
	if g.Backdrop == "" {
		g.Backdrop = "#00FF00"
	}
	if g.Interpolation == "" {
		g.Interpolation = "bilinear"
	}
	if g.Signature == nil {
		g.Signature = &SignatureConfig{MinGreen: 200, MaxRed: 100, MaxBlue: 100}
	}

	cfg.Sliders.PosY.applyDefaults(-50, 50, 0)
	cfg.Sliders.PosX.applyDefaults(-50, 50, 0)
	cfg.Sliders.Size.applyDefaults(10, 200, DefaultSize)

	if cfg.InitialShape == "" {
		cfg.InitialShape = "none"
	}

	for i := range cfg.Layers {
		cfg.Layers[i].applyDefaults()
	}
}

func (lc *LayerConfig) stem() string {
	base := filepath.Base(lc.Name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (lc *LayerConfig) applyDefaults() {
	stem := lc.stem()
	if lc.Type == "" {
		if strings.Contains(strings.ToLower(stem), "inside") {
			lc.Type = KindBackground.String()
		} else {
			lc.Type = KindVowel.String()
		}
	}
	if lc.ID == "" {
		lc.ID = strings.ReplaceAll(stem, "_", "-")
	}
	if lc.Shape == "" && lc.Type != KindBackground.String() {
		if i := strings.LastIndexAny(stem, "_-"); i >= 0 {
			lc.Shape = stem[i+1:]
		} else {
			lc.Shape = stem
		}
	}
	lc.Shape = strings.ToLower(lc.Shape)
	if lc.DisplayName == "" {
		lc.DisplayName = lc.Name
	}
}

// BuildLayers turns the layer configs into layers in their initial state.
// Images are not loaded.
func (cfg *Config) BuildLayers() ([]*Layer, error) {
	layers := make([]*Layer, 0, len(cfg.Layers))
	for i := range cfg.Layers {
		lc := &cfg.Layers[i]
		kind, err := ParseLayerKind(lc.Type)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", lc.ID, err)
		}
		if lc.Speed < 0 {
			return nil, fmt.Errorf("%w: layer %q has negative speed %v", ErrInvalidLayer, lc.ID, lc.Speed)
		}
		size := lc.Size.Float(DefaultSize)
		if size <= 0 {
			return nil, fmt.Errorf("%w: layer %q has size %v", ErrInvalidLayer, lc.ID, size)
		}

		layer := &Layer{
			ID:               lc.ID,
			Name:             lc.Name,
			DisplayName:      lc.DisplayName,
			Shape:            lc.Shape,
			Kind:             kind,
			Speed:            float64(lc.Speed),
			ZIndex:           lc.ZIndex,
			LiftY:            lc.LiftY.Float(DefaultLift),
			initialWidthPct:  size,
			initialHeightPct: size,
		}
		if kind == KindBackground {
			layer.Shape = ""
		}
		layer.Reset()
		layers = append(layers, layer)
	}
	return layers, nil
}
