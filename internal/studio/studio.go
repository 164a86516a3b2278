// Package studio ties the scene, the parallax driver, the overlay selector,
// the adjustment panel and the gap detector into one editing session.
package studio

import (
	"fmt"
	"image"

	"github.com/rs/zerolog"

	"mouthfit/internal/convert"
	"mouthfit/internal/feature"
	"mouthfit/internal/gap"
	"mouthfit/internal/scene"
	"mouthfit/internal/utils"
)

type Options struct {
	// SearchDirs are tried before the config directory when resolving
	// layer images, e.g. a package unpack directory.
	SearchDirs []string
	// NoImages skips image loading; layers render as placeholders.
	NoImages bool
}

type Studio struct {
	cfg       *scene.Config
	registry  *scene.Registry
	container scene.Container
	selector  *feature.Selector
	panel     *feature.Panel
	detector  *gap.Detector

	pointer    scene.Vec2
	hasPointer bool
	pending    bool

	imagePaths []string
	log        zerolog.Logger
}

// Load reads the config at path, or uses the stock mouth set when path is
// empty, and builds a session from it.
func Load(path string, opts Options) (*Studio, error) {
	cfg := scene.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = scene.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	return New(cfg, opts)
}

func New(cfg *scene.Config, opts Options) (*Studio, error) {
	log := utils.Module("studio")

	layers, err := cfg.BuildLayers()
	if err != nil {
		return nil, err
	}
	registry, err := scene.NewRegistry(layers)
	if err != nil {
		return nil, err
	}
	gapCfg, err := gap.ConfigFrom(cfg.Gap)
	if err != nil {
		return nil, fmt.Errorf("gap config: %w", err)
	}

	s := &Studio{
		cfg:      cfg,
		registry: registry,
		container: scene.Container{
			Width:  float64(cfg.Container.Width),
			Height: float64(cfg.Container.Height),
		},
		selector: feature.NewSelector(registry),
		panel:    feature.NewPanel(cfg.Sliders),
		detector: gap.NewDetector(gapCfg),
		log:      log,
	}

	if !opts.NoImages {
		s.loadImages(utils.SearchDirs(cfg.Dir(), opts.SearchDirs...))
	}

	if _, err := s.selector.Show(cfg.InitialShape); err != nil {
		log.Warn().Err(err).Msg("initial shape")
	}
	s.pending = true

	log.Info().
		Int("layers", len(registry.Layers())).
		Strs("shapes", registry.Shapes()).
		Str("current", s.selector.CurrentName()).
		Msg("session ready")
	return s, nil
}

func (s *Studio) loadImages(dirs []string) {
	for _, layer := range s.registry.Layers() {
		path := utils.FindImageFile(layer.Name, dirs)
		if path == "" {
			s.log.Warn().Str("layer", layer.ID).Str("name", layer.Name).Msg("image not found, using placeholder")
			continue
		}
		img, err := convert.LoadImage(path)
		if err != nil {
			s.log.Warn().Err(err).Str("layer", layer.ID).Msg("cannot load image, using placeholder")
			continue
		}
		layer.Image = img
		s.imagePaths = append(s.imagePaths, path)
		s.log.Debug().Str("layer", layer.ID).Str("path", path).Stringer("size", img.Bounds().Size()).Msg("image loaded")
	}
}

func (s *Studio) Config() *scene.Config { return s.cfg }
func (s *Studio) Registry() *scene.Registry { return s.registry }
func (s *Studio) Container() scene.Container { return s.container }
func (s *Studio) Selector() *feature.Selector { return s.selector }
func (s *Studio) Panel() *feature.Panel { return s.panel }
func (s *Studio) Detector() *gap.Detector { return s.detector }

// Current is the layer the sliders act on.
func (s *Studio) Current() *scene.Layer { return s.selector.Current() }

// WatchFiles lists the config file and every loaded image.
func (s *Studio) WatchFiles() []string {
	files := make([]string, 0, len(s.imagePaths)+1)
	if s.cfg.Path != "" {
		files = append(files, s.cfg.Path)
	}
	return append(files, s.imagePaths...)
}

// Pending reports whether a gap check is waiting for Flush.
func (s *Studio) Pending() bool { return s.pending }

// PointerMove feeds a pointer position in screen coordinates to the
// parallax driver. Positions outside the container are ignored. An accepted
// move schedules a gap check for the next Flush.
func (s *Studio) PointerMove(p scene.Vec2) bool {
	if !feature.UpdateParallax(s.registry.Layers(), s.container, p) {
		return false
	}
	s.pointer, s.hasPointer = p, true
	s.pending = true
	return true
}

// Show switches the visible overlay. The gap check for the new layer runs
// on the next Flush.
func (s *Studio) Show(shape string) (*scene.Layer, error) {
	layer, err := s.selector.Show(shape)
	s.pending = true
	if err != nil {
		return layer, err
	}
	s.log.Debug().Str("shape", s.selector.Shape()).Str("layer", layer.ID).Msg("show")
	return layer, nil
}

// SetSlider sets one slider, applies all three to the current layer and
// checks the gap right away.
func (s *Studio) SetSlider(kind feature.SliderKind, v float64) (gap.Result, bool) {
	slider := s.panel.Slider(kind)
	if slider == nil {
		return gap.Result{}, false
	}
	slider.Set(v)
	return s.applyPanel()
}

// SetSliderFraction is SetSlider with v given as a 0..1 position along the
// slider track.
func (s *Studio) SetSliderFraction(kind feature.SliderKind, f float64) (gap.Result, bool) {
	slider := s.panel.Slider(kind)
	if slider == nil {
		return gap.Result{}, false
	}
	slider.SetFraction(f)
	return s.applyPanel()
}

func (s *Studio) applyPanel() (gap.Result, bool) {
	current := s.selector.Current()
	if current == nil {
		return gap.Result{}, false
	}
	s.panel.Apply(current)
	return s.CheckGap()
}

// CheckGap runs the gap detector for the current layer now.
func (s *Studio) CheckGap() (gap.Result, bool) {
	s.pending = false
	return s.detector.Check(s.container, s.registry.Background(), s.selector.Current())
}

// Flush runs a pending gap check. It returns false when nothing was
// pending.
func (s *Studio) Flush() (gap.Result, bool) {
	if !s.pending {
		return gap.Result{}, false
	}
	return s.CheckGap()
}

// Result is the most recent gap result.
func (s *Studio) Result() (gap.Result, bool) { return s.detector.Last() }

// Preview is the gap raster with the scan window outlined.
func (s *Studio) Preview() image.Image { return s.detector.Preview() }

// Resize moves the container, e.g. after the window was resized. Parallax
// is recomputed for the last pointer position.
func (s *Studio) Resize(c scene.Container) {
	if c == s.container {
		return
	}
	s.container = c
	if s.hasPointer {
		feature.UpdateParallax(s.registry.Layers(), c, s.pointer)
	}
	s.pending = true
}

// Reset puts every layer and slider back to its starting state. The visible
// shape is kept.
func (s *Studio) Reset() {
	shape := s.selector.Shape()
	for _, layer := range s.registry.Layers() {
		layer.Reset()
	}
	s.panel.Reset()
	s.selector.Show(shape)
	if s.hasPointer {
		feature.UpdateParallax(s.registry.Layers(), s.container, s.pointer)
	}
	s.pending = true
}
