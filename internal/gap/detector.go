package gap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
	"golang.org/x/image/draw"

	"mouthfit/internal/scene"
	"mouthfit/internal/utils"
)

type Interpolation int

const (
	InterpBilinear Interpolation = iota
	InterpNearest
)

func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "", "bilinear", "smooth":
		return InterpBilinear, nil
	case "nearest", "pixelated":
		return InterpNearest, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", s)
}

func (i Interpolation) scaler() draw.Scaler {
	if i == InterpNearest {
		return draw.NearestNeighbor
	}
	return draw.ApproxBiLinear
}

// Signature is the colour test for a pixel where the backdrop shows
// through: G > MinGreen, R < MaxRed and B < MaxBlue.
type Signature struct {
	MinGreen, MaxRed, MaxBlue uint8
}

func (s Signature) Match(r, g, b uint8) bool {
	return g > s.MinGreen && r < s.MaxRed && b < s.MaxBlue
}

type Config struct {
	CanvasWidth, CanvasHeight int
	ScanSize                  int
	// DrawBiasY shifts the container centre down when placing layers on the
	// raster. The scan window ignores it.
	DrawBiasY     float64
	Backdrop      color.RGBA
	Signature     Signature
	Interpolation Interpolation
}

func DefaultConfig() Config {
	return Config{
		CanvasWidth:   400,
		CanvasHeight:  400,
		ScanSize:      30,
		DrawBiasY:     60,
		Backdrop:      color.RGBA{0, 255, 0, 255},
		Signature:     Signature{MinGreen: 200, MaxRed: 100, MaxBlue: 100},
		Interpolation: InterpBilinear,
	}
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4, 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
		}
	}
	return color.RGBAModel.Convert(gg.Hex(hex).Color()).(color.RGBA), nil
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// ConfigFrom converts the scene file's gap section.
func ConfigFrom(g scene.GapConfig) (Config, error) {
	cfg := DefaultConfig()
	if g.CanvasWidth > 0 {
		cfg.CanvasWidth = g.CanvasWidth
	}
	if g.CanvasHeight > 0 {
		cfg.CanvasHeight = g.CanvasHeight
	}
	if g.ScanSize > 0 {
		cfg.ScanSize = g.ScanSize
	}
	cfg.DrawBiasY = g.DrawBiasY.Float(cfg.DrawBiasY)

	if g.Backdrop != "" {
		c, err := parseHexColor(g.Backdrop)
		if err != nil {
			return Config{}, err
		}
		cfg.Backdrop = c
	}
	if g.Signature != nil {
		cfg.Signature = Signature{
			MinGreen: clampByte(g.Signature.MinGreen),
			MaxRed:   clampByte(g.Signature.MaxRed),
			MaxBlue:  clampByte(g.Signature.MaxBlue),
		}
	}

	interp, err := ParseInterpolation(g.Interpolation)
	if err != nil {
		return Config{}, err
	}
	cfg.Interpolation = interp

	if cfg.ScanSize > cfg.CanvasWidth || cfg.ScanSize > cfg.CanvasHeight {
		return Config{}, fmt.Errorf("scan size %d does not fit a %dx%d canvas", cfg.ScanSize, cfg.CanvasWidth, cfg.CanvasHeight)
	}
	return cfg, nil
}

type Result struct {
	Count    int
	Window   image.Rectangle
	Severity Severity
	Feedback Feedback
	// Layer is the id of the layer the window tracked.
	Layer string
	// Offset is the tracked layer's centre relative to the container centre.
	Offset scene.Vec2
}

// Area is the number of pixels in the scan window.
func (r Result) Area() int {
	return r.Window.Dx() * r.Window.Dy()
}

// Detector renders the background and the current layer onto an offscreen
// raster and counts backdrop pixels in a small window that follows the
// current layer.
type Detector struct {
	cfg     Config
	canvas  *image.RGBA
	last    Result
	hasLast bool
	log     zerolog.Logger
}

func NewDetector(cfg Config) *Detector {
	return &Detector{
		cfg:    cfg,
		canvas: image.NewRGBA(image.Rect(0, 0, cfg.CanvasWidth, cfg.CanvasHeight)),
		log:    utils.Module("gap"),
	}
}

func (d *Detector) Config() Config { return d.cfg }

// Canvas is the raster as of the last check, without the window marker.
func (d *Detector) Canvas() *image.RGBA { return d.canvas }

// Last returns the most recent result.
func (d *Detector) Last() (Result, bool) { return d.last, d.hasLast }

func round(v float64) int { return int(math.Round(v)) }

// Placement maps a layer's screen rectangle to raster coordinates, with the
// container centre at the raster centre.
func (d *Detector) Placement(c scene.Container, rect scene.Rect) image.Rectangle {
	cc := c.Center()
	x := rect.Left - cc.X + float64(d.cfg.CanvasWidth)/2
	y := rect.Top - (cc.Y + d.cfg.DrawBiasY) + float64(d.cfg.CanvasHeight)/2
	return image.Rect(round(x), round(y), round(x+rect.Width), round(y+rect.Height))
}

// ScanWindow centres the window on the raster centre plus the offset of
// rect's centre from the container centre, clamped inside the raster.
func (d *Detector) ScanWindow(c scene.Container, rect scene.Rect) image.Rectangle {
	offset := rect.Center().Sub(c.Center())
	size := float64(d.cfg.ScanSize)
	w, h := float64(d.cfg.CanvasWidth), float64(d.cfg.CanvasHeight)

	startX := w/2 + offset.X - size/2
	startY := h/2 + offset.Y - size/2
	safeX := math.Max(0, math.Min(startX, w-size))
	safeY := math.Max(0, math.Min(startY, h-size))

	x, y := int(math.Floor(safeX)), int(math.Floor(safeY))
	return image.Rect(x, y, x+d.cfg.ScanSize, y+d.cfg.ScanSize)
}

func (d *Detector) drawLayer(c scene.Container, layer *scene.Layer) {
	if layer == nil || layer.Image == nil {
		return
	}
	rect, ok := scene.ScreenRect(c, layer)
	if !ok || rect.Empty() {
		return
	}
	dst := d.Placement(c, rect)
	if dst.Empty() {
		return
	}
	d.cfg.Interpolation.scaler().Scale(d.canvas, dst, layer.Image, layer.Image.Bounds(), draw.Over, nil)
}

func (d *Detector) render(c scene.Container, background, current *scene.Layer) {
	draw.Draw(d.canvas, d.canvas.Bounds(), image.NewUniform(d.cfg.Backdrop), image.Point{}, draw.Src)
	d.drawLayer(c, background)
	d.drawLayer(c, current)
}

func (d *Detector) count(win image.Rectangle) int {
	win = win.Intersect(d.canvas.Bounds())
	n := 0
	for y := win.Min.Y; y < win.Max.Y; y++ {
		for x := win.Min.X; x < win.Max.X; x++ {
			i := d.canvas.PixOffset(x, y)
			p := d.canvas.Pix[i : i+4 : i+4]
			if d.cfg.Signature.Match(p[0], p[1], p[2]) {
				n++
			}
		}
	}
	return n
}

// Check re-renders the raster and classifies the gap under the current
// layer. It returns false when there is no current layer.
func (d *Detector) Check(c scene.Container, background, current *scene.Layer) (Result, bool) {
	if current == nil {
		return Result{}, false
	}

	d.render(c, background, current)

	// A hidden layer has a zero box, so the window tracks the origin, the
	// same as a display:none element would report.
	rect, _ := scene.ScreenRect(c, current)
	win := d.ScanWindow(c, rect)
	n := d.count(win)

	res := Result{
		Count:    n,
		Window:   win,
		Severity: Classify(n),
		Feedback: FeedbackFor(n),
		Layer:    current.ID,
		Offset:   rect.Center().Sub(c.Center()),
	}
	d.last, d.hasLast = res, true

	d.log.Debug().
		Str("layer", res.Layer).
		Int("gap", res.Count).
		Str("severity", res.Severity.String()).
		Str("window", win.String()).
		Msg("gap check")
	return res, true
}

func (d *Detector) annotated() *gg.Context {
	dc := gg.NewContextForImage(d.canvas)
	if d.hasLast {
		w := d.last.Window
		dc.SetRGB(1, 0, 0)
		dc.SetLineWidth(2)
		dc.DrawRectangle(float64(w.Min.X), float64(w.Min.Y), float64(w.Dx()), float64(w.Dy()))
		if err := dc.Stroke(); err != nil {
			d.log.Warn().Err(err).Msg("stroke scan window")
		}
	}
	return dc
}

// Preview returns the raster with the scan window outlined in red.
func (d *Detector) Preview() image.Image {
	dc := d.annotated()
	defer dc.Close()
	return dc.Image()
}

// SavePreview writes Preview as a PNG file.
func (d *Detector) SavePreview(path string) error {
	dc := d.annotated()
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save gap preview: %w", err)
	}
	return nil
}
