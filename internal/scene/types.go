package scene

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) String() string { return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y) }

// Rect is a screen-space rectangle, the equivalent of a DOMRect.
// ParseVec2 reads "x,y". Both parts must be finite numbers.
func ParseVec2(s string) (Vec2, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Vec2{}, fmt.Errorf("point %q: want x,y", s)
	}
	var v [2]float64
	for i, part := range []string{xs, ys} {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Vec2{}, fmt.Errorf("point %q: %w", s, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Vec2{}, fmt.Errorf("point %q: not finite", s)
		}
		v[i] = f
	}
	return Vec2{X: v[0], Y: v[1]}, nil
}

type Rect struct {
	Left, Top, Width, Height float64
}

func (r Rect) Right() float64 { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func (r Rect) Center() Vec2 {
	return Vec2{r.Left + r.Width/2, r.Top + r.Height/2}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

func (r Rect) Translate(v Vec2) Rect {
	return Rect{r.Left + v.X, r.Top + v.Y, r.Width, r.Height}
}

type LayerKind int

const (
	KindBackground LayerKind = iota
	KindVowel
)

func (k LayerKind) String() string {
	switch k {
	case KindBackground:
		return "background"
	case KindVowel:
		return "vowel"
	}
	return "unknown"
}

func ParseLayerKind(s string) (LayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "background", "bg", "inside":
		return KindBackground, nil
	case "vowel", "overlay", "shape":
		return KindVowel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Layer is one stacked image. The first group of fields is declared by the
// config; the second is the live positioning state the features mutate.
// ShapeNone is the selector value for "no overlay"; no overlay may use it.
const ShapeNone = "none"

type Layer struct {
	ID          string
	Name        string
	DisplayName string
	Shape       string
	Kind        LayerKind
	Speed       float64
	ZIndex      int
	Image       image.Image

	Visible bool
	// BaseX and BaseY are percentages of the layer's own size, so -50/-50
	// centres the layer on the container centre.
	BaseX, BaseY float64
	// LiftY is a fixed pixel offset that only applies once Adjusted is set.
	LiftY    float64
	Adjusted bool
	// WidthPct and HeightPct are percentages of the container size.
	WidthPct, HeightPct float64
	Parallax            Vec2

	initialWidthPct  float64
	initialHeightPct float64
}

const (
	DefaultBase = -50.0
	DefaultLift = -50.0
	DefaultSize = 100.0
)

func (l *Layer) IsBackground() bool { return l.Kind == KindBackground }

// Reset restores the positioning state declared by the config.
func (l *Layer) Reset() {
	l.BaseX, l.BaseY = DefaultBase, DefaultBase
	l.Adjusted = false
	l.WidthPct, l.HeightPct = l.initialWidthPct, l.initialHeightPct
	l.Parallax = Vec2{}
	l.Visible = l.Kind == KindBackground
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s(%s z=%d)", l.ID, l.Kind, l.ZIndex)
}
