package scene

import "math"

// Container is the bounding box the layers are centred in and the pointer
// is tracked against.
type Container struct {
	Left, Top     float64
	Width, Height float64
}

func (c Container) Rect() Rect {
	return Rect{c.Left, c.Top, c.Width, c.Height}
}

func (c Container) Center() Vec2 {
	return Vec2{c.Left + c.Width/2, c.Top + c.Height/2}
}

func (c Container) Contains(p Vec2) bool {
	return c.Rect().Contains(p)
}

// CornerRadius is the distance from the centre to a corner.
func (c Container) CornerRadius() float64 {
	return math.Hypot(c.Width/2, c.Height/2)
}

// ScreenRect returns the on-screen rectangle of layer inside c. Hidden
// layers have no box, the same as a display:none element.
func ScreenRect(c Container, layer *Layer) (Rect, bool) {
	if layer == nil || !layer.Visible {
		return Rect{}, false
	}

	w := c.Width * layer.WidthPct / 100
	h := c.Height * layer.HeightPct / 100

	left := c.Left + c.Width/2 + layer.BaseX/100*w + layer.Parallax.X
	top := c.Top + c.Height/2 + layer.BaseY/100*h + layer.Parallax.Y
	if layer.Adjusted {
		top += layer.LiftY
	}

	return Rect{Left: left, Top: top, Width: w, Height: h}, true
}
