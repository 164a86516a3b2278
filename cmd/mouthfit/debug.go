package main

import (
	"fmt"

	"mouthfit/internal/scene"
	"mouthfit/internal/studio"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type DebugOverlay struct {
	ShowBoundingBoxes bool
}

func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{ShowBoundingBoxes: true}
}

func rectToRl(r scene.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.Left), float32(r.Top), float32(r.Width), float32(r.Height))
}

func (d *DebugOverlay) drawLayerBox(layer *scene.Layer, c scene.Container, col rl.Color) {
	rect, ok := scene.ScreenRect(c, layer)
	if !ok {
		return
	}
	rl.DrawRectangleLinesEx(rectToRl(rect), 1, col)

	// centre marker
	ctr := rect.Center()
	rl.DrawRectangle(int32(ctr.X-2), int32(ctr.Y-2), 4, 4, rl.Red)
	rl.DrawText(layer.ID, int32(rect.Left)+3, int32(rect.Top)+3, 10, col)
}

// Draw outlines every visible layer, the container centre and the gap scan
// window mapped back to screen space.
func (d *DebugOverlay) Draw(s *studio.Studio) {
	c := s.Container()
	if d.ShowBoundingBoxes {
		current := s.Current()
		for _, layer := range s.Registry().Layers() {
			if layer == current {
				continue
			}
			d.drawLayerBox(layer, c, rl.NewColor(0, 255, 0, 255))
		}
		d.drawLayerBox(current, c, rl.NewColor(255, 255, 0, 255))

		cc := c.Center()
		rl.DrawLine(int32(cc.X-8), int32(cc.Y), int32(cc.X+8), int32(cc.Y), rl.SkyBlue)
		rl.DrawLine(int32(cc.X), int32(cc.Y-8), int32(cc.X), int32(cc.Y+8), rl.SkyBlue)
	}

	res, ok := s.Result()
	if !ok {
		return
	}
	cfg := s.Detector().Config()
	cc := c.Center()
	win := rl.NewRectangle(
		float32(float64(res.Window.Min.X)-float64(cfg.CanvasWidth)/2+cc.X),
		float32(float64(res.Window.Min.Y)-float64(cfg.CanvasHeight)/2+cc.Y),
		float32(res.Window.Dx()),
		float32(res.Window.Dy()),
	)
	rl.DrawRectangleLinesEx(win, 2, rl.Red)

	info := fmt.Sprintf("%s offset %v gap %d/%d", res.Layer, res.Offset, res.Count, res.Area())
	rl.DrawText(info, int32(c.Left)+4, int32(c.Rect().Bottom())-14, 10, rl.White)
	rl.DrawFPS(int32(c.Left)+4, int32(c.Top)+4)
}
