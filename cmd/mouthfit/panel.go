package main

import (
	"image/color"

	"mouthfit/internal/feature"
	"mouthfit/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth = 320
	fontHeight = 18
	lineHeight = 26
)

// Panel is the side bar: shape buttons, the three sliders and the gap
// read-out.
type Panel struct {
	dragging feature.SliderKind
	hasDrag  bool
	fontSize int
}

func NewPanel() *Panel {
	return &Panel{fontSize: fontHeight}
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// Draw renders the panel at x and applies any input to s. It reports
// whether the gap preview changed.
func (p *Panel) Draw(w *Window, x int) bool {
	s := w.studio
	screenH := rl.GetScreenHeight()
	rl.DrawRectangle(int32(x), 0, panelWidth, int32(screenH), rl.NewColor(30, 30, 36, 255))

	ui := NewUIContext(x+12, 12, panelWidth-24, lineHeight, p.fontSize)
	checked := false

	ui.Header("Mouth shape")
	shapes := append([]string{feature.ShapeNone}, s.Registry().Shapes()...)
	selected := 0
	for i, shape := range shapes {
		if shape == s.Selector().Shape() {
			selected = i
		}
	}
	if i := ui.Buttons(shapes, selected); i >= 0 {
		w.show(shapes[i])
	}

	ui.Separator()
	ui.Label("Adjusting: " + s.Selector().CurrentName())
	for _, kind := range s.Panel().Sliders() {
		slider := s.Panel().Slider(kind)
		changed, active := ui.Slider(slider, p.hasDrag && p.dragging == kind)
		if active {
			p.dragging, p.hasDrag = kind, true
		} else if p.hasDrag && p.dragging == kind {
			p.hasDrag = false
		}
		if changed {
			if _, ok := s.SetSlider(kind, slider.Value); ok {
				checked = true
			}
		}
	}
	if ui.Button("Reset") {
		s.Reset()
	}

	ui.Separator()
	ui.Header("Gap")
	if res, ok := s.Result(); ok {
		fb := res.Feedback
		ui.ColorLabel(fb.RatioText, rlColor(fb.RatioColor))
		if fb.AlertVisible {
			rl.DrawRectangle(int32(ui.X), int32(ui.Y), int32(ui.Width), int32(lineHeight+8), rlColor(fb.AlertColor))
			ui.Y += 4
			ui.ColorLabel(fb.AlertText, rl.White)
			ui.Y += 4
		}
	} else {
		ui.ColorLabel("No check yet", rl.Gray)
	}

	if w.previewTex.ID != 0 {
		ui.Separator()
		side := float32(ui.Width)
		src := rl.NewRectangle(0, 0, float32(w.previewTex.Width), float32(w.previewTex.Height))
		dst := rl.NewRectangle(float32(ui.X), float32(ui.Y), side, side*float32(w.previewTex.Height)/float32(w.previewTex.Width))
		rl.DrawTexturePro(w.previewTex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
		rl.DrawRectangleLinesEx(dst, 1, rl.Gray)
		ui.Y += int(dst.Height) + 4
	}

	ui.Separator()
	if ui.Checkbox("Debug overlay (F8)", utils.ShowDebugUI) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if utils.ShowDebugUI && ui.Checkbox("Show Bounding Boxes", w.debug.ShowBoundingBoxes) {
		w.debug.ShowBoundingBoxes = !w.debug.ShowBoundingBoxes
	}
	// The global pointer needs an X connection, so it only toggles when one was made.
	if w.pointer != nil && ui.Checkbox("Follow desktop pointer", w.useGlobalPointer) {
		w.useGlobalPointer = !w.useGlobalPointer
	}
	ui.ColorLabel("A I U E O N: shape  R: reset  F9: save gap", rl.Gray)

	return checked
}
