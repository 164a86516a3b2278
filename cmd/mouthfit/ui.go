package main

import (
	"fmt"

	"mouthfit/internal/feature"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// UIContext lays out immediate-mode widgets top to bottom.
type UIContext struct {
	X, Y         int
	Width        int
	LineHeight   int
	FontHeight   int
	MouseX       int
	MouseY       int
	MouseClicked bool
	MouseDown    bool
}

func NewUIContext(x, y, width, lineHeight, fontHeight int) *UIContext {
	m := rl.GetMousePosition()
	return &UIContext{
		X:            x,
		Y:            y,
		Width:        width,
		LineHeight:   lineHeight,
		FontHeight:   fontHeight,
		MouseX:       int(m.X),
		MouseY:       int(m.Y),
		MouseClicked: rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		MouseDown:    rl.IsMouseButtonDown(rl.MouseButtonLeft),
	}
}

func (ui *UIContext) hover(x, y, w, h int) bool {
	return ui.MouseX >= x && ui.MouseX <= x+w && ui.MouseY >= y && ui.MouseY <= y+h
}

func (ui *UIContext) drawText(text string, x, y int32, color rl.Color) {
	rl.DrawText(text, x, y, int32(ui.FontHeight), color)
}

func (ui *UIContext) Label(text string) {
	ui.ColorLabel(text, rl.White)
}

func (ui *UIContext) ColorLabel(text string, color rl.Color) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), color)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Separator() {
	ui.Y += ui.LineHeight / 2
}

func (ui *UIContext) Header(text string) {
	ui.ColorLabel(text, rl.NewColor(255, 220, 120, 255))
}

func (ui *UIContext) Checkbox(label string, checked bool) bool {
	boxSize := int(float64(ui.FontHeight) * 0.8)
	boxX := ui.X + 5
	boxY := ui.Y + 2

	changed := ui.MouseClicked && ui.hover(boxX, boxY, boxSize+100, boxSize)

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), rl.NewColor(150, 150, 150, 255))
	if checked {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), rl.NewColor(100, 255, 100, 255))
	}
	ui.drawText(label, int32(ui.X+5+boxSize+5), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight

	return changed
}

// Buttons draws a row of equally sized buttons and returns the index of the
// clicked one, or -1.
func (ui *UIContext) Buttons(labels []string, selected int) int {
	if len(labels) == 0 {
		return -1
	}
	const gap = 4
	w := (ui.Width - gap*(len(labels)-1)) / len(labels)
	h := ui.LineHeight

	clicked := -1
	for i, label := range labels {
		x := ui.X + i*(w+gap)
		bg := rl.NewColor(60, 60, 70, 255)
		if i == selected {
			bg = rl.NewColor(70, 120, 200, 255)
		} else if ui.hover(x, ui.Y, w, h) {
			bg = rl.NewColor(85, 85, 100, 255)
		}
		if ui.MouseClicked && ui.hover(x, ui.Y, w, h) {
			clicked = i
		}
		rl.DrawRectangle(int32(x), int32(ui.Y), int32(w), int32(h-2), bg)
		tw := int(rl.MeasureText(label, int32(ui.FontHeight)))
		ui.drawText(label, int32(x+(w-tw)/2), int32(ui.Y+(h-2-ui.FontHeight)/2), rl.White)
	}
	ui.Y += h + gap
	return clicked
}

func (ui *UIContext) Button(label string) bool {
	return ui.Buttons([]string{label}, -1) == 0
}

// Slider draws a labelled track. While the mouse is held on the track the
// slider follows it; the return value reports a value change.
func (ui *UIContext) Slider(s *feature.Slider, dragging bool) (changed, active bool) {
	ui.drawText(fmt.Sprintf("%s: %g", s.Label, s.Value), int32(ui.X), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight

	trackY := ui.Y + ui.LineHeight/2 - 2
	knobR := float32(ui.FontHeight) / 2

	active = dragging && ui.MouseDown
	if ui.MouseClicked && ui.hover(ui.X, ui.Y, ui.Width, ui.LineHeight) {
		active = true
	}
	if active {
		f := float64(ui.MouseX-ui.X) / float64(ui.Width)
		changed = s.SetFraction(max(0, min(1, f)))
	}

	rl.DrawRectangle(int32(ui.X), int32(trackY), int32(ui.Width), 4, rl.NewColor(90, 90, 90, 255))
	fill := int32(float64(ui.Width) * s.Fraction())
	rl.DrawRectangle(int32(ui.X), int32(trackY), fill, 4, rl.NewColor(70, 120, 200, 255))
	rl.DrawCircle(int32(ui.X)+fill, int32(trackY+2), knobR, rl.RayWhite)

	ui.Y += ui.LineHeight
	return changed, active
}
