package main

import (
	"math"
	"time"

	"mouthfit/internal/scene"
	"mouthfit/internal/studio"
	"mouthfit/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const margin = 20

type WindowOptions struct {
	ConfigPath    string
	Studio        studio.Options
	Watch         bool
	GlobalPointer bool
	InitialShape  string
}

type Window struct {
	studio *studio.Studio
	opts   WindowOptions

	textures     map[string]rl.Texture2D
	previewTex   rl.Texture2D
	previewDirty bool

	watcher          *utils.FilesWatcher
	pointer          *utils.Pointer
	useGlobalPointer bool
	lastPointer      scene.Vec2
	hasLastPointer   bool

	panel *Panel
	debug *DebugOverlay
}

func NewWindow(s *studio.Studio, opts WindowOptions) *Window {
	c := s.Container()
	width := int32(c.Width) + 2*margin + panelWidth
	height := int32(max(c.Height+2*margin, 640))

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(width, height, "mouthfit")

	window := &Window{
		studio:       s,
		opts:         opts,
		textures:     loadTextures(s.Registry().Layers()),
		previewDirty: true,
		panel:        NewPanel(),
		debug:        NewDebugOverlay(),
	}

	if opts.InitialShape != "" {
		window.show(opts.InitialShape)
	}

	if opts.GlobalPointer {
		p, err := utils.NewPointer()
		if err != nil {
			utils.Warn("Global pointer unavailable: %v", err)
		} else {
			window.pointer = p
			window.useGlobalPointer = true
		}
	}

	if opts.Watch {
		w, err := utils.NewFilesWatcher(300 * time.Millisecond)
		if err != nil {
			utils.Warn("Hot reload disabled: %v", err)
		} else {
			w.SetFiles(s.WatchFiles())
			window.watcher = w
		}
	}

	return window
}

func (window *Window) Close() {
	if window.watcher != nil {
		window.watcher.Close()
	}
	if window.pointer != nil {
		window.pointer.Close()
	}
	unloadTextures(window.textures)
	if window.previewTex.ID != 0 {
		rl.UnloadTexture(window.previewTex)
	}
	rl.CloseWindow()
}

func (window *Window) Run() {
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) show(shape string) {
	if _, err := window.studio.Show(shape); err != nil {
		utils.Warn("%v", err)
	}
}

// layout centres the container in the area left of the panel.
func (window *Window) layout() scene.Container {
	c := window.studio.Container()
	areaW := float64(rl.GetScreenWidth() - panelWidth)
	areaH := float64(rl.GetScreenHeight())
	c.Left = math.Max(margin, math.Floor((areaW-c.Width)/2))
	c.Top = math.Max(margin, math.Floor((areaH-c.Height)/2))
	return c
}

func (window *Window) pointerPosition() (scene.Vec2, bool) {
	if window.useGlobalPointer && window.pointer != nil {
		wp := rl.GetWindowPosition()
		x, y, err := window.pointer.Relative(float64(wp.X), float64(wp.Y))
		if err == nil {
			return scene.Vec2{X: x, Y: y}, true
		}
		utils.Warn("Global pointer failed, falling back to window pointer: %v", err)
		window.useGlobalPointer = false
	}
	m := rl.GetMousePosition()
	return scene.Vec2{X: float64(m.X), Y: float64(m.Y)}, true
}

func (window *Window) Update() {
	s := window.studio
	s.Resize(window.layout())

	// Only moves count, the same as mousemove events.
	if p, ok := window.pointerPosition(); ok && (!window.hasLastPointer || p != window.lastPointer) {
		window.lastPointer, window.hasLastPointer = p, true
		s.PointerMove(p)
	}

	window.handleKeys()
	window.pollReload()

	// One pending check per frame.
	if _, ok := s.Flush(); ok {
		window.previewDirty = true
	}
	if window.previewDirty {
		window.refreshPreview()
	}
}

func (window *Window) handleKeys() {
	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		const path = "gap.png"
		if err := window.studio.Detector().SavePreview(path); err != nil {
			utils.Error("Failed to save gap canvas: %v", err)
		} else {
			utils.Info("Gap canvas saved to %s", path)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		window.studio.Reset()
	}

	keys := []struct {
		key   int32
		shape string
	}{
		{rl.KeyA, "a"}, {rl.KeyI, "i"}, {rl.KeyU, "u"}, {rl.KeyE, "e"}, {rl.KeyO, "o"}, {rl.KeyN, "none"},
	}
	for _, k := range keys {
		if rl.IsKeyPressed(k.key) {
			window.show(k.shape)
		}
	}
}

func (window *Window) refreshPreview() {
	window.previewDirty = false
	if _, ok := window.studio.Result(); !ok {
		return
	}
	if window.previewTex.ID != 0 {
		rl.UnloadTexture(window.previewTex)
	}
	window.previewTex = textureFromImage(window.studio.Preview())
}

// pollReload rebuilds the session after the config or an image changed. The
// old session stays when the new one fails to load.
func (window *Window) pollReload() {
	if window.watcher == nil {
		return
	}
	select {
	case name := <-window.watcher.Changed():
		utils.Info("Reloading after change to %s", name)
	default:
		return
	}

	st := window.studio.State()
	next, err := studio.Load(window.opts.ConfigPath, window.opts.Studio)
	if err != nil {
		utils.Error("Reload failed, keeping the current scene: %v", err)
		return
	}
	next.Restore(st)

	unloadTextures(window.textures)
	window.studio = next
	window.textures = loadTextures(next.Registry().Layers())
	window.watcher.SetFiles(next.WatchFiles())
	window.previewDirty = true
}

func (window *Window) drawLayer(layer *scene.Layer, c scene.Container) {
	rect, ok := scene.ScreenRect(c, layer)
	if !ok || rect.Empty() {
		return
	}
	dst := rectToRl(rect)

	tex, ok := window.textures[layer.ID]
	if !ok {
		rl.DrawRectangleRec(dst, placeholderColor(layer))
		rl.DrawText(layer.DisplayName, int32(rect.Left)+4, int32(rect.Top)+4, 10, rl.White)
		return
	}
	src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (window *Window) Draw() {
	rl.ClearBackground(rl.NewColor(20, 20, 24, 255))

	s := window.studio
	c := s.Container()

	rl.DrawRectangleRec(rectToRl(c.Rect()), rl.NewColor(235, 235, 235, 255))
	rl.BeginScissorMode(int32(c.Left), int32(c.Top), int32(c.Width), int32(c.Height))
	for _, layer := range s.Registry().Layers() {
		if layer.Visible {
			window.drawLayer(layer, c)
		}
	}
	rl.EndScissorMode()

	if utils.ShowDebugUI {
		window.debug.Draw(s)
	}

	if window.panel.Draw(window, rl.GetScreenWidth()-panelWidth) {
		window.previewDirty = true
	}
}
