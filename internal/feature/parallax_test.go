package feature

import (
	"math"
	"testing"

	"mouthfit/internal/scene"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDamping(t *testing.T) {
	// 600x800 container: corner radius is 500.
	c := scene.Container{Width: 600, Height: 800}

	tests := []struct {
		name string
		rel  scene.Vec2
		want float64
	}{
		{"centre", scene.Vec2{}, 1},
		{"halfway", scene.Vec2{X: 150, Y: 200}, 0.5},
		{"corner", scene.Vec2{X: 300, Y: 400}, 0},
		{"beyond corner", scene.Vec2{X: 600, Y: 800}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Damping(c, tt.rel); !approx(got, tt.want) {
				t.Errorf("Damping(%v) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}

	if got := Damping(scene.Container{}, scene.Vec2{}); got != 0 {
		t.Errorf("empty container damping = %v, want 0", got)
	}
}

func TestUpdateParallax(t *testing.T) {
	c := scene.Container{Left: 100, Top: 100, Width: 600, Height: 800}
	bg := &scene.Layer{ID: "bg", Speed: 0.05, BaseX: -40}
	lips := &scene.Layer{ID: "lips", Speed: 0.1, BaseY: -30}
	layers := []*scene.Layer{bg, lips}

	// Centre is (400, 500); the pointer sits 150,200 away, so damping is 0.5.
	if !UpdateParallax(layers, c, scene.Vec2{X: 550, Y: 700}) {
		t.Fatalf("pointer inside the container was rejected")
	}
	if !approx(bg.Parallax.X, 150*0.05*0.5) || !approx(bg.Parallax.Y, 200*0.05*0.5) {
		t.Errorf("background parallax = %v", bg.Parallax)
	}
	if !approx(lips.Parallax.X, 7.5) || !approx(lips.Parallax.Y, 10) {
		t.Errorf("overlay parallax = %v", lips.Parallax)
	}
	if bg.BaseX != -40 || lips.BaseY != -30 {
		t.Errorf("parallax overwrote a base offset")
	}

	before := lips.Parallax
	if UpdateParallax(layers, c, scene.Vec2{X: 50, Y: 50}) {
		t.Errorf("pointer outside the container was accepted")
	}
	if lips.Parallax != before {
		t.Errorf("rejected pointer still moved the layer")
	}

	UpdateParallax(layers, c, c.Center())
	if lips.Parallax != (scene.Vec2{}) {
		t.Errorf("pointer at the centre should not move layers, got %v", lips.Parallax)
	}
}
