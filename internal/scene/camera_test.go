package scene

import (
	"testing"

	"github.com/philipparndt/pmapview/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-6

func assertVec(t *testing.T, want, got geometry.Vector2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
}

func TestCameraDefaults(t *testing.T) {
	c := NewCamera(800, 600, 0)
	assert.Equal(t, DefaultScale, c.Scale)
	assert.InDelta(t, 4.0/3.0, c.Aspect, eps)
	assert.Equal(t, geometry.Vector2{}, c.Translate)
}

func TestCameraResize(t *testing.T) {
	c := NewCamera(800, 600, DefaultScale)
	c.Resize(1600, 600)
	assert.InDelta(t, 1600.0/600.0, c.Aspect, eps)

	c.Resize(0, -5)
	assert.Equal(t, 1, c.Width)
	assert.Equal(t, 1, c.Height)
	assert.Equal(t, 1.0, c.Aspect)
}

func TestCameraPan(t *testing.T) {
	c := NewCamera(800, 600, 0.0001)
	c.Pan(geometry.NewVector2(10, -10))
	assertVec(t, geometry.NewVector2(250, 250), c.Translate)
}

func TestCameraPanRoundTrip(t *testing.T) {
	c := NewCamera(1024, 768, 0.003)
	c.Translate = geometry.NewVector2(12, -40)
	start := c.Translate

	c.Pan(geometry.NewVector2(37, -12))
	c.Pan(geometry.NewVector2(-37, 12))
	assertVec(t, start, c.Translate)
}

func TestCameraZoom(t *testing.T) {
	c := NewCamera(800, 600, 1)
	c.Zoom(1)
	assert.InDelta(t, 1.25, c.Scale, eps)
	c.Zoom(-1)
	assert.InDelta(t, 1.0, c.Scale, eps)
	c.Zoom(0)
	assert.InDelta(t, 0.8, c.Scale, eps)
}

func TestScreenCenterIsNegativeTranslate(t *testing.T) {
	c := NewCamera(800, 600, 0.01)
	c.Translate = geometry.NewVector2(-120, 35)

	assertVec(t, geometry.NewVector2(120, -35), c.ScreenToWorld(geometry.NewVector2(400, 300)))
	assertVec(t, geometry.Vector2{}, c.ScreenToView(geometry.NewVector2(400, 300)))
}

func TestScreenToViewCorners(t *testing.T) {
	c := NewCamera(800, 400, 1)

	assertVec(t, geometry.NewVector2(-1, 0.5), c.ScreenToView(geometry.NewVector2(0, 0)))
	assertVec(t, geometry.NewVector2(1, -0.5), c.ScreenToView(geometry.NewVector2(800, 400)))
}

func TestWorldToScreenInverse(t *testing.T) {
	c := NewCamera(640, 480, 0.02)
	c.Translate = geometry.NewVector2(100, -250)

	for _, p := range []geometry.Vector2{{X: 0, Y: 0}, {X: 13, Y: 470}, {X: 639, Y: 1}} {
		assertVec(t, p, c.WorldToScreen(c.ScreenToWorld(p)))
	}
}

func TestCameraCenterOn(t *testing.T) {
	c := NewCamera(800, 600, 0.01)
	c.CenterOn(geometry.NewVector2(500, -20))

	assertVec(t, geometry.NewVector2(500, -20), c.ScreenToWorld(geometry.NewVector2(400, 300)))
}

func TestCameraFit(t *testing.T) {
	c := NewCamera(800, 400, 1)
	b := geometry.NewBounds()
	b.Extend(geometry.NewVector2(0, 0))
	b.Extend(geometry.NewVector2(100, 10))

	c.Fit(b, 0)
	assertVec(t, geometry.NewVector2(-50, -5), c.Translate)
	assert.InDelta(t, 0.02, c.Scale, eps)

	// bounds corners land on the window edges
	assertVec(t, geometry.NewVector2(0, 160), c.WorldToScreen(geometry.NewVector2(0, 10)))
}

func TestCameraFitEmpty(t *testing.T) {
	c := NewCamera(800, 600, 0.5)
	c.Fit(geometry.NewBounds(), 0.1)
	assert.Equal(t, 0.5, c.Scale)
}
