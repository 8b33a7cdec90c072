package scene

import (
	"math"

	"github.com/philipparndt/pmapview/pkg/geometry"
)

const (
	DefaultScale = 0.0001
	zoomIn       = 1.25
	zoomOut      = 0.8
)

// Camera maps world coordinates onto the window. The visible region is
// -1..1 horizontally and -1/aspect..1/aspect vertically (in view space,
// before dividing by Scale).
type Camera struct {
	Scale     float64
	Translate geometry.Vector2
	Aspect    float64
	Width     int
	Height    int
}

// NewCamera creates a camera for a window of the given size
func NewCamera(width, height int, scale float64) *Camera {
	if scale <= 0 {
		scale = DefaultScale
	}
	c := &Camera{Scale: scale}
	c.Resize(width, height)
	return c
}

// Resize records the window size and recomputes the aspect ratio.
// Dimensions below one pixel are clamped.
func (c *Camera) Resize(width, height int) {
	c.Width = max(width, 1)
	c.Height = max(height, 1)
	c.Aspect = float64(c.Width) / float64(c.Height)
}

// Pan moves the camera by a pointer delta in screen pixels (y down)
func (c *Camera) Pan(delta geometry.Vector2) {
	w, h := c.size()
	d := geometry.Vector2{X: delta.X / w, Y: -delta.Y / h}
	d.Y /= c.Aspect
	d = d.Mul(2).Div(c.Scale)
	c.Translate = c.Translate.Add(d)
}

// Zoom multiplies the scale by 1.25 for a positive direction and by 0.8
// otherwise
func (c *Camera) Zoom(direction int) {
	if direction > 0 {
		c.Scale *= zoomIn
	} else {
		c.Scale *= zoomOut
	}
}

// ScreenToView converts a window pixel into scaled, pan-independent view
// coordinates
func (c *Camera) ScreenToView(pixel geometry.Vector2) geometry.Vector2 {
	w, h := c.size()
	v := geometry.Vector2{X: pixel.X/w - 0.5, Y: -(pixel.Y / h) + 0.5}
	v.Y /= c.Aspect
	return v.Mul(2).Div(c.Scale)
}

// ViewToWorld removes the pan translation from a view coordinate
func (c *Camera) ViewToWorld(v geometry.Vector2) geometry.Vector2 {
	return v.Sub(c.Translate)
}

// ScreenToWorld converts a window pixel into world coordinates
func (c *Camera) ScreenToWorld(pixel geometry.Vector2) geometry.Vector2 {
	return c.ViewToWorld(c.ScreenToView(pixel))
}

// WorldToScreen converts a world coordinate into a window pixel
func (c *Camera) WorldToScreen(world geometry.Vector2) geometry.Vector2 {
	w, h := c.size()
	v := world.Add(c.Translate).Mul(c.Scale / 2)
	v.Y *= c.Aspect
	return geometry.Vector2{X: (v.X + 0.5) * w, Y: (0.5 - v.Y) * h}
}

// CenterOn pans so that the world point is in the middle of the window
func (c *Camera) CenterOn(world geometry.Vector2) {
	c.Translate = world.Neg()
}

// Fit centers the bounds and picks the scale at which they fill the
// window, leaving margin (a fraction, e.g. 0.05) on each side
func (c *Camera) Fit(bounds geometry.Bounds, margin float64) {
	if bounds.Empty() {
		return
	}
	c.CenterOn(bounds.Center())

	size := bounds.Size()
	fill := 1 - 2*math.Max(0, math.Min(margin, 0.45))
	scale := math.Inf(1)
	if size.X > 0 {
		scale = math.Min(scale, 2*fill/size.X)
	}
	if size.Y > 0 {
		scale = math.Min(scale, 2*fill/(size.Y*c.Aspect))
	}
	if !math.IsInf(scale, 1) {
		c.Scale = scale
	}
}

func (c *Camera) size() (float64, float64) {
	return float64(max(c.Width, 1)), float64(max(c.Height, 1))
}
