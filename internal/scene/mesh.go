package scene

import (
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Color is an RGB color with components in [0, 1]
type Color struct {
	R, G, B float64
}

var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// RGBA8 converts the color to 8-bit channels with full opacity
func (c Color) RGBA8() (r, g, b, a uint8) {
	return channel(c.R), channel(c.G), channel(c.B), 255
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// PlaneColor maps a plane index onto a red/green ramp: plane 0 is pure
// green, maxPlane is pure red.
func PlaneColor(plane, maxPlane int) Color {
	if maxPlane < 1 {
		maxPlane = 1
	}
	c := float64(plane) / float64(maxPlane)
	return Color{R: c, G: 1 - c, B: 0}
}

// Mesh holds the trapezoids of the currently displayed map
type Mesh struct {
	trapezoids []geometry.Trapezoid
	maxPlane   int
}

// NewMesh creates an empty mesh
func NewMesh() *Mesh {
	return &Mesh{maxPlane: 1}
}

// Load replaces the displayed trapezoids and recomputes the highest plane
func (m *Mesh) Load(trapezoids []geometry.Trapezoid) {
	m.trapezoids = trapezoids
	m.maxPlane = 1
	for _, t := range trapezoids {
		if t.Plane > m.maxPlane {
			m.maxPlane = t.Plane
		}
	}
}

// Trapezoids returns the loaded trapezoids in load order
func (m *Mesh) Trapezoids() []geometry.Trapezoid {
	return m.trapezoids
}

// MaxPlane returns the highest plane index, at least 1
func (m *Mesh) MaxPlane() int {
	if m.maxPlane < 1 {
		return 1
	}
	return m.maxPlane
}

func (m *Mesh) Len() int {
	return len(m.trapezoids)
}

// Bounds returns the bounding box of all trapezoid corners
func (m *Mesh) Bounds() geometry.Bounds {
	b := geometry.NewBounds()
	for _, t := range m.trapezoids {
		b.ExtendTrapezoid(t)
	}
	return b
}
