// Package scene holds the viewer state: the displayed mesh, the camera,
// the display flags and the overlay rings.
package scene

import (
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// DefaultRadii are the overlay ring radii in world units
var DefaultRadii = []float64{300, 322, 366, 1085, 2500, 5000}

const DefaultSegments = 50

// Flags are the toggleable display settings
type Flags struct {
	Wireframe   bool
	ShowOverlay bool
}

// Overlay is the set of range rings drawn around the cursor
type Overlay struct {
	Radii  []float64
	Circle []geometry.Vector2 // closed unit polyline
}

// NewOverlay builds the ring set; nil radii or a non-positive segment
// count fall back to the defaults
func NewOverlay(radii []float64, segments int) Overlay {
	if radii == nil {
		radii = DefaultRadii
	}
	if segments <= 0 {
		segments = DefaultSegments
	}
	return Overlay{
		Radii:  append([]float64(nil), radii...),
		Circle: geometry.UnitCircle(segments),
	}
}

// State is everything the render pass reads
type State struct {
	Mesh    *Mesh
	Camera  *Camera
	Flags   Flags
	Overlay Overlay
	// Cursor is the pointer position in view space
	Cursor geometry.Vector2
	// Dirty is set by every input mutation and cleared after a frame
	Dirty bool
}

// NewState creates the state for a window of the given size
func NewState(width, height int, scale float64) *State {
	return &State{
		Mesh:    NewMesh(),
		Camera:  NewCamera(width, height, scale),
		Overlay: NewOverlay(nil, DefaultSegments),
		Dirty:   true,
	}
}

// CursorWorld returns the world coordinate under the pointer
func (s *State) CursorWorld() geometry.Vector2 {
	return s.Camera.ViewToWorld(s.Cursor)
}
