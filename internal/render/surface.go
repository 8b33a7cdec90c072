// Package render draws the viewer state onto a drawing surface.
package render

import (
	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Surface is an immediate-mode drawing target with a transform stack.
// Vertex coordinates are local; the surface applies its current
// transform and maps the result from normalized device space to pixels.
type Surface interface {
	Begin(width, height int)
	Clear(c scene.Color)
	SetWireframe(enabled bool)
	PushMatrix()
	PopMatrix()
	Scale(x, y float64)
	Translate(x, y float64)
	Quad(c scene.Color, corners [4]geometry.Vector2)
	Point(c scene.Color, p geometry.Vector2)
	LineStrip(c scene.Color, points []geometry.Vector2)
	End()
}
