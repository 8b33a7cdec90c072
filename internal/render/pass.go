package render

import (
	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Pass renders one frame of the viewer state
type Pass struct{}

// Draw clears the surface, draws every trapezoid colored by plane and,
// if enabled, the range rings around the cursor
func (Pass) Draw(s Surface, st *scene.State) {
	cam := st.Camera
	s.Begin(cam.Width, cam.Height)
	defer s.End()

	s.Clear(scene.Black)
	s.SetWireframe(st.Flags.Wireframe)

	s.Scale(1, cam.Aspect)
	s.Scale(cam.Scale, cam.Scale)

	s.PushMatrix()
	s.Translate(cam.Translate.X, cam.Translate.Y)
	maxPlane := st.Mesh.MaxPlane()
	for _, t := range st.Mesh.Trapezoids() {
		s.Quad(scene.PlaneColor(t.Plane, maxPlane), t.Corners())
	}
	s.PopMatrix()

	if !st.Flags.ShowOverlay {
		return
	}
	drawOverlay(s, st)
}

func drawOverlay(s Surface, st *scene.State) {
	s.Translate(st.Cursor.X, st.Cursor.Y)
	s.SetWireframe(false)
	s.Point(scene.White, geometry.Vector2{})

	for _, r := range st.Overlay.Radii {
		s.PushMatrix()
		s.Scale(r, r)
		s.LineStrip(scene.White, st.Overlay.Circle)
		s.PopMatrix()
	}
}
