package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

const pointSize = 3

// raylibSurface draws the render pass with raylib 2D primitives. The
// transform stack runs on the CPU, so vertices reach raylib in pixels.
type raylibSurface struct {
	stack     *render.Stack
	wireframe bool
}

func newRaylibSurface() *raylibSurface {
	return &raylibSurface{stack: render.NewStack(1, 1)}
}

func (s *raylibSurface) Begin(width, height int) {
	s.stack.Reset(width, height)
	s.wireframe = false
	// culling state applies when the batch is drawn, not when it is queued
	rl.DrawRenderBatchActive()
	rl.DisableBackfaceCulling()
}

func (s *raylibSurface) Clear(c scene.Color) {
	rl.ClearBackground(toColor(c))
}

func (s *raylibSurface) SetWireframe(enabled bool) {
	s.wireframe = enabled
}

func (s *raylibSurface) PushMatrix() {
	s.stack.Push()
}

func (s *raylibSurface) PopMatrix() {
	s.stack.Pop()
}

func (s *raylibSurface) Scale(x, y float64) {
	s.stack.Scale(x, y)
}

func (s *raylibSurface) Translate(x, y float64) {
	s.stack.Translate(x, y)
}

func (s *raylibSurface) Quad(c scene.Color, corners [4]geometry.Vector2) {
	var p [4]rl.Vector2
	for i, corner := range corners {
		p[i] = s.project(corner)
	}
	col := toColor(c)

	if s.wireframe {
		for i := range p {
			rl.DrawLineV(p[i], p[(i+1)%4], col)
		}
		return
	}
	for _, tri := range fillTriangles(p) {
		rl.DrawTriangle(tri[0], tri[1], tri[2], col)
	}
}

// fillTriangles splits a TL, TR, BR, BL quad into two triangles wound
// counter-clockwise on screen, the front face raylib expects
func fillTriangles(p [4]rl.Vector2) [2][3]rl.Vector2 {
	return [2][3]rl.Vector2{
		{p[0], p[3], p[2]},
		{p[0], p[2], p[1]},
	}
}

func (s *raylibSurface) Point(c scene.Color, p geometry.Vector2) {
	pos := s.project(p)
	rl.DrawRectangleV(
		rl.Vector2{X: pos.X - pointSize/2.0, Y: pos.Y - pointSize/2.0},
		rl.Vector2{X: pointSize, Y: pointSize},
		toColor(c),
	)
}

func (s *raylibSurface) LineStrip(c scene.Color, points []geometry.Vector2) {
	if len(points) < 2 {
		return
	}
	col := toColor(c)
	prev := s.project(points[0])
	for _, p := range points[1:] {
		next := s.project(p)
		rl.DrawLineV(prev, next, col)
		prev = next
	}
}

func (s *raylibSurface) End() {
	rl.DrawRenderBatchActive()
	rl.EnableBackfaceCulling()
}

func (s *raylibSurface) project(p geometry.Vector2) rl.Vector2 {
	px := s.stack.Project(p)
	return rl.Vector2{X: float32(px.X), Y: float32(px.Y)}
}

func toColor(c scene.Color) rl.Color {
	r, g, b, a := c.RGBA8()
	return rl.NewColor(r, g, b, a)
}
