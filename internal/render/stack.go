package render

import (
	"github.com/philipparndt/pmapview/pkg/geometry"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Stack is a fixed-function style transform stack. Scale and Translate
// post-multiply like their OpenGL counterparts, so the most recently
// applied transform acts on vertices first.
type Stack struct {
	ctm    matrix.Matrix
	saved  []matrix.Matrix
	width  int
	height int
}

// NewStack creates an identity stack for a viewport
func NewStack(width, height int) *Stack {
	s := &Stack{}
	s.Reset(width, height)
	return s
}

// Reset clears the stack and sets the viewport size
func (s *Stack) Reset(width, height int) {
	s.ctm = matrix.Identity
	s.saved = s.saved[:0]
	s.width = max(width, 1)
	s.height = max(height, 1)
}

func (s *Stack) Push() {
	s.saved = append(s.saved, s.ctm)
}

// Pop restores the last pushed matrix; popping an empty stack resets to
// identity
func (s *Stack) Pop() {
	n := len(s.saved)
	if n == 0 {
		s.ctm = matrix.Identity
		return
	}
	s.ctm = s.saved[n-1]
	s.saved = s.saved[:n-1]
}

func (s *Stack) Scale(x, y float64) {
	s.ctm = matrix.Scale(x, y).Mul(s.ctm)
}

func (s *Stack) Translate(x, y float64) {
	s.ctm = matrix.Translate(x, y).Mul(s.ctm)
}

// Depth returns the number of pushed matrices
func (s *Stack) Depth() int {
	return len(s.saved)
}

// Matrix returns the current transform
func (s *Stack) Matrix() matrix.Matrix {
	return s.ctm
}

// Apply maps a local coordinate to normalized device coordinates
func (s *Stack) Apply(p geometry.Vector2) vec.Vec2 {
	x, y := s.ctm.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}
}

// Viewport maps normalized device coordinates (-1..1, y up) to pixels
// (y down)
func (s *Stack) Viewport(ndc vec.Vec2) geometry.Vector2 {
	return geometry.Vector2{
		X: (ndc.X + 1) / 2 * float64(s.width),
		Y: (1 - ndc.Y) / 2 * float64(s.height),
	}
}

// Project maps a local coordinate straight to pixels
func (s *Stack) Project(p geometry.Vector2) geometry.Vector2 {
	return s.Viewport(s.Apply(p))
}

func (s *Stack) Size() (int, int) {
	return s.width, s.height
}
