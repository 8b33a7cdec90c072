package render

import (
	"testing"

	"github.com/philipparndt/pmapview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"seehuhn.de/go/geom/matrix"
)

func TestStackOrder(t *testing.T) {
	s := NewStack(200, 100)
	s.Scale(2, 2)
	s.Translate(1, 0)

	// translate acts first, then scale
	ndc := s.Apply(geometry.NewVector2(0, 0))
	assert.InDelta(t, 2, ndc.X, 1e-12)
	assert.InDelta(t, 0, ndc.Y, 1e-12)
}

func TestStackMatchesMatrixComposition(t *testing.T) {
	s := NewStack(100, 100)
	s.Scale(1, 4.0/3.0)
	s.Scale(0.5, 0.5)
	s.Translate(3, -2)

	want := matrix.Translate(3, -2).Mul(matrix.Scale(0.5, 0.5)).Mul(matrix.Scale(1, 4.0/3.0))
	got := s.Matrix()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12)
	}

	x, y := want.Apply(7, 5)
	ndc := s.Apply(geometry.NewVector2(7, 5))
	assert.InDelta(t, x, ndc.X, 1e-12)
	assert.InDelta(t, y, ndc.Y, 1e-12)
	assert.InDelta(t, 5, ndc.X, 1e-12)
	assert.InDelta(t, 2, ndc.Y, 1e-12)
}

func TestStackPushPop(t *testing.T) {
	s := NewStack(100, 100)
	s.Scale(0.5, 0.5)
	s.Push()
	s.Translate(10, 10)
	assert.Equal(t, 1, s.Depth())
	s.Pop()

	ndc := s.Apply(geometry.NewVector2(1, 1))
	assert.InDelta(t, 0.5, ndc.X, 1e-12)
	assert.Equal(t, 0, s.Depth())

	s.Pop()
	ndc = s.Apply(geometry.NewVector2(1, 1))
	assert.InDelta(t, 1, ndc.X, 1e-12, "empty pop resets")
}

func TestStackViewport(t *testing.T) {
	s := NewStack(200, 100)
	assert.Equal(t, geometry.NewVector2(0, 0), s.Project(geometry.NewVector2(-1, 1)))
	assert.Equal(t, geometry.NewVector2(200, 100), s.Project(geometry.NewVector2(1, -1)))
	assert.Equal(t, geometry.NewVector2(100, 50), s.Project(geometry.NewVector2(0, 0)))

	s.Reset(0, 0)
	w, h := s.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
