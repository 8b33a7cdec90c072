package scene

import (
	"testing"

	"github.com/philipparndt/pmapview/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestNewOverlayDefaults(t *testing.T) {
	o := NewOverlay(nil, 0)
	assert.Equal(t, []float64{300, 322, 366, 1085, 2500, 5000}, o.Radii)
	assert.Len(t, o.Circle, DefaultSegments+1)
	assert.Equal(t, o.Circle[0], o.Circle[len(o.Circle)-1])
}

func TestNewOverlayCopiesRadii(t *testing.T) {
	radii := []float64{1, 2}
	o := NewOverlay(radii, 8)
	radii[0] = 99
	assert.Equal(t, []float64{1, 2}, o.Radii)
	assert.Len(t, o.Circle, 9)
}

func TestStateCursorWorld(t *testing.T) {
	s := NewState(800, 600, 0.01)
	s.Camera.Translate = geometry.NewVector2(10, 20)
	s.Cursor = geometry.NewVector2(5, 5)

	assert.Equal(t, geometry.NewVector2(-5, -15), s.CursorWorld())
	assert.True(t, s.Dirty)
	assert.Equal(t, 1, s.Mesh.MaxPlane())
}
