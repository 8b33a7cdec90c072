package input

import (
	"testing"

	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func newController() (*Controller, *scene.State) {
	st := scene.NewState(800, 600, 0.0001)
	st.Dirty = false
	return NewController(st, DefaultBindings()), st
}

func TestMoveWithoutButtonOnlyUpdatesCursor(t *testing.T) {
	c, st := newController()
	c.Handle(Move{Pos: geometry.NewVector2(400, 300), Delta: geometry.NewVector2(10, -10)})

	assert.Equal(t, geometry.Vector2{}, st.Camera.Translate)
	assert.InDelta(t, 0, st.Cursor.X, 1e-9)
	assert.InDelta(t, 0, st.Cursor.Y, 1e-9)
	assert.True(t, st.Dirty)
}

func TestDragPans(t *testing.T) {
	c, st := newController()
	c.HandleAll([]Event{
		ButtonDown{Button: ButtonPrimary},
		Move{Pos: geometry.NewVector2(410, 290), Delta: geometry.NewVector2(10, -10)},
	})

	assert.True(t, c.Dragging())
	assert.InDelta(t, 250, st.Camera.Translate.X, 1e-6)
	assert.InDelta(t, 250, st.Camera.Translate.Y, 1e-6)

	c.Handle(ButtonUp{Button: ButtonPrimary})
	c.Handle(Move{Pos: geometry.NewVector2(420, 280), Delta: geometry.NewVector2(10, -10)})
	assert.InDelta(t, 250, st.Camera.Translate.X, 1e-6)
}

func TestSecondaryButtonDoesNotPan(t *testing.T) {
	c, st := newController()
	c.Handle(ButtonDown{Button: ButtonSecondary})
	c.Handle(Move{Delta: geometry.NewVector2(5, 5)})

	assert.False(t, c.Dragging())
	assert.Equal(t, geometry.Vector2{}, st.Camera.Translate)
}

func TestWheelZoomRoundTrip(t *testing.T) {
	c, st := newController()
	c.Handle(Wheel{DY: 1})
	assert.InDelta(t, 0.000125, st.Camera.Scale, 1e-12)
	c.Handle(Wheel{DY: -3})
	assert.InDelta(t, 0.0001, st.Camera.Scale, 1e-12)
}

func TestWheelZeroIgnored(t *testing.T) {
	c, st := newController()
	c.Handle(Wheel{DY: 0})
	assert.Equal(t, 0.0001, st.Camera.Scale)
	assert.False(t, st.Dirty)
}

func TestKeyToggles(t *testing.T) {
	c, st := newController()

	c.Handle(KeyDown{Key: "space"})
	assert.False(t, st.Flags.Wireframe, "toggles on release only")

	c.Handle(KeyUp{Key: "space"})
	assert.True(t, st.Flags.Wireframe)
	c.Handle(KeyUp{Key: "Space"})
	assert.False(t, st.Flags.Wireframe)

	c.Handle(KeyUp{Key: "c"})
	assert.True(t, st.Flags.ShowOverlay)
	assert.True(t, st.Dirty)
	c.Handle(KeyUp{Key: "c"})
	assert.False(t, st.Flags.ShowOverlay)

	st.Dirty = false
	c.Handle(KeyUp{Key: "x"})
	assert.False(t, st.Dirty)
}

func TestSpawnKey(t *testing.T) {
	c, _ := newController()
	called := 0
	c.Handle(KeyUp{Key: "home"})
	c.OnSpawn = func() { called++ }
	c.Handle(KeyUp{Key: "home"})
	assert.Equal(t, 1, called)
}

func TestCustomBindings(t *testing.T) {
	st := scene.NewState(800, 600, 0.0001)
	c := NewController(st, Bindings{Wireframe: "W", Overlay: "O"})

	c.Handle(KeyUp{Key: "w"})
	c.Handle(KeyUp{Key: "space"})
	assert.True(t, st.Flags.Wireframe)
	assert.Equal(t, "w", c.Bindings().Wireframe)
}

func TestResize(t *testing.T) {
	c, st := newController()
	c.Handle(Resize{Width: 1600, Height: 600})

	assert.InDelta(t, 1600.0/600.0, st.Camera.Aspect, 1e-9)
	assert.True(t, st.Dirty)
}

func TestQuit(t *testing.T) {
	c, _ := newController()
	assert.False(t, c.Quitting())
	c.Handle(Quit{})
	assert.True(t, c.Quitting())
}
