package input

import (
	"github.com/philipparndt/pmapview/internal/scene"
)

// Controller applies events to the viewer state
type Controller struct {
	state    *scene.State
	bindings Bindings
	down     bool
	quitting bool

	// OnSpawn is called when the spawn key is released
	OnSpawn func()
}

// NewController creates a controller for the given state
func NewController(state *scene.State, bindings Bindings) *Controller {
	return &Controller{
		state:    state,
		bindings: bindings.normalized(),
	}
}

// Handle applies a single event
func (c *Controller) Handle(ev Event) {
	st := c.state
	switch e := ev.(type) {
	case ButtonDown:
		if e.Button == ButtonPrimary {
			c.down = true
		}
	case ButtonUp:
		if e.Button == ButtonPrimary {
			c.down = false
		}
	case Move:
		if c.down {
			st.Camera.Pan(e.Delta)
		}
		st.Cursor = st.Camera.ScreenToView(e.Pos)
		st.Dirty = true
	case Wheel:
		switch {
		case e.DY > 0:
			st.Camera.Zoom(1)
		case e.DY < 0:
			st.Camera.Zoom(-1)
		default:
			return
		}
		st.Dirty = true
	case KeyUp:
		c.keyUp(NormalizeKey(e.Key))
	case Resize:
		st.Camera.Resize(e.Width, e.Height)
		st.Dirty = true
	case Quit:
		c.quitting = true
	}
}

// HandleAll applies events in order
func (c *Controller) HandleAll(events []Event) {
	for _, ev := range events {
		c.Handle(ev)
	}
}

func (c *Controller) keyUp(key string) {
	st := c.state
	switch key {
	case "":
		return
	case c.bindings.Wireframe:
		st.Flags.Wireframe = !st.Flags.Wireframe
	case c.bindings.Overlay:
		st.Flags.ShowOverlay = !st.Flags.ShowOverlay
	case c.bindings.Spawn:
		if c.OnSpawn == nil {
			return
		}
		c.OnSpawn()
	default:
		return
	}
	st.Dirty = true
}

// Dragging reports whether the primary button is held
func (c *Controller) Dragging() bool {
	return c.down
}

// Quitting reports whether a quit event was received
func (c *Controller) Quitting() bool {
	return c.quitting
}

func (c *Controller) Bindings() Bindings {
	return c.bindings
}
