package viewer

import (
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/internal/render"
)

// Platform is the window system a Viewer runs on
type Platform interface {
	// PollEvents returns the events received since the last call
	PollEvents() []input.Event
	BeginFrame()
	Surface() render.Surface
	// DrawUI draws frontend widgets on top of the scene
	DrawUI(v *Viewer)
	// EndFrame presents the frame and paces the loop
	EndFrame()
}
