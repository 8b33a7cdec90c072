package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// PanelState holds the map catalog panel state
type PanelState struct {
	visible   bool
	scroll    int          // index of the first visible row
	hovered   int          // row under the mouse, -1 if none
	editing   bool         // filter text has keyboard focus
	filter    []rune       // filter being typed
	bounds    rl.Rectangle // panel area, mouse events inside do not reach the map
	rowHeight float32
}

// PromptState holds the data file prompt shown when maps must be extracted
type PromptState struct {
	text    []rune
	message string // last error
}

// PointerState tracks the mouse between frames
type PointerState struct {
	last    geometry.Vector2
	primary bool // primary button down was forwarded to the controller
}

// UIState holds UI resources and toasts
type UIState struct {
	font      rl.Font
	toast     string
	toastTime time.Time
}
