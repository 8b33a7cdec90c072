package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// PollEvents translates the raylib input state of this frame into viewer
// events. Mouse input over the catalog panel and keyboard input while a
// text field has focus are handled by the UI instead.
func (app *App) PollEvents() []input.Event {
	var events []input.Event

	if rl.WindowShouldClose() {
		events = append(events, input.Quit{})
	}
	if rl.IsWindowResized() {
		events = append(events, input.Resize{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()})
	}

	mouse := rl.GetMousePosition()
	pos := geometry.NewVector2(float64(mouse.X), float64(mouse.Y))
	overUI := app.pointerOverUI(mouse)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overUI {
		app.Pointer.primary = true
		events = append(events, input.ButtonDown{Button: input.ButtonPrimary})
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Pointer.primary {
		app.Pointer.primary = false
		events = append(events, input.ButtonUp{Button: input.ButtonPrimary})
	}

	if pos != app.Pointer.last {
		delta := pos.Sub(app.Pointer.last)
		app.Pointer.last = pos
		events = append(events, input.Move{Pos: pos, Delta: delta})
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if overUI {
			app.scrollPanel(wheel)
		} else {
			events = append(events, input.Wheel{DY: float64(wheel)})
		}
	}

	if app.keyboardCaptured() {
		app.handleTextInput()
		return events
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		app.Panel.visible = !app.Panel.visible
	}
	if rl.IsKeyPressed(rl.KeySlash) && app.Panel.visible {
		app.Panel.editing = true
		app.Panel.filter = []rune(app.viewer.Filter())
		// drop the '/' itself from the char queue
		rl.GetCharPressed()
	}

	for name, code := range app.keys {
		if rl.IsKeyPressed(code) {
			events = append(events, input.KeyDown{Key: name})
		}
		if rl.IsKeyReleased(code) {
			events = append(events, input.KeyUp{Key: name})
		}
	}
	return events
}

// keyboardCaptured reports whether a text field has focus
func (app *App) keyboardCaptured() bool {
	return app.Panel.editing || app.viewer.NeedsExtraction()
}

func (app *App) pointerOverUI(mouse rl.Vector2) bool {
	if app.viewer.NeedsExtraction() {
		return true
	}
	return app.Panel.visible && rl.CheckCollisionPointRec(mouse, app.Panel.bounds)
}

// handleTextInput edits the focused text field
func (app *App) handleTextInput() {
	var text *[]rune
	if app.viewer.NeedsExtraction() {
		text = &app.Prompt.text
	} else {
		text = &app.Panel.filter
	}

	for char := rl.GetCharPressed(); char != 0; char = rl.GetCharPressed() {
		if char >= 32 {
			*text = append(*text, rune(char))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(*text) > 0 {
		*text = (*text)[:len(*text)-1]
	}

	if app.viewer.NeedsExtraction() {
		if rl.IsKeyPressed(rl.KeyEnter) {
			app.submitPrompt()
		}
		return
	}

	app.viewer.SetFilter(string(app.Panel.filter))
	app.Panel.scroll = 0
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) {
		app.Panel.editing = false
	}
}
