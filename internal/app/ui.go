package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/internal/viewer"
	"github.com/philipparndt/pmapview/pkg/extractor"
	"github.com/philipparndt/pmapview/version"
)

const (
	panelWidth   = 280
	toastTimeout = 4 * time.Second
)

var (
	panelBackground = rl.NewColor(0, 0, 0, 190)
	highlight       = rl.NewColor(60, 70, 90, 255)
)

// DrawUI draws the catalog panel, the prompts and the status line
func (app *App) DrawUI(v *viewer.Viewer) {
	switch {
	case v.ExtractionStatus() == extractor.Running:
		app.drawWaitIndicator(v)
	case v.NeedsExtraction():
		app.drawPrompt(v)
	default:
		if app.Panel.visible {
			app.drawPanel(v)
		}
	}
	app.drawToast()
	app.drawStatus(v)
}

func (app *App) text(s string, x, y, size float32, col rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, col)
}

func (app *App) drawPanel(v *viewer.Viewer) {
	screenHeight := float32(rl.GetScreenHeight())
	app.Panel.bounds = rl.Rectangle{X: 0, Y: 0, Width: panelWidth, Height: screenHeight}
	rl.DrawRectangleRec(app.Panel.bounds, panelBackground)

	y := float32(10)
	app.text("Maps", 10, y, 18, rl.Yellow)
	y += 24

	filter := v.Filter()
	filterColor := rl.LightGray
	if app.Panel.editing {
		filter = string(app.Panel.filter) + "_"
		filterColor = rl.White
	}
	app.text(fmt.Sprintf("Filter: %s", filter), 10, y, 14, filterColor)
	y += 22

	visible := v.Catalog().VisibleIndices()
	rows := int((screenHeight - y - 40) / app.Panel.rowHeight)
	app.Panel.scroll = clamp(app.Panel.scroll, 0, max(len(visible)-rows, 0))

	mouse := rl.GetMousePosition()
	app.Panel.hovered = -1
	for row := 0; row < rows && app.Panel.scroll+row < len(visible); row++ {
		idx := visible[app.Panel.scroll+row]
		entry := v.Catalog().Entries[idx]
		rect := rl.Rectangle{X: 4, Y: y, Width: panelWidth - 8, Height: app.Panel.rowHeight}

		if rl.CheckCollisionPointRec(mouse, rect) {
			app.Panel.hovered = idx
			rl.DrawRectangleRec(rect, highlight)
		}
		col := rl.White
		if entry.Selected {
			col = rl.Lime
		}
		app.text(fmt.Sprintf("%4d %s", entry.ID, entry.Name), 10, y+3, 14, col)
		y += app.Panel.rowHeight
	}

	if app.Panel.hovered >= 0 && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.selectMap(app.Panel.hovered)
	}

	if len(visible) == 0 {
		app.text("No maps", 10, y, 14, rl.Gray)
	}
	app.text("Tab: hide | /: filter", 10, screenHeight-52, 12, rl.Gray)
}

func (app *App) scrollPanel(wheel float32) {
	if wheel > 0 {
		app.Panel.scroll -= 3
	} else {
		app.Panel.scroll += 3
	}
	app.Panel.scroll = max(app.Panel.scroll, 0)
}

func (app *App) drawPrompt(v *viewer.Viewer) {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(screenWidth), int32(screenHeight), rl.NewColor(0, 0, 0, 200))

	boxWidth := min(screenWidth-40, float32(560))
	boxX := (screenWidth - boxWidth) / 2
	boxY := screenHeight/2 - 60
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), 120, rl.Yellow)

	app.text(fmt.Sprintf("Map directory %q not found.", v.Store().Dir), boxX+10, boxY+10, 16, rl.Yellow)
	app.text("Enter the path of the game data file and press Enter:", boxX+10, boxY+34, 14, rl.LightGray)
	app.text(string(app.Prompt.text)+"_", boxX+10, boxY+60, 16, rl.White)
	if app.Prompt.message != "" {
		app.text(app.Prompt.message, boxX+10, boxY+90, 14, rl.Red)
	}
}

func (app *App) drawWaitIndicator(v *viewer.Viewer) {
	elapsed := v.ExtractionTask().Elapsed().Seconds()
	spinnerChars := []string{"|", "/", "-", "\\"}
	spinnerIdx := int(elapsed*10) % len(spinnerChars)
	text := fmt.Sprintf("%s Please wait for extraction... (%.1fs)", spinnerChars[spinnerIdx], elapsed)

	screenWidth := float32(rl.GetScreenWidth())
	boxWidth := float32(360)
	boxHeight := float32(40)
	boxX := screenWidth - boxWidth - 20
	boxY := float32(20)

	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)

	textSize := rl.MeasureTextEx(app.UI.font, text, 16, 1)
	app.text(text, boxX+(boxWidth-textSize.X)/2, boxY+(boxHeight-textSize.Y)/2, 16, rl.Yellow)
}

func (app *App) drawToast() {
	if app.UI.toast == "" {
		return
	}
	if time.Since(app.UI.toastTime) > toastTimeout {
		app.UI.toast = ""
		return
	}
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	size := rl.MeasureTextEx(app.UI.font, app.UI.toast, 14, 1)
	x := screenWidth - size.X - 30
	y := screenHeight - size.Y - 50
	rl.DrawRectangle(int32(x-10), int32(y-8), int32(size.X+20), int32(size.Y+16), rl.NewColor(0, 0, 0, 200))
	app.text(app.UI.toast, x, y, 14, rl.Red)
}

// drawStatus draws version, FPS, cursor and camera info in the bottom-left corner
func (app *App) drawStatus(v *viewer.Viewer) {
	st := v.State()
	bottomY := float32(rl.GetScreenHeight()) - 24
	x := float32(10)

	versionText := fmt.Sprintf("v%s", version.GetVersion())
	app.text(versionText, x, bottomY, 12, rl.Gray)
	x += rl.MeasureTextEx(app.UI.font, versionText, 12, 1).X + 15

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	app.text(fpsText, x, bottomY, 12, rl.Lime)
	x += rl.MeasureTextEx(app.UI.font, fpsText, 12, 1).X + 15

	world := st.CursorWorld()
	info := fmt.Sprintf("%.0f, %.0f | scale %.3g | %d trapezoids", world.X, world.Y, st.Camera.Scale, st.Mesh.Len())
	if st.Flags.Wireframe {
		info += " | wireframe"
	}
	app.text(info, x, bottomY, 12, rl.LightGray)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
