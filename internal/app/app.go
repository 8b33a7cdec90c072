// Package app is the raylib frontend of the viewer.
package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/internal/logger"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/internal/viewer"
)

type App struct {
	viewer  *viewer.Viewer
	surface *raylibSurface
	keys    map[string]int32

	Panel   PanelState
	Prompt  PromptState
	Pointer PointerState
	UI      UIState
}

// Options select what is shown at startup
type Options struct {
	// Select is the catalog index to open, -1 for none
	Select int
	// File is a map file opened instead of a catalog entry
	File string
}

// Run opens the window and blocks until it is closed
func Run(cfg *config.Config, opts Options) (err error) {
	v := viewer.New(cfg)
	defer v.Close()

	if cfg.Watch.Enabled {
		if werr := v.Watch(); werr != nil {
			logger.Warn("file watching disabled: %v", werr)
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("viewer crashed: %v", r)
		}
	}()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	app := &App{
		viewer:  v,
		surface: newRaylibSurface(),
		keys:    boundKeys(v.Controller().Bindings()),
		Panel:   PanelState{visible: true, hovered: -1, rowHeight: 20},
		UI:      UIState{font: rl.GetFontDefault()},
	}

	// the window manager may not honor the requested size
	v.State().Camera.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())

	switch {
	case opts.File != "":
		if err := v.LoadFile(opts.File); err != nil {
			app.toast(fmt.Sprintf("Cannot open %s", opts.File))
		}
	case opts.Select >= 0:
		app.selectMap(opts.Select)
	}

	v.Run(app)
	return nil
}

func (app *App) BeginFrame() {
	rl.BeginDrawing()
}

func (app *App) Surface() render.Surface {
	return app.surface
}

func (app *App) EndFrame() {
	rl.EndDrawing()
}

// selectMap opens a catalog entry and reports failures in the UI
func (app *App) selectMap(i int) {
	if err := app.viewer.SelectMap(i); err != nil {
		app.toast(err.Error())
	}
}

// submitPrompt starts extraction with the entered data file
func (app *App) submitPrompt() {
	path := string(app.Prompt.text)
	if err := app.viewer.StartExtraction(path); err != nil {
		logger.Warn("cannot start extraction: %v", err)
		app.Prompt.message = err.Error()
		return
	}
	app.Prompt.message = ""
}

func (app *App) toast(msg string) {
	app.UI.toast = msg
	app.UI.toastTime = time.Now()
}
