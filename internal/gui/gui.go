// Package gui is the fyne frontend of the viewer. It shares the frame
// loop with the raylib frontend and renders through the raster surface.
package gui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/pmapview/internal/config"
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/internal/logger"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/internal/viewer"
	"github.com/philipparndt/pmapview/pkg/catalog"
	"github.com/philipparndt/pmapview/pkg/extractor"
	"github.com/philipparndt/pmapview/version"
)

type App struct {
	window  fyne.Window
	viewer  *viewer.Viewer
	canvas  *MapCanvas
	keys    []input.Event
	closing bool

	list        *widget.List
	filter      *widget.Entry
	statusLabel *widget.Label
	wireframe   *widget.Check
	overlay     *widget.Check

	shownCatalog *catalog.Catalog
	extraction   extractor.Status
}

// Run opens the window and blocks until it is closed
func Run(cfg *config.Config) error {
	v := viewer.New(cfg)
	defer v.Close()
	if cfg.Watch.Enabled {
		if err := v.Watch(); err != nil {
			logger.Warn("file watching disabled: %v", err)
		}
	}

	a := app.New()
	w := a.NewWindow(cfg.Window.Title)

	g := &App{
		window: w,
		viewer: v,
		canvas: NewMapCanvas(cfg.Window.Width, cfg.Window.Height),
	}
	g.setupMainUI()

	if dc, ok := w.Canvas().(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			g.keys = append(g.keys, input.KeyDown{Key: string(ev.Name)})
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			g.keys = append(g.keys, input.KeyUp{Key: string(ev.Name)})
		})
	}
	w.SetCloseIntercept(func() {
		g.closing = true
	})

	w.Resize(fyne.NewSize(float32(cfg.Window.Width+260), float32(cfg.Window.Height)))

	go g.loop(a, time.Second/time.Duration(cfg.Window.FPS))

	if v.NeedsExtraction() {
		g.askForDataFile()
	}

	w.ShowAndRun()
	return nil
}

// loop runs viewer frames on the fyne thread at the configured rate
func (g *App) loop(a fyne.App, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		running := true
		fyne.DoAndWait(func() {
			running = g.viewer.Frame(g)
		})
		if !running {
			fyne.Do(a.Quit)
			return
		}
	}
}

func (g *App) setupMainUI() {
	g.statusLabel = widget.NewLabel("")

	g.filter = widget.NewEntry()
	g.filter.SetPlaceHolder("Filter maps")
	g.filter.OnChanged = func(query string) {
		g.viewer.SetFilter(query)
		g.list.UnselectAll()
		g.list.Refresh()
	}

	g.list = widget.NewList(
		func() int {
			return len(g.viewer.Catalog().VisibleIndices())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("0000 map name")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			visible := g.viewer.Catalog().VisibleIndices()
			if id >= len(visible) {
				return
			}
			entry := g.viewer.Catalog().Entries[visible[id]]
			obj.(*widget.Label).SetText(fmt.Sprintf("%4d %s", entry.ID, entry.Name))
		},
	)
	g.list.OnSelected = func(id widget.ListItemID) {
		visible := g.viewer.Catalog().VisibleIndices()
		if id >= len(visible) {
			return
		}
		if err := g.viewer.SelectMap(visible[id]); err != nil {
			dialog.ShowError(err, g.window)
		}
	}

	st := g.viewer.State()
	g.wireframe = widget.NewCheck("Wireframe", func(checked bool) {
		st.Flags.Wireframe = checked
	})
	g.overlay = widget.NewCheck("Range circles", func(checked bool) {
		st.Flags.ShowOverlay = checked
	})

	openButton := widget.NewButton("Open Map File", func() {
		g.showFileDialog()
	})
	spawnButton := widget.NewButton("Jump to Spawn", func() {
		g.viewer.JumpToSpawn()
	})

	sidebar := container.NewBorder(
		container.NewVBox(widget.NewLabel("Maps:"), g.filter),
		container.NewVBox(widget.NewSeparator(), g.wireframe, g.overlay, spawnButton, openButton),
		nil,
		nil,
		g.list,
	)

	split := container.NewHSplit(sidebar, g.canvas)
	split.Offset = 0.25

	content := container.NewBorder(
		nil,           // top
		g.statusLabel, // bottom
		nil,           // left
		nil,           // right
		split,
	)
	g.window.SetContent(content)
	g.shownCatalog = g.viewer.Catalog()
}

func (g *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		if err := g.viewer.LoadFile(reader.URI().Path()); err != nil {
			dialog.ShowError(fmt.Errorf("failed to load map file: %w", err), g.window)
		}
	}, g.window)
}

// askForDataFile lets the user pick the game data file to extract maps from
func (g *App) askForDataFile() {
	msg := fmt.Sprintf("Map directory %q not found. Select the game data file to extract the maps from.", g.viewer.Store().Dir)
	dialog.ShowConfirm("Extract maps", msg, func(ok bool) {
		if !ok {
			return
		}
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, g.window)
				return
			}
			if reader == nil {
				return
			}
			path := reader.URI().Path()
			reader.Close()

			if err := g.viewer.StartExtraction(path); err != nil {
				dialog.ShowError(err, g.window)
			}
		}, g.window)
	}, g.window)
}

// PollEvents returns the queued pointer and key events
func (g *App) PollEvents() []input.Event {
	events := g.canvas.Drain()
	events = append(events, g.keys...)
	g.keys = g.keys[:0]
	if g.closing {
		events = append(events, input.Quit{})
	}
	return events
}

func (g *App) BeginFrame() {}

func (g *App) Surface() render.Surface {
	return g.canvas.surface
}

// DrawUI syncs the widgets with the viewer state
func (g *App) DrawUI(v *viewer.Viewer) {
	st := v.State()
	if g.wireframe.Checked != st.Flags.Wireframe {
		g.wireframe.SetChecked(st.Flags.Wireframe)
	}
	if g.overlay.Checked != st.Flags.ShowOverlay {
		g.overlay.SetChecked(st.Flags.ShowOverlay)
	}
	if v.Catalog() != g.shownCatalog {
		g.shownCatalog = v.Catalog()
		g.list.Refresh()
	}

	status := v.ExtractionStatus()
	if status != g.extraction {
		g.extraction = status
		if status == extractor.Failed {
			dialog.ShowError(fmt.Errorf("extraction failed: %w", v.ExtractionTask().Err()), g.window)
		}
	}

	world := st.CursorWorld()
	text := fmt.Sprintf("v%s | %.0f, %.0f | scale %.3g | %d trapezoids", version.GetVersion(), world.X, world.Y, st.Camera.Scale, st.Mesh.Len())
	if status == extractor.Running {
		text = fmt.Sprintf("Please wait for extraction... (%.1fs) | %s", v.ExtractionTask().Elapsed().Seconds(), text)
	}
	if g.statusLabel.Text != text {
		g.statusLabel.SetText(text)
	}
}

// EndFrame shows the rendered image
func (g *App) EndFrame() {
	g.canvas.Refresh()
}
