package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/pmapview/internal/input"
	"github.com/philipparndt/pmapview/internal/render"
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// MapCanvas shows the rendered map and turns fyne pointer events into
// viewer events
type MapCanvas struct {
	widget.BaseWidget
	surface *render.RasterSurface
	raster  *canvas.Raster
	events  []input.Event
	last    geometry.Vector2
	size    fyne.Size
}

// NewMapCanvas creates an empty map canvas
func NewMapCanvas(width, height int) *MapCanvas {
	c := &MapCanvas{
		surface: render.NewRasterSurface(width, height),
	}
	c.raster = canvas.NewRaster(func(w, h int) image.Image {
		return c.surface.Image()
	})
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer creates the renderer for the widget
func (c *MapCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &mapCanvasRenderer{canvas: c}
}

// Drain returns and clears the queued events
func (c *MapCanvas) Drain() []input.Event {
	events := c.events
	c.events = nil
	return events
}

func (c *MapCanvas) push(ev input.Event) {
	c.events = append(c.events, ev)
}

func (c *MapCanvas) move(pos fyne.Position) {
	p := geometry.NewVector2(float64(pos.X), float64(pos.Y))
	c.push(input.Move{Pos: p, Delta: p.Sub(c.last)})
	c.last = p
}

// MouseDown handles button presses
func (c *MapCanvas) MouseDown(event *desktop.MouseEvent) {
	c.last = geometry.NewVector2(float64(event.Position.X), float64(event.Position.Y))
	c.push(input.ButtonDown{Button: toButton(event.Button)})
}

// MouseUp handles button releases
func (c *MapCanvas) MouseUp(event *desktop.MouseEvent) {
	c.push(input.ButtonUp{Button: toButton(event.Button)})
}

func (c *MapCanvas) MouseIn(event *desktop.MouseEvent) {
	c.move(event.Position)
}

// MouseMoved updates the cursor while no button is held
func (c *MapCanvas) MouseMoved(event *desktop.MouseEvent) {
	c.move(event.Position)
}

func (c *MapCanvas) MouseOut() {}

// Dragged pans the map
func (c *MapCanvas) Dragged(event *fyne.DragEvent) {
	c.move(event.Position)
}

// DragEnd finishes panning
func (c *MapCanvas) DragEnd() {
	c.push(input.ButtonUp{Button: input.ButtonPrimary})
}

// Scrolled handles scroll events for zooming
func (c *MapCanvas) Scrolled(event *fyne.ScrollEvent) {
	if event.Scrolled.DY == 0 {
		return
	}
	c.push(input.Wheel{DY: float64(event.Scrolled.DY)})
}

func toButton(b desktop.MouseButton) input.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonMiddle
	default:
		return input.ButtonPrimary
	}
}

// mapCanvasRenderer implements fyne.WidgetRenderer
type mapCanvasRenderer struct {
	canvas *MapCanvas
}

func (r *mapCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	if size != r.canvas.size {
		r.canvas.size = size
		r.canvas.push(input.Resize{Width: int(size.Width), Height: int(size.Height)})
	}
}

func (r *mapCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *mapCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *mapCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *mapCanvasRenderer) Destroy() {}
