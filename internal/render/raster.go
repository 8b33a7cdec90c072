package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/pmapview/internal/scene"
	"github.com/philipparndt/pmapview/pkg/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	lineWidth = 1.0
	pointSize = 3.0
)

// RasterSurface draws into an in-memory RGBA image
type RasterSurface struct {
	img       *image.RGBA
	stack     *Stack
	rast      *vector.Rasterizer
	wireframe bool

	// Caption is drawn in the top left corner when the frame ends
	Caption string
}

// NewRasterSurface creates a surface with the given initial size
func NewRasterSurface(width, height int) *RasterSurface {
	s := &RasterSurface{stack: NewStack(width, height)}
	s.resize(width, height)
	return s
}

func (s *RasterSurface) resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		return
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.rast = vector.NewRasterizer(width, height)
}

// Image returns the last rendered frame
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

func (s *RasterSurface) Begin(width, height int) {
	s.resize(width, height)
	s.stack.Reset(width, height)
	s.wireframe = false
}

func (s *RasterSurface) Clear(c scene.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(toRGBA(c)), image.Point{}, draw.Src)
}

func (s *RasterSurface) SetWireframe(enabled bool) {
	s.wireframe = enabled
}

func (s *RasterSurface) PushMatrix() {
	s.stack.Push()
}

func (s *RasterSurface) PopMatrix() {
	s.stack.Pop()
}

func (s *RasterSurface) Scale(x, y float64) {
	s.stack.Scale(x, y)
}

func (s *RasterSurface) Translate(x, y float64) {
	s.stack.Translate(x, y)
}

func (s *RasterSurface) Quad(c scene.Color, corners [4]geometry.Vector2) {
	var px [4]geometry.Vector2
	for i, p := range corners {
		px[i] = s.stack.Project(p)
	}

	if s.wireframe {
		for i := range px {
			s.stroke(px[i], px[(i+1)%4], c)
		}
		return
	}
	s.fill(px[:], c)
}

func (s *RasterSurface) Point(c scene.Color, p geometry.Vector2) {
	center := s.stack.Project(p)
	h := pointSize / 2
	s.fill([]geometry.Vector2{
		{X: center.X - h, Y: center.Y - h},
		{X: center.X + h, Y: center.Y - h},
		{X: center.X + h, Y: center.Y + h},
		{X: center.X - h, Y: center.Y + h},
	}, c)
}

func (s *RasterSurface) LineStrip(c scene.Color, points []geometry.Vector2) {
	if len(points) < 2 {
		return
	}
	prev := s.stack.Project(points[0])
	for _, p := range points[1:] {
		next := s.stack.Project(p)
		s.stroke(prev, next, c)
		prev = next
	}
}

func (s *RasterSurface) End() {
	if s.Caption == "" {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(6), Y: fixed.I(6 + basicfont.Face7x13.Ascent)},
	}
	d.DrawString(s.Caption)
}

// fill rasterizes a polygon given in pixel coordinates
func (s *RasterSurface) fill(poly []geometry.Vector2, c scene.Color) {
	if !visible(poly, s.img.Rect) {
		return
	}
	b := s.img.Bounds()
	s.rast.Reset(b.Dx(), b.Dy())
	s.rast.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		s.rast.LineTo(float32(p.X), float32(p.Y))
	}
	s.rast.ClosePath()
	s.rast.Draw(s.img, b, image.NewUniform(toRGBA(c)), image.Point{})
}

// stroke draws a segment as a thin quad
func (s *RasterSurface) stroke(a, b geometry.Vector2, c scene.Color) {
	d := b.Sub(a)
	length := d.Length()
	if length == 0 {
		return
	}
	n := geometry.Vector2{X: -d.Y, Y: d.X}.Mul(lineWidth / 2 / length)
	s.fill([]geometry.Vector2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, c)
}

// visible rejects polygons entirely outside the image; the rasterizer
// only accepts finite coordinates
func visible(poly []geometry.Vector2, r image.Rectangle) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return maxX >= float64(r.Min.X) && minX <= float64(r.Max.X) &&
		maxY >= float64(r.Min.Y) && minY <= float64(r.Max.Y)
}

func toRGBA(c scene.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
