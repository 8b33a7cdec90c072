package geometry

// Trapezoid is a pathing map primitive: two horizontal edges at YT and YB,
// each with its own left and right x coordinate, on a given plane.
type Trapezoid struct {
	XTL, XTR float64 // top edge
	XBR, XBL float64 // bottom edge
	YT, YB   float64
	Plane    int
}

// Corners returns the corners in drawing order:
// top-left, top-right, bottom-right, bottom-left.
func (t Trapezoid) Corners() [4]Vector2 {
	return [4]Vector2{
		{X: t.XTL, Y: t.YT},
		{X: t.XTR, Y: t.YT},
		{X: t.XBR, Y: t.YB},
		{X: t.XBL, Y: t.YB},
	}
}

// Area returns the trapezoid area (mean width times height)
func (t Trapezoid) Area() float64 {
	top := t.XTR - t.XTL
	bottom := t.XBR - t.XBL
	h := t.YT - t.YB
	if h < 0 {
		h = -h
	}
	a := (top + bottom) / 2 * h
	if a < 0 {
		return -a
	}
	return a
}

// Center returns the average of the four corners
func (t Trapezoid) Center() Vector2 {
	c := t.Corners()
	return c[0].Add(c[1]).Add(c[2]).Add(c[3]).Mul(0.25)
}
