package geometry

import "math"

// Bounds is an axis aligned 2D bounding box
type Bounds struct {
	Min Vector2
	Max Vector2
}

// NewBounds creates an empty bounding box
func NewBounds() Bounds {
	return Bounds{
		Min: Vector2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vector2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Extend grows the box to include p
func (b *Bounds) Extend(p Vector2) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// ExtendTrapezoid grows the box to include all corners of t
func (b *Bounds) ExtendTrapezoid(t Trapezoid) {
	for _, c := range t.Corners() {
		b.Extend(c)
	}
}

// Empty reports whether nothing was added to the box
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

// Size returns the extent of the box
func (b Bounds) Size() Vector2 {
	if b.Empty() {
		return Vector2{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box
func (b Bounds) Center() Vector2 {
	if b.Empty() {
		return Vector2{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}
