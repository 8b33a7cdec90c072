// Package pmap reads and writes the binary pathing map files produced by the
// external extraction tool.
package pmap

import (
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Map is a decoded pathing map
type Map struct {
	FileID     uint32
	Trapezoids []geometry.Trapezoid
}

// NewMap creates an empty map for the given file id
func NewMap(fileID uint32) *Map {
	return &Map{
		FileID:     fileID,
		Trapezoids: make([]geometry.Trapezoid, 0),
	}
}

// AddTrapezoid appends a trapezoid to the map
func (m *Map) AddTrapezoid(t geometry.Trapezoid) {
	m.Trapezoids = append(m.Trapezoids, t)
}

// TrapezoidCount returns the number of trapezoids in the map
func (m *Map) TrapezoidCount() int {
	return len(m.Trapezoids)
}

// Bounds calculates the bounding box of the whole map
func (m *Map) Bounds() geometry.Bounds {
	bbox := geometry.NewBounds()
	for _, t := range m.Trapezoids {
		bbox.ExtendTrapezoid(t)
	}
	return bbox
}

// PlaneCounts returns how many trapezoids sit on each plane
func (m *Map) PlaneCounts() map[int]int {
	counts := make(map[int]int)
	for _, t := range m.Trapezoids {
		counts[t.Plane]++
	}
	return counts
}
