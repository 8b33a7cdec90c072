package geometry

import "math"

// UnitCircle samples n points on the unit circle, starting at angle 0 and
// going counter-clockwise. The first sample is repeated at the end so the
// result can be drawn as a closed line strip.
func UnitCircle(n int) []Vector2 {
	if n < 3 {
		n = 3
	}
	points := make([]Vector2, 0, n+1)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		angle := float64(i) * step
		points = append(points, Vector2{X: math.Cos(angle), Y: math.Sin(angle)})
	}
	return append(points, points[0])
}
