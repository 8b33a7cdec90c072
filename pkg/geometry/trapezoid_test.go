package geometry

import (
	"math"
	"testing"
)

func TestTrapezoidCorners(t *testing.T) {
	tr := Trapezoid{XTL: 0, XTR: 4, XBR: 6, XBL: -2, YT: 10, YB: 0, Plane: 3}
	corners := tr.Corners()

	expected := [4]Vector2{
		NewVector2(0, 10),
		NewVector2(4, 10),
		NewVector2(6, 0),
		NewVector2(-2, 0),
	}
	if corners != expected {
		t.Errorf("Corners failed: expected %v, got %v", expected, corners)
	}
}

func TestTrapezoidArea(t *testing.T) {
	// top width 4, bottom width 8, height 10
	tr := Trapezoid{XTL: 0, XTR: 4, XBR: 6, XBL: -2, YT: 10, YB: 0}

	area := tr.Area()
	expected := 60.0
	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestTrapezoidCenter(t *testing.T) {
	tr := Trapezoid{XTL: -1, XTR: 1, XBR: 1, XBL: -1, YT: 2, YB: 0}

	center := tr.Center()
	expected := NewVector2(0, 1)
	if center != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, center)
	}
}

func TestUnitCircleIsClosed(t *testing.T) {
	points := UnitCircle(50)
	if len(points) != 51 {
		t.Fatalf("expected 51 points, got %d", len(points))
	}
	if points[0] != points[50] {
		t.Errorf("expected closed loop, first %v last %v", points[0], points[50])
	}
	for i, p := range points {
		if math.Abs(p.Length()-1) > 1e-9 {
			t.Errorf("point %d not on unit circle: %v", i, p)
		}
	}
}
