package core

import (
	"math"
	"testing"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{
			name:     "clearly overlapping",
			a:        Circle{Center: Vec2{X: 0, Y: 0}, Radius: 10},
			b:        Circle{Center: Vec2{X: 5, Y: 0}, Radius: 10},
			expected: true,
		},
		{
			name:     "clearly separated",
			a:        Circle{Center: Vec2{X: 0, Y: 0}, Radius: 10},
			b:        Circle{Center: Vec2{X: 50, Y: 0}, Radius: 10},
			expected: false,
		},
		{
			name:     "touching exactly (no overlap)",
			a:        Circle{Center: Vec2{X: 0, Y: 0}, Radius: 10},
			b:        Circle{Center: Vec2{X: 20, Y: 0}, Radius: 10},
			expected: false,
		},
		{
			name:     "concentric",
			a:        Circle{Center: Vec2{X: 3, Y: 4}, Radius: 5},
			b:        Circle{Center: Vec2{X: 3, Y: 4}, Radius: 1},
			expected: true,
		},
		{
			name:     "diagonal near miss",
			a:        Circle{Center: Vec2{X: 0, Y: 0}, Radius: 5},
			b:        Circle{Center: Vec2{X: 8, Y: 8}, Radius: 5},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CirclesOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("CirclesOverlap() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := CirclesOverlap(tc.b, tc.a); got != tc.expected {
				t.Errorf("CirclesOverlap() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleRectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		c        Circle
		r        OrientedRect
		expected bool
	}{
		{
			name:     "circle center inside unrotated rect",
			c:        Circle{Center: Vec2{X: 0, Y: 0}, Radius: 1},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			expected: true,
		},
		{
			name:     "circle far outside unrotated rect",
			c:        Circle{Center: Vec2{X: 100, Y: 0}, Radius: 1},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			expected: false,
		},
		{
			name:     "circle grazing edge",
			c:        Circle{Center: Vec2{X: 7, Y: 0}, Radius: 3},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			expected: true,
		},
		{
			name:     "circle just past edge",
			c:        Circle{Center: Vec2{X: 8.01, Y: 0}, Radius: 3},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			expected: false,
		},
		{
			// A 45-degree rotated rect reaches further along the diagonal
			// than its unrotated counterpart.
			name:     "rotation matters",
			c:        Circle{Center: Vec2{X: 6, Y: 6}, Radius: 1},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 20, H: 2, Angle: math.Pi / 4},
			expected: true,
		},
		{
			name:     "corner miss past rotated end",
			c:        Circle{Center: Vec2{X: -6, Y: 6}, Radius: 1},
			r:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 20, H: 2, Angle: math.Pi / 4},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleRectOverlap(tc.c, tc.r); got != tc.expected {
				t.Errorf("CircleRectOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     OrientedRect
		expected bool
	}{
		{
			name:     "identical rects",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			b:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			expected: true,
		},
		{
			name:     "separated along x",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			b:        OrientedRect{Center: Vec2{X: 20, Y: 0}, W: 10, H: 4},
			expected: false,
		},
		{
			name:     "separated along y",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			b:        OrientedRect{Center: Vec2{X: 0, Y: 10}, W: 10, H: 4},
			expected: false,
		},
		{
			name:     "overlapping unrotated",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 10, H: 4},
			b:        OrientedRect{Center: Vec2{X: 8, Y: 2}, W: 10, H: 4},
			expected: true,
		},
		{
			name:     "crossing at right angles",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 20, H: 2},
			b:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 20, H: 2, Angle: math.Pi / 2},
			expected: true,
		},
		{
			name:     "rotated bar clear of horizontal bar",
			a:        OrientedRect{Center: Vec2{X: 0, Y: 0}, W: 20, H: 2},
			b:        OrientedRect{Center: Vec2{X: 0, Y: 20}, W: 20, H: 2, Angle: math.Pi / 3},
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectsOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("RectsOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCorners(t *testing.T) {
	r := OrientedRect{Center: Vec2{X: 10, Y: 10}, W: 4, H: 2}
	corners := r.Corners()

	want := [4]Vec2{
		{X: 8, Y: 9},
		{X: 12, Y: 9},
		{X: 12, Y: 11},
		{X: 8, Y: 11},
	}
	for i, c := range corners {
		if math.Abs(c.X-want[i].X) > 1e-9 || math.Abs(c.Y-want[i].Y) > 1e-9 {
			t.Errorf("corner %d = %+v, expected %+v", i, c, want[i])
		}
	}
}

func TestVec2Rotated(t *testing.T) {
	v := Vec2{X: 1, Y: 0}
	got := v.Rotated(math.Pi / 2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Rotated(pi/2) = %+v, expected (0, 1)", got)
	}

	// Rotating by -angle undoes the rotation.
	back := got.Rotated(-math.Pi / 2)
	if math.Abs(back.X-1) > 1e-9 || math.Abs(back.Y) > 1e-9 {
		t.Errorf("round-trip rotation = %+v, expected (1, 0)", back)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, -math.Pi},
		{-math.Pi, -math.Pi},
		{3 * math.Pi, -math.Pi},
		{math.Pi / 2, math.Pi / 2},
	}
	for _, tc := range tests {
		if got := NormalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, got, tc.want)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
