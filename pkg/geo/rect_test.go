package geo

import (
	"math"
	"testing"
)

func TestNewRect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		x, y, w, h  float64
		expectedErr error
	}{
		{name: "positive", x: 0, y: 0, w: 200, h: 200, expectedErr: nil},
		{name: "positive", x: -5, y: -5, w: 10, h: 10, expectedErr: nil},
		{name: "positive_zero_size", x: 1, y: 2, w: 0, h: 0, expectedErr: nil},
		{name: "negative_width", x: 0, y: 0, w: -1, h: 10, expectedErr: ErrNegativeSize},
		{name: "negative_height", x: 0, y: 0, w: 10, h: -1, expectedErr: ErrNegativeSize},
		{name: "nan", x: math.NaN(), y: 0, w: 10, h: 10, expectedErr: ErrNotFinite},
		{name: "inf", x: 0, y: 0, w: math.Inf(1), h: 10, expectedErr: ErrNotFinite},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRect(test.x, test.y, test.w, test.h)
			if err != test.expectedErr {
				t.Errorf("constructing the rectangle, err got: %v, expected: %v", err, test.expectedErr)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	t.Parallel()
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{name: "fully_inside", inner: Rect{X: 10, Y: 10, Width: 20, Height: 20}, expected: true},
		{name: "equal_rect", inner: Rect{X: 0, Y: 0, Width: 100, Height: 100}, expected: true},
		{name: "touching_edges", inner: Rect{X: 0, Y: 0, Width: 50, Height: 100}, expected: true},
		{name: "touching_far_edge", inner: Rect{X: 90, Y: 90, Width: 10, Height: 10}, expected: true},
		{name: "sticks_out_right", inner: Rect{X: 90, Y: 10, Width: 20, Height: 10}, expected: false},
		{name: "sticks_out_bottom", inner: Rect{X: 10, Y: 95, Width: 10, Height: 10}, expected: false},
		{name: "left_of_outer", inner: Rect{X: -10, Y: 10, Width: 5, Height: 5}, expected: false},
		{name: "straddles_origin", inner: Rect{X: -1, Y: -1, Width: 10, Height: 10}, expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got := outer.Contains(test.inner)
			if got != test.expected {
				t.Errorf("containment of %s in %s got: %v, expected: %v", test.inner, outer, got, test.expected)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a        Rect
		b        Rect
		expected bool
	}{
		{name: "overlapping", a: Rect{0, 0, 10, 10}, b: Rect{5, 5, 10, 10}, expected: true},
		{name: "contained", a: Rect{0, 0, 100, 100}, b: Rect{10, 10, 5, 5}, expected: true},
		{name: "disjoint", a: Rect{0, 0, 10, 10}, b: Rect{20, 20, 10, 10}, expected: false},
		{name: "edge_touching", a: Rect{0, 0, 10, 10}, b: Rect{10, 0, 10, 10}, expected: false},
		{name: "corner_touching", a: Rect{0, 0, 10, 10}, b: Rect{10, 10, 10, 10}, expected: false},
		{name: "one_axis_only", a: Rect{0, 0, 10, 10}, b: Rect{5, 20, 10, 10}, expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.a.Intersects(test.b); got != test.expected {
				t.Errorf("intersection of %s and %s got: %v, expected: %v", test.a, test.b, got, test.expected)
			}
			// the predicate is symmetric
			if test.a.Intersects(test.b) != test.b.Intersects(test.a) {
				t.Errorf("intersection of %s and %s is not symmetric", test.a, test.b)
			}
		})
	}
}

func TestRect_IntersectsSelf(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		r        Rect
		expected bool
	}{
		{name: "positive_area", r: Rect{5, 5, 10, 10}, expected: true},
		{name: "zero_width", r: Rect{5, 5, 0, 10}, expected: false},
		{name: "zero_area", r: Rect{5, 5, 0, 0}, expected: false},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.r.Intersects(test.r); got != test.expected {
				t.Errorf("self intersection of %s got: %v, expected: %v", test.r, got, test.expected)
			}
		})
	}
}

func TestRect_Midpoint(t *testing.T) {
	t.Parallel()
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	if r.MidX() != 25 {
		t.Errorf("mid x got: %v, expected: %v", r.MidX(), 25.0)
	}
	if r.MidY() != 40 {
		t.Errorf("mid y got: %v, expected: %v", r.MidY(), 40.0)
	}
	if r.MaxX() != 40 || r.MaxY() != 60 {
		t.Errorf("max corner got: (%v,%v), expected: (40,60)", r.MaxX(), r.MaxY())
	}
}
