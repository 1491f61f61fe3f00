package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge is exclusive", 6, 3, false},
		{"bottom edge is exclusive", 2, 5, false},
		{"left of rect", 1, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)
	inner := outer.Centered(20, 4)

	if inner.X != 30 || inner.Y != 10 {
		t.Errorf("Centered() = (%d, %d), expected (30, 10)", inner.X, inner.Y)
	}
	if inner.W != 20 || inner.H != 4 {
		t.Errorf("Centered() size = %dx%d, expected 20x4", inner.W, inner.H)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLerpAndMoveTowards(t *testing.T) {
	if got := Lerp(0, 1, 0.25); got != 0.25 {
		t.Errorf("Lerp(0, 1, 0.25) = %v, expected 0.25", got)
	}
	if got := Lerp(0, 1, 2); got != 1 {
		t.Errorf("Lerp should clamp t, got %v", got)
	}
	if got := MoveTowards(0, 1, 0.3); got != 0.3 {
		t.Errorf("MoveTowards(0, 1, 0.3) = %v, expected 0.3", got)
	}
	if got := MoveTowards(0.9, 1, 0.3); got != 1 {
		t.Errorf("MoveTowards should not overshoot, got %v", got)
	}
	if got := MoveTowards(1, 0, 0.3); got != 0.7 {
		t.Errorf("MoveTowards(1, 0, 0.3) = %v, expected 0.7", got)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		deg  float64
		want Vec
	}{
		{0, Vec{0, -1}},
		{90, Vec{1, 0}},
		{180, Vec{0, 1}},
		{-90, Vec{-1, 0}},
	}

	for _, tc := range tests {
		got := Heading(tc.deg)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("Heading(%v) = %+v, expected %+v", tc.deg, got, tc.want)
		}
	}
}

func TestVecClampLen(t *testing.T) {
	v := Vec{X: 3, Y: 4}

	if got := v.ClampLen(10); got != v {
		t.Errorf("ClampLen below limit changed vector: %+v", got)
	}

	got := v.ClampLen(2.5)
	if math.Abs(got.Len()-2.5) > 1e-9 {
		t.Errorf("ClampLen(2.5) length = %v, expected 2.5", got.Len())
	}
	if math.Abs(got.X/got.Y-0.75) > 1e-9 {
		t.Errorf("ClampLen should keep direction, got %+v", got)
	}
}
