package core

import (
	"slices"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := V(2, -3)
	b := V(-1, 5)

	if got := a.Add(b); got != V(1, 2) {
		t.Errorf("Add() = %v, expected (1,2)", got)
	}
	if got := a.Sub(b); got != V(3, -8) {
		t.Errorf("Sub() = %v, expected (3,-8)", got)
	}
	if got := a.Neg(); got != V(-2, 3) {
		t.Errorf("Neg() = %v, expected (-2,3)", got)
	}
	if got := a.Add(Down); got != V(2, -4) {
		t.Errorf("Add(Down) = %v, expected (2,-4)", got)
	}
}

func TestVecOrdering(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		expected bool
	}{
		{"smaller x", V(-1, 9), V(0, 0), true},
		{"same x smaller y", V(0, -1), V(0, 0), true},
		{"equal", V(3, 3), V(3, 3), false},
		{"larger x", V(1, -9), V(0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Less(tc.b); got != tc.expected {
				t.Errorf("%v.Less(%v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}

	vs := []Vec{V(1, 0), V(0, 1), V(0, -1), V(-2, 4)}
	slices.SortFunc(vs, Vec.Compare)
	want := []Vec{V(-2, 4), V(0, -1), V(0, 1), V(1, 0)}
	if !slices.Equal(vs, want) {
		t.Errorf("sorted = %v, expected %v", vs, want)
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		in       []Vec
		expected VecF
	}{
		{"empty", nil, VecF{}},
		{"single", []Vec{V(2, 3)}, VecF{X: 2, Y: 3}},
		{"vertical bar", []Vec{V(0, 0), V(0, -1), V(0, -2), V(0, 1)}, VecF{X: 0, Y: -0.5}},
		{"square", []Vec{V(-1, 0), V(0, 0), V(0, -1), V(-1, -1)}, VecF{X: -0.5, Y: -0.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Mean(tc.in); got != tc.expected {
				t.Errorf("Mean() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}
