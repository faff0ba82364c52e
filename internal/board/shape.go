package board

import (
	"math"
	"slices"

	"github.com/vovakirdan/fracture/internal/core"
)

// Shape is a piece: an integer center plus relative cell offsets.
// Offsets are pairwise distinct but need not be contiguous after damage.
type Shape struct {
	Center   core.Vec
	Offsets  []core.Vec
	Centroid core.VecF // mean of Offsets, kept current by every mutation
	Color    core.Color
	Name     string
	Split    bool // produced by the connectivity splitter

	changed bool // offsets changed since the last split pass
}

func (s *Shape) recalc() {
	s.Centroid = core.Mean(s.Offsets)
}

func (s *Shape) has(off core.Vec) bool {
	return slices.Contains(s.Offsets, off)
}

// removeOffset deletes off by value. Returns false if it was not present.
func (s *Shape) removeOffset(off core.Vec) bool {
	i := slices.Index(s.Offsets, off)
	if i < 0 {
		return false
	}
	s.Offsets = slices.Delete(s.Offsets, i, i+1)
	s.recalc()
	s.changed = true
	return true
}

// Cells returns the absolute grid positions covered by the shape.
func (s *Shape) Cells() []core.Vec {
	out := make([]core.Vec, len(s.Offsets))
	for i, off := range s.Offsets {
		out[i] = s.Center.Add(off)
	}
	return out
}

// fits reports whether the shape could occupy targets (offsets relative to
// its center). A target that is one of the shape's own current offsets counts
// as free, because the whole shape moves together.
func (s *Shape) fits(g *Grid, targets []core.Vec) bool {
	for _, t := range targets {
		if s.has(t) {
			continue
		}
		if !g.Query(s.Center.Add(t)).Free() {
			return false
		}
	}
	return true
}

func (s *Shape) translated(delta core.Vec) []core.Vec {
	out := make([]core.Vec, len(s.Offsets))
	for i, off := range s.Offsets {
		out[i] = off.Add(delta)
	}
	return out
}

// CanTranslate reports whether every offset can move by delta.
// Evaluation is all-or-nothing.
func (s *Shape) CanTranslate(g *Grid, delta core.Vec) bool {
	return s.fits(g, s.translated(delta))
}

// Pivot returns the rotation pivot in offset space: the centroid snapped to
// the nearest half cell.
func (s *Shape) Pivot() core.VecF {
	p := pivot2(s.Centroid)
	return core.VecF{X: float64(p.X) / 2, Y: float64(p.Y) / 2}
}

// Rotated returns the offsets after a quarter turn about the pivot.
// Forward applies (x,y)->(-y,x); the reverse turn applies (x,y)->(y,-x).
func (s *Shape) Rotated(forward bool) []core.Vec {
	p := pivot2(s.Centroid)
	out := make([]core.Vec, len(s.Offsets))
	for i, off := range s.Offsets {
		out[i] = rotateOffset(off, p, forward)
	}
	return out
}

// CanRotate reports whether the quarter turn is free of obstacles.
func (s *Shape) CanRotate(g *Grid, forward bool) bool {
	return s.fits(g, s.Rotated(forward))
}

// Rotation works in doubled coordinates so the half-cell pivot stays integral.
// A single rounding rule, round half up, is used both to snap the centroid and
// to snap rotated positions back to cells.

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func pivot2(c core.VecF) core.Vec {
	return core.V(roundHalfUp(2*c.X), roundHalfUp(2*c.Y))
}

// halfToCell maps a doubled coordinate back to a cell: roundHalfUp(v2/2).
func halfToCell(v2 int) int {
	return floorDiv(v2+1, 2)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func rotateOffset(off, p2 core.Vec, forward bool) core.Vec {
	rx := 2*off.X - p2.X
	ry := 2*off.Y - p2.Y
	nx, ny := -ry, rx
	if !forward {
		nx, ny = ry, -rx
	}
	return core.V(halfToCell(p2.X+nx), halfToCell(p2.Y+ny))
}
