package board

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/fracture/internal/core"
)

var neighbours = [4]core.Vec{core.Left, core.Right, core.Down, core.Up}

// component returns the 4-connected component of offsets that contains the
// lexicographically smallest offset.
func component(offsets []core.Vec) mapset.Set[core.Vec] {
	all := mapset.New[core.Vec]()
	for _, off := range offsets {
		all.Put(off)
	}
	seen := mapset.New[core.Vec]()
	if len(offsets) == 0 {
		return seen
	}
	seed := slices.MinFunc(offsets, core.Vec.Compare)
	stack := []core.Vec{seed}
	seen.Put(seed)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range neighbours {
			n := cur.Add(d)
			if !all.Has(n) || seen.Has(n) {
				continue
			}
			seen.Put(n)
			stack = append(stack, n)
		}
	}
	return seen
}

// SplitChanged examines every shape whose offsets changed since the last
// pass and tears off at most one remnant per shape. It returns the number of
// remnants created. Remnants are marked changed so they are re-examined on
// the next pass.
func (b *Board) SplitChanged() int {
	var pending []ShapeID
	for _, id := range b.shapes.Handles() {
		if s, _ := b.shapes.Get(id); s.changed {
			pending = append(pending, id)
		}
	}
	splits := 0
	for _, id := range pending {
		s, ok := b.shapes.Get(id)
		if !ok {
			continue
		}
		s.changed = false
		if _, ok := b.split(id, s); ok {
			splits++
		}
	}
	return splits
}

func (b *Board) split(id ShapeID, s *Shape) (ShapeID, bool) {
	keep := component(s.Offsets)
	if keep.Size() == len(s.Offsets) {
		return 0, false
	}

	var kept, rest []core.Vec
	for _, off := range s.Offsets {
		if keep.Has(off) {
			kept = append(kept, off)
		} else {
			rest = append(rest, off)
		}
	}
	s.Offsets = kept
	s.recalc()

	remnant := &Shape{
		Center:  s.Center,
		Offsets: rest,
		Color:   s.Color,
		Name:    s.Name,
		Split:   true,
		changed: true,
	}
	remnant.recalc()
	rid := b.shapes.Alloc(remnant)

	for _, off := range rest {
		pos := remnant.Center.Add(off)
		cell := b.grid.Query(pos)
		if cell.State != CellOccupied {
			b.fault(FaultEmptyCell, pos, "shape", rid.String())
			continue
		}
		blk, ok := b.blocks.Get(cell.Block)
		if !ok {
			b.fault(FaultDanglingBlock, pos, "block", cell.Block.String())
			continue
		}
		blk.Shape = rid
	}

	if c, ok := b.control.Get(id); ok && b.opts.RemnantInheritsControl {
		b.control.Put(rid, &Control{Lane: c.Lane, SinceDrop: c.SinceDrop, Moved: true})
	}

	b.logger.Debug("shape split", "shape", id.String(), "remnant", rid.String(),
		"kept", len(kept), "torn", len(rest))
	b.observer.OnSplit()
	return rid, true
}
