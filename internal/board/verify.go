package board

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/fracture/internal/core"
)

// Verify checks that the grid and the shape offsets describe the same state.
// It returns nil or an errors.Join of every violation, each wrapping
// ErrInvariant. Verify does not report faults and does not mutate the board.
func (b *Board) Verify() error {
	var errs []error
	violate := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...))
	}

	occupied := 0
	for y := 0; y < b.grid.Height(); y++ {
		for x := 0; x < b.grid.Width(); x++ {
			pos := core.V(x, y)
			cell := b.grid.Query(pos)
			if cell.State != CellOccupied {
				continue
			}
			occupied++
			blk, ok := b.blocks.Get(cell.Block)
			if !ok {
				violate("cell %s holds dead %s", pos, cell.Block)
				continue
			}
			s, ok := b.shapes.Get(blk.Shape)
			if !ok {
				violate("%s at %s belongs to dead %s", cell.Block, pos, blk.Shape)
				continue
			}
			if !s.has(pos.Sub(s.Center)) {
				violate("%s has no offset for cell %s", blk.Shape, pos)
			}
		}
	}
	if n := b.blocks.Len(); n != occupied {
		violate("%d live blocks but %d occupied cells", n, occupied)
	}

	for _, id := range b.shapes.Handles() {
		s, _ := b.shapes.Get(id)
		if len(s.Offsets) == 0 {
			violate("%s has no offsets", id)
		}
		seen := make(map[core.Vec]bool, len(s.Offsets))
		for _, off := range s.Offsets {
			if seen[off] {
				violate("%s lists offset %s twice", id, off)
			}
			seen[off] = true
			pos := s.Center.Add(off)
			cell := b.grid.Query(pos)
			if cell.State != CellOccupied {
				violate("%s offset %s maps to %s cell %s", id, off, cell.State, pos)
				continue
			}
			if blk, ok := b.blocks.Get(cell.Block); ok && blk.Shape != id {
				violate("%s offset %s maps to a block of %s", id, off, blk.Shape)
			}
		}
		if c := core.Mean(s.Offsets); c != s.Centroid {
			violate("%s centroid %v, want %v", id, s.Centroid, c)
		}
	}

	b.control.ForEach(func(id ShapeID, _ *Control) bool {
		if _, ok := b.shapes.Get(id); !ok {
			violate("control marker on dead %s", id)
		}
		return true
	})

	return errors.Join(errs...)
}
