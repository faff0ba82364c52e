package board

import "github.com/vovakirdan/fracture/internal/core"

// rowClearable reports whether row y is full and settled. A single fast block
// in the row waives the settle requirement for the whole row. A cell that
// references a dead block is vacated and its row skipped.
func (b *Board) rowClearable(y int) bool {
	fast := false
	settled := true
	for x := 0; x < b.grid.Width(); x++ {
		pos := core.V(x, y)
		cell := b.grid.Query(pos)
		if cell.State != CellOccupied {
			return false
		}
		blk, ok := b.blocks.Get(cell.Block)
		if !ok {
			b.fault(FaultDanglingBlock, pos, "block", cell.Block.String())
			b.grid.Vacate(pos)
			return false
		}
		if blk.Mods.Has(ModFast) {
			fast = true
		}
		if blk.Moved || b.IsControlled(blk.Shape) {
			settled = false
		}
	}
	return settled || fast
}

// ClearRows scans rows bottom to top and removes every full, settled row.
// Rows above a cleared row are not shifted; their blocks fall under gravity
// on later ticks. It returns the number of rows cleared.
func (b *Board) ClearRows() int {
	lines := 0
	for y := 0; y < b.grid.Height(); y++ {
		if !b.rowClearable(y) {
			continue
		}
		for x := 0; x < b.grid.Width(); x++ {
			b.clearCell(core.V(x, y))
		}
		lines++
	}
	if lines > 0 {
		b.logger.Debug("rows cleared", "lines", lines)
		b.observer.OnLinesCleared(lines)
	}
	return lines
}

func (b *Board) clearCell(pos core.Vec) {
	bid, ok := b.grid.RemoveAndReturn(pos)
	if !ok {
		b.fault(FaultEmptyCell, pos)
		return
	}
	blk, ok := b.blocks.Get(bid)
	if !ok {
		b.fault(FaultDanglingBlock, pos, "block", bid.String())
		return
	}
	owner := blk.Shape
	b.blocks.Free(bid)

	s, ok := b.shapes.Get(owner)
	if !ok {
		b.fault(FaultDanglingShape, pos, "shape", owner.String())
		return
	}
	if !s.removeOffset(pos.Sub(s.Center)) {
		b.fault(FaultOffsetMissing, pos, "shape", owner.String())
		return
	}
	if len(s.Offsets) == 0 {
		b.destroyShape(owner)
	}
}
