package board

import (
	"errors"
	"slices"

	"github.com/vovakirdan/fracture/internal/core"
)

// ErrInvariant is wrapped by every violation reported by Verify.
var ErrInvariant = errors.New("board: invariant violated")

// FaultKind classifies a data-integrity fault found while mutating the board.
// Faults are logged and counted; the affected cell or row is skipped.
type FaultKind int

const (
	// FaultEmptyCell: a cell expected to hold a block was empty.
	FaultEmptyCell FaultKind = iota
	// FaultDanglingBlock: a grid cell references a block that no longer exists.
	FaultDanglingBlock
	// FaultDanglingShape: a block references a shape that no longer exists.
	FaultDanglingShape
	// FaultOffsetMissing: a cleared cell had no matching offset in its shape.
	FaultOffsetMissing
	// FaultOutOfBounds: a shape offset mapped outside the grid.
	FaultOutOfBounds
)

// String returns the fault name used in logs and metrics labels.
func (k FaultKind) String() string {
	switch k {
	case FaultEmptyCell:
		return "empty_cell"
	case FaultDanglingBlock:
		return "dangling_block"
	case FaultDanglingShape:
		return "dangling_shape"
	case FaultOffsetMissing:
		return "offset_missing"
	case FaultOutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

func (b *Board) fault(kind FaultKind, pos core.Vec, keyvals ...any) {
	b.faults++
	args := append([]any{"kind", kind.String(), "pos", pos.String()}, keyvals...)
	b.logger.Error("integrity fault", args...)
	b.observer.OnFault(kind)
}

// Faults returns the number of integrity faults reported so far.
func (b *Board) Faults() int {
	return b.faults
}

// freeOrphans frees the live blocks of id that are not among placed.
func (b *Board) freeOrphans(id ShapeID, placed []BlockID) {
	for _, bid := range b.blocks.Handles() {
		blk, ok := b.blocks.Get(bid)
		if !ok || blk.Shape != id || slices.Contains(placed, bid) {
			continue
		}
		b.blocks.Free(bid)
		b.logger.Warn("freed orphaned block", "block", bid.String(), "shape", id.String())
	}
}
