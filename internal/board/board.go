// Package board is the falling-block engine: the occupancy grid, shape
// geometry, spawn placement, the settle scanner, the connectivity splitter and
// chain scoring. It is UI-agnostic and deterministic for a given deck.
//
// The grid and the per-shape offset lists are two views of the same state.
// Every mutation goes through Grid.Place, Grid.Vacate or Grid.RemoveAndReturn
// and keeps both views consistent: an occupied cell holds a block whose shape
// lists (cell - shape.Center) among its offsets.
package board

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/fracture/internal/core"
)

// Options configures a Board.
type Options struct {
	Width  int
	Height int

	// RemnantInheritsControl gives a split remnant its own control marker when
	// the torn shape was player-controlled.
	RemnantInheritsControl bool
	// LockDelay is the number of consecutive ticks without movement after
	// which control detaches.
	LockDelay int
	// MaxDropWait is the number of ticks without a downward step after which
	// control detaches.
	MaxDropWait int

	Logger   *log.Logger
	Observer Observer
}

// DefaultOptions returns a 10x20 board locking after one idle tick.
func DefaultOptions() Options {
	return Options{
		Width:       10,
		Height:      20,
		LockDelay:   1,
		MaxDropWait: 3,
	}
}

// Board owns the grid, the shape and block arenas and the control markers.
// It is not safe for concurrent use.
type Board struct {
	opts     Options
	grid     *Grid
	shapes   *Arena[ShapeID, Shape]
	blocks   *Arena[BlockID, Block]
	control  *intmap.Map[ShapeID, *Control]
	logger   *log.Logger
	observer Observer
	faults   int
}

// New creates an empty board.
func New(opts Options) *Board {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var observer Observer = NopObserver{}
	if opts.Observer != nil {
		observer = opts.Observer
	}
	return &Board{
		opts:     opts,
		grid:     NewGrid(opts.Width, opts.Height),
		shapes:   NewArena[ShapeID, Shape](64),
		blocks:   NewArena[BlockID, Block](opts.Width * opts.Height),
		control:  intmap.New[ShapeID, *Control](4),
		logger:   logger,
		observer: observer,
	}
}

// Grid returns the occupancy grid. Callers must not mutate it directly.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Options returns the options the board was created with.
func (b *Board) Options() Options {
	return b.opts
}

// Shape resolves a shape handle.
func (b *Board) Shape(id ShapeID) (*Shape, bool) {
	return b.shapes.Get(id)
}

// Block resolves a block handle.
func (b *Board) Block(id BlockID) (*Block, bool) {
	return b.blocks.Get(id)
}

// Shapes returns every live shape handle in allocation-slot order.
func (b *Board) Shapes() []ShapeID {
	return b.shapes.Handles()
}

// ShapeCount returns the number of live shapes.
func (b *Board) ShapeCount() int {
	return b.shapes.Len()
}

// BlockCount returns the number of live blocks.
func (b *Board) BlockCount() int {
	return b.blocks.Len()
}

// Insert materializes a fresh shape at center: it allocates the shape, one
// block per offset and occupies the cells. Nothing is mutated unless every
// target cell is empty.
func (b *Board) Insert(center core.Vec, t Template) (ShapeID, bool) {
	if !b.canPlace(center, t.Offsets) {
		return 0, false
	}
	s := &Shape{
		Center:  center,
		Offsets: append([]core.Vec(nil), t.Offsets...),
		Color:   t.Color,
		Name:    t.Name,
	}
	s.recalc()
	id := b.shapes.Alloc(s)
	for _, off := range s.Offsets {
		bid := b.blocks.Alloc(&Block{Shape: id, Moved: true, Mods: t.Mods})
		b.grid.Place(center.Add(off), bid)
	}
	return id, true
}

func (b *Board) canPlace(center core.Vec, offsets []core.Vec) bool {
	if len(offsets) == 0 {
		return false
	}
	seen := make(map[core.Vec]bool, len(offsets))
	for _, off := range offsets {
		if seen[off] {
			return false
		}
		seen[off] = true
		if !b.grid.Query(center.Add(off)).Free() {
			return false
		}
	}
	return true
}

// Translate moves the shape by delta if nothing blocks any of its cells.
// On failure nothing is mutated.
func (b *Board) Translate(id ShapeID, delta core.Vec) bool {
	s, ok := b.shapes.Get(id)
	if !ok || !s.CanTranslate(b.grid, delta) {
		return false
	}
	b.relocate(id, s, s.Center.Add(delta), s.Offsets)
	b.noteMoved(id, delta.Y < 0)
	return true
}

// Rotate turns the shape a quarter turn about its pivot. Forward applies
// (x,y)->(-y,x) in pivot-relative space. On failure nothing is mutated.
func (b *Board) Rotate(id ShapeID, forward bool) bool {
	s, ok := b.shapes.Get(id)
	if !ok {
		return false
	}
	rotated := s.Rotated(forward)
	if !s.fits(b.grid, rotated) {
		return false
	}
	b.relocate(id, s, s.Center, rotated)
	b.noteMoved(id, false)
	return true
}

// relocate lifts every cell of s off the grid and re-places the same blocks
// at center+offsets[i]. Offsets whose cell turns out to be empty or dangling
// are dropped from the shape and reported, and blocks of the shape left
// without a cell are freed.
func (b *Board) relocate(id ShapeID, s *Shape, center core.Vec, offsets []core.Vec) {
	lifted := make([]BlockID, len(s.Offsets))
	faulted := false
	for i, off := range s.Offsets {
		pos := s.Center.Add(off)
		bid, ok := b.grid.RemoveAndReturn(pos)
		if !ok {
			b.fault(FaultEmptyCell, pos, "shape", id.String())
			faulted = true
			continue
		}
		if _, live := b.blocks.Get(bid); !live {
			b.fault(FaultDanglingBlock, pos, "block", bid.String())
			faulted = true
			continue
		}
		lifted[i] = bid
	}

	next := make([]core.Vec, 0, len(offsets))
	for i, bid := range lifted {
		if bid == 0 {
			s.changed = true
			continue
		}
		b.grid.Place(center.Add(offsets[i]), bid)
		if blk, ok := b.blocks.Get(bid); ok {
			blk.Moved = true
		}
		next = append(next, offsets[i])
	}
	s.Center = center
	s.Offsets = next
	s.recalc()

	if faulted {
		b.freeOrphans(id, lifted)
	}
	if len(s.Offsets) == 0 {
		b.destroyShape(id)
	}
}

func (b *Board) destroyShape(id ShapeID) {
	b.control.Del(id)
	b.shapes.Free(id)
}

// BeginTick clears the per-tick moved flags of blocks. Control markers keep
// their flag until ageControls has read it, so presses made between ticks
// count toward the lock delay.
func (b *Board) BeginTick() {
	for _, bid := range b.blocks.Handles() {
		if blk, ok := b.blocks.Get(bid); ok {
			blk.Moved = false
		}
	}
}

// Appearance is what a renderer needs to draw one occupied cell.
type Appearance struct {
	Color      core.Color
	Fast       bool
	Controlled bool
	Split      bool
}

// Resolve maps an occupied cell to its appearance. It returns false for empty
// and out-of-bounds cells and for dangling references, which are reported.
func (b *Board) Resolve(pos core.Vec) (Appearance, bool) {
	cell := b.grid.Query(pos)
	if cell.State != CellOccupied {
		return Appearance{}, false
	}
	blk, ok := b.blocks.Get(cell.Block)
	if !ok {
		b.fault(FaultDanglingBlock, pos, "block", cell.Block.String())
		return Appearance{}, false
	}
	s, ok := b.shapes.Get(blk.Shape)
	if !ok {
		b.fault(FaultDanglingShape, pos, "shape", blk.Shape.String())
		return Appearance{}, false
	}
	return Appearance{
		Color:      s.Color,
		Fast:       blk.Mods.Has(ModFast),
		Controlled: b.IsControlled(blk.Shape),
		Split:      s.Split,
	}, true
}
