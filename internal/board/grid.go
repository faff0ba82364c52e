package board

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/fracture/internal/core"
)

// CellState classifies the result of a grid query.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellOutOfBounds
	CellOccupied
)

// String returns the state name.
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellOutOfBounds:
		return "out-of-bounds"
	case CellOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Cell is the answer to a point query. Block is set only when occupied.
type Cell struct {
	State CellState
	Block BlockID
}

// Free reports whether a shape may move into the cell.
// Out-of-bounds cells block exactly like occupied ones.
func (c Cell) Free() bool {
	return c.State == CellEmpty
}

// Grid is the authoritative occupancy array of the play field.
// Cells are stored in row-major order: index = y*W + x, row 0 is the floor.
//
// Every mutator marks the position dirty and bumps the mutation counter.
// Coordinates outside [0,W)x[0,H) are never stored; mutators ignore them and
// report false.
type Grid struct {
	width     int
	height    int
	cells     []BlockID
	dirty     mapset.Set[core.Vec]
	mutations uint64
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]BlockID, width*height),
		dirty:  mapset.New[core.Vec](),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether pos lies on the grid.
func (g *Grid) InBounds(pos core.Vec) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

func (g *Grid) index(pos core.Vec) int {
	return pos.Y*g.width + pos.X
}

// Query returns the state of the cell at pos.
func (g *Grid) Query(pos core.Vec) Cell {
	if !g.InBounds(pos) {
		return Cell{State: CellOutOfBounds}
	}
	id := g.cells[g.index(pos)]
	if id == 0 {
		return Cell{State: CellEmpty}
	}
	return Cell{State: CellOccupied, Block: id}
}

// Place stores id at pos, replacing any previous occupant.
func (g *Grid) Place(pos core.Vec, id BlockID) bool {
	if !g.InBounds(pos) {
		return false
	}
	g.cells[g.index(pos)] = id
	g.touch(pos)
	return true
}

// Vacate empties the cell at pos.
func (g *Grid) Vacate(pos core.Vec) bool {
	if !g.InBounds(pos) {
		return false
	}
	g.cells[g.index(pos)] = 0
	g.touch(pos)
	return true
}

// RemoveAndReturn empties the cell at pos and returns its previous occupant.
// The cell is marked dirty even when it was already empty.
func (g *Grid) RemoveAndReturn(pos core.Vec) (BlockID, bool) {
	if !g.InBounds(pos) {
		return 0, false
	}
	i := g.index(pos)
	id := g.cells[i]
	g.cells[i] = 0
	g.touch(pos)
	return id, id != 0
}

func (g *Grid) touch(pos core.Vec) {
	g.dirty.Put(pos)
	g.mutations++
}

// Mutations returns the number of mutator calls since the grid was created.
func (g *Grid) Mutations() uint64 {
	return g.mutations
}

// Dirty returns the changed coordinates without draining them,
// ordered bottom row first, then by column.
func (g *Grid) Dirty() []core.Vec {
	out := make([]core.Vec, 0, g.dirty.Size())
	g.dirty.Each(func(pos core.Vec) {
		out = append(out, pos)
	})
	slices.SortFunc(out, func(a, b core.Vec) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return out
}

// DrainDirty returns the changed coordinates and resets the set.
func (g *Grid) DrainDirty() []core.Vec {
	out := g.Dirty()
	g.dirty = mapset.New[core.Vec]()
	return out
}

// Row returns the occupants of row y from left to right.
func (g *Grid) Row(y int) []BlockID {
	if y < 0 || y >= g.height {
		return nil
	}
	return slices.Clone(g.cells[y*g.width : (y+1)*g.width])
}
