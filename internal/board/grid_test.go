package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fracture/internal/core"
)

func TestGridQuery(t *testing.T) {
	g := NewGrid(4, 3)

	tests := []struct {
		name string
		pos  core.Vec
		want CellState
	}{
		{"origin", core.V(0, 0), CellEmpty},
		{"top right", core.V(3, 2), CellEmpty},
		{"left of grid", core.V(-1, 0), CellOutOfBounds},
		{"below floor", core.V(0, -1), CellOutOfBounds},
		{"right of grid", core.V(4, 1), CellOutOfBounds},
		{"above top", core.V(2, 3), CellOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Query(tt.pos).State)
		})
	}
}

func TestGridMutators(t *testing.T) {
	g := NewGrid(4, 3)
	id := makeHandle[BlockID](1, 7)

	require.True(t, g.Place(core.V(1, 2), id))
	cell := g.Query(core.V(1, 2))
	assert.Equal(t, CellOccupied, cell.State)
	assert.Equal(t, id, cell.Block)
	assert.False(t, cell.Free())

	got, ok := g.RemoveAndReturn(core.V(1, 2))
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.True(t, g.Query(core.V(1, 2)).Free())

	_, ok = g.RemoveAndReturn(core.V(1, 2))
	assert.False(t, ok, "empty cell has nothing to return")

	require.True(t, g.Place(core.V(0, 0), id))
	require.True(t, g.Vacate(core.V(0, 0)))
	assert.Equal(t, CellEmpty, g.Query(core.V(0, 0)).State)

	assert.Equal(t, uint64(5), g.Mutations())
}

func TestGridIgnoresOutOfRange(t *testing.T) {
	g := NewGrid(2, 2)
	id := makeHandle[BlockID](1, 0)

	assert.False(t, g.Place(core.V(2, 0), id))
	assert.False(t, g.Vacate(core.V(-1, 0)))
	_, ok := g.RemoveAndReturn(core.V(0, 5))
	assert.False(t, ok)

	assert.Zero(t, g.Mutations())
	assert.Empty(t, g.Dirty())
}

func TestGridDirty(t *testing.T) {
	g := NewGrid(5, 5)
	id := makeHandle[BlockID](1, 0)

	g.Place(core.V(3, 2), id)
	g.Place(core.V(1, 0), id)
	g.Vacate(core.V(0, 2))
	g.Vacate(core.V(3, 2))

	want := []core.Vec{core.V(1, 0), core.V(0, 2), core.V(3, 2)}
	assert.Equal(t, want, g.Dirty())
	assert.Equal(t, want, g.DrainDirty())
	assert.Empty(t, g.Dirty())
}

func TestGridRow(t *testing.T) {
	g := NewGrid(3, 2)
	id := makeHandle[BlockID](1, 4)
	g.Place(core.V(2, 1), id)

	assert.Equal(t, []BlockID{0, 0, id}, g.Row(1))
	assert.Nil(t, g.Row(2))

	row := g.Row(1)
	row[0] = id
	assert.True(t, g.Query(core.V(0, 1)).Free(), "Row returns a copy")
}
