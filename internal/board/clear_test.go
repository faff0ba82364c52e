package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fracture/internal/core"
)

// fillRow inserts a single-cell shape into every empty cell of row y.
func fillRow(b *Board, y int, t Template) {
	for x := 0; x < b.Grid().Width(); x++ {
		b.Insert(core.V(x, y), t)
	}
}

func TestClearSettledRow(t *testing.T) {
	b := testBoard(10, 6)
	fillRow(b, 0, single)
	above, _ := b.Insert(core.V(3, 2), tmpl(core.V(0, 0), core.V(1, 0)))
	b.BeginTick()

	require.Equal(t, 1, b.ClearRows())

	for x := 0; x < 10; x++ {
		assert.True(t, b.Grid().Query(core.V(x, 0)).Free(), "cell %d", x)
	}
	assert.Equal(t, 2, b.BlockCount())
	assert.Equal(t, 1, b.ShapeCount())
	assert.Equal(t, sortedVecs(core.V(3, 2), core.V(4, 2)), cellsOf(t, b, above), "rows above do not shift")
	require.NoError(t, b.Verify())
}

func TestClearSkipsUnsettledRows(t *testing.T) {
	t.Run("incomplete", func(t *testing.T) {
		b := testBoard(4, 3)
		b.Insert(core.V(0, 0), single)
		b.Insert(core.V(1, 0), single)
		b.Insert(core.V(3, 0), single)
		b.BeginTick()
		assert.Zero(t, b.ClearRows())
	})

	t.Run("moved", func(t *testing.T) {
		b := testBoard(4, 3)
		fillRow(b, 0, single)
		assert.Zero(t, b.ClearRows(), "fresh blocks count as moved")
	})

	t.Run("controlled", func(t *testing.T) {
		b := testBoard(4, 3)
		fillRow(b, 0, single)
		b.Attach(b.Shapes()[2], 0)
		b.BeginTick()
		assert.Zero(t, b.ClearRows())
	})
}

func TestFastBlockWaivesSettle(t *testing.T) {
	b := testBoard(4, 3)
	fast := single
	fast.Mods = ModFast
	b.Insert(core.V(0, 0), fast)
	b.Insert(core.V(1, 0), single)
	b.Insert(core.V(2, 0), single)
	id, _ := b.Insert(core.V(3, 0), single)
	b.Attach(id, 0)

	assert.Equal(t, 1, b.ClearRows())
	assert.Zero(t, b.BlockCount())
	assert.Zero(t, b.ShapeCount())
	assert.False(t, b.AnyControlled(), "destroyed shape loses its marker")
	require.NoError(t, b.Verify())
}

func TestClearDamagesSpanningShape(t *testing.T) {
	b := testBoard(3, 4)
	tall, _ := b.Insert(core.V(0, 0), tmpl(core.V(0, 0), core.V(0, 1), core.V(0, 2)))
	b.Insert(core.V(1, 0), single)
	b.Insert(core.V(2, 0), single)
	b.BeginTick()

	require.Equal(t, 1, b.ClearRows())

	s, ok := b.Shape(tall)
	require.True(t, ok)
	assert.ElementsMatch(t, []core.Vec{core.V(0, 1), core.V(0, 2)}, s.Offsets)
	assert.Equal(t, core.VecF{X: 0, Y: 1.5}, s.Centroid)
	assert.True(t, s.changed)
	require.NoError(t, b.Verify())
}

func TestClearMultipleRows(t *testing.T) {
	b, rec := observedBoard(3, 5)
	fillRow(b, 0, single)
	fillRow(b, 1, single)
	b.Insert(core.V(0, 3), single)
	b.BeginTick()

	assert.Equal(t, 2, b.ClearRows())
	assert.Equal(t, 2, rec.lines)
	assert.Equal(t, 1, b.BlockCount())
}
