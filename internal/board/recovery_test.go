package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fracture/internal/core"
)

var bar3 = tmpl(core.V(0, 0), core.V(1, 0), core.V(-1, 0))

func TestTranslateSkipsVacatedCell(t *testing.T) {
	b, rec := observedBoard(6, 6)
	id, _ := b.Insert(core.V(2, 3), bar3)
	b.Grid().Vacate(core.V(3, 3))

	var moved bool
	require.NotPanics(t, func() { moved = b.Translate(id, core.Down) })
	assert.True(t, moved)

	assert.Equal(t, []FaultKind{FaultEmptyCell}, rec.faults)
	assert.Equal(t, 1, b.Faults())
	assert.Equal(t, sortedVecs(core.V(1, 2), core.V(2, 2)), cellsOf(t, b, id))
	assert.Equal(t, 2, b.BlockCount(), "the orphaned block is freed")
	s, _ := b.Shape(id)
	assert.True(t, s.changed, "a dropped offset queues the shape for splitting")
	require.NoError(t, b.Verify())
}

func TestRotateSkipsDanglingBlock(t *testing.T) {
	b, rec := observedBoard(6, 6)
	id, _ := b.Insert(core.V(2, 3), bar3)
	b.blocks.Free(b.Grid().Query(core.V(3, 3)).Block)

	var turned bool
	require.NotPanics(t, func() { turned = b.Rotate(id, true) })
	assert.True(t, turned)

	assert.Equal(t, []FaultKind{FaultDanglingBlock}, rec.faults)
	assert.Equal(t, sortedVecs(core.V(2, 2), core.V(2, 3)), cellsOf(t, b, id))
	assert.True(t, b.Grid().Query(core.V(3, 3)).Free(), "the dead reference is lifted")
	require.NoError(t, b.Verify())
}

func TestTranslateDestroysShapeWithNoCells(t *testing.T) {
	b, rec := observedBoard(4, 4)
	id, _ := b.Insert(core.V(1, 2), single)
	require.True(t, b.Attach(id, 0))
	b.Grid().Vacate(core.V(1, 2))

	require.NotPanics(t, func() { b.Translate(id, core.Left) })

	assert.Equal(t, []FaultKind{FaultEmptyCell}, rec.faults)
	assert.Zero(t, b.ShapeCount())
	assert.Zero(t, b.BlockCount())
	assert.False(t, b.IsControlled(id))
	assert.True(t, b.Grid().Query(core.V(0, 2)).Free())
	require.NoError(t, b.Verify())
}

func TestClearRowsSkipsDanglingBlock(t *testing.T) {
	b, rec := observedBoard(4, 3)
	fillRow(b, 0, single)
	bid := b.Grid().Query(core.V(1, 0)).Block
	blk, _ := b.Block(bid)
	b.shapes.Free(blk.Shape)
	b.blocks.Free(bid)
	b.BeginTick()

	var lines int
	require.NotPanics(t, func() { lines = b.ClearRows() })

	assert.Zero(t, lines, "the row is no longer full")
	assert.Equal(t, []FaultKind{FaultDanglingBlock}, rec.faults)
	assert.True(t, b.Grid().Query(core.V(1, 0)).Free())
	assert.Equal(t, 3, b.BlockCount())
	require.NoError(t, b.Verify())
}

func TestClearRowsSkipsDanglingShape(t *testing.T) {
	b, rec := observedBoard(4, 3)
	fillRow(b, 0, single)
	blk, _ := b.Block(b.Grid().Query(core.V(1, 0)).Block)
	b.shapes.Free(blk.Shape)
	b.BeginTick()

	var lines int
	require.NotPanics(t, func() { lines = b.ClearRows() })

	assert.Equal(t, 1, lines)
	assert.Equal(t, []FaultKind{FaultDanglingShape}, rec.faults)
	assert.Equal(t, 1, rec.lines)
	assert.Zero(t, b.BlockCount())
	assert.Zero(t, b.ShapeCount())
	require.NoError(t, b.Verify())
}

func TestClearRowsReportsMissingOffset(t *testing.T) {
	b, rec := observedBoard(4, 3)
	id, _ := b.Insert(core.V(0, 0), tmpl(core.V(0, 0), core.V(1, 0)))
	fillRow(b, 0, single)
	s, _ := b.Shape(id)
	s.Offsets = []core.Vec{core.V(1, 0)}
	s.recalc()
	b.BeginTick()

	var lines int
	require.NotPanics(t, func() { lines = b.ClearRows() })

	assert.Equal(t, 1, lines)
	assert.Equal(t, []FaultKind{FaultOffsetMissing}, rec.faults)
	_, live := b.Shape(id)
	assert.False(t, live, "the remaining offset was cleared too")
	assert.Zero(t, b.BlockCount())
	require.NoError(t, b.Verify())
}
