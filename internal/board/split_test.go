package board

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fracture/internal/core"
)

// uBoard builds a 10-wide board with a U-shaped piece whose base sits in row
// 0 at x=3..5, arms in row 1 at x=3 and x=5, and the rest of row 0 filled.
func uBoard(t *testing.T, inherit bool) (*Board, ShapeID) {
	t.Helper()
	opts := DefaultOptions()
	opts.Width, opts.Height = 10, 6
	opts.Logger = log.New(io.Discard)
	opts.RemnantInheritsControl = inherit
	b := New(opts)

	u, ok := b.Insert(core.V(4, 0), tmpl(
		core.V(-1, 1), core.V(-1, 0), core.V(0, 0), core.V(1, 0), core.V(1, 1),
	))
	require.True(t, ok)
	fillRow(b, 0, single)
	b.BeginTick()
	return b, u
}

func TestSplitTearsDisconnectedShape(t *testing.T) {
	b, u := uBoard(t, false)

	require.Equal(t, 1, b.ClearRows())
	require.Equal(t, 1, b.SplitChanged())
	require.Equal(t, 2, b.ShapeCount())

	orig, _ := b.Shape(u)
	assert.Equal(t, []core.Vec{core.V(-1, 1)}, orig.Offsets, "component of the smallest offset stays")
	assert.False(t, orig.Split)

	var remnantID ShapeID
	for _, id := range b.Shapes() {
		if id != u {
			remnantID = id
		}
	}
	rem, _ := b.Shape(remnantID)
	assert.Equal(t, []core.Vec{core.V(1, 1)}, rem.Offsets)
	assert.Equal(t, orig.Center, rem.Center)
	assert.Equal(t, orig.Color, rem.Color)
	assert.True(t, rem.Split)
	assert.Equal(t, core.VecF{X: 1, Y: 1}, rem.Centroid)

	cell := b.Grid().Query(core.V(5, 1))
	blk, ok := b.Block(cell.Block)
	require.True(t, ok)
	assert.Equal(t, remnantID, blk.Shape, "block is reassigned, not recreated")
	require.NoError(t, b.Verify())

	assert.True(t, rem.changed, "remnant is re-examined on the next pass")
	assert.Zero(t, b.SplitChanged())
	assert.False(t, rem.changed)
	assert.Equal(t, 2, b.ShapeCount())
}

func TestSplitConnectedShapeIsKept(t *testing.T) {
	b := testBoard(4, 4)
	id, _ := b.Insert(core.V(1, 0), tmpl(core.V(0, 0), core.V(0, 1), core.V(1, 1)))
	b.Insert(core.V(0, 0), single)
	b.Insert(core.V(2, 0), single)
	b.Insert(core.V(3, 0), single)
	b.BeginTick()

	require.Equal(t, 1, b.ClearRows())
	assert.Zero(t, b.SplitChanged())
	assert.Equal(t, 1, b.ShapeCount())
	assert.Equal(t, sortedVecs(core.V(1, 1), core.V(2, 1)), cellsOf(t, b, id))
}

func TestSplitControlInheritance(t *testing.T) {
	for _, inherit := range []bool{false, true} {
		b, u := uBoard(t, inherit)
		b.Attach(u, 0)
		// Controlled blocks keep the row unsettled; a fast block clears it anyway.
		blk, _ := b.Block(b.Grid().Query(core.V(0, 0)).Block)
		blk.Mods = ModFast

		require.Equal(t, 1, b.ClearRows())
		require.Equal(t, 1, b.SplitChanged())

		want := 1
		if inherit {
			want = 2
		}
		assert.Len(t, b.Controlled(0), want, "inherit=%v", inherit)
		assert.True(t, b.IsControlled(u))
		require.NoError(t, b.Verify())
	}
}

func TestComponentSeedIgnoresOrder(t *testing.T) {
	offsets := []core.Vec{
		core.V(2, 0), core.V(2, 1), core.V(0, 0), core.V(0, 1), core.V(5, 5),
	}
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		rng.Shuffle(len(offsets), func(i, j int) { offsets[i], offsets[j] = offsets[j], offsets[i] })
		got := component(offsets)
		assert.Equal(t, 2, got.Size())
		assert.True(t, got.Has(core.V(0, 0)))
		assert.True(t, got.Has(core.V(0, 1)))
	}
}

func TestSplitPartitionsOffsets(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for range 300 {
		b := testBoard(12, 12)
		id, ok := b.Insert(core.V(6, 6), tmpl(randomShape(rng)...))
		require.True(t, ok)
		s, _ := b.Shape(id)
		s.changed = true
		want := len(s.Offsets)

		rid, split := b.split(id, s)
		if !split {
			assert.Equal(t, want, len(s.Offsets))
			continue
		}
		rem, _ := b.Shape(rid)
		assert.Equal(t, want, len(s.Offsets)+len(rem.Offsets))
		for _, off := range rem.Offsets {
			assert.NotContains(t, s.Offsets, off)
		}
		require.NoError(t, b.Verify())
	}
}
