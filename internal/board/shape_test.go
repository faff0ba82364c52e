package board

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/fracture/internal/core"
)

func TestPivotSnapsToHalfCell(t *testing.T) {
	tests := []struct {
		name     string
		centroid core.VecF
		want     core.VecF
	}{
		{"integral", core.VecF{X: 1, Y: -2}, core.VecF{X: 1, Y: -2}},
		{"half", core.VecF{X: 0.5, Y: -0.5}, core.VecF{X: 0.5, Y: -0.5}},
		{"quarter rounds up", core.VecF{X: 0.25, Y: -0.25}, core.VecF{X: 0.5, Y: 0}},
		{"third", core.VecF{X: 1.0 / 3, Y: 2.0 / 3}, core.VecF{X: 0.5, Y: 0.5}},
		{"below quarter", core.VecF{X: 0.2, Y: -0.2}, core.VecF{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Shape{Centroid: tt.centroid}
			assert.Equal(t, tt.want, s.Pivot())
		})
	}
}

func TestHalfToCell(t *testing.T) {
	tests := []struct{ in, want int }{
		{-4, -2}, {-3, -1}, {-2, -1}, {-1, 0}, {0, 0}, {1, 1}, {2, 1}, {3, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, halfToCell(tt.in), "halfToCell(%d)", tt.in)
	}
}

func randomShape(rng *rand.Rand) []core.Vec {
	n := 1 + rng.Intn(6)
	seen := map[core.Vec]bool{}
	var out []core.Vec
	for len(out) < n {
		v := core.V(rng.Intn(5)-2, rng.Intn(5)-2)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func TestRotatedIsInjective(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 2000 {
		s := &Shape{Offsets: randomShape(rng)}
		s.recalc()
		for _, fwd := range []bool{true, false} {
			got := s.Rotated(fwd)
			uniq := slices.Clone(got)
			slices.SortFunc(uniq, core.Vec.Compare)
			uniq = slices.Compact(uniq)
			require.Len(t, uniq, len(s.Offsets), "offsets %v rotated to %v", s.Offsets, got)
		}
	}
}

func TestCanRotateAgreesWithRotate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := range 500 {
		b := testBoard(8, 8)
		id, ok := b.Insert(core.V(4, 4), tmpl(randomShape(rng)...))
		require.True(t, ok)
		for range 6 {
			b.Insert(core.V(rng.Intn(8), rng.Intn(8)), single)
		}

		s, _ := b.Shape(id)
		fwd := i%2 == 0
		want := s.Rotated(fwd)
		can := s.CanRotate(b.Grid(), fwd)
		before := capture(b)

		did := b.Rotate(id, fwd)
		require.Equal(t, can, did, "case %d", i)
		if did {
			s, _ = b.Shape(id)
			assert.Equal(t, want, s.Offsets)
		} else {
			assert.Equal(t, before, capture(b))
		}
		require.NoError(t, b.Verify())
	}
}

func TestRemoveOffsetByValue(t *testing.T) {
	s := &Shape{Offsets: []core.Vec{core.V(0, 0), core.V(1, 0), core.V(2, 0)}}
	s.recalc()

	require.True(t, s.removeOffset(core.V(1, 0)))
	assert.Equal(t, []core.Vec{core.V(0, 0), core.V(2, 0)}, s.Offsets)
	assert.Equal(t, core.VecF{X: 1, Y: 0}, s.Centroid)
	assert.True(t, s.changed)

	assert.False(t, s.removeOffset(core.V(5, 5)))
}
