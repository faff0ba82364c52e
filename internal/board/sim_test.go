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

type fixedDeck struct{ t Template }

func (d fixedDeck) Next() Template { return d.t }

func testSim(w, h int, deck Deck) (*Simulation, *recorder) {
	rec := &recorder{}
	cfg := DefaultConfig()
	cfg.Board.Width, cfg.Board.Height = w, h
	cfg.Board.Logger = log.New(io.Discard)
	cfg.Board.Observer = rec
	return NewSimulation(cfg, deck), rec
}

func controlledCenter(t *testing.T, s *Simulation) core.Vec {
	t.Helper()
	ids := s.Board().Controlled(0)
	require.Len(t, ids, 1)
	sh, _ := s.Board().Shape(ids[0])
	return sh.Center
}

func TestSimSpawnGate(t *testing.T) {
	s, _ := testSim(10, 20, fixedDeck{single})

	out := s.Step(0)
	assert.True(t, out.Spawned)
	assert.True(t, out.Mutated)
	assert.Equal(t, core.V(5, 19), controlledCenter(t, s))

	out = s.Step(0)
	assert.False(t, out.Spawned, "a controlled shape blocks spawning")
	assert.Equal(t, core.V(5, 18), controlledCenter(t, s))
	assert.Equal(t, uint64(2), s.Ticks())
}

func TestSimPieceLocksOnFloor(t *testing.T) {
	s, _ := testSim(10, 3, fixedDeck{single})

	s.Step(0) // spawn at row 2
	s.Step(0) // row 1
	s.Step(0) // row 0
	require.Equal(t, core.V(5, 0), controlledCenter(t, s))

	out := s.Step(0)
	assert.False(t, out.Mutated)
	assert.False(t, out.Spawned)
	assert.Equal(t, 1, out.Detached)
	assert.False(t, s.Board().AnyControlled())

	out = s.Step(0)
	assert.True(t, out.Spawned, "quiet tick without control lets the next shape in")
	assert.Equal(t, 2, s.Board().ShapeCount())
}

func TestSimPressDownHardLocks(t *testing.T) {
	s, _ := testSim(10, 3, fixedDeck{single})
	s.Step(0)

	assert.True(t, s.Press(IntentDown))
	assert.True(t, s.Press(IntentDown))
	assert.Equal(t, core.V(5, 0), controlledCenter(t, s))

	assert.False(t, s.Press(IntentDown))
	assert.False(t, s.Board().AnyControlled())
}

func TestSimPressMovesImmediately(t *testing.T) {
	s, _ := testSim(10, 20, fixedDeck{single})
	s.Step(0)

	assert.True(t, s.Press(IntentLeft))
	assert.Equal(t, core.V(4, 19), controlledCenter(t, s))
	assert.True(t, s.Press(IntentRight))
	assert.True(t, s.Press(IntentRight))
	assert.Equal(t, core.V(6, 19), controlledCenter(t, s))

	out := s.Step(0)
	assert.True(t, out.Mutated)
}

func TestSimPressRestartsLockDelay(t *testing.T) {
	s, _ := testSim(10, 3, fixedDeck{single})
	for range 3 {
		s.Step(0)
	}
	require.Equal(t, core.V(5, 0), controlledCenter(t, s))

	require.True(t, s.Press(IntentLeft))
	out := s.Step(0)
	assert.Equal(t, 0, out.Detached, "a sideways press keeps a grounded shape in play")
	assert.Equal(t, core.V(4, 0), controlledCenter(t, s))

	require.True(t, s.Press(IntentRight))
	out = s.Step(0)
	assert.Equal(t, 0, out.Detached)

	out = s.Step(0)
	assert.Equal(t, 1, out.Detached, "a tick without input locks it")
	assert.False(t, s.Board().AnyControlled())
}

func TestSimPressCannotOutlastDropWait(t *testing.T) {
	s, _ := testSim(10, 3, fixedDeck{single})
	for range 3 {
		s.Step(0)
	}

	detachedAt := 0
	for i := 1; i <= 5 && detachedAt == 0; i++ {
		if i%2 == 1 {
			s.Press(IntentLeft)
		} else {
			s.Press(IntentRight)
		}
		if s.Step(0).Detached > 0 {
			detachedAt = i
		}
	}
	assert.Equal(t, 3, detachedAt, "MaxDropWait bounds sliding on the floor")
}

func TestSimAutorepeat(t *testing.T) {
	s, _ := testSim(10, 20, fixedDeck{single})
	s.Step(0)
	held := Held(0).With(IntentLeft)

	s.Step(held)
	assert.Equal(t, 5, controlledCenter(t, s).X, "not held long enough")
	s.Step(held)
	assert.Equal(t, 4, controlledCenter(t, s).X)
	s.Step(held)
	assert.Equal(t, 3, controlledCenter(t, s).X, "repeats every tick once armed")

	s.Step(0)
	s.Step(held)
	assert.Equal(t, 3, controlledCenter(t, s).X, "release resets the timer")
}

func TestSimBanksChainWhenQuiet(t *testing.T) {
	s, rec := testSim(4, 6, fixedDeck{single})
	for x := 0; x < 3; x++ {
		_, ok := s.Board().Insert(core.V(x, 0), single)
		require.True(t, ok)
	}

	s.Step(0)
	require.True(t, s.Press(IntentRight))

	for range 40 {
		if s.Score() > 0 {
			break
		}
		s.Step(0)
	}
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, 1, s.Scorer().Lines())
	assert.Equal(t, []int{1}, rec.banked)
	require.NoError(t, s.Board().Verify())
}

func TestSimGameOverSignal(t *testing.T) {
	s, _ := testSim(3, 3, fixedDeck{StandardTemplates()[0]})

	out := s.Step(0)
	assert.True(t, out.SpawnFailed)
	assert.False(t, out.Mutated)
	s.Step(0)
	assert.Equal(t, 2, s.SpawnFailures())
}

// randomDriver feeds presses and held intents from its own rng.
func randomDriver(s *Simulation, rng *rand.Rand, ticks int, each func()) {
	for range ticks {
		if rng.Intn(3) == 0 {
			s.Press(Intent(rng.Intn(int(intentCount))))
		}
		var held Held
		for in := IntentLeft; in < intentCount; in++ {
			if rng.Intn(4) == 0 {
				held = held.With(in)
			}
		}
		s.Step(held)
		if each != nil {
			each()
		}
	}
}

func TestSimKeepsBoardConsistent(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		deck := NewBagDeck(nil, seed)
		deck.FastChance = 0.2
		cfg := DefaultConfig()
		cfg.Board.Logger = log.New(io.Discard)
		cfg.Board.RemnantInheritsControl = seed%2 == 0
		s := NewSimulation(cfg, deck)

		rng := rand.New(rand.NewSource(seed))
		randomDriver(s, rng, 1500, func() {
			require.NoError(t, s.Board().Verify(), "seed %d tick %d", seed, s.Ticks())
		})
		assert.Zero(t, s.Board().Faults(), "seed %d", seed)
	}
}

func TestSimDeterministic(t *testing.T) {
	run := func() (gridState, int) {
		deck := NewBagDeck(nil, 99)
		deck.FastChance = 0.1
		cfg := DefaultConfig()
		cfg.Board.Logger = log.New(io.Discard)
		s := NewSimulation(cfg, deck)
		randomDriver(s, rand.New(rand.NewSource(99)), 800, nil)
		return capture(s.Board()), s.Score()
	}

	g1, s1 := run()
	g2, s2 := run()
	assert.Equal(t, g1, g2)
	assert.Equal(t, s1, s2)
}
