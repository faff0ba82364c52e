package board

import (
	"cmp"
	"slices"
	"time"

	"github.com/vovakirdan/fracture/internal/core"
)

// Config configures a Simulation.
type Config struct {
	Board Options

	// TickDuration is the wall-clock length of one logical tick. It drives the
	// autorepeat timers.
	TickDuration time.Duration
	// AutorepeatDelay is how long an intent must be held before it repeats on
	// every tick.
	AutorepeatDelay time.Duration
	// VerifyEveryTick runs Verify after each tick and logs violations.
	VerifyEveryTick bool
}

// DefaultConfig returns the classic settings: 10x20 board, 4 ticks per
// second, 0.5s autorepeat delay.
func DefaultConfig() Config {
	return Config{
		Board:           DefaultOptions(),
		TickDuration:    250 * time.Millisecond,
		AutorepeatDelay: 500 * time.Millisecond,
	}
}

// TickOutcome summarizes one tick. The spawn scheduler and the chain
// finalizer each read it independently.
type TickOutcome struct {
	Tick        uint64
	Mutated     bool // the grid changed since the previous tick's outcome
	Lines       int
	Splits      int
	Spawned     bool
	SpawnFailed bool
	ScoreDelta  int
	Detached    int
}

// Simulation runs the ordered per-tick pipeline over a Board.
// It is not safe for concurrent use.
type Simulation struct {
	cfg    Config
	board  *Board
	deck   Deck
	scorer ChainScorer

	tick          uint64
	lastMutations uint64
	prev          TickOutcome

	pending       *Template
	spawnFailures int
	holdTime      [intentCount]time.Duration
}

// NewSimulation creates a simulation on a fresh board fed by deck.
func NewSimulation(cfg Config, deck Deck) *Simulation {
	if cfg.TickDuration <= 0 {
		cfg.TickDuration = DefaultConfig().TickDuration
	}
	if cfg.AutorepeatDelay <= 0 {
		cfg.AutorepeatDelay = DefaultConfig().AutorepeatDelay
	}
	b := New(cfg.Board)
	return &Simulation{
		cfg:   cfg,
		board: b,
		deck:  deck,
	}
}

// Board returns the simulated board.
func (s *Simulation) Board() *Board { return s.board }

// Score returns the banked score.
func (s *Simulation) Score() int { return s.scorer.Score() }

// Scorer returns the chain scorer for run statistics.
func (s *Simulation) Scorer() *ChainScorer { return &s.scorer }

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() uint64 { return s.tick }

// Last returns the outcome of the most recent tick.
func (s *Simulation) Last() TickOutcome { return s.prev }

// SpawnFailures returns the number of consecutive ticks on which a due
// spawn found no position.
func (s *Simulation) SpawnFailures() int { return s.spawnFailures }

// SetTickDuration changes the logical tick length, e.g. when the gravity
// speed increases.
func (s *Simulation) SetTickDuration(d time.Duration) {
	if d > 0 {
		s.cfg.TickDuration = d
	}
}

// TickDuration returns the logical tick length.
func (s *Simulation) TickDuration() time.Duration { return s.cfg.TickDuration }

// Press applies a press edge immediately to the controlled shapes.
// Grid changes made here count toward the next tick's outcome, and a
// successful move resets the lock delay of the shapes it moved.
func (s *Simulation) Press(in Intent) bool {
	if in >= intentCount {
		return false
	}
	s.holdTime[in] = 0
	return s.board.apply(0, in)
}

// Step advances the simulation by one tick with the given held intents.
func (s *Simulation) Step(held Held) TickOutcome {
	s.tick++
	out := TickOutcome{Tick: s.tick}
	b := s.board

	b.BeginTick()
	s.autorepeat(held)
	s.gravity()

	if !b.AnyControlled() && !s.prev.Mutated {
		out.Spawned, out.SpawnFailed = s.spawn()
	}

	out.Lines = b.ClearRows()
	s.scorer.Add(out.Lines)
	out.Splits = b.SplitChanged()

	muts := b.grid.Mutations()
	out.Mutated = muts != s.lastMutations
	s.lastMutations = muts

	chain := s.scorer.Chain()
	out.ScoreDelta = s.scorer.Finalize(out)
	if out.ScoreDelta > 0 {
		b.logger.Debug("chain banked", "chain", chain, "delta", out.ScoreDelta, "score", s.scorer.Score())
		b.observer.OnChainBanked(chain, out.ScoreDelta)
	}
	out.Detached = len(b.ageControls())

	if s.cfg.VerifyEveryTick {
		if err := b.Verify(); err != nil {
			b.logger.Error("board verification failed", "tick", s.tick, "err", err)
		}
	}
	s.prev = out
	return out
}

func (s *Simulation) autorepeat(held Held) {
	for in := IntentLeft; in < intentCount; in++ {
		if !held.Has(in) {
			s.holdTime[in] = 0
			continue
		}
		s.holdTime[in] += s.cfg.TickDuration
		if in == IntentRotate {
			continue
		}
		if s.holdTime[in] >= s.cfg.AutorepeatDelay {
			s.board.apply(0, in)
		}
	}
}

// gravity drops every shape by one row, lowest shapes first so stacked
// shapes fall together.
func (s *Simulation) gravity() {
	b := s.board
	type entry struct {
		id  ShapeID
		low int
	}
	ids := b.shapes.Handles()
	order := make([]entry, 0, len(ids))
	for _, id := range ids {
		sh, _ := b.shapes.Get(id)
		low := b.grid.Height()
		for _, off := range sh.Offsets {
			low = min(low, sh.Center.Y+off.Y)
		}
		order = append(order, entry{id: id, low: low})
	}
	slices.SortFunc(order, func(a, c entry) int {
		if a.low != c.low {
			return a.low - c.low
		}
		return cmp.Compare(a.id, c.id)
	})
	for _, e := range order {
		b.Translate(e.id, core.Down)
	}
}

func (s *Simulation) spawn() (spawned, failed bool) {
	if s.pending == nil {
		t := s.deck.Next()
		s.pending = &t
	}
	if _, ok := s.board.Spawn(*s.pending); !ok {
		s.spawnFailures++
		return false, true
	}
	s.pending = nil
	s.spawnFailures = 0
	return true, false
}
