package fracture

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fracture/internal/board"
	"github.com/vovakirdan/fracture/internal/config"
)

// HeadlessOptions configures a run without a terminal.
type HeadlessOptions struct {
	Mode     Mode
	Seed     int64
	Ticks    int
	Config   config.FractureConfig
	Observer board.Observer
	Logger   *log.Logger
	// VerifyEvery runs Board.Verify every N ticks; 0 disables it.
	VerifyEvery int
	// StopOnGameOver ends the run at the first game over instead of
	// starting a fresh board.
	StopOnGameOver bool
}

// Report summarizes a headless run.
type Report struct {
	Ticks     int
	Games     int
	Score     int // best score over all games
	Lines     int // total over all games
	MaxChain  int
	Splits    int
	Spawns    int
	Faults    int
	GameOvers int
}

// RunHeadless drives the engine with a seeded random input stream. It
// returns the first verification failure, wrapped with the tick it occurred on.
func RunHeadless(opts HeadlessOptions) (Report, error) {
	if opts.Logger == nil {
		opts.Logger = logger
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	newSim := func() *board.Simulation {
		deck := board.NewBagDeck(board.StandardTemplates(), rng.Int63())
		if opts.Mode == ModeLightning {
			deck.FastChance = opts.Config.Powers.FastChance
		}
		cfg := SimConfig(opts.Config, opts.Logger)
		cfg.Board.Observer = opts.Observer
		return board.NewSimulation(cfg, deck)
	}

	var rep Report
	sim := newSim()
	rep.Games = 1
	faults := 0
	finish := func() {
		sc := sim.Scorer()
		rep.Score = max(rep.Score, sc.Score())
		rep.Lines += sc.Lines()
		rep.MaxChain = max(rep.MaxChain, sc.MaxChain())
		faults += sim.Board().Faults()
	}

	for tick := 1; tick <= opts.Ticks; tick++ {
		if rng.Intn(3) == 0 {
			sim.Press(board.Intent(rng.Intn(4)))
		}
		var held board.Held
		if rng.Intn(5) == 0 {
			held = held.With(board.Intent(rng.Intn(3)))
		}

		out := sim.Step(held)
		rep.Ticks++
		rep.Splits += out.Splits
		if out.Spawned {
			rep.Spawns++
		}

		if opts.VerifyEvery > 0 && tick%opts.VerifyEvery == 0 {
			if err := sim.Board().Verify(); err != nil {
				finish()
				rep.Faults = faults
				return rep, fmt.Errorf("tick %d: %w", tick, err)
			}
		}

		if out.SpawnFailed && sim.SpawnFailures() >= opts.Config.Board.GameOverAfterFailedSpawns {
			rep.GameOvers++
			finish()
			opts.Logger.Debug("game over", "tick", tick, "score", sim.Score())
			if opts.StopOnGameOver {
				rep.Faults = faults
				return rep, nil
			}
			sim = newSim()
			rep.Games++
		}
	}
	finish()
	rep.Faults = faults
	return rep, nil
}
