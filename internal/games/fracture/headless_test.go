package fracture

import (
	"testing"

	"github.com/vovakirdan/fracture/internal/config"
)

func TestRunHeadlessStaysConsistent(t *testing.T) {
	for _, mode := range []Mode{ModeClassic, ModeLightning} {
		t.Run(string(mode), func(t *testing.T) {
			cfg := config.DefaultFractureConfig()
			cfg.Powers.FastChance = 0.5

			rep, err := RunHeadless(HeadlessOptions{
				Mode:        mode,
				Seed:        99,
				Ticks:       3000,
				Config:      cfg,
				VerifyEvery: 1,
			})
			if err != nil {
				t.Fatalf("RunHeadless() failed: %v", err)
			}
			if rep.Ticks != 3000 {
				t.Errorf("Ticks = %d, want 3000", rep.Ticks)
			}
			if rep.Spawns == 0 {
				t.Error("no shapes spawned")
			}
			if rep.Faults != 0 {
				t.Errorf("%d integrity faults", rep.Faults)
			}
			if rep.Games != rep.GameOvers+1 {
				t.Errorf("Games = %d with %d game overs", rep.Games, rep.GameOvers)
			}
		})
	}
}

func TestRunHeadlessDeterministic(t *testing.T) {
	opts := HeadlessOptions{Seed: 5, Ticks: 1500, Config: config.DefaultFractureConfig()}

	a, err := RunHeadless(opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunHeadless(opts)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("reports differ:\n%+v\n%+v", a, b)
	}
}

func TestRunHeadlessStopOnGameOver(t *testing.T) {
	cfg := config.DefaultFractureConfig()
	cfg.Board.Height = 4

	rep, err := RunHeadless(HeadlessOptions{Seed: 1, Ticks: 10000, Config: cfg, StopOnGameOver: true})
	if err != nil {
		t.Fatal(err)
	}
	if rep.GameOvers != 1 || rep.Games != 1 {
		t.Errorf("expected a single game ending in game over, got %+v", rep)
	}
	if rep.Ticks >= 10000 {
		t.Error("run did not stop at game over")
	}
}
