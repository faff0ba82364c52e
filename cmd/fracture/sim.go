package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fracture/internal/config"
	"github.com/vovakirdan/fracture/internal/games/fracture"
	"github.com/vovakirdan/fracture/internal/telemetry"
)

var (
	flagSimTicks   int
	flagSimMode    string
	flagSimVerify  int
	flagSimMetrics bool
	flagSimConfig  string
	flagSimStop    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the engine headless with random input",
	Long: `Drive the engine with a seeded random input stream and check the board
for consistency. Exits with status 1 on the first verification failure.

Examples:
  fracture sim --ticks 100000
  fracture sim --mode lightning --seed 42 --metrics`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Logical ticks to simulate")
	simCmd.Flags().StringVar(&flagSimMode, "mode", string(fracture.ModeClassic), "Mode: fracture or lightning")
	simCmd.Flags().IntVar(&flagSimVerify, "verify-every", 1, "Verify the board every N ticks (0 = never)")
	simCmd.Flags().BoolVar(&flagSimMetrics, "metrics", false, "Print Prometheus metrics after the run")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom config YAML")
	simCmd.Flags().BoolVar(&flagSimStop, "stop-on-game-over", false, "Stop at the first game over")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)

	mode := fracture.Mode(flagSimMode)
	if mode != fracture.ModeClassic && mode != fracture.ModeLightning {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSimMode)
		os.Exit(1)
	}

	cfg, err := config.LoadFracture(flagSimConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	metrics := telemetry.New()
	start := time.Now()
	rep, runErr := fracture.RunHeadless(fracture.HeadlessOptions{
		Mode:           mode,
		Seed:           seed,
		Ticks:          flagSimTicks,
		Config:         cfg,
		Observer:       metrics,
		Logger:         logger,
		VerifyEvery:    flagSimVerify,
		StopOnGameOver: flagSimStop,
	})
	elapsed := time.Since(start)

	fmt.Printf("mode:       %s\n", mode)
	fmt.Printf("seed:       %d\n", seed)
	fmt.Printf("ticks:      %d (%s)\n", rep.Ticks, elapsed.Round(time.Millisecond))
	fmt.Printf("games:      %d (%d game overs)\n", rep.Games, rep.GameOvers)
	fmt.Printf("spawns:     %d\n", rep.Spawns)
	fmt.Printf("lines:      %d\n", rep.Lines)
	fmt.Printf("splits:     %d\n", rep.Splits)
	fmt.Printf("best score: %d\n", rep.Score)
	fmt.Printf("max chain:  %d\n", rep.MaxChain)
	fmt.Printf("faults:     %d\n", rep.Faults)

	if flagSimMetrics {
		fmt.Println()
		if err := metrics.WriteText(os.Stdout); err != nil {
			logger.Error("writing metrics", "err", err)
		}
	}

	if runErr != nil {
		logger.Error("board verification failed", "seed", seed, "err", runErr)
		os.Exit(1)
	}
	if rep.Faults > 0 {
		logger.Error("integrity faults reported", "seed", seed, "faults", rep.Faults)
		os.Exit(1)
	}
}
