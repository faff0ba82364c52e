// fracture is a terminal falling-block puzzle in which cleared rows can tear
// pieces apart.
//
// Usage:
//
//	fracture list              - List available modes
//	fracture play [mode]       - Play a mode, or pick one from the menu
//	fracture scores [mode]     - Show the best runs
//	fracture sim               - Run the engine headless and check consistency
//	fracture config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.fracture/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import modes to register them
	"github.com/vovakirdan/fracture/internal/games/fracture"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fracture",
	Short: "Fracture - a falling-block puzzle where cleared rows break pieces",
	Long: `Fracture is a falling-block puzzle for the terminal. Clearing a row
removes only the cells in that row; pieces cut in two keep falling as
separate pieces. Rows cleared on consecutive ticks form a chain worth
chain² points.

Available commands:
  list     - Show all available modes
  play     - Play a mode (menu when no mode is given)
  scores   - View the best runs
  sim      - Run headless with random input and verify the board
  config   - Print the default configuration

Examples:
  fracture play
  fracture play lightning --difficulty hard
  fracture scores fracture
  fracture sim --ticks 100000 --seed 7`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		fracture.SetLogger(newLogger(os.Stderr))
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fracture/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fracture",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}
