package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fracture/internal/config"
	"github.com/vovakirdan/fracture/internal/core"
	"github.com/vovakirdan/fracture/internal/games/fracture"
	"github.com/vovakirdan/fracture/internal/platform/tui"
	"github.com/vovakirdan/fracture/internal/registry"
	"github.com/vovakirdan/fracture/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Without a mode, a menu lists the modes
and the scoreboard; you return to it after each game.

Controls:
  Left/Right, A/D  - Move
  Down/S           - Drop (hold to keep dropping)
  Up/W/Space       - Rotate
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, longer lock delay
  normal - Start at 30% speed-up, progresses to max
  hard   - Start at 70% speed-up, short lock delay
  fixed  - No progression, stays at config's initial level

Examples:
  fracture play
  fracture play lightning
  fracture play fracture --difficulty hard
  fracture play --config ./my-fracture.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'fracture list' to see available modes.")
		os.Exit(1)
	}

	gameCfg, err := config.LoadFracture(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog := openLogFile(gameCfg.Debug.LogFile)
	defer closeLog()
	fracture.SetLogger(logger)
	fracture.SetConfigPath(flagConfig)
	fracture.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	opts := tui.Options{
		ReleaseAfter: gameCfg.Input.ReleaseAfter,
		Logger:       logger,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		if err := playMode(args[0], store, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}
	menuLoop(store, cfg, opts)
}

func playMode(id string, store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}
	return tui.Run(game, store, cfg, opts)
}

// menuLoop alternates between the mode menu, the scoreboard and games until
// the player quits.
func menuLoop(store *storage.Store, cfg core.RuntimeConfig, opts tui.Options) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		switch {
		case menuResult.Quit:
			return
		case menuResult.WantsScoreboard:
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return
			}
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if err := playMode(menuResult.GameID, store, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}

// openLogFile opens path (default ~/.fracture/fracture.log) for appending.
// When the file cannot be opened, logs are discarded.
func openLogFile(path string) (*log.Logger, func()) {
	if path == "" {
		home := config.HomeDir()
		if home == "" {
			return newLogger(io.Discard), func() {}
		}
		path = filepath.Join(home, "fracture.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}
