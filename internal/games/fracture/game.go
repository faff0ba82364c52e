// Package fracture wraps the board engine as a playable registry.Game: it
// paces logical ticks against platform frames, maps actions to intents,
// handles pause, restart and game over, and renders to a core.Screen.
package fracture

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fracture/internal/board"
	"github.com/vovakirdan/fracture/internal/config"
	"github.com/vovakirdan/fracture/internal/core"
	"github.com/vovakirdan/fracture/internal/registry"
)

// Mode selects the rule set.
type Mode string

const (
	ModeClassic   Mode = "fracture"
	ModeLightning Mode = "lightning" // some shapes carry fast blocks
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives engine diagnostics; discarded unless SetLogger is called
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger routes engine logs to l.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game is a fracture session.
type Game struct {
	mode Mode

	cfg        config.FractureConfig
	difficulty *config.DifficultyManager
	runtime    core.RuntimeConfig
	rng        *rand.Rand

	sim  *board.Simulation
	view *viewCache

	frame    uint64
	frameDur time.Duration
	accum    time.Duration // frame time owed to the next logical tick

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewLightning creates a game in lightning mode.
func NewLightning() *Game {
	return &Game{mode: ModeLightning}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeLightning), func() registry.Game {
		return NewLightning()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeLightning {
		return "Fracture (Lightning)"
	}
	return "Fracture"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = rt
	g.rng = rand.New(rand.NewSource(rt.Seed))

	// Load game config
	cfg, err := config.LoadFracture(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultFractureConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyFracturePreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	deck := board.NewBagDeck(board.StandardTemplates(), rt.Seed)
	if g.mode == ModeLightning {
		deck.FastChance = cfg.Powers.FastChance
	}
	simCfg := SimConfig(cfg, logger)
	simCfg.TickDuration = g.difficulty.TickDuration(cfg.Timing.TicksPerSecond, 0, 0)
	g.sim = board.NewSimulation(simCfg, deck)
	g.view = newViewCache(cfg.Board.Width, cfg.Board.Height)

	g.frame = 0
	g.frameDur = time.Second / time.Duration(rt.TickRate)
	g.accum = 0
	g.gameOver = false
	g.paused = false
	g.tooSmall = rt.ScreenW < g.minWidth() || rt.ScreenH < g.minHeight()
}

// Resize records new screen dimensions without restarting the run. The
// simulation pauses while the screen is too small for the well.
func (g *Game) Resize(rt core.RuntimeConfig) {
	g.runtime.ScreenW = rt.ScreenW
	g.runtime.ScreenH = rt.ScreenH
	g.tooSmall = rt.ScreenW < g.minWidth() || rt.ScreenH < g.minHeight()
}

// SimConfig builds the engine configuration described by cfg.
func SimConfig(cfg config.FractureConfig, l *log.Logger) board.Config {
	return board.Config{
		Board: board.Options{
			Width:                  cfg.Board.Width,
			Height:                 cfg.Board.Height,
			RemnantInheritsControl: cfg.Control.RemnantInherits,
			LockDelay:              cfg.Control.LockDelay,
			MaxDropWait:            cfg.Control.MaxDropWait,
			Logger:                 l,
		},
		TickDuration:    cfg.TickDuration(),
		AutorepeatDelay: cfg.Input.AutorepeatDelay,
		VerifyEveryTick: cfg.Debug.VerifyEveryTick,
	}
}

// intentFor maps platform actions to board intents.
var intentFor = map[core.Action]board.Intent{
	core.ActionMoveLeft:  board.IntentLeft,
	core.ActionMoveRight: board.IntentRight,
	core.ActionMoveDown:  board.IntentDown,
	core.ActionRotate:    board.IntentRotate,
}

// Step advances the game by one platform frame. A logical tick runs once
// enough frame time has accumulated for the current gravity speed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frame++

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		rt := g.runtime
		rt.Seed = g.rng.Int63()
		g.Reset(rt)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	var held board.Held
	for _, a := range []core.Action{core.ActionMoveLeft, core.ActionMoveRight, core.ActionMoveDown, core.ActionRotate} {
		intent := intentFor[a]
		if in.Has(a) {
			g.sim.Press(intent)
		}
		if in.IsHeld(a) {
			held = held.With(intent)
		}
	}

	g.accum += g.frameDur
	tick := g.sim.TickDuration()
	if g.accum < tick {
		return core.StepResult{State: g.State()}
	}
	g.accum -= tick

	out := g.sim.Step(held)
	if out.SpawnFailed && g.sim.SpawnFailures() >= g.cfg.Board.GameOverAfterFailedSpawns {
		g.gameOver = true
		logger.Info("game over", "mode", g.mode, "score", g.sim.Score(), "ticks", out.Tick)
	}
	g.sim.SetTickDuration(g.difficulty.TickDuration(
		g.cfg.Timing.TicksPerSecond, g.sim.Score(), int(g.sim.Ticks())))

	return core.StepResult{State: g.State(), Ticked: true}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	sc := g.sim.Scorer()
	return core.GameState{
		Score:    sc.Score(),
		Lines:    sc.Lines(),
		MaxChain: sc.MaxChain(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Ticks returns the number of logical ticks simulated since the last reset.
func (g *Game) Ticks() uint64 {
	return g.sim.Ticks()
}
