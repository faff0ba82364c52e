package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fracture/internal/core"
	"github.com/vovakirdan/fracture/internal/registry"
	"github.com/vovakirdan/fracture/internal/storage"
)

// Options tunes the game model.
type Options struct {
	// ReleaseAfter is how long a key counts as held after its last key
	// event. Terminals only report presses and repeats, never releases.
	ReleaseAfter time.Duration
	// ScreenshotDir receives ctrl+s captures.
	ScreenshotDir string
	Logger        *log.Logger
}

// ticker is implemented by games that count logical ticks separately from
// frames.
type ticker interface {
	Ticks() uint64
}

// resizer is implemented by games that can adapt to a new screen size
// without a reset.
type resizer interface {
	Resize(core.RuntimeConfig)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	lastSeen   map[core.Action]time.Time
	now        func() time.Time
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the run has been saved for current game over
}

// helpRows is the number of terminal rows reserved below the game screen.
const helpRows = 1

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.ReleaseAfter <= 0 {
		opts.ReleaseAfter = 150 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cfg.ScreenH = max(cfg.ScreenH-helpRows, 0)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		lastSeen:   make(map[core.Action]time.Time),
		now:        time.Now,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Movement keys produce a press edge
// only when the key was not already held; repeats just extend the hold.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
		return m, nil
	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)
		return m, nil
	}

	now := m.now()
	if !m.isHeld(action, now) {
		m.inputFrame.Set(action)
	}
	m.lastSeen[action] = now
	return m, nil
}

func (m Model) isHeld(a core.Action, now time.Time) bool {
	last, ok := m.lastSeen[a]
	return ok && now.Sub(last) <= m.opts.ReleaseAfter
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-helpRows, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config)
		return m, nil
	}
	// Games without Resize restart at the new dimensions.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs one platform frame.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	now := m.now()
	for _, a := range holdable {
		m.inputFrame.Hold(a, m.isHeld(a, now))
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear press edges for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished run. Failures are logged and play continues.
func (m Model) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	run := storage.Run{
		Mode:     m.game.ID(),
		Seed:     m.config.Seed,
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		MaxChain: m.gameState.MaxChain,
	}
	if t, ok := m.game.(ticker); ok {
		run.Ticks = t.Ticks()
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.opts.Logger.Error("saving run", "err", err)
		return
	}
	m.opts.Logger.Info("run saved", "id", id, "mode", run.Mode, "score", run.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".fracture", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot directory", "dir", dir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot", "path", path, "err", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
