package fracture

import (
	"strings"

	"github.com/vovakirdan/fracture/internal/core"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Frame    uint64
	Mode     string
	Score    int
	Lines    int
	MaxChain int
	Shapes   int
	Blocks   int
	GameOver bool
	Rows     []string // top row first; '#' occupied, '@' controlled, '.' empty
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	b := g.sim.Board()
	sc := g.sim.Scorer()
	w, h := b.Grid().Width(), b.Grid().Height()

	rows := make([]string, 0, h)
	var sb strings.Builder
	for y := h - 1; y >= 0; y-- {
		sb.Reset()
		for x := 0; x < w; x++ {
			app, ok := b.Resolve(core.V(x, y))
			switch {
			case !ok:
				sb.WriteByte('.')
			case app.Controlled:
				sb.WriteByte('@')
			default:
				sb.WriteByte('#')
			}
		}
		rows = append(rows, sb.String())
	}

	return Snapshot{
		Tick:     g.sim.Ticks(),
		Frame:    g.frame,
		Mode:     string(g.mode),
		Score:    sc.Score(),
		Lines:    sc.Lines(),
		MaxChain: sc.MaxChain(),
		Shapes:   b.ShapeCount(),
		Blocks:   b.BlockCount(),
		GameOver: g.gameOver,
		Rows:     rows,
	}
}
