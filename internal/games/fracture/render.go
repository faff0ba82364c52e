package fracture

import (
	"fmt"

	"github.com/vovakirdan/fracture/internal/core"
)

const (
	hudRows   = 2 // status line and separator
	cellWidth = 2 // terminal columns per grid cell
)

// viewCell is the cached look of one grid cell.
type viewCell struct {
	filled bool
	color  core.Color
	fast   bool
}

// viewCache mirrors the settled look of the grid. Only cells the grid reports
// dirty are re-resolved each frame.
type viewCache struct {
	width  int
	height int
	cells  []viewCell
}

func newViewCache(width, height int) *viewCache {
	return &viewCache{
		width:  width,
		height: height,
		cells:  make([]viewCell, width*height),
	}
}

func (v *viewCache) at(pos core.Vec) viewCell {
	return v.cells[pos.Y*v.width+pos.X]
}

// refreshView re-resolves the grid cells changed since the previous frame.
func (g *Game) refreshView() {
	b := g.sim.Board()
	for _, pos := range b.Grid().DrainDirty() {
		app, ok := b.Resolve(pos)
		g.view.cells[pos.Y*g.view.width+pos.X] = viewCell{
			filled: ok,
			color:  app.Color,
			fast:   app.Fast,
		}
	}
}

func (g *Game) minWidth() int {
	return g.cfg.Board.Width*cellWidth + 2
}

func (g *Game) minHeight() int {
	return g.cfg.Board.Height + 2 + hudRows
}

// Render draws the game to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.refreshView()

	// Draw HUD
	g.renderHUD(dst)

	if g.tooSmall || dst.Width() < g.minWidth() || dst.Height() < g.minHeight() {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
		return
	}

	ox, oy := g.boardOrigin(dst)
	g.renderWell(dst, ox, oy)
	g.renderCells(dst, ox, oy)
	g.renderControlled(dst, ox, oy)

	// Draw overlays
	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.sim.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// boardOrigin returns the screen position of the well's top-left border.
func (g *Game) boardOrigin(dst *core.Screen) (int, int) {
	x := (dst.Width() - g.minWidth()) / 2
	return x, hudRows
}

// screenPos converts a grid position to the screen column and row of its
// left half. Row 0 of the grid is drawn at the bottom of the well.
func (g *Game) screenPos(ox, oy int, pos core.Vec) (int, int) {
	return ox + 1 + pos.X*cellWidth, oy + 1 + (g.cfg.Board.Height - 1 - pos.Y)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	sc := g.sim.Scorer()
	level := g.difficulty.Level(sc.Score(), int(g.sim.Ticks()))
	hud := fmt.Sprintf(" %s  Score: %d  Lines: %d  Chain: %d  Best chain: %d  Level: %d%%",
		g.Title(), sc.Score(), sc.Lines(), sc.Chain(), sc.MaxChain(), int(level*100))
	dst.DrawText(0, 0, hud)

	// Draw separator
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// renderWell draws the border around the grid.
func (g *Game) renderWell(dst *core.Screen, ox, oy int) {
	dst.DrawBox(core.Rect{X: ox, Y: oy, W: g.minWidth(), H: g.cfg.Board.Height + 2}, core.ColorGray)
}

// renderCells draws every settled or uncontrolled block from the view cache.
func (g *Game) renderCells(dst *core.Screen, ox, oy int) {
	for y := 0; y < g.view.height; y++ {
		for x := 0; x < g.view.width; x++ {
			pos := core.V(x, y)
			c := g.view.at(pos)
			if !c.filled {
				continue
			}
			glyph := '█'
			if c.fast {
				glyph = '▓'
			}
			sx, sy := g.screenPos(ox, oy, pos)
			dst.SetColored(sx, sy, glyph, c.color)
			dst.SetColored(sx+1, sy, glyph, c.color)
		}
	}
}

// renderControlled draws controlled shapes on top of the cache so a shape
// that stops being controlled without moving is redrawn correctly.
func (g *Game) renderControlled(dst *core.Screen, ox, oy int) {
	b := g.sim.Board()
	for _, id := range b.Controlled(0) {
		s, ok := b.Shape(id)
		if !ok {
			continue
		}
		for _, pos := range s.Cells() {
			if !b.Grid().InBounds(pos) {
				continue
			}
			sx, sy := g.screenPos(ox, oy, pos)
			dst.SetColored(sx, sy, '[', s.Color)
			dst.SetColored(sx+1, sy, ']', s.Color)
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(core.Rect{X: boxX, Y: boxY, W: boxW, H: boxH}, core.ColorWhite)

	g.drawCenteredText(dst, line1, boxY+1)
	g.drawCenteredText(dst, line2, boxY+3)
}

// drawCenteredText draws text centered horizontally.
func (g *Game) drawCenteredText(dst *core.Screen, text string, y int) {
	if y < 0 || y >= dst.Height() {
		return
	}
	dst.DrawTextCentered(y, text)
}
