// Package tui provides the Bubble Tea front end: the game loop model, the
// mode menu, and the scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a platform frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the given
// frame rate.
func tickCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
