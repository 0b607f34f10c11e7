// Package tui provides the Bubble Tea integration for the steploop
// platform. It is the refresh-synced frame trigger: tea.Tick fires at
// the render rate while the scheduler decides how many fixed updates
// each frame is worth.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger one render frame.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at
// the given render rate.
func frameCmd(frameRate int) tea.Cmd {
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
