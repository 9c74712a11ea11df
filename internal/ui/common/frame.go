package common

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/layerview/internal/signal"
)

// FrameInterval is how long an animation frame request waits before firing.
var FrameInterval = 8 * time.Millisecond

// AnimationFrame delivers msg on the next frame. Requests with the same
// identifier coalesce into one.
func AnimationFrame(identifier string, msg tea.Msg) tea.Cmd {
	return Debounce(identifier, FrameInterval, func() tea.Msg {
		return msg
	})
}

// Display is the frame clock shared by the views. UpdateStarted fires right
// before a frame is drawn, while layout may still change.
type Display struct {
	UpdateStarted signal.Signal
}

func NewDisplay() *Display {
	return &Display{}
}

// BeginFrame notifies listeners that a frame is about to be drawn.
func (d *Display) BeginFrame() {
	d.UpdateStarted.Dispatch()
}
