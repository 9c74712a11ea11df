package test

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

type immediateModel interface {
	ViewRect(dl *render.DisplayContext, box layout.Box)
}

// Frame is a single rendered frame. It keeps the display context so tests
// can click on what was drawn.
type Frame struct {
	Output string
	dl     *render.DisplayContext
}

// Render draws model into a width by height buffer.
func Render(model immediateModel, width, height int) Frame {
	dl := render.NewDisplayContext()
	model.ViewRect(dl, layout.NewBox(cellbuf.Rect(0, 0, width, height)))
	return Frame{Output: dl.RenderToString(width, height), dl: dl}
}

// RenderImmediate returns the output of Render.
func RenderImmediate(model immediateModel, width, height int) string {
	return Render(model, width, height).Output
}

// Click presses the left button at x, y and returns the message of the
// interaction under the pointer, or nil.
func (f Frame) Click(x, y int) tea.Msg {
	return f.press(x, y, tea.MouseButtonLeft)
}

// ContextClick is Click with the right button.
func (f Frame) ContextClick(x, y int) tea.Msg {
	return f.press(x, y, tea.MouseButtonRight)
}

func (f Frame) press(x, y int, button tea.MouseButton) tea.Msg {
	msg, _ := f.dl.ProcessMouseEvent(tea.MouseMsg{X: x, Y: y, Button: button, Action: tea.MouseActionPress})
	return msg
}
