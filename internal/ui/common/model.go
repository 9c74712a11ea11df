package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

// ImmediateModel is a view that draws itself into a display context every
// frame instead of returning a string.
type ImmediateModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	ViewRect(dl *render.DisplayContext, box layout.Box)
}
