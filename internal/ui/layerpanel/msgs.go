package layerpanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/layerview/internal/ui/render"
)

type (
	// frameMsg runs the deferred update of panel.
	frameMsg struct {
		panel *Panel
	}
	rowPressMsg struct {
		row     *row
		x, y    int
		mods    render.Modifiers
		context bool
	}
	// swallowMsg absorbs clicks on controls that do nothing.
	swallowMsg        struct{}
	resetTimestampMsg struct {
		row *row
	}
	closeRowMsg struct {
		row *row
	}
	undoMsg struct {
		panel *Panel
		undo  func()
	}
	addLayerMsg struct {
		panel   *Panel
		mods    render.Modifiers
		context bool
	}
	cycleLinkMsg struct {
		panel *Panel
	}
	scrollMsg struct {
		panel *Panel
		delta int
	}
	// FocusRequestMsg asks the host to give Panel the keyboard focus.
	FocusRequestMsg struct {
		Panel *Panel
	}
)

func (m rowPressMsg) SetDragStart(x, y int) tea.Msg {
	m.x, m.y = x, y
	return m
}

func (m rowPressMsg) SetModifiers(mods render.Modifiers) tea.Msg {
	m.mods = mods
	return m
}

func (m rowPressMsg) SetContext(x, y int) tea.Msg {
	m.x, m.y = x, y
	m.context = true
	return m
}

func (m addLayerMsg) SetModifiers(mods render.Modifiers) tea.Msg {
	m.mods = mods
	return m
}

func (m addLayerMsg) SetContext(int, int) tea.Msg {
	m.context = true
	return m
}

func (m scrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	if horizontal {
		return nil
	}
	m.delta = delta
	return m
}
