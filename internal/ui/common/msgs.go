package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/layerview/internal/layer"
)

type (
	CloseViewMsg  struct{}
	ToggleHelpMsg struct{}
	// PointerCaptureMsg asks the host to route pointer motion and the next
	// release to Target.
	PointerCaptureMsg struct {
		Target Draggable
	}
	// ShowLayerDialogMsg opens the layer dialog for Group. A nil Layer
	// starts with the type picker and adds a new layer.
	ShowLayerDialogMsg struct {
		Group *layer.ListSpecification
		Layer *layer.ManagedLayer
	}
	// LayerDialogClosedMsg reports that the dialog for Group was closed.
	LayerDialogClosedMsg struct {
		Group *layer.ListSpecification
		Layer *layer.ManagedLayer
		Saved bool
	}
	// PositionChangedMsg is sent after the viewer position moved.
	PositionChangedMsg struct{}
)

func Close() tea.Msg {
	return CloseViewMsg{}
}

func ToggleHelp() tea.Msg {
	return ToggleHelpMsg{}
}

func CapturePointer(target Draggable) tea.Cmd {
	return func() tea.Msg {
		return PointerCaptureMsg{Target: target}
	}
}

func ShowLayerDialog(group *layer.ListSpecification, l *layer.ManagedLayer) tea.Cmd {
	return func() tea.Msg {
		return ShowLayerDialogMsg{Group: group, Layer: l}
	}
}
