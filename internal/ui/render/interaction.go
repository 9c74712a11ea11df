package render

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"
)

// InteractionType is the set of inputs a region responds to.
type InteractionType int

const (
	InteractionClick InteractionType = 1 << iota
	InteractionScroll
	// InteractionDrag regions receive the left press that may start a drag.
	InteractionDrag
	InteractionHover
	// InteractionContext regions receive right button presses.
	InteractionContext
)

type InteractionOp struct {
	Rect cellbuf.Rectangle
	Msg  tea.Msg
	Type InteractionType
	Z    int
}

// Modifiers are the keyboard modifiers held during a mouse event.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

func (m Modifiers) Any() bool {
	return m.Ctrl || m.Alt || m.Shift
}

func modifiersOf(msg tea.MouseMsg) Modifiers {
	return Modifiers{Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}
}

// ScrollDeltaCarrier messages receive the wheel delta.
type ScrollDeltaCarrier interface {
	SetDelta(delta int, horizontal bool) tea.Msg
}

// DragStartCarrier messages receive the press position of a drag region.
type DragStartCarrier interface {
	SetDragStart(x, y int) tea.Msg
}

// ModifierCarrier messages receive the modifiers of the event.
type ModifierCarrier interface {
	SetModifiers(mods Modifiers) tea.Msg
}

// ContextCarrier messages are told they were triggered by the right button.
type ContextCarrier interface {
	SetContext(x, y int) tea.Msg
}

type interactionMatcher func(interactionOp) bool

func sortedInteractions(interactions []interactionOp) []interactionOp {
	sorted := make([]interactionOp, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Z != sorted[j].Z {
			return sorted[i].Z > sorted[j].Z
		}
		return sorted[i].order < sorted[j].order
	})
	return sorted
}

// wanted returns the interaction types that can take msg.
func wanted(msg tea.MouseMsg) InteractionType {
	switch msg.Button {
	case tea.MouseButtonLeft:
		return InteractionClick | InteractionDrag
	case tea.MouseButtonRight:
		return InteractionContext
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return InteractionScroll
	}
	return 0
}

// processMouseEvent picks the highest Z region under the pointer that takes
// the pressed button. Interactions must already be sorted.
func processMouseEvent(interactions []interactionOp, msg tea.MouseMsg, match interactionMatcher) (tea.Msg, bool) {
	if msg.Action != tea.MouseActionPress {
		return nil, false
	}
	want := wanted(msg)
	if want == 0 {
		return nil, false
	}
	for _, interaction := range interactions {
		if !match(interaction) || interaction.Type&want == 0 || !contains(interaction.Rect, msg.X, msg.Y) {
			continue
		}
		return decorate(interaction, msg), true
	}
	return nil, false
}

func decorate(interaction interactionOp, msg tea.MouseMsg) tea.Msg {
	result := interaction.Msg
	switch msg.Button {
	case tea.MouseButtonLeft:
		if interaction.Type&InteractionDrag != 0 {
			if carrier, ok := result.(DragStartCarrier); ok {
				result = carrier.SetDragStart(msg.X, msg.Y)
			}
		}
	case tea.MouseButtonRight:
		if carrier, ok := result.(ContextCarrier); ok {
			result = carrier.SetContext(msg.X, msg.Y)
		}
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		delta := 3
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -3
		}
		if carrier, ok := result.(ScrollDeltaCarrier); ok {
			result = carrier.SetDelta(delta, false)
		}
	case tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		delta := 3
		if msg.Button == tea.MouseButtonWheelLeft {
			delta = -3
		}
		if carrier, ok := result.(ScrollDeltaCarrier); ok {
			result = carrier.SetDelta(delta, true)
		}
	}
	if carrier, ok := result.(ModifierCarrier); ok {
		result = carrier.SetModifiers(modifiersOf(msg))
	}
	return result
}

// ProcessMouseEvent matches msg against interactions sorted highest Z first.
func ProcessMouseEvent(interactions []InteractionOp, msg tea.MouseMsg) tea.Msg {
	wrapped := make([]interactionOp, len(interactions))
	for i, interaction := range interactions {
		wrapped[i] = interactionOp{InteractionOp: interaction, order: i}
	}
	result, _ := processMouseEvent(wrapped, msg, func(interactionOp) bool { return true })
	return result
}

// ProcessMouseEventWithWindows routes a mouse event through window scopes.
func ProcessMouseEventWithWindows(interactions []interactionOp, windows []windowOp, msg tea.MouseMsg) (tea.Msg, bool) {
	windowID, windowHit := topWindowAt(windows, msg.X, msg.Y)
	if msg.Action != tea.MouseActionPress {
		return nil, windowHit
	}
	result, handled := processMouseEvent(sortedInteractions(interactions), msg, func(interaction interactionOp) bool {
		return windowMatch(interaction.windowID, windowID, windowHit, len(windows) > 0)
	})
	if handled {
		return result, true
	}
	return nil, windowHit
}

func topWindowAt(windows []windowOp, x, y int) (int, bool) {
	sorted := make([]windowOp, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Z != sorted[j].Z {
			return sorted[i].Z > sorted[j].Z
		}
		return sorted[i].Order > sorted[j].Order
	})
	for _, win := range sorted {
		if contains(win.Rect, x, y) {
			return win.ID, true
		}
	}
	return 0, false
}

func windowMatch(interactionWindowID, windowID int, windowHit bool, windowsExist bool) bool {
	if windowsExist && !windowHit {
		// a click outside an open window reaches nothing underneath
		return false
	}
	if windowHit {
		return interactionWindowID == windowID
	}
	return interactionWindowID == 0
}
