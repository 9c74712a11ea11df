package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idursun/layerview/internal/dnd"
	"github.com/idursun/layerview/internal/ui/render"
)

type Focusable interface {
	IsFocused() bool
}

// Draggable views capture the pointer after a press. The host routes every
// motion and the final release to them until the release.
type Draggable interface {
	DragMove(x, y int) tea.Cmd
	DragEnd(x, y int) tea.Cmd
	// ActiveDrag is the layer drag started by the capture, if any.
	ActiveDrag() *dnd.Drag
}

// DragEvent is the pointer state delivered to drop targets.
type DragEvent struct {
	Drag *dnd.Drag
	X, Y int
	Mods render.Modifiers
}

// CopyRequested reports whether the copy modifier is held.
func (e DragEvent) CopyRequested() bool {
	return e.Mods.Ctrl || e.Mods.Alt
}

// DropTarget accepts layer drags. DragEnter and DragOver report whether a
// drop would be accepted at the current position.
type DropTarget interface {
	DragEnter(e DragEvent) bool
	DragOver(e DragEvent) bool
	Drop(e DragEvent) bool
}

// DragLeaver is told when a drag leaves all of its drop zones.
type DragLeaver interface {
	DragLeave(e DragEvent)
}

// DragTracker keeps the press state of a view between the press and the
// release, and turns movement past the press position into a drag.
type DragTracker struct {
	pressed  bool
	dragging bool
	startX   int
	startY   int
}

func (d *DragTracker) Press(x, y int) {
	d.pressed = true
	d.dragging = false
	d.startX, d.startY = x, y
}

// Move reports true exactly once, when the pointer first leaves the press
// position.
func (d *DragTracker) Move(x, y int) bool {
	if !d.pressed || d.dragging {
		return false
	}
	if x == d.startX && y == d.startY {
		return false
	}
	d.dragging = true
	return true
}

// Release ends the press and reports whether it turned into a drag.
func (d *DragTracker) Release() bool {
	wasDragging := d.dragging
	d.pressed = false
	d.dragging = false
	return wasDragging
}

func (d *DragTracker) Pressed() bool {
	return d.pressed
}

func (d *DragTracker) Dragging() bool {
	return d.dragging
}
