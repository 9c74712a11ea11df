package render

// Z-index layers, back to front.
const (
	// ZBase is for panels, the viewer pane and the status line.
	ZBase = 0

	// ZRowControls is for clickable controls drawn over a layer row.
	ZRowControls = 1

	// ZDropHint is for the drop position hint shown while dragging.
	ZDropHint = 5

	// ZDetails is for the layer detail view.
	ZDetails = 10

	// ZDialogs is for the layer dialog and the type picker.
	ZDialogs = 50

	// ZOverlay is for flash messages.
	ZOverlay = 200
)
