package common

import "github.com/charmbracelet/x/cellbuf"

// ViewNode is the area a view was last drawn into. Views embed it and set it
// at the start of ViewRect.
type ViewNode struct {
	Frame  cellbuf.Rectangle
	Width  int
	Height int
}

func NewViewNode(width, height int) *ViewNode {
	return &ViewNode{Width: width, Height: height}
}

func (n *ViewNode) SetFrame(f cellbuf.Rectangle) {
	n.Frame = f
	n.Width, n.Height = f.Dx(), f.Dy()
}
