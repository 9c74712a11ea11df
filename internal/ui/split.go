package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/cellbuf"

	"github.com/idursun/layerview/internal/dnd"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/internal/ui/layout"
	"github.com/idursun/layerview/internal/ui/render"
)

type splitState struct {
	Percent    float64
	MinPercent float64
	MaxPercent float64
}

func newSplitState(percent float64) *splitState {
	s := &splitState{
		Percent:    percent,
		MinPercent: 10,
		MaxPercent: 90,
	}
	s.clamp()
	return s
}

func (s *splitState) clamp() {
	s.Percent = max(s.MinPercent, min(s.Percent, s.MaxPercent))
}

// DragTo sets the share of the secondary side from a pointer position.
func (s *splitState) DragTo(box layout.Box, vertical bool, x, y int) bool {
	old := s.Percent
	if vertical {
		total := box.R.Dy()
		if total <= 0 {
			return false
		}
		s.Percent = float64((box.R.Max.Y-y)*100) / float64(total)
	} else {
		total := box.R.Dx()
		if total <= 0 {
			return false
		}
		s.Percent = float64((box.R.Max.X-x)*100) / float64(total)
	}
	s.clamp()
	return s.Percent != old
}

var _ common.Draggable = (*split)(nil)

// split shows two models side by side, or one above the other, with a
// separator that can be dragged. A model with Visible() == false gives its
// space to the other one.
type split struct {
	State     *splitState
	Vertical  bool
	Primary   common.ImmediateModel
	Secondary common.ImmediateModel
	lastBox   layout.Box
	hasBox    bool
}

func newSplit(state *splitState, vertical bool, primary, secondary common.ImmediateModel) *split {
	return &split{
		State:     state,
		Vertical:  vertical,
		Primary:   primary,
		Secondary: secondary,
	}
}

func (s *split) Init() tea.Cmd {
	return nil
}

func (s *split) Update(tea.Msg) tea.Cmd {
	return nil
}

func (s *split) Visible() bool {
	return isVisible(s.Primary) || isVisible(s.Secondary)
}

func (s *split) ViewRect(dl *render.DisplayContext, box layout.Box) {
	s.lastBox = box
	s.hasBox = true

	primaryVisible := isVisible(s.Primary)
	secondaryVisible := isVisible(s.Secondary)
	switch {
	case primaryVisible && secondaryVisible:
		s.renderBoth(dl, box)
	case primaryVisible:
		s.Primary.ViewRect(dl, box)
	case secondaryVisible:
		s.Secondary.ViewRect(dl, box)
	}
}

func (s *split) renderBoth(dl *render.DisplayContext, box layout.Box) {
	primaryPercent := layout.Percent(100 - s.State.Percent)
	var first, sep, second layout.Box
	if s.Vertical {
		if box.R.Dy() < 3 {
			s.Primary.ViewRect(dl, box)
			return
		}
		boxes := box.V(primaryPercent, layout.Fixed(1), layout.Fill(1))
		first, sep, second = boxes[0], boxes[1], boxes[2]
	} else {
		if box.R.Dx() < 3 {
			s.Primary.ViewRect(dl, box)
			return
		}
		boxes := box.H(primaryPercent, layout.Fixed(1), layout.Fill(1))
		first, sep, second = boxes[0], boxes[1], boxes[2]
	}
	s.Primary.ViewRect(dl, first)
	s.Secondary.ViewRect(dl, second)
	dl.AddInteraction(sep.R, SplitDragMsg{Split: s}, render.InteractionDrag, render.ZBase)
	if drawRect, content := separatorContent(sep.R, s.Vertical); content != "" {
		dl.AddDraw(drawRect, content, render.ZRowControls)
	}
}

func (s *split) DragMove(x, y int) tea.Cmd {
	if s.State == nil || !s.hasBox {
		return nil
	}
	s.State.DragTo(s.lastBox, s.Vertical, x, y)
	return nil
}

func (s *split) DragEnd(int, int) tea.Cmd {
	return nil
}

func (s *split) ActiveDrag() *dnd.Drag {
	return nil
}

// SplitDragMsg is the press on a separator. The host captures the pointer
// for the split.
type SplitDragMsg struct {
	Split *split
	X     int
	Y     int
}

func (m SplitDragMsg) SetDragStart(x, y int) tea.Msg {
	m.X = x
	m.Y = y
	return m
}

func isVisible(m common.ImmediateModel) bool {
	if m == nil {
		return false
	}
	if v, ok := m.(interface{ Visible() bool }); ok {
		return v.Visible()
	}
	return true
}

func separatorContent(sepRect cellbuf.Rectangle, vertical bool) (cellbuf.Rectangle, string) {
	if sepRect.Dx() <= 0 || sepRect.Dy() <= 0 {
		return cellbuf.Rectangle{}, ""
	}
	if vertical {
		return sepRect, strings.Repeat("─", sepRect.Dx())
	}
	return sepRect, strings.TrimSuffix(strings.Repeat("│\n", sepRect.Dy()), "\n")
}
