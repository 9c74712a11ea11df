package render

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// TextBuilder lays out styled runs of text from an origin, line by line, and
// registers interactions for the runs that carry a message.
type TextBuilder struct {
	dl       *DisplayContext
	segments []textSegment
	x, y, z  int
	maxWidth int
}

type textSegment struct {
	text  string
	style lipgloss.Style
	msg   tea.Msg
	typ   InteractionType
}

type placedSegment struct {
	x, y     int
	width    int
	rendered string
	msg      tea.Msg
	typ      InteractionType
}

func (dl *DisplayContext) Text(x, y, z int) *TextBuilder {
	return &TextBuilder{dl: dl, x: x, y: y, z: z}
}

// Clip truncates every line to width cells. Zero disables clipping.
func (tb *TextBuilder) Clip(width int) *TextBuilder {
	tb.maxWidth = width
	return tb
}

func (tb *TextBuilder) Write(text string) *TextBuilder {
	return tb.Styled(text, lipgloss.NewStyle())
}

func (tb *TextBuilder) NewLine() *TextBuilder {
	return tb.Write("\n")
}

func (tb *TextBuilder) Space(count int) *TextBuilder {
	if count <= 0 {
		return tb
	}
	return tb.Write(strings.Repeat(" ", count))
}

func (tb *TextBuilder) Styled(text string, style lipgloss.Style) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style})
	return tb
}

func (tb *TextBuilder) Clickable(text string, style lipgloss.Style, onClick tea.Msg) *TextBuilder {
	return tb.Interactive(text, style, onClick, InteractionClick)
}

// Interactive writes text that sends msg for the given interaction types.
func (tb *TextBuilder) Interactive(text string, style lipgloss.Style, msg tea.Msg, typ InteractionType) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style, msg: msg, typ: typ})
	return tb
}

func (tb *TextBuilder) Measure() (int, int) {
	_, width, height := tb.layout()
	return width, height
}

func (tb *TextBuilder) Done() {
	placed, _, _ := tb.layout()
	for _, seg := range placed {
		rect := cellbuf.Rect(tb.x+seg.x, tb.y+seg.y, seg.width, 1)
		tb.dl.AddDraw(rect, seg.rendered, tb.z)
		if seg.msg != nil {
			tb.dl.AddInteraction(rect, seg.msg, seg.typ, tb.z)
		}
	}
}

func (tb *TextBuilder) layout() ([]placedSegment, int, int) {
	var placed []placedSegment
	width, row, col := 0, 0, 0
	hasContent := false
	for _, seg := range tb.segments {
		for i, part := range strings.Split(seg.text, "\n") {
			if i > 0 {
				row++
				col = 0
			}
			if part == "" {
				continue
			}
			if tb.maxWidth > 0 {
				room := tb.maxWidth - col
				if room <= 0 {
					continue
				}
				part = truncate(part, room)
			}
			rendered := seg.style.Render(part)
			w := lipgloss.Width(rendered)
			if w == 0 {
				continue
			}
			placed = append(placed, placedSegment{x: col, y: row, width: w, rendered: rendered, msg: seg.msg, typ: seg.typ})
			col += w
			width = max(width, col)
			hasContent = true
		}
	}
	if !hasContent {
		return nil, 0, 0
	}
	return placed, width, row + 1
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String()
}
