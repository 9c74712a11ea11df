package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Effect post-processes cells that were already drawn.
type Effect interface {
	Apply(buf *cellbuf.Buffer)
	GetZ() int
	GetRect() cellbuf.Rectangle
}

// Attr is a set of text attributes an AttrEffect switches on.
type Attr int

const (
	AttrReverse Attr = 1 << iota
	AttrFaint
	AttrBold
	AttrUnderline
	AttrStrike
)

// AttrEffect switches attributes on for every cell of Rect. Strikethrough
// skips blank cells so padding stays clean.
type AttrEffect struct {
	Rect cellbuf.Rectangle
	Attr Attr
	Z    int
}

func (e AttrEffect) Apply(buf *cellbuf.Buffer) {
	iterateCells(buf, e.Rect, func(cell *cellbuf.Cell) *cellbuf.Cell {
		if cell == nil {
			return nil
		}
		c := cell.Clone()
		if e.Attr&AttrReverse != 0 {
			c.Style.Reverse(true)
		}
		if e.Attr&AttrFaint != 0 {
			c.Style.Faint(true)
		}
		if e.Attr&AttrBold != 0 {
			c.Style.Bold(true)
		}
		if e.Attr&AttrUnderline != 0 {
			c.Style.Underline(true)
		}
		if e.Attr&AttrStrike != 0 && c.Rune != 0 && c.Rune != ' ' {
			c.Style.Strikethrough(true)
		}
		return c
	})
}

func (e AttrEffect) GetZ() int                  { return e.Z }
func (e AttrEffect) GetRect() cellbuf.Rectangle { return e.Rect }

// HighlightEffect sets the background of cells that have none. A style
// without a background leaves the cells alone.
type HighlightEffect struct {
	Rect  cellbuf.Rectangle
	Style lipgloss.Style
	Z     int
}

func (e HighlightEffect) Apply(buf *cellbuf.Buffer) {
	bg := e.Style.GetBackground()
	if _, none := bg.(lipgloss.NoColor); none {
		return
	}
	iterateCells(buf, e.Rect, func(cell *cellbuf.Cell) *cellbuf.Cell {
		if cell == nil || cell.Style.Bg != nil {
			return nil
		}
		c := cell.Clone()
		c.Style.Background(bg)
		return c
	})
}

func (e HighlightEffect) GetZ() int                  { return e.Z }
func (e HighlightEffect) GetRect() cellbuf.Rectangle { return e.Rect }

func iterateCells(buf *cellbuf.Buffer, rect cellbuf.Rectangle, transform func(*cellbuf.Cell) *cellbuf.Cell) {
	rect = rect.Intersect(buf.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if c := transform(buf.Cell(x, y)); c != nil {
				buf.SetCell(x, y, c)
			}
		}
	}
}
