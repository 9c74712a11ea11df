package layout

import "github.com/charmbracelet/x/cellbuf"

// Box wraps a cellbuf.Rectangle with the cutting and splitting helpers the
// views use to lay themselves out.
type Box struct {
	R cellbuf.Rectangle
}

func NewBox(r cellbuf.Rectangle) Box {
	return Box{R: r}
}

// Spec describes how much of a dimension a split part receives.
type Spec interface {
	size(total int) int
}

// Fixed is a size in cells.
type Fixed int

// Percent is a share (0-100) of the whole dimension.
type Percent int

// FillSpec shares what Fixed and Percent parts leave, proportionally to its
// weight.
type FillSpec float64

func (f Fixed) size(total int) int {
	return clamp(int(f), 0, total)
}

func (p Percent) size(total int) int {
	return total * clamp(int(p), 0, 100) / 100
}

func (f FillSpec) size(int) int {
	return 0
}

func Fill(weight float64) Spec {
	return FillSpec(weight)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// allocate distributes total cells over specs. Rounding leftovers go to the
// last Fill part.
func allocate(total int, specs []Spec) []int {
	sizes := make([]int, len(specs))
	if total <= 0 {
		return sizes
	}
	consumed := 0
	weight := 0.0
	lastFill := -1
	for i, spec := range specs {
		if f, ok := spec.(FillSpec); ok {
			if f > 0 {
				weight += float64(f)
				lastFill = i
			}
			continue
		}
		sizes[i] = spec.size(total)
		consumed += sizes[i]
	}
	remaining := max(total-consumed, 0)
	if lastFill < 0 || remaining == 0 {
		return sizes
	}
	given := 0
	for i, spec := range specs {
		if f, ok := spec.(FillSpec); ok && f > 0 {
			sizes[i] = int(float64(remaining) * float64(f) / weight)
			given += sizes[i]
		}
	}
	sizes[lastFill] += remaining - given
	return sizes
}

// V splits the box top to bottom, one box per spec. Parts that do not fit
// are empty boxes at the bottom edge.
func (b Box) V(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	result := make([]Box, len(specs))
	y := b.R.Min.Y
	for i, size := range allocate(b.R.Dy(), specs) {
		next := min(y+size, b.R.Max.Y)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(b.R.Min.X, y),
			Max: cellbuf.Pos(b.R.Max.X, next),
		}}
		y = next
	}
	return result
}

// H splits the box left to right, one box per spec.
func (b Box) H(specs ...Spec) []Box {
	if len(specs) == 0 {
		return []Box{b}
	}
	result := make([]Box, len(specs))
	x := b.R.Min.X
	for i, size := range allocate(b.R.Dx(), specs) {
		next := min(x+size, b.R.Max.X)
		result[i] = Box{R: cellbuf.Rectangle{
			Min: cellbuf.Pos(x, b.R.Min.Y),
			Max: cellbuf.Pos(next, b.R.Max.Y),
		}}
		x = next
	}
	return result
}

// Rows returns up to n boxes of height one from the top of the box.
func (b Box) Rows(n int) []Box {
	n = min(n, b.R.Dy())
	if n <= 0 {
		return nil
	}
	rows := make([]Box, n)
	rest := b
	for i := range rows {
		rows[i], rest = rest.CutTop(1)
	}
	return rows
}

func (b Box) Inset(n int) Box {
	return Box{R: b.R.Inset(n)}
}

func (b Box) Empty() bool {
	return b.R.Dx() <= 0 || b.R.Dy() <= 0
}

func (b Box) CutTop(h int) (top, rest Box) {
	split := b.R.Min.Y + clamp(h, 0, b.R.Dy())
	return b.rows(b.R.Min.Y, split), b.rows(split, b.R.Max.Y)
}

func (b Box) CutBottom(h int) (rest, bottom Box) {
	split := b.R.Max.Y - clamp(h, 0, b.R.Dy())
	return b.rows(b.R.Min.Y, split), b.rows(split, b.R.Max.Y)
}

func (b Box) CutLeft(w int) (left, rest Box) {
	split := b.R.Min.X + clamp(w, 0, b.R.Dx())
	return b.cols(b.R.Min.X, split), b.cols(split, b.R.Max.X)
}

func (b Box) CutRight(w int) (rest, right Box) {
	split := b.R.Max.X - clamp(w, 0, b.R.Dx())
	return b.cols(b.R.Min.X, split), b.cols(split, b.R.Max.X)
}

func (b Box) rows(y0, y1 int) Box {
	return Box{R: cellbuf.Rectangle{Min: cellbuf.Pos(b.R.Min.X, y0), Max: cellbuf.Pos(b.R.Max.X, y1)}}
}

func (b Box) cols(x0, x1 int) Box {
	return Box{R: cellbuf.Rectangle{Min: cellbuf.Pos(x0, b.R.Min.Y), Max: cellbuf.Pos(x1, b.R.Max.Y)}}
}

// Center returns a w by h box centered in b, clamped to b.
func (b Box) Center(w, h int) Box {
	w = clamp(w, 0, b.R.Dx())
	h = clamp(h, 0, b.R.Dy())
	x := b.R.Min.X + (b.R.Dx()-w)/2
	y := b.R.Min.Y + (b.R.Dy()-h)/2
	return Box{R: cellbuf.Rect(x, y, w, h)}
}
