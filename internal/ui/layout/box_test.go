package layout

import (
	"testing"

	"github.com/charmbracelet/x/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heights(boxes []Box) []int {
	result := make([]int, len(boxes))
	for i, b := range boxes {
		result[i] = b.R.Dy()
	}
	return result
}

func widths(boxes []Box) []int {
	result := make([]int, len(boxes))
	for i, b := range boxes {
		result[i] = b.R.Dx()
	}
	return result
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name  string
		total int
		specs []Spec
		want  []int
	}{
		{"fixed", 10, []Spec{Fixed(3), Fixed(4)}, []int{3, 4}},
		{"negative fixed", 10, []Spec{Fixed(-1)}, []int{0}},
		{"fixed overflow", 10, []Spec{Fixed(30)}, []int{10}},
		{"percent", 200, []Spec{Percent(25), Percent(150)}, []int{50, 200}},
		{"fill shares remainder", 10, []Spec{Fixed(1), Fill(1), Fixed(1)}, []int{1, 8, 1}},
		{"weighted fill", 9, []Spec{Fill(1), Fill(2)}, []int{3, 6}},
		{"rounding goes to last fill", 10, []Spec{Fill(1), Fill(1), Fill(1)}, []int{3, 3, 4}},
		{"zero weight fill", 10, []Spec{Fill(0), Fixed(2)}, []int{0, 2}},
		{"nothing to give", 0, []Spec{Fixed(3), Fill(1)}, []int{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, allocate(tt.total, tt.specs))
		})
	}
}

func TestBox_V(t *testing.T) {
	b := NewBox(cellbuf.Rect(2, 1, 20, 10))
	parts := b.V(Fixed(1), Fill(1), Fixed(1))
	require.Len(t, parts, 3)
	assert.Equal(t, []int{1, 8, 1}, heights(parts))
	assert.Equal(t, 1, parts[0].R.Min.Y)
	assert.Equal(t, 2, parts[1].R.Min.Y)
	assert.Equal(t, 10, parts[2].R.Min.Y)
	for _, p := range parts {
		assert.Equal(t, 20, p.R.Dx())
	}
}

func TestBox_VOverflowYieldsEmptyBoxes(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 0, 5, 4))
	parts := b.V(Fixed(3), Fixed(3), Fixed(3))
	assert.Equal(t, []int{3, 1, 0}, heights(parts))
	assert.Equal(t, 4, parts[2].R.Min.Y)
}

func TestBox_H(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 0, 80, 3))
	parts := b.H(Fixed(30), Fill(1), Percent(25))
	assert.Equal(t, []int{30, 30, 20}, widths(parts))
	assert.Equal(t, 60, parts[2].R.Min.X)
}

func TestBox_EmptySpecsReturnsSelf(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 0, 4, 4))
	assert.Equal(t, []Box{b}, b.V())
	assert.Equal(t, []Box{b}, b.H())
}

func TestBox_Rows(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 5, 10, 3))
	rows := b.Rows(5)
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, 5+i, r.R.Min.Y)
		assert.Equal(t, 1, r.R.Dy())
	}
	assert.Nil(t, b.Rows(0))
}

func TestBox_Cuts(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 0, 10, 6))

	top, rest := b.CutTop(2)
	assert.Equal(t, cellbuf.Rect(0, 0, 10, 2), top.R)
	assert.Equal(t, cellbuf.Rect(0, 2, 10, 4), rest.R)

	rest, bottom := b.CutBottom(1)
	assert.Equal(t, cellbuf.Rect(0, 0, 10, 5), rest.R)
	assert.Equal(t, cellbuf.Rect(0, 5, 10, 1), bottom.R)

	left, rest := b.CutLeft(3)
	assert.Equal(t, cellbuf.Rect(0, 0, 3, 6), left.R)
	assert.Equal(t, cellbuf.Rect(3, 0, 7, 6), rest.R)

	rest, right := b.CutRight(4)
	assert.Equal(t, cellbuf.Rect(0, 0, 6, 6), rest.R)
	assert.Equal(t, cellbuf.Rect(6, 0, 4, 6), right.R)
}

func TestBox_CutsClamp(t *testing.T) {
	b := NewBox(cellbuf.Rect(0, 0, 4, 4))

	top, rest := b.CutTop(10)
	assert.Equal(t, b, top)
	assert.True(t, rest.Empty())

	left, rest := b.CutLeft(-2)
	assert.True(t, left.Empty())
	assert.Equal(t, b, rest)
}

func TestBox_Center(t *testing.T) {
	b := NewBox(cellbuf.Rect(10, 10, 20, 10))
	assert.Equal(t, cellbuf.Rect(15, 13, 10, 4), b.Center(10, 4).R)
	assert.Equal(t, b.R, b.Center(50, 50).R)
	assert.True(t, b.Center(-1, 3).Empty())
}
