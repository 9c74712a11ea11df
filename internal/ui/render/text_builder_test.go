package render

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clickMsg struct {
	id int
}

func TestTextBuilder_Segments(t *testing.T) {
	dl := NewDisplayContext()
	dl.Text(2, 1, 0).
		Write("Label: ").
		Clickable("one", lipgloss.NewStyle(), clickMsg{id: 1}).
		Space(1).
		Clickable("two", lipgloss.NewStyle(), clickMsg{id: 2}).
		Done()

	draws := dl.DrawList()
	require.Len(t, draws, 4)
	assert.Equal(t, cellbuf.Rect(9, 1, 3, 1), draws[1].Rect)
	assert.Equal(t, cellbuf.Rect(13, 1, 3, 1), draws[3].Rect)

	result, handled := dl.ProcessMouseEvent(tea.MouseMsg{X: 14, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.True(t, handled)
	assert.Equal(t, clickMsg{id: 2}, result)
}

func TestTextBuilder_NewLineAndMeasure(t *testing.T) {
	dl := NewDisplayContext()
	tb := dl.Text(0, 0, 0).Write("abc").NewLine().Write("de").NewLine().Write("f")

	w, h := tb.Measure()
	assert.Equal(t, 3, w)
	assert.Equal(t, 3, h)

	tb.Done()
	assert.Equal(t, "abc\nde\nf", rendered(dl, 3, 3))
}

func TestTextBuilder_EmptyTextDrawsNothing(t *testing.T) {
	dl := NewDisplayContext()
	tb := dl.Text(0, 0, 0).Write("").Space(0)
	w, h := tb.Measure()
	assert.Zero(t, w)
	assert.Zero(t, h)
	tb.Done()
	assert.Empty(t, dl.DrawList())
}

func TestTextBuilder_Clip(t *testing.T) {
	dl := NewDisplayContext()
	dl.Text(0, 0, 0).Clip(5).Write("abc").Write("defgh").NewLine().Write("xy").Done()

	assert.Equal(t, "abcde\nxy", rendered(dl, 5, 2))
}

func TestTextBuilder_InteractiveRegistersType(t *testing.T) {
	dl := NewDisplayContext()
	dl.Text(0, 0, 3).Interactive("row", lipgloss.NewStyle(), clickMsg{id: 7}, InteractionContext).Done()

	interactions := dl.InteractionsList()
	require.Len(t, interactions, 1)
	assert.Equal(t, InteractionContext, interactions[0].Type)
	assert.Equal(t, 3, interactions[0].Z)
}
