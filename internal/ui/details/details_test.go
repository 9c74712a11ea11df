package details

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/segments"
	"github.com/idursun/layerview/internal/ui/flash"
	"github.com/idursun/layerview/test"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLayer(t *testing.T, spec layer.Spec) *layer.ManagedLayer {
	t.Helper()
	group := layer.NewListSpecification("main", nil)
	l, err := group.NewLayer(spec)
	require.NoError(t, err)
	group.Add(l, -1)
	return l
}

func segmentation(t *testing.T) *layer.ManagedLayer {
	return newLayer(t, layer.Spec{
		Name:         "cells",
		Type:         layer.TypeSegmentationWithGraph,
		Source:       "synthetic://cells",
		Segments:     []string{"2"},
		Equivalences: [][]string{{"2", "3"}},
	})
}

func roots(l *layer.ManagedLayer) []string {
	var ids []string
	segments.ForEachRootSegment(l.UserLayer.Segments, func(root segments.ID) {
		ids = append(ids, root.String())
	})
	return ids
}

func newModel(l *layer.ManagedLayer) (*Model, *layer.SelectedLayerState) {
	m, selected, _ := newModelAt(l)
	return m, selected
}

func newModelAt(l *layer.ManagedLayer) (*Model, *layer.SelectedLayerState, *navigation.LinkedPosition) {
	selected := &layer.SelectedLayerState{}
	position := navigation.NewLinkedPosition(nil, navigation.Unlinked)
	m := New(selected, position.Value.Value, func() time.Time { return time.Unix(1700000000, 0) })
	if l != nil {
		selected.Show(l)
	}
	return m, selected, position
}

func TestViewRect_ListsLayerAndSegments(t *testing.T) {
	l := segmentation(t)
	m, _ := newModel(l)

	output := test.RenderImmediate(m, 50, 14)

	assert.Contains(t, output, "cells")
	assert.Contains(t, output, layer.TypeSegmentationWithGraph)
	assert.Contains(t, output, "synthetic://cells")
	assert.Contains(t, output, "current")
	assert.Contains(t, output, "2  2,0")
	assert.Contains(t, output, "3 → 2")
}

func TestViewRect_HiddenDrawsNothing(t *testing.T) {
	m, selected := newModel(segmentation(t))
	selected.Hide()

	output := test.RenderImmediate(m, 50, 10)

	assert.NotContains(t, output, "cells")
}

func TestSelectSegmentAtPosition(t *testing.T) {
	l := segmentation(t)
	m, _, position := newModelAt(l)
	position.Move(0, 8, 0)
	changes := 0
	l.Changed.Add(func() { changes++ })

	m.Update(runes("s"))

	assert.Equal(t, []string{"2", "65537"}, roots(l))
	assert.True(t, l.UserLayer.Segments.VisibleSegments3D.Has(segments.FromUint64(65537)))
	assert.Equal(t, 1, changes)
}

func TestMergeRecentRoots(t *testing.T) {
	l := segmentation(t)
	m, _ := newModel(l)
	m.Update(runes("s"))
	require.Equal(t, []string{"2", "1"}, roots(l))

	assert.Nil(t, m.Update(runes("m")))

	assert.Equal(t, []string{"1"}, roots(l))
	for _, id := range []uint64{1, 2, 3} {
		assert.True(t, l.UserLayer.Segments.VisibleSegments3D.Has(segments.FromUint64(id)))
	}
}

func TestMergeNeedsTwoRoots(t *testing.T) {
	l := segmentation(t)
	m, _ := newModel(l)

	cmd := m.Update(runes("m"))

	require.NotNil(t, cmd)
	assert.IsType(t, flash.AddMessage{}, cmd())
	assert.Equal(t, []string{"2"}, roots(l))
}

func TestToggleTimestamp(t *testing.T) {
	l := segmentation(t)
	m, _ := newModel(l)

	assert.Nil(t, m.Update(runes("t")))
	assert.Equal(t, "1700000000", l.UserLayer.Timestamp.Value())

	cmd := m.Update(runes("t"))
	require.NotNil(t, cmd)
	assert.Empty(t, l.UserLayer.Timestamp.Value())
	assert.Empty(t, roots(l))

	msg, ok := cmd().(flash.AddMessage)
	require.True(t, ok)
	assert.Equal(t, resetTimestampMessage, msg.Text)
	m.Update(msg.Action)
	assert.Equal(t, "1700000000", l.UserLayer.Timestamp.Value())
	assert.Equal(t, []string{"2"}, roots(l))
}

func TestTimestampIgnoredForImages(t *testing.T) {
	l := newLayer(t, layer.Spec{Name: "em", Type: layer.TypeImage})
	m, _ := newModel(l)

	assert.Nil(t, m.Update(runes("t")))
	assert.Nil(t, m.Update(runes("s")))
	assert.Nil(t, l.UserLayer.Timestamp)
}

func TestRootClickDeselects(t *testing.T) {
	l := segmentation(t)
	m, _ := newModel(l)

	m.Update(rootClickedMsg{model: m, root: segments.FromUint64(2)})

	assert.Empty(t, roots(l))
	assert.False(t, l.UserLayer.Segments.VisibleSegments3D.Has(segments.FromUint64(3)))
}

func TestCancelHides(t *testing.T) {
	m, selected := newModel(segmentation(t))
	require.True(t, m.Accepts(tea.KeyMsg{Type: tea.KeyEsc}))

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, selected.Visible())
	assert.False(t, m.Accepts(tea.KeyMsg{Type: tea.KeyEsc}))
}

func TestCloseButtonHides(t *testing.T) {
	m, selected := newModel(segmentation(t))
	frame := test.Render(m, 50, 10)

	msg := frame.Click(47, 0)
	require.Equal(t, closeClickedMsg{model: m}, msg)
	m.Update(msg)

	assert.False(t, selected.Visible())
}
