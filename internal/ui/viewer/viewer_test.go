package viewer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/segments"
	"github.com/idursun/layerview/internal/signal"
	"github.com/idursun/layerview/internal/ui/common"
	"github.com/idursun/layerview/test"
)

func newGroup(t *testing.T, name string, specs ...layer.Spec) *layer.ListSpecification {
	t.Helper()
	group := layer.NewListSpecification(name, nil)
	for _, spec := range specs {
		l, err := group.NewLayer(spec)
		require.NoError(t, err)
		group.Add(l, -1)
	}
	return group
}

func segmentationSpec() layer.Spec {
	return layer.Spec{Name: "cells", Type: layer.TypeSegmentation, Segments: []string{"1"}}
}

func TestNew_SamplesEveryTarget(t *testing.T) {
	peer := signal.NewWatchable(navigation.Position{})
	group := newGroup(t, "main", segmentationSpec())
	m := New([]Target{{Group: group, Position: navigation.NewLinkedPosition(peer, navigation.Linked)}})
	defer m.Dispose()

	value, ok := group.SelectedValues.Get(group.Layers.At(0).UserLayer)

	require.True(t, ok)
	assert.Equal(t, segments.FromUint64(1), value)
}

func TestKeys_MoveLinkedPositionThroughPeer(t *testing.T) {
	peer := signal.NewWatchable(navigation.Position{})
	group := newGroup(t, "main", segmentationSpec())
	m := New([]Target{{Group: group, Position: navigation.NewLinkedPosition(peer, navigation.Linked)}})
	defer m.Dispose()
	notified := 0
	group.SelectedValues.Changed.Add(func() { notified++ })

	require.True(t, m.Accepts(tea.KeyMsg{Type: tea.KeyRight}))
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})

	require.NotNil(t, cmd)
	assert.Equal(t, common.PositionChangedMsg{}, cmd())
	assert.Equal(t, navigation.Position{1, 0, 0}, peer.Value())
	assert.Equal(t, 1, notified)

	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, navigation.Position{1, 0, 1}, peer.Value())
}

func TestKeys_MoveOnlyTheActiveTarget(t *testing.T) {
	peer := signal.NewWatchable(navigation.Position{})
	main := newGroup(t, "main", segmentationSpec())
	side := newGroup(t, "side", segmentationSpec())
	sidePosition := navigation.NewLinkedPosition(peer, navigation.Relative)
	m := New([]Target{
		{Group: main, Position: navigation.NewLinkedPosition(peer, navigation.Linked)},
		{Group: side, Position: sidePosition},
	})
	defer m.Dispose()

	m.SetActive(side)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})

	assert.Equal(t, navigation.Position{}, peer.Value())
	assert.Equal(t, navigation.Position{-1, 0, 0}, sidePosition.Value.Value())
	assert.Equal(t, "-1, 0, 0 [relative]", m.Describe())
}

func TestCycleLink(t *testing.T) {
	peer := signal.NewWatchable(navigation.Position{})
	position := navigation.NewLinkedPosition(peer, navigation.Linked)
	m := New([]Target{{Group: newGroup(t, "main"), Position: position}})
	defer m.Dispose()

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	assert.Equal(t, navigation.Relative, position.Link.Value())

	m.Update(linkClickedMsg{model: m})
	assert.Equal(t, navigation.Unlinked, position.Link.Value())
}

func TestViewRect_ClickRecentresOnCell(t *testing.T) {
	position := navigation.NewLinkedPosition(nil, navigation.Unlinked)
	m := New([]Target{{Group: newGroup(t, "main", segmentationSpec()), Position: position}})
	defer m.Dispose()
	position.Move(4, 0, 0)

	output := test.RenderImmediate(m, 12, 7)
	assert.Contains(t, output, "+")
	assert.Contains(t, output, "█")
	assert.Contains(t, output, "·")

	center := m.center()
	m.Update(pressMsg{model: m}.SetDragStart(center.X+2, center.Y-1))

	assert.Equal(t, navigation.Position{6, -1, 0}, position.Value.Value())
}

func TestViewRect_HiddenLayersAreNotShaded(t *testing.T) {
	group := newGroup(t, "main", segmentationSpec())
	group.Layers.At(0).SetVisible(false)
	m := New([]Target{{Group: group, Position: navigation.NewLinkedPosition(nil, navigation.Unlinked)}})
	defer m.Dispose()

	output := test.RenderImmediate(m, 12, 7)

	assert.NotContains(t, output, "█")
	assert.NotContains(t, output, "·")
}
