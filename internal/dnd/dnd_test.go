package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/internal/layer"
)

func newGroup(t *testing.T, name string, layerNames ...string) (*layer.ListSpecification, []*layer.ManagedLayer) {
	t.Helper()
	group := layer.NewListSpecification(name, nil)
	var layers []*layer.ManagedLayer
	for _, n := range layerNames {
		l, err := group.NewLayer(layer.Spec{Name: n, Type: layer.TypeImage, Source: "synthetic://" + n})
		require.NoError(t, err)
		group.Add(l, -1)
		layers = append(layers, l)
	}
	return group, layers
}

func names(group *layer.ListSpecification) []string {
	var result []string
	for _, l := range group.Layers.Layers() {
		result = append(result, l.Name)
	}
	return result
}

func TestEffectFor(t *testing.T) {
	group, layers := newGroup(t, "main", "a")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)

	assert.Equal(t, EffectMove, EffectFor(d, false))
	assert.Equal(t, EffectCopy, EffectFor(d, true))
	assert.Equal(t, EffectNone, EffectFor(nil, true))

	d.End()
	assert.Equal(t, EffectNone, EffectFor(d, false))
}

func TestGetDropLayers_SameGroupMoves(t *testing.T) {
	group, layers := newGroup(t, "main", "a", "b")
	d, err := Start(group, layers[:1], nil)
	require.NoError(t, err)

	session := GetDropLayers(d, group, false, true)
	require.NotNil(t, session)
	assert.Equal(t, Move, session.Method)
	assert.Equal(t, layers[:1], session.Layers())
	assert.True(t, session.CompatibleWithMethod(EffectMove))
	assert.False(t, session.CompatibleWithMethod(EffectCopy))
	assert.False(t, session.Destroy(layers[0]))
}

func TestGetDropLayers_MoveFiltersRemovedLayers(t *testing.T) {
	group, layers := newGroup(t, "main", "a", "b")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)
	group.Remove(layers[0])

	session := GetDropLayers(d, group, false, true)
	require.NotNil(t, session)
	assert.Equal(t, []*layer.ManagedLayer{layers[1]}, session.Layers())

	group.Remove(layers[1])
	assert.Nil(t, GetDropLayers(d, group, false, true))
}

func TestGetDropLayers_CopyFromPayload(t *testing.T) {
	group, layers := newGroup(t, "main", "a")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)

	session := GetDropLayers(d, group, true, true)
	require.NotNil(t, session)
	assert.Equal(t, Copy, session.Method)
	require.Equal(t, 1, session.Len())
	copied := session.Layers()[0]
	assert.NotSame(t, layers[0], copied)
	require.NotNil(t, copied.UserLayer)
	assert.Equal(t, "synthetic://a", copied.UserLayer.Source)
	assert.True(t, session.CompatibleWithMethod(EffectCopy))
	assert.False(t, session.CompatibleWithMethod(EffectMove), "same group copy cannot turn into a move")
}

func TestDropLayers_FinalizeCopyAssignsUniqueNames(t *testing.T) {
	group, layers := newGroup(t, "main", "a")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)

	session := GetDropLayers(d, group, true, true)
	require.NotNil(t, session)
	group.Layers.Insert(0, session.Layers()...)

	assert.True(t, session.Finalize(EffectCopy))
	assert.Equal(t, []string{"a1", "a"}, names(group))
	assert.Equal(t, EffectCopy, d.DropEffect)
}

func TestDropLayers_FinalizeFailsWhenLayersWereRemoved(t *testing.T) {
	group, layers := newGroup(t, "main", "a")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)

	session := GetDropLayers(d, group, true, true)
	require.NotNil(t, session)
	assert.False(t, session.Finalize(EffectCopy), "copies were never inserted")
}

func TestDropLayers_DestroyRemovesCopies(t *testing.T) {
	group, layers := newGroup(t, "main", "a", "b")
	d, err := Start(group, layers, nil)
	require.NoError(t, err)
	session := GetDropLayers(d, group, true, true)
	require.NotNil(t, session)
	copies := session.Layers()
	group.Layers.Insert(1, copies...)
	require.Equal(t, 4, group.Layers.Len())

	assert.True(t, session.Destroy(copies[0]))
	assert.False(t, session.Destroy(layers[0]))
	assert.Equal(t, []string{"a", "b"}, names(group))
}

func TestDrag_EndMovesBetweenGroups(t *testing.T) {
	source, layers := newGroup(t, "left", "a", "b")
	target, _ := newGroup(t, "right", "c")
	d, err := Start(source, layers[:1], nil)
	require.NoError(t, err)

	session := GetDropLayers(d, target, false, true)
	require.NotNil(t, session)
	assert.Equal(t, Copy, session.Method)
	assert.True(t, session.CompatibleWithMethod(EffectMove))
	target.Layers.Insert(0, session.Layers()...)
	require.True(t, session.Finalize(EffectMove))

	d.End()
	assert.Equal(t, []string{"b"}, names(source))
	assert.Equal(t, []string{"a", "c"}, names(target))
	assert.True(t, d.Ended())
}

func TestDrag_EndKeepsOriginalsAfterCopy(t *testing.T) {
	source, layers := newGroup(t, "left", "a")
	target, _ := newGroup(t, "right")
	d, err := Start(source, layers, nil)
	require.NoError(t, err)

	session := GetDropLayers(d, target, true, true)
	require.NotNil(t, session)
	target.Layers.Insert(0, session.Layers()...)
	require.True(t, session.Finalize(EffectCopy))

	d.End()
	assert.Equal(t, []string{"a"}, names(source))
	assert.Equal(t, []string{"a"}, names(target))
}

func TestDrag_EndWithoutDropKeepsSource(t *testing.T) {
	source, layers := newGroup(t, "left", "a")
	d, err := Start(source, layers, nil)
	require.NoError(t, err)
	d.End()
	d.End()
	assert.Equal(t, []string{"a"}, names(source))
}
