package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLayers(names ...string) []*ManagedLayer {
	out := make([]*ManagedLayer, len(names))
	for i, name := range names {
		out[i] = NewManagedLayer(name, Spec{Name: name, Type: TypeImage})
	}
	return out
}

func names(layers []*ManagedLayer) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Name
	}
	return out
}

func TestManager_InsertAndAppend(t *testing.T) {
	m := NewManager()
	changes := 0
	m.Changed.Add(func() { changes++ })
	l := newLayers("a", "b", "c")

	m.Append(l[0], l[2])
	m.Insert(1, l[1])
	m.Insert(0, l[1])

	assert.Equal(t, []string{"a", "b", "c"}, names(m.Layers()))
	assert.Equal(t, 2, changes)
}

func TestManager_InsertOutOfRangeAppends(t *testing.T) {
	m := NewManager()
	l := newLayers("a", "b")
	m.Insert(5, l[0])
	m.Insert(-1, l[1])

	assert.Equal(t, []string{"a", "b"}, names(m.Layers()))
}

func TestManager_RemoveStopsForwardingLayerChanges(t *testing.T) {
	m := NewManager()
	l := newLayers("a")[0]
	m.Append(l)
	changes := 0
	m.Changed.Add(func() { changes++ })

	l.SetVisible(false)
	assert.Equal(t, 1, changes)

	assert.True(t, m.Remove(l))
	assert.False(t, m.Remove(l))
	l.SetVisible(true)
	assert.Equal(t, 2, changes)
}

func TestManager_FilterDispatchesOnlyWhenChanged(t *testing.T) {
	m := NewManager()
	l := newLayers("a", "b", "c")
	m.Append(l...)
	changes := 0
	m.Changed.Add(func() { changes++ })

	m.Filter(func(*ManagedLayer) bool { return true })
	assert.Zero(t, changes)

	m.Filter(func(x *ManagedLayer) bool { return x != l[1] })
	assert.Equal(t, 1, changes)
	assert.Equal(t, []string{"a", "c"}, names(m.Layers()))
}

func TestManager_SetLayersDispatchesOnce(t *testing.T) {
	m := NewManager()
	l := newLayers("a", "b", "c")
	m.Append(l...)
	changes := 0
	m.Changed.Add(func() { changes++ })

	m.SetLayers([]*ManagedLayer{l[2], l[0], l[2]})

	assert.Equal(t, 1, changes)
	assert.Equal(t, []string{"c", "a"}, names(m.Layers()))
	l[1].SetVisible(false)
	assert.Equal(t, 1, changes)
	l[2].SetVisible(false)
	assert.Equal(t, 2, changes)
}
