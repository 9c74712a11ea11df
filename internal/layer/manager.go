package layer

import (
	"slices"

	"github.com/idursun/layerview/internal/signal"
)

// Manager is an ordered layer collection. Changed fires after every mutation
// and whenever a member layer changes.
type Manager struct {
	layers  []*ManagedLayer
	watches map[*ManagedLayer]func()
	Changed signal.Signal
}

func NewManager() *Manager {
	return &Manager{watches: make(map[*ManagedLayer]func())}
}

// Layers returns a snapshot of the collection.
func (m *Manager) Layers() []*ManagedLayer {
	return slices.Clone(m.layers)
}

func (m *Manager) Len() int {
	return len(m.layers)
}

func (m *Manager) At(index int) *ManagedLayer {
	return m.layers[index]
}

func (m *Manager) IndexOf(l *ManagedLayer) int {
	return slices.Index(m.layers, l)
}

func (m *Manager) Has(l *ManagedLayer) bool {
	return m.IndexOf(l) >= 0
}

// Insert adds layers at index. An index outside the collection appends.
// Layers already present are ignored.
func (m *Manager) Insert(index int, layers ...*ManagedLayer) {
	if index < 0 || index > len(m.layers) {
		index = len(m.layers)
	}
	added := make([]*ManagedLayer, 0, len(layers))
	for _, l := range layers {
		if m.Has(l) || slices.Contains(added, l) {
			continue
		}
		added = append(added, l)
	}
	if len(added) == 0 {
		return
	}
	m.layers = slices.Insert(m.layers, index, added...)
	for _, l := range added {
		m.watch(l)
	}
	m.Changed.Dispatch()
}

func (m *Manager) Append(layers ...*ManagedLayer) {
	m.Insert(len(m.layers), layers...)
}

func (m *Manager) Remove(l *ManagedLayer) bool {
	index := m.IndexOf(l)
	if index < 0 {
		return false
	}
	m.layers = slices.Delete(m.layers, index, index+1)
	m.unwatch(l)
	m.Changed.Dispatch()
	return true
}

// Filter keeps only the layers for which keep returns true.
func (m *Manager) Filter(keep func(*ManagedLayer) bool) {
	kept := make([]*ManagedLayer, 0, len(m.layers))
	for _, l := range m.layers {
		if keep(l) {
			kept = append(kept, l)
		} else {
			m.unwatch(l)
		}
	}
	if len(kept) == len(m.layers) {
		return
	}
	m.layers = kept
	m.Changed.Dispatch()
}

// SetLayers replaces the whole collection and dispatches Changed once.
func (m *Manager) SetLayers(layers []*ManagedLayer) {
	next := make([]*ManagedLayer, 0, len(layers))
	for _, l := range layers {
		if !slices.Contains(next, l) {
			next = append(next, l)
		}
	}
	for _, l := range m.layers {
		if !slices.Contains(next, l) {
			m.unwatch(l)
		}
	}
	for _, l := range next {
		m.watch(l)
	}
	m.layers = next
	m.Changed.Dispatch()
}

func (m *Manager) watch(l *ManagedLayer) {
	if m.watches == nil {
		m.watches = make(map[*ManagedLayer]func())
	}
	if _, ok := m.watches[l]; ok {
		return
	}
	m.watches[l] = l.Changed.Add(m.Changed.Dispatch)
}

func (m *Manager) unwatch(l *ManagedLayer) {
	if remove, ok := m.watches[l]; ok {
		remove()
		delete(m.watches, l)
	}
}
