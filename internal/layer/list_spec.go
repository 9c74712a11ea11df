package layer

import (
	"fmt"
	"strconv"
)

// ListSpecification is a named layer group: its collection plus the sampled
// values shared with the rest of the viewer.
type ListSpecification struct {
	Name           string
	Layers         *Manager
	SelectedValues *SelectedValues
}

func NewListSpecification(name string, values *SelectedValues) *ListSpecification {
	if values == nil {
		values = NewSelectedValues()
	}
	return &ListSpecification{
		Name:           name,
		Layers:         NewManager(),
		SelectedValues: values,
	}
}

// Add inserts l at index, or appends when index is negative.
func (s *ListSpecification) Add(l *ManagedLayer, index int) {
	if index < 0 {
		index = s.Layers.Len()
	}
	s.Layers.Insert(index, l)
}

// Remove removes l from the group and forgets its sampled value.
func (s *ListSpecification) Remove(l *ManagedLayer) bool {
	if !s.Layers.Remove(l) {
		return false
	}
	if l.UserLayer != nil {
		s.SelectedValues.Delete(l.UserLayer)
	}
	return true
}

// UniqueName returns base, or base with the smallest numeric suffix that does
// not collide with a layer of the group.
func (s *ListSpecification) UniqueName(base string, exclude ...*ManagedLayer) string {
	if base == "" {
		base = "layer"
	}
	taken := make(map[string]bool, s.Layers.Len())
	for _, l := range s.Layers.layers {
		skip := false
		for _, e := range exclude {
			if e == l {
				skip = true
				break
			}
		}
		if !skip {
			taken[l.Name] = true
		}
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// InitializeLayerFromSpec (re)creates the live layer for l from spec. The
// layer keeps its identity, so rows and selections that refer to it survive.
func (s *ListSpecification) InitializeLayerFromSpec(l *ManagedLayer, spec Spec) error {
	user, err := newUserLayer(spec)
	if err != nil {
		return fmt.Errorf("initializing layer %q: %w", spec.Name, err)
	}
	if l.UserLayer != nil {
		s.SelectedValues.Delete(l.UserLayer)
	}
	l.InitialSpec = spec.Clone()
	l.UserLayer = user
	if spec.Name != "" {
		l.Name = spec.Name
	}
	l.visible = !spec.Hidden
	l.Changed.Dispatch()
	return nil
}

// NewLayer creates and initialises a layer from spec with a name unique in
// the group. It is not added to the group.
func (s *ListSpecification) NewLayer(spec Spec) (*ManagedLayer, error) {
	if spec.Name == "" {
		spec.Name = spec.Type
	}
	spec.Name = s.UniqueName(spec.Name)
	l := NewManagedLayer(spec.Name, spec)
	if err := s.InitializeLayerFromSpec(l, spec); err != nil {
		return nil, err
	}
	return l, nil
}
