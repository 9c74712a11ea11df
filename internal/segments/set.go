package segments

import (
	"iter"
	"slices"
)

// Set is a membership set of segment ids that iterates in insertion order.
type Set struct {
	index map[ID]int
	ids   []ID
}

func NewSet(ids ...ID) *Set {
	s := &Set{index: make(map[ID]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id ID) bool {
	if s.index == nil {
		s.index = make(map[ID]int)
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

func (s *Set) Delete(id ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.ids = slices.Delete(s.ids, i, i+1)
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

func (s *Set) Has(id ID) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

func (s *Set) Clear() {
	s.ids = s.ids[:0]
	clear(s.index)
}

// All iterates the set in insertion order.
func (s *Set) All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		if s == nil {
			return
		}
		for _, id := range s.ids {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *Set) Slice() []ID {
	if s == nil {
		return nil
	}
	return slices.Clone(s.ids)
}
