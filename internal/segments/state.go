package segments

// VisibleState is the segment selection of a segmentation layer.
type VisibleState struct {
	RootSegments *Set
	// RootSegmentsAfterEdit holds roots produced by the last edit operation.
	RootSegmentsAfterEdit *Set
	HiddenRootSegments    *Set
	VisibleSegments2D     *Set
	VisibleSegments3D     *Set
	Equivalences          Resolver
}

func NewVisibleState(equivalences Resolver) *VisibleState {
	if equivalences == nil {
		equivalences = NewDisjointSets()
	}
	return &VisibleState{
		RootSegments:          NewSet(),
		RootSegmentsAfterEdit: NewSet(),
		HiddenRootSegments:    NewSet(),
		VisibleSegments2D:     NewSet(),
		VisibleSegments3D:     NewSet(),
		Equivalences:          equivalences,
	}
}

func ForEachRootSegment(state *VisibleState, fn func(root ID)) {
	for root := range state.RootSegments.All() {
		fn(root)
	}
}

// ForEachVisibleSegment3D calls fn with every 3D-visible segment and the root
// of its equivalence class.
func ForEachVisibleSegment3D(state *VisibleState, fn func(id, root ID)) {
	for id := range state.VisibleSegments3D.All() {
		fn(id, state.Equivalences.Get(id))
	}
}

// Select adds the class containing id to the root set and all of its members
// to the visible sets. It reports the root that was selected.
func (s *VisibleState) Select(id ID) ID {
	root := s.Equivalences.Get(id)
	s.RootSegments.Add(root)
	for _, member := range s.members(root) {
		s.VisibleSegments2D.Add(member)
		s.VisibleSegments3D.Add(member)
	}
	return root
}

// Deselect removes the class containing id from the root and visible sets.
func (s *VisibleState) Deselect(id ID) {
	root := s.Equivalences.Get(id)
	s.RootSegments.Delete(root)
	s.HiddenRootSegments.Delete(root)
	for _, member := range s.members(root) {
		s.VisibleSegments2D.Delete(member)
		s.VisibleSegments3D.Delete(member)
	}
}

// Merge unions the classes of a and b when the resolver supports it, folding
// the old roots into the new one.
func (s *VisibleState) Merge(a, b ID) (ID, bool) {
	sets, ok := s.Equivalences.(*DisjointSets)
	if !ok {
		return ID{}, false
	}
	oldA, oldB := sets.Get(a), sets.Get(b)
	if !sets.Union(a, b) {
		return oldA, false
	}
	root := sets.Get(a)
	s.RootSegmentsAfterEdit.Clear()
	for _, old := range []ID{oldA, oldB} {
		if old != root && s.RootSegments.Delete(old) {
			s.RootSegments.Add(root)
		}
	}
	if s.RootSegments.Has(root) {
		for _, member := range sets.Members(root) {
			s.VisibleSegments2D.Add(member)
			s.VisibleSegments3D.Add(member)
		}
	}
	s.RootSegmentsAfterEdit.Add(root)
	return root, true
}

func (s *VisibleState) members(root ID) []ID {
	if sets, ok := s.Equivalences.(*DisjointSets); ok {
		return sets.Members(root)
	}
	return []ID{root}
}
