package layer

import (
	"github.com/idursun/layerview/internal/segments"
	"github.com/idursun/layerview/internal/signal"
)

const DefaultAnnotationColor = "#ffff00"

// UserLayer is the live state of an initialised layer.
type UserLayer struct {
	Type            string
	Source          string
	AnnotationColor string
	// Timestamp is non-nil only for time-aware types. An empty value means
	// the layer shows its current state.
	Timestamp *signal.Watchable[string]
	// Segments is non-nil only for segmentation types.
	Segments *segments.VisibleState
}

func newUserLayer(spec Spec) (*UserLayer, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	u := &UserLayer{
		Type:            spec.Type,
		Source:          spec.Source,
		AnnotationColor: spec.AnnotationColor,
	}
	if u.AnnotationColor == "" {
		u.AnnotationColor = DefaultAnnotationColor
	}
	if IsTimeAware(spec.Type) {
		u.Timestamp = signal.NewWatchable(spec.Timestamp)
	}
	if IsSegmentation(spec.Type) {
		sets := segments.NewDisjointSets()
		for _, group := range spec.Equivalences {
			var first segments.ID
			for i, raw := range group {
				id, _ := segments.ParseID(raw)
				if i == 0 {
					first = id
					continue
				}
				sets.Union(first, id)
			}
		}
		u.Segments = segments.NewVisibleState(sets)
		for _, raw := range spec.Segments {
			id, _ := segments.ParseID(raw)
			u.Segments.Select(id)
		}
	}
	return u, nil
}

// ResetTimestamp makes the layer show its current state again. Segment ids
// only hold at one timestamp, so the selection is cleared as well. The
// returned function restores both.
func (u *UserLayer) ResetTimestamp() (undo func()) {
	if u.Timestamp == nil || u.Timestamp.Value() == "" {
		return func() {}
	}
	previous := u.Timestamp.Value()
	var roots []segments.ID
	if u.Segments != nil {
		segments.ForEachRootSegment(u.Segments, func(root segments.ID) {
			roots = append(roots, root)
		})
		for _, root := range roots {
			u.Segments.Deselect(root)
		}
	}
	u.Timestamp.Set("")
	return func() {
		for _, root := range roots {
			u.Segments.Select(root)
		}
		u.Timestamp.Set(previous)
	}
}

// ManagedLayer is a named entry of a layer list. Identity is the pointer.
type ManagedLayer struct {
	Name        string
	InitialSpec Spec
	// UserLayer is nil until the layer has been initialised from its spec.
	UserLayer *UserLayer
	visible   bool
	Changed   signal.Signal
}

func NewManagedLayer(name string, spec Spec) *ManagedLayer {
	return &ManagedLayer{
		Name:        name,
		InitialSpec: spec,
		visible:     !spec.Hidden,
	}
}

func (l *ManagedLayer) Visible() bool {
	return l.visible
}

func (l *ManagedLayer) SetVisible(visible bool) {
	if l.visible == visible {
		return
	}
	l.visible = visible
	l.Changed.Dispatch()
}

func (l *ManagedLayer) Type() string {
	if l.UserLayer != nil {
		return l.UserLayer.Type
	}
	return l.InitialSpec.Type
}

// Spec returns the current state of the layer as a spec.
func (l *ManagedLayer) Spec() Spec {
	spec := l.InitialSpec.Clone()
	spec.Name = l.Name
	spec.Hidden = !l.visible
	u := l.UserLayer
	if u == nil {
		return spec
	}
	spec.Type = u.Type
	spec.Source = u.Source
	spec.AnnotationColor = u.AnnotationColor
	if u.Timestamp != nil {
		spec.Timestamp = u.Timestamp.Value()
	}
	if u.Segments != nil {
		spec.Segments = nil
		segments.ForEachRootSegment(u.Segments, func(root segments.ID) {
			spec.Segments = append(spec.Segments, root.String())
		})
		spec.Equivalences = equivalenceGroups(u.Segments)
	}
	return spec
}

func equivalenceGroups(state *segments.VisibleState) [][]string {
	sets, ok := state.Equivalences.(*segments.DisjointSets)
	if !ok {
		return nil
	}
	var groups [][]string
	for _, members := range sets.Groups() {
		group := make([]string, len(members))
		for i, m := range members {
			group[i] = m.String()
		}
		groups = append(groups, group)
	}
	return groups
}
