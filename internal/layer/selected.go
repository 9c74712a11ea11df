package layer

import "github.com/idursun/layerview/internal/signal"

// SelectedValues holds the sampled value of every user layer at the current
// position.
type SelectedValues struct {
	values  map[*UserLayer]any
	Changed signal.Signal
}

func NewSelectedValues() *SelectedValues {
	return &SelectedValues{values: make(map[*UserLayer]any)}
}

// Get returns the value for l. A present value may itself be nil.
func (v *SelectedValues) Get(l *UserLayer) (any, bool) {
	value, ok := v.values[l]
	return value, ok
}

// Set stores a value without notifying; call Changed.Dispatch after a batch.
func (v *SelectedValues) Set(l *UserLayer, value any) {
	v.values[l] = value
}

func (v *SelectedValues) Delete(l *UserLayer) {
	delete(v.values, l)
}

func (v *SelectedValues) Clear() {
	clear(v.values)
}

// SelectedLayerState is the layer shown in the detail view.
type SelectedLayerState struct {
	layer   *ManagedLayer
	visible bool
	Changed signal.Signal
}

func (s *SelectedLayerState) Layer() *ManagedLayer {
	return s.layer
}

func (s *SelectedLayerState) Visible() bool {
	return s.visible && s.layer != nil
}

// Show selects l and makes the detail view visible.
func (s *SelectedLayerState) Show(l *ManagedLayer) {
	if s.layer == l && s.visible {
		return
	}
	s.layer = l
	s.visible = true
	s.Changed.Dispatch()
}

func (s *SelectedLayerState) Hide() {
	if !s.visible {
		return
	}
	s.visible = false
	s.Changed.Dispatch()
}

// Forget clears the selection when it refers to l.
func (s *SelectedLayerState) Forget(l *ManagedLayer) {
	if s.layer != l {
		return
	}
	s.layer = nil
	s.visible = false
	s.Changed.Dispatch()
}
