package dnd

import (
	"log/slog"
	"slices"

	"github.com/idursun/layerview/internal/layer"
)

// Effect is the drop effect negotiated between a drag and a drop target.
type Effect int

const (
	EffectNone Effect = iota
	EffectMove
	EffectCopy
)

func (e Effect) String() string {
	switch e {
	case EffectMove:
		return "move"
	case EffectCopy:
		return "copy"
	}
	return "none"
}

// Drag is a drag of one or more layers that has started but not ended.
type Drag struct {
	Source *layer.ListSpecification
	Layers []*layer.ManagedLayer
	// Payload carries the specs of the dragged layers, so targets never need
	// to reach into the source group to copy them.
	Payload    []byte
	LayoutSpec any
	// DropEffect is the last effect a target accepted.
	DropEffect Effect

	droppedOn     *layer.ListSpecification
	droppedEffect Effect
	ended         bool
}

// Start begins a drag of layers out of source.
func Start(source *layer.ListSpecification, layers []*layer.ManagedLayer, layoutSpec any) (*Drag, error) {
	specs := make([]layer.Spec, len(layers))
	for i, l := range layers {
		specs[i] = l.Spec()
	}
	payload, err := layer.EncodeSpecs(specs)
	if err != nil {
		return nil, err
	}
	return &Drag{
		Source:     source,
		Layers:     slices.Clone(layers),
		Payload:    payload,
		LayoutSpec: layoutSpec,
	}, nil
}

// EffectFor returns the effect a drop of d should use. Holding the copy
// modifier always copies; otherwise layers are moved, which between groups
// means copying and then removing the originals when the drag ends.
func EffectFor(d *Drag, copyModifier bool) Effect {
	if d == nil || d.ended {
		return EffectNone
	}
	if copyModifier {
		return EffectCopy
	}
	return EffectMove
}

func (d *Drag) markDropped(target *layer.ListSpecification, effect Effect) {
	d.droppedOn = target
	d.droppedEffect = effect
}

// End finishes the drag. Layers moved into another group are removed from
// the source group.
func (d *Drag) End() {
	if d == nil || d.ended {
		return
	}
	d.ended = true
	if d.droppedOn == nil || d.droppedOn == d.Source || d.droppedEffect != EffectMove {
		return
	}
	for _, l := range d.Layers {
		d.Source.Remove(l)
	}
	slog.Debug("moved layers between groups", "from", d.Source.Name, "to", d.droppedOn.Name, "count", len(d.Layers))
}

func (d *Drag) Ended() bool {
	return d.ended
}
