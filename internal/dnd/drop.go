package dnd

import (
	"log/slog"
	"slices"

	"github.com/idursun/layerview/internal/layer"
)

type Method int

const (
	// Move rearranges layers that already belong to the target group.
	Move Method = iota
	// Copy inserts new layers built from the drag payload.
	Copy
)

func (m Method) String() string {
	if m == Copy {
		return "copy"
	}
	return "move"
}

// DropLayers is the drop session of a drag over one layer group.
type DropLayers struct {
	Manager *layer.ListSpecification
	Method  Method
	layers  []*layer.ManagedLayer
	drag    *Drag
}

// GetDropLayers builds a drop session for d over manager. It returns nil when
// there is nothing that could be dropped.
func GetDropLayers(d *Drag, manager *layer.ListSpecification, forceCopy, allowMove bool) *DropLayers {
	if d == nil || d.ended {
		return nil
	}
	if allowMove && !forceCopy && d.Source == manager {
		var present []*layer.ManagedLayer
		for _, l := range d.Layers {
			if manager.Layers.Has(l) && !slices.Contains(present, l) {
				present = append(present, l)
			}
		}
		if len(present) == 0 {
			return nil
		}
		return &DropLayers{Manager: manager, Method: Move, layers: present, drag: d}
	}

	specs, err := layer.DecodeSpecs(d.Payload)
	if err != nil {
		slog.Warn("ignoring drag with unreadable payload", "err", err)
		return nil
	}
	var copies []*layer.ManagedLayer
	for _, spec := range specs {
		l := layer.NewManagedLayer(spec.Name, spec)
		if err := manager.InitializeLayerFromSpec(l, spec); err != nil {
			slog.Warn("ignoring dragged layer", "name", spec.Name, "err", err)
			continue
		}
		copies = append(copies, l)
	}
	if len(copies) == 0 {
		return nil
	}
	return &DropLayers{Manager: manager, Method: Copy, layers: copies, drag: d}
}

// Layers returns the session's layers in drag order.
func (s *DropLayers) Layers() []*layer.ManagedLayer {
	return slices.Clone(s.layers)
}

func (s *DropLayers) Has(l *layer.ManagedLayer) bool {
	return slices.Contains(s.layers, l)
}

func (s *DropLayers) Delete(l *layer.ManagedLayer) {
	s.layers = slices.DeleteFunc(s.layers, func(x *layer.ManagedLayer) bool { return x == l })
}

func (s *DropLayers) Len() int {
	return len(s.layers)
}

// CompatibleWithMethod reports whether the session can serve effect. A move
// session only serves moves. A copy session serves copies, and moves whose
// layers come from another group.
func (s *DropLayers) CompatibleWithMethod(effect Effect) bool {
	switch s.Method {
	case Move:
		return effect == EffectMove
	case Copy:
		return effect == EffectCopy || (effect == EffectMove && s.drag.Source != s.Manager)
	}
	return false
}

// Finalize commits the drop. Copies receive names unique in the target
// group. It reports false when no layer of the session is left to drop.
func (s *DropLayers) Finalize(effect Effect) bool {
	s.layers = slices.DeleteFunc(s.layers, func(l *layer.ManagedLayer) bool {
		return !s.Manager.Layers.Has(l)
	})
	if len(s.layers) == 0 {
		return false
	}
	if s.Method == Copy {
		for _, l := range s.layers {
			l.Name = s.Manager.UniqueName(l.Name, l)
		}
		s.Manager.Layers.Changed.Dispatch()
	}
	s.drag.DropEffect = effect
	s.drag.markDropped(s.Manager, effect)
	return true
}

// Destroy removes the speculative layers of a copy session from the target
// group. It reports whether target was one of them.
func (s *DropLayers) Destroy(target *layer.ManagedLayer) bool {
	if s.Method == Move {
		return false
	}
	s.Manager.Layers.Filter(func(l *layer.ManagedLayer) bool {
		return !s.Has(l)
	})
	return target != nil && s.Has(target)
}
