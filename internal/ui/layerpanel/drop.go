package layerpanel

import (
	"log/slog"
	"slices"

	"github.com/idursun/layerview/internal/dnd"
	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/ui/common"
)

// dropHandler is the drop target of one row, or of the add button and the
// empty area below the rows when layer is nil.
type dropHandler struct {
	panel    *Panel
	layer    *layer.ManagedLayer
	disposed bool
}

var _ common.DropTarget = (*dropHandler)(nil)

func (h *dropHandler) DragEnter(e common.DragEvent) bool {
	return h.update(e, true) != nil
}

func (h *dropHandler) DragOver(e common.DragEvent) bool {
	return h.update(e, true) != nil
}

func (h *dropHandler) Drop(e common.DragEvent) bool {
	p := h.panel
	accepted := false
	if dropLayers := h.update(e, false); dropLayers != nil {
		if dropLayers.Finalize(e.Drag.DropEffect) {
			accepted = true
			slog.Debug("layers dropped",
				"group", p.group.Name,
				"method", dropLayers.Method,
				"count", dropLayers.Len())
		} else {
			dropLayers.Destroy(nil)
		}
	}
	p.dropLayers = nil
	return accepted
}

// update brings the panel's drop session in line with the drag hovering over
// this target and places the dragged layers before it. It returns nil when
// the drag is not accepted here.
func (h *dropHandler) update(e common.DragEvent, updateDropEffect bool) *dnd.DropLayers {
	d := e.Drag
	if h.disposed || d == nil {
		return nil
	}
	p := h.panel
	if p.disposed {
		return nil
	}
	effect := d.DropEffect
	if updateDropEffect {
		effect = dnd.EffectFor(d, e.CopyRequested())
		d.DropEffect = effect
	}
	if effect == dnd.EffectNone {
		return nil
	}

	dropLayers := p.dropLayers
	existing := true
	if dropLayers != nil && !dropLayers.CompatibleWithMethod(effect) {
		p.dropLayers = nil
		if dropLayers.Destroy(h.layer) {
			// The target itself was one of the destroyed copies; wait for the
			// next event to land on a live target.
			return nil
		}
		dropLayers = nil
	}
	if dropLayers == nil {
		dropLayers = dnd.GetDropLayers(d, p.group, effect == dnd.EffectCopy, true)
		if dropLayers == nil {
			return nil
		}
		p.dropLayers = dropLayers
		existing = dropLayers.Method == dnd.Move
	}

	if h.layer != nil && dropLayers.Has(h.layer) {
		return dropLayers
	}

	layers := p.group.Layers
	if !existing {
		index := layers.Len()
		if h.layer != nil {
			if i := layers.IndexOf(h.layer); i >= 0 {
				index = i
			}
		}
		// one insert keeps the copies in drag order
		layers.Insert(index, dropLayers.Layers()...)
		return dropLayers
	}

	present := make(map[*layer.ManagedLayer]bool, dropLayers.Len())
	firstRemoval := -1
	remaining := make([]*layer.ManagedLayer, 0, layers.Len())
	for i, l := range layers.Layers() {
		if dropLayers.Has(l) {
			if firstRemoval < 0 {
				firstRemoval = i
			}
			present[l] = true
			continue
		}
		remaining = append(remaining, l)
	}
	index := len(remaining)
	if h.layer != nil {
		if i := slices.Index(remaining, h.layer); i >= 0 {
			index = i
			if firstRemoval >= 0 && firstRemoval <= index {
				index++
			}
		}
	}
	for _, l := range dropLayers.Layers() {
		if !present[l] {
			dropLayers.Delete(l)
		}
	}
	layers.SetLayers(slices.Insert(remaining, index, dropLayers.Layers()...))
	return dropLayers
}
