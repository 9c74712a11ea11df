package readout

import (
	"hash/fnv"
	"math"

	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/segments"
)

// SegmentBlock is the edge length, in voxels, of the synthetic segments.
const SegmentBlock = 8

// Sample returns the synthetic value of a layer at pos. Annotation layers
// have no voxel data and report no value.
func Sample(l *layer.UserLayer, pos navigation.Position) (any, bool) {
	x, y, z := math.Floor(float64(pos[0])), math.Floor(float64(pos[1])), math.Floor(float64(pos[2]))
	seed := sourceSeed(l.Source)
	switch l.Type {
	case layer.TypeImage:
		v := math.Sin((x+seed)*0.2)*math.Cos(y*0.15)*100 + z
		return float64(float32(v)), true
	case layer.TypeVectorField:
		return []float64{
			float64(float32(math.Sin(x * 0.1))),
			float64(float32(math.Cos(y * 0.1))),
			float64(float32(z * 0.5)),
		}, true
	case layer.TypeSegmentation, layer.TypeSegmentationWithGraph:
		return SegmentAt(pos), true
	}
	return nil, false
}

// SegmentAt returns the synthetic segment id covering pos.
func SegmentAt(pos navigation.Position) segments.ID {
	bx := uint64(math.Max(0, math.Floor(float64(pos[0])/SegmentBlock)))
	by := uint64(math.Max(0, math.Floor(float64(pos[1])/SegmentBlock)))
	bz := uint64(math.Max(0, math.Floor(float64(pos[2])/SegmentBlock)))
	return segments.FromUint64(1 + bx + by<<16 + bz<<32)
}

func sourceSeed(source string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(source))
	return float64(h.Sum32() % 97)
}

// Update recomputes the sampled values of every initialised layer in specs and
// notifies once.
func Update(values *layer.SelectedValues, pos navigation.Position, specs ...*layer.ListSpecification) {
	values.Clear()
	for _, spec := range specs {
		for _, l := range spec.Layers.Layers() {
			if l.UserLayer == nil {
				continue
			}
			if v, ok := Sample(l.UserLayer, pos); ok {
				values.Set(l.UserLayer, v)
			}
		}
	}
	values.Changed.Dispatch()
}
