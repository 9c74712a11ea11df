package readout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/layerview/internal/layer"
	"github.com/idursun/layerview/internal/navigation"
	"github.com/idursun/layerview/internal/segments"
)

func TestSegmentAt_BlocksOfEight(t *testing.T) {
	assert.Equal(t, SegmentAt(navigation.Position{0, 0, 0}), SegmentAt(navigation.Position{7, 7, 7}))
	assert.NotEqual(t, SegmentAt(navigation.Position{0, 0, 0}), SegmentAt(navigation.Position{8, 0, 0}))
	assert.Equal(t, segments.FromUint64(1), SegmentAt(navigation.Position{-3, -1, 0}))
}

func TestSample_ValuesAreFloat32Exact(t *testing.T) {
	u := &layer.UserLayer{Type: layer.TypeImage, Source: "x"}
	v, ok := Sample(u, navigation.Position{3, 4, 5})
	require.True(t, ok)
	f := v.(float64)
	assert.Equal(t, f, float64(float32(f)))
}

func TestSample_AnnotationHasNoValue(t *testing.T) {
	_, ok := Sample(&layer.UserLayer{Type: layer.TypeAnnotation}, navigation.Position{})
	assert.False(t, ok)
}

func TestUpdate_FillsValuesAndNotifiesOnce(t *testing.T) {
	spec := layer.NewListSpecification("main", nil)
	for _, s := range []layer.Spec{{Type: layer.TypeImage}, {Type: layer.TypeSegmentation}, {Type: layer.TypeAnnotation}} {
		l, err := spec.NewLayer(s)
		require.NoError(t, err)
		spec.Add(l, -1)
	}
	notified := 0
	spec.SelectedValues.Changed.Add(func() { notified++ })

	Update(spec.SelectedValues, navigation.Position{9, 1, 0}, spec)

	assert.Equal(t, 1, notified)
	seg, ok := spec.SelectedValues.Get(spec.Layers.At(1).UserLayer)
	require.True(t, ok)
	assert.Equal(t, segments.FromUint64(2), seg)
	_, ok = spec.SelectedValues.Get(spec.Layers.At(2).UserLayer)
	assert.False(t, ok)
}
