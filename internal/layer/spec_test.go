package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_EncodeDecodeThroughEditorText(t *testing.T) {
	spec := Spec{
		Name:         "cells",
		Type:         TypeSegmentationWithGraph,
		Source:       "precomputed://cells",
		Timestamp:    "1700000000",
		Segments:     []string{"3"},
		Equivalences: [][]string{{"3", "5"}},
	}

	text, err := spec.Encode()
	require.NoError(t, err)
	assert.Contains(t, text, `name = "cells"`)
	assert.NotContains(t, text, "hidden")

	decoded, err := DecodeSpec(text)
	require.NoError(t, err)
	assert.Equal(t, spec, decoded)
}

func TestDecodeSpec_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeSpec("name = \"a\"\ntype = \"image\"\nopacity = 0.5\n")
	assert.ErrorContains(t, err, "opacity")
}

func TestDecodeSpec_SyntaxError(t *testing.T) {
	_, err := DecodeSpec("name = ")
	assert.Error(t, err)
}

func TestSpecs_PayloadRoundTrip(t *testing.T) {
	specs := []Spec{{Name: "a", Type: TypeImage}, {Name: "b", Type: TypeAnnotation, Hidden: true}}

	data, err := EncodeSpecs(specs)
	require.NoError(t, err)
	decoded, err := DecodeSpecs(data)
	require.NoError(t, err)

	assert.Equal(t, specs, decoded)
}

func TestSpec_Validate(t *testing.T) {
	assert.NoError(t, Spec{Type: TypeImage}.Validate())
	assert.ErrorIs(t, Spec{Type: "mesh"}.Validate(), ErrUnknownType)
	assert.Error(t, Spec{Type: TypeSegmentation, Segments: []string{"x"}}.Validate())
	assert.Error(t, Spec{Type: TypeSegmentation, Equivalences: [][]string{{"1", "y"}}}.Validate())
}

func TestManagedLayer_SpecReflectsLiveState(t *testing.T) {
	s := NewListSpecification("main", nil)
	l, err := s.NewLayer(Spec{Name: "seg", Type: TypeSegmentation, Equivalences: [][]string{{"4", "2"}}})
	require.NoError(t, err)
	l.UserLayer.Segments.Select(l.UserLayer.Segments.Equivalences.Get(idOf(t, "4")))
	l.SetVisible(false)

	spec := l.Spec()

	assert.Equal(t, []string{"2"}, spec.Segments)
	assert.Equal(t, [][]string{{"2", "4"}}, spec.Equivalences)
	assert.True(t, spec.Hidden)
	assert.Equal(t, DefaultAnnotationColor, spec.AnnotationColor)
}

func TestUserLayer_ResetTimestampClearsSelectionAndUndoes(t *testing.T) {
	s := NewListSpecification("main", nil)
	l, err := s.NewLayer(Spec{Type: TypeSegmentationWithGraph, Timestamp: "1700000000", Segments: []string{"7"}})
	require.NoError(t, err)
	u := l.UserLayer

	undo := u.ResetTimestamp()

	assert.Equal(t, "", u.Timestamp.Value())
	assert.Zero(t, u.Segments.RootSegments.Len())

	undo()

	assert.Equal(t, "1700000000", u.Timestamp.Value())
	assert.True(t, u.Segments.RootSegments.Has(idOf(t, "7")))
}

func TestUserLayer_ResetTimestampWithoutTimestampIsNoop(t *testing.T) {
	s := NewListSpecification("main", nil)
	l, err := s.NewLayer(Spec{Type: TypeImage})
	require.NoError(t, err)

	assert.NotPanics(t, func() { l.UserLayer.ResetTimestamp()() })
}
