package layer

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idursun/layerview/internal/segments"
)

const (
	TypeAnnotation            = "annotation"
	TypeImage                 = "image"
	TypeSegmentation          = "segmentation"
	TypeSegmentationWithGraph = "segmentation_with_graph"
	TypeVectorField           = "vector_field"
)

// Types lists the layer types that can be created from a spec.
var Types = []string{
	TypeAnnotation,
	TypeImage,
	TypeSegmentation,
	TypeSegmentationWithGraph,
	TypeVectorField,
}

var ErrUnknownType = errors.New("unknown layer type")

// Spec is the serialisable description of a layer. It travels with drags and
// is what the layer dialog edits.
type Spec struct {
	Name            string     `toml:"name"`
	Type            string     `toml:"type"`
	Source          string     `toml:"source,omitempty"`
	Hidden          bool       `toml:"hidden,omitempty"`
	AnnotationColor string     `toml:"annotation_color,omitempty"`
	Timestamp       string     `toml:"timestamp,omitempty"`
	Segments        []string   `toml:"segments,omitempty"`
	Equivalences    [][]string `toml:"equivalences,omitempty"`
}

func (s Spec) Clone() Spec {
	c := s
	c.Segments = slices.Clone(s.Segments)
	c.Equivalences = make([][]string, len(s.Equivalences))
	for i, group := range s.Equivalences {
		c.Equivalences[i] = slices.Clone(group)
	}
	if len(c.Equivalences) == 0 {
		c.Equivalences = nil
	}
	return c
}

func (s Spec) Validate() error {
	if !slices.Contains(Types, s.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
	}
	for _, id := range s.Segments {
		if _, err := segments.ParseID(id); err != nil {
			return err
		}
	}
	for _, group := range s.Equivalences {
		for _, id := range group {
			if _, err := segments.ParseID(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsTimeAware reports whether layers of this type can be shown at an older
// state.
func IsTimeAware(layerType string) bool {
	return layerType == TypeSegmentationWithGraph || layerType == TypeAnnotation
}

func IsSegmentation(layerType string) bool {
	return layerType == TypeSegmentation || layerType == TypeSegmentationWithGraph
}

func (s Spec) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return "", fmt.Errorf("encoding layer spec: %w", err)
	}
	return buf.String(), nil
}

func DecodeSpec(text string) (Spec, error) {
	var spec Spec
	md, err := toml.Decode(text, &spec)
	if err != nil {
		return Spec{}, fmt.Errorf("decoding layer spec: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Spec{}, fmt.Errorf("decoding layer spec: unknown keys %s", strings.Join(keys, ", "))
	}
	return spec, nil
}

type specPayload struct {
	Layers []Spec `toml:"layers"`
}

// EncodeSpecs serialises specs into the payload carried by a drag.
func EncodeSpecs(specs []Spec) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(specPayload{Layers: specs}); err != nil {
		return nil, fmt.Errorf("encoding drag payload: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeSpecs(data []byte) ([]Spec, error) {
	var payload specPayload
	if _, err := toml.Decode(string(data), &payload); err != nil {
		return nil, fmt.Errorf("decoding drag payload: %w", err)
	}
	return payload.Layers, nil
}
