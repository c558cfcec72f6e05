// Package stack defines the validated data model for a multilayer cylinder.
//
// A Stack describes a single constant-radius cylinder partitioned along its
// axis into ordered layers. Layer order is significant: it fixes the
// bottom-to-top stacking and the z-offset of every interface. Stacks are
// immutable once constructed; all validation happens in [New].
package stack

import (
	"fmt"

	"github.com/afanto/cylmesh/pkg/errors"
)

// Layer is one axial segment of the cylinder.
type Layer struct {
	// Thickness is the layer height in nm. Must be positive.
	Thickness float64

	// Subdivisions is the number of internal control sections the layer is
	// split into along its axis. Higher values give the mesher finer control
	// over element size gradation. Must be at least 1.
	Subdivisions int

	// Name labels the layer's physical volume. Optional; when any layer is
	// named, all layers must be named and names must be distinct.
	Name string
}

// Stack is an immutable, validated description of the cylindrical stack.
type Stack struct {
	ml     float64
	radius float64
	layers []Layer
}

// New builds a Stack from the characteristic mesh length, the shared outer
// radius, and the ordered layer sequence. It returns an INVALID_* error if any
// invariant is violated:
//
//   - ml > 0 and radius > 0
//   - at least one layer
//   - every thickness > 0 and every subdivision count >= 1
//   - layer names are all-or-nothing, and distinct when present
func New(ml, radius float64, layers []Layer) (*Stack, error) {
	if ml <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidStack, "mesh length must be positive, got %g", ml)
	}
	if radius <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidStack, "radius must be positive, got %g", radius)
	}
	if len(layers) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidStack, "at least one layer is required")
	}

	named := 0
	seen := make(map[string]int, len(layers))
	for i, l := range layers {
		if l.Thickness <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "layer %d: thickness must be positive, got %g", i+1, l.Thickness)
		}
		if l.Subdivisions < 1 {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "layer %d: subdivisions must be at least 1, got %d", i+1, l.Subdivisions)
		}
		if l.Name == "" {
			continue
		}
		named++
		if prev, dup := seen[l.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidLayer, "layer %d: name %q already used by layer %d", i+1, l.Name, prev)
		}
		seen[l.Name] = i + 1
	}
	if named != 0 && named != len(layers) {
		return nil, errors.New(errors.ErrCodeInvalidStack, "layer names must be provided for all %d layers or none (got %d)", len(layers), named)
	}

	s := &Stack{ml: ml, radius: radius, layers: make([]Layer, len(layers))}
	copy(s.layers, layers)
	return s, nil
}

// Validate re-asserts the construction invariants. Stacks built through
// [New] always pass; callers handed a Stack across an API boundary can use
// this to refuse work on a zero-value or tampered struct.
func (s *Stack) Validate() error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidStack, "stack is nil")
	}
	_, err := New(s.ml, s.radius, s.layers)
	return err
}

// ML returns the characteristic mesh length in nm.
func (s *Stack) ML() float64 { return s.ml }

// Radius returns the outer radius shared by all layers, in nm.
func (s *Stack) Radius() float64 { return s.radius }

// NumLayers returns the number of layers.
func (s *Stack) NumLayers() int { return len(s.layers) }

// Layers returns a copy of the ordered layer sequence.
func (s *Stack) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Layer returns the i-th layer (0-based).
func (s *Stack) Layer(i int) Layer { return s.layers[i] }

// TotalHeight returns the sum of all layer thicknesses.
func (s *Stack) TotalHeight() float64 {
	var h float64
	for _, l := range s.layers {
		h += l.Thickness
	}
	return h
}

// Offsets returns the cumulative z-offsets of the layer interfaces:
// offsets[0] is 0, offsets[i] is the prefix sum of thicknesses[0..i), and
// offsets[N] equals TotalHeight. Length is NumLayers()+1.
func (s *Stack) Offsets() []float64 {
	out := make([]float64, len(s.layers)+1)
	for i, l := range s.layers {
		out[i+1] = out[i] + l.Thickness
	}
	return out
}

// Named reports whether the layers carry explicit names.
func (s *Stack) Named() bool {
	return len(s.layers) > 0 && s.layers[0].Name != ""
}

// VolumeName returns the physical volume name for layer i (0-based): the
// explicit layer name when present, otherwise the deterministic default
// "Layer_<i+1>".
func (s *Stack) VolumeName(i int) string {
	if s.layers[i].Name != "" {
		return s.layers[i].Name
	}
	return fmt.Sprintf("Layer_%d", i+1)
}
