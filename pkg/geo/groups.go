package geo

import (
	"github.com/afanto/cylmesh/pkg/errors"
)

// Dimension classifies a physical group as a surface or a volume.
type Dimension int

// Physical group dimensions as used by the mesh format.
const (
	DimSurface Dimension = 2
	DimVolume  Dimension = 3
)

// PhysicalGroup is a named, tagged, dimension-classified region of the
// geometry. Downstream tooling (boundary conditions, material assignment)
// references regions by name; the mesh engine references them by (dim, tag).
type PhysicalGroup struct {
	Dim  Dimension
	Tag  int
	Name string
}

// Registry allocates stable (dimension, tag, name) triples. Tags are assigned
// in first-seen order starting at 1, with independent sequences per dimension.
// Names must be unique within a dimension; a surface and a volume may share a
// name (a layer called "Top" coexists with the top cap surface).
type Registry struct {
	surfaces []PhysicalGroup
	volumes  []PhysicalGroup
	names    map[Dimension]map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: map[Dimension]map[string]struct{}{
		DimSurface: {},
		DimVolume:  {},
	}}
}

// AddSurface allocates the next surface tag for name.
func (r *Registry) AddSurface(name string) (PhysicalGroup, error) {
	g, err := r.add(DimSurface, name, len(r.surfaces)+1)
	if err != nil {
		return PhysicalGroup{}, err
	}
	r.surfaces = append(r.surfaces, g)
	return g, nil
}

// AddVolume allocates the next volume tag for name.
func (r *Registry) AddVolume(name string) (PhysicalGroup, error) {
	g, err := r.add(DimVolume, name, len(r.volumes)+1)
	if err != nil {
		return PhysicalGroup{}, err
	}
	r.volumes = append(r.volumes, g)
	return g, nil
}

func (r *Registry) add(dim Dimension, name string, tag int) (PhysicalGroup, error) {
	if name == "" {
		return PhysicalGroup{}, errors.New(errors.ErrCodeInvalidInput, "physical group name cannot be empty")
	}
	if _, dup := r.names[dim][name]; dup {
		return PhysicalGroup{}, errors.New(errors.ErrCodeInvalidInput, "physical group name %q already registered in dimension %d", name, dim)
	}
	r.names[dim][name] = struct{}{}
	return PhysicalGroup{Dim: dim, Tag: tag, Name: name}, nil
}

// Surfaces returns the surface groups in allocation order.
func (r *Registry) Surfaces() []PhysicalGroup {
	out := make([]PhysicalGroup, len(r.surfaces))
	copy(out, r.surfaces)
	return out
}

// Volumes returns the volume groups in allocation order.
func (r *Registry) Volumes() []PhysicalGroup {
	out := make([]PhysicalGroup, len(r.volumes))
	copy(out, r.volumes)
	return out
}
