// Package geo synthesizes Gmsh geometry scripts from a layer stack.
//
// The builder is a pure function: identical stacks produce byte-identical
// scripts, so the external mesher's behavior is reproducible and tests can
// assert on exact output. Primitive IDs are allocated from monotonically
// increasing counters, one per primitive kind, and are never reused within a
// script. Physical tagging directives are appended after all geometric
// primitives, surfaces before volumes.
package geo

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/afanto/cylmesh/pkg/errors"
	"github.com/afanto/cylmesh/pkg/stack"
)

// Construction strategy: the cylinder is cut into control sections along z,
// one per layer subdivision. Every section is a disk built from a center
// point, four rim points, four circle arcs, and a plane surface. Consecutive
// sections are joined by four vertical rim lines and four ruled lateral
// surfaces, closing one sub-slab volume per section pair. A layer's physical
// volume collects its sub-slab volumes; the bottom disk, top disk, lateral
// shell, and the disks at layer boundaries become the physical surfaces.

// ids allocates primitive IDs. Gmsh shares one ID space between lines and
// circle arcs (curves) and one between plane and ruled surfaces; loops and
// volumes are separate spaces.
type ids struct {
	point       int
	curve       int
	curveLoop   int
	surface     int
	surfaceLoop int
	volume      int
}

func (a *ids) nextPoint() int       { a.point++; return a.point }
func (a *ids) nextCurve() int       { a.curve++; return a.curve }
func (a *ids) nextCurveLoop() int   { a.curveLoop++; return a.curveLoop }
func (a *ids) nextSurface() int     { a.surface++; return a.surface }
func (a *ids) nextSurfaceLoop() int { a.surfaceLoop++; return a.surfaceLoop }
func (a *ids) nextVolume() int      { a.volume++; return a.volume }

// section holds the primitive IDs of one cross-sectional disk.
type section struct {
	center int
	rim    [4]int // +x, +y, -x, -y rim points
	arcs   [4]int // arcs rim[k] -> rim[(k+1)%4]
	disk   int    // plane surface spanning the disk
}

// Build converts a validated stack into a complete Gmsh .geo script.
// It re-asserts the stack invariants and refuses to emit a partial script:
// either the full script is returned or an INVALID_* error.
func Build(s *stack.Stack) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	var alloc ids

	layers := s.Layers()
	offsets := s.Offsets()

	fmt.Fprintf(&buf, "// Multilayer cylinder: %d layer(s), radius %s nm, height %s nm\n",
		len(layers), fnum(s.Radius()), fnum(s.TotalHeight()))
	buf.WriteString("// Generated by cylmesh; do not edit by hand.\n\n")
	fmt.Fprintf(&buf, "ml = %s;\n", fnum(s.ML()))
	fmt.Fprintf(&buf, "r = %s;\n\n", fnum(s.Radius()))

	prev := emitSection(&buf, &alloc, 0)

	var (
		laterals       []int   // lateral shell surface IDs, bottom to top
		interfaceDisks []int   // disk surface IDs at internal layer boundaries
		layerVolumes   [][]int // sub-slab volume IDs per layer
	)
	bottomDisk := prev.disk

	for i, l := range layers {
		step := l.Thickness / float64(l.Subdivisions)
		vols := make([]int, 0, l.Subdivisions)
		for j := 1; j <= l.Subdivisions; j++ {
			z := offsets[i] + float64(j)*step
			if j == l.Subdivisions {
				z = offsets[i+1] // exact layer boundary, no accumulated drift
			}
			cur := emitSection(&buf, &alloc, z)
			lats, vol := emitSlab(&buf, &alloc, prev, cur)
			laterals = append(laterals, lats[:]...)
			vols = append(vols, vol)
			prev = cur
		}
		layerVolumes = append(layerVolumes, vols)
		if i < len(layers)-1 {
			interfaceDisks = append(interfaceDisks, prev.disk)
		}
	}
	topDisk := prev.disk

	groups, err := registerGroups(s, len(interfaceDisks))
	if err != nil {
		return "", err
	}

	// Physical tagging: surfaces first, then volumes, in allocation order.
	buf.WriteString("\n")
	surfaceSets := [][]int{{bottomDisk}, {topDisk}, laterals}
	for _, disk := range interfaceDisks {
		surfaceSets = append(surfaceSets, []int{disk})
	}
	for i, g := range groups.Surfaces() {
		fmt.Fprintf(&buf, "Physical Surface(%q, %d) = {%s};\n", g.Name, g.Tag, joinIDs(surfaceSets[i]))
	}
	for i, g := range groups.Volumes() {
		fmt.Fprintf(&buf, "Physical Volume(%q, %d) = {%s};\n", g.Name, g.Tag, joinIDs(layerVolumes[i]))
	}

	return buf.String(), nil
}

// registerGroups allocates the physical groups in their fixed first-seen
// order: Bottom, Top, Lateral, Interface_1..Interface_(N-1), then one volume
// per layer.
func registerGroups(s *stack.Stack, interfaces int) (*Registry, error) {
	r := NewRegistry()
	for _, name := range []string{"Bottom", "Top", "Lateral"} {
		if _, err := r.AddSurface(name); err != nil {
			return nil, err
		}
	}
	for i := 1; i <= interfaces; i++ {
		if _, err := r.AddSurface(fmt.Sprintf("Interface_%d", i)); err != nil {
			return nil, err
		}
	}
	for i := 0; i < s.NumLayers(); i++ {
		if _, err := r.AddVolume(s.VolumeName(i)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStack, err, "layer %d", i+1)
		}
	}
	return r, nil
}

// emitSection writes the disk cross-section at height z: center and rim
// points carrying the characteristic mesh length, four arcs, and the plane
// surface closing the disk.
func emitSection(buf *bytes.Buffer, alloc *ids, z float64) section {
	var sec section
	zs := fnum(z)

	sec.center = alloc.nextPoint()
	fmt.Fprintf(buf, "Point(%d) = {0, 0, %s, ml};\n", sec.center, zs)
	coords := [4][2]string{{"r", "0"}, {"0", "r"}, {"-r", "0"}, {"0", "-r"}}
	for k, c := range coords {
		sec.rim[k] = alloc.nextPoint()
		fmt.Fprintf(buf, "Point(%d) = {%s, %s, %s, ml};\n", sec.rim[k], c[0], c[1], zs)
	}
	for k := range sec.arcs {
		sec.arcs[k] = alloc.nextCurve()
		fmt.Fprintf(buf, "Circle(%d) = {%d, %d, %d};\n", sec.arcs[k], sec.rim[k], sec.center, sec.rim[(k+1)%4])
	}
	loop := alloc.nextCurveLoop()
	fmt.Fprintf(buf, "Curve Loop(%d) = {%d, %d, %d, %d};\n", loop, sec.arcs[0], sec.arcs[1], sec.arcs[2], sec.arcs[3])
	sec.disk = alloc.nextSurface()
	fmt.Fprintf(buf, "Plane Surface(%d) = {%d};\n\n", sec.disk, loop)
	return sec
}

// emitSlab joins two consecutive sections with vertical rim lines and ruled
// lateral surfaces, then closes the volume between them. The surface loop
// orients the lower disk inward and the upper disk outward.
func emitSlab(buf *bytes.Buffer, alloc *ids, lower, upper section) (laterals [4]int, volume int) {
	var lines [4]int
	for k := range lines {
		lines[k] = alloc.nextCurve()
		fmt.Fprintf(buf, "Line(%d) = {%d, %d};\n", lines[k], lower.rim[k], upper.rim[k])
	}
	for k := range laterals {
		loop := alloc.nextCurveLoop()
		fmt.Fprintf(buf, "Curve Loop(%d) = {%d, %d, %d, %d};\n",
			loop, lower.arcs[k], lines[(k+1)%4], -upper.arcs[k], -lines[k])
		laterals[k] = alloc.nextSurface()
		fmt.Fprintf(buf, "Surface(%d) = {%d};\n", laterals[k], loop)
	}
	shell := alloc.nextSurfaceLoop()
	fmt.Fprintf(buf, "Surface Loop(%d) = {%d, %d, %d, %d, %d, %d};\n",
		shell, -lower.disk, laterals[0], laterals[1], laterals[2], laterals[3], upper.disk)
	volume = alloc.nextVolume()
	fmt.Fprintf(buf, "Volume(%d) = {%d};\n\n", volume, shell)
	return laterals, volume
}

// fnum formats a coordinate with the shortest representation that
// round-trips, keeping scripts stable across runs.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
