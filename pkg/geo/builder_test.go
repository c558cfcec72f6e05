package geo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/afanto/cylmesh/pkg/errors"
	"github.com/afanto/cylmesh/pkg/stack"
)

func mustStack(t *testing.T, ml, radius float64, layers []stack.Layer) *stack.Stack {
	t.Helper()
	s, err := stack.New(ml, radius, layers)
	if err != nil {
		t.Fatalf("stack.New() error = %v", err)
	}
	return s
}

func TestBuildDeterministic(t *testing.T) {
	s := mustStack(t, 1.5, 8.0, []stack.Layer{
		{Thickness: 2.0, Subdivisions: 2, Name: "FM1"},
		{Thickness: 0.8, Subdivisions: 1, Name: "Spacer"},
		{Thickness: 2.0, Subdivisions: 2, Name: "FM2"},
	})

	first, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first != second {
		t.Error("Build() is not byte-deterministic for identical stacks")
	}
}

func TestBuildTwoLayerDefaults(t *testing.T) {
	s := mustStack(t, 2.0, 10.0, []stack.Layer{
		{Thickness: 3.0, Subdivisions: 1},
		{Thickness: 2.0, Subdivisions: 1},
	})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Exactly two volume groups tagged 1 and 2 with default names.
	for _, want := range []string{
		`Physical Volume("Layer_1", 1)`,
		`Physical Volume("Layer_2", 2)`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if got := strings.Count(script, "Physical Volume("); got != 2 {
		t.Errorf("Physical Volume count = %d, want 2", got)
	}

	// Total height 5 is encoded: the top sections sit at z=5.
	if !strings.Contains(script, ", 5, ml};") {
		t.Error("script should place top section points at z=5")
	}
	if !strings.Contains(script, "height 5 nm") {
		t.Error("script header should state total height 5 nm")
	}

	// Characteristic length and radius are declared once each.
	if !strings.Contains(script, "ml = 2;") || !strings.Contains(script, "r = 10;") {
		t.Error("script should declare ml and r")
	}
}

func TestBuildNamedLayers(t *testing.T) {
	s := mustStack(t, 1.5, 8.0, []stack.Layer{
		{Thickness: 2.0, Subdivisions: 1, Name: "Bottom"},
		{Thickness: 1.0, Subdivisions: 1, Name: "Spacer"},
		{Thickness: 3.0, Subdivisions: 1, Name: "Top"},
	})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for i, name := range []string{"Bottom", "Spacer", "Top"} {
		want := fmt.Sprintf("Physical Volume(%q, %d)", name, i+1)
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
}

func TestBuildSurfaceGroups(t *testing.T) {
	s := mustStack(t, 2.0, 10.0, []stack.Layer{
		{Thickness: 1.0, Subdivisions: 1},
		{Thickness: 1.0, Subdivisions: 1},
		{Thickness: 1.0, Subdivisions: 1},
	})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Surface tags start at 1 independently of the volume sequence.
	for _, want := range []string{
		`Physical Surface("Bottom", 1)`,
		`Physical Surface("Top", 2)`,
		`Physical Surface("Lateral", 3)`,
		`Physical Surface("Interface_1", 4)`,
		`Physical Surface("Interface_2", 5)`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}
	if got := strings.Count(script, "Physical Surface("); got != 5 {
		t.Errorf("Physical Surface count = %d, want 5", got)
	}
	if !strings.Contains(script, `Physical Volume("Layer_1", 1)`) {
		t.Error("volume tags should restart at 1")
	}
}

func TestBuildSurfacesBeforeVolumes(t *testing.T) {
	s := mustStack(t, 2.0, 5.0, []stack.Layer{
		{Thickness: 1.0, Subdivisions: 1},
		{Thickness: 2.0, Subdivisions: 1},
	})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	firstSurfTag := strings.Index(script, "Physical Surface(")
	firstVolTag := strings.Index(script, "Physical Volume(")
	lastSurfTag := strings.LastIndex(script, "Physical Surface(")
	lastPrimitive := strings.LastIndex(script, "\nVolume(") // final geometric statement

	if firstSurfTag == -1 || firstVolTag == -1 {
		t.Fatal("script missing physical tagging directives")
	}
	if lastSurfTag > firstVolTag {
		t.Error("all Physical Surface directives must precede Physical Volume directives")
	}
	if firstSurfTag < lastPrimitive {
		t.Error("physical tagging directives must follow all geometric primitives")
	}
}

func TestBuildSubdivisionsAddSections(t *testing.T) {
	one := mustStack(t, 2.0, 10.0, []stack.Layer{{Thickness: 4.0, Subdivisions: 1}})
	four := mustStack(t, 2.0, 10.0, []stack.Layer{{Thickness: 4.0, Subdivisions: 4}})

	a, err := Build(one)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	b, err := Build(four)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := strings.Count(a, "Plane Surface("); got != 2 {
		t.Errorf("1 subdivision: disk count = %d, want 2", got)
	}
	if got := strings.Count(b, "Plane Surface("); got != 5 {
		t.Errorf("4 subdivisions: disk count = %d, want 5", got)
	}

	// Intermediate sections at z=1,2,3; still one physical volume.
	for _, z := range []string{", 1, ml};", ", 2, ml};", ", 3, ml};"} {
		if !strings.Contains(b, z) {
			t.Errorf("subdivided script missing section at %q", z)
		}
	}
	if got := strings.Count(b, "Physical Volume("); got != 1 {
		t.Errorf("Physical Volume count = %d, want 1", got)
	}
	// The single physical volume spans all four sub-slab volumes.
	if !strings.Contains(b, `Physical Volume("Layer_1", 1) = {1, 2, 3, 4};`) {
		t.Error("physical volume should collect every sub-slab volume")
	}
}

func TestBuildSingleLayerHasNoInterfaces(t *testing.T) {
	s := mustStack(t, 2.0, 5.0, []stack.Layer{{Thickness: 1.0, Subdivisions: 1}})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(script, "Interface_") {
		t.Error("single-layer stack should not emit interface surfaces")
	}
}

func TestBuildRejectsNilStack(t *testing.T) {
	script, err := Build(nil)
	if err == nil {
		t.Fatal("Build(nil) should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidStack) {
		t.Errorf("error code = %q, want INVALID_STACK", errors.GetCode(err))
	}
	if script != "" {
		t.Error("no partial script may be emitted on failure")
	}
}

func TestBuildPointIDsMonotonic(t *testing.T) {
	s := mustStack(t, 2.0, 10.0, []stack.Layer{
		{Thickness: 1.0, Subdivisions: 2},
		{Thickness: 1.0, Subdivisions: 1},
	})

	script, err := Build(s)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// 4 sections of 5 points each, numbered consecutively.
	for id := 1; id <= 20; id++ {
		if !strings.Contains(script, fmt.Sprintf("Point(%d) = ", id)) {
			t.Errorf("script missing Point(%d)", id)
		}
	}
	if strings.Contains(script, "Point(21)") {
		t.Error("script has more points than expected")
	}
}
