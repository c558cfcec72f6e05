package stack

import (
	"math"
	"testing"

	"github.com/afanto/cylmesh/pkg/errors"
)

func TestNewValid(t *testing.T) {
	s, err := New(2.0, 10.0, []Layer{
		{Thickness: 3.0, Subdivisions: 1},
		{Thickness: 2.0, Subdivisions: 2},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.ML() != 2.0 || s.Radius() != 10.0 {
		t.Errorf("ML/Radius = %g/%g, want 2/10", s.ML(), s.Radius())
	}
	if s.NumLayers() != 2 {
		t.Errorf("NumLayers() = %d, want 2", s.NumLayers())
	}
	if s.TotalHeight() != 5.0 {
		t.Errorf("TotalHeight() = %g, want 5", s.TotalHeight())
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name   string
		ml     float64
		radius float64
		layers []Layer
		code   errors.Code
	}{
		{"zero ml", 0, 10, []Layer{{Thickness: 1, Subdivisions: 1}}, errors.ErrCodeInvalidStack},
		{"negative radius", 2, -1, []Layer{{Thickness: 1, Subdivisions: 1}}, errors.ErrCodeInvalidStack},
		{"no layers", 2, 10, nil, errors.ErrCodeInvalidStack},
		{"zero thickness", 2, 10, []Layer{{Thickness: 0, Subdivisions: 1}}, errors.ErrCodeInvalidLayer},
		{"zero subdivisions", 2, 10, []Layer{{Thickness: 1, Subdivisions: 0}}, errors.ErrCodeInvalidLayer},
		{"partial names", 2, 10, []Layer{
			{Thickness: 1, Subdivisions: 1, Name: "Base"},
			{Thickness: 1, Subdivisions: 1},
		}, errors.ErrCodeInvalidStack},
		{"duplicate names", 2, 10, []Layer{
			{Thickness: 1, Subdivisions: 1, Name: "FM"},
			{Thickness: 1, Subdivisions: 1, Name: "FM"},
		}, errors.ErrCodeInvalidLayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.ml, tt.radius, tt.layers)
			if err == nil {
				t.Fatal("New() should fail")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %q, want %q (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	s, err := New(1.5, 8.0, []Layer{
		{Thickness: 2.0, Subdivisions: 1},
		{Thickness: 1.0, Subdivisions: 1},
		{Thickness: 3.0, Subdivisions: 1},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	offsets := s.Offsets()
	want := []float64{0, 2, 3, 6}
	if len(offsets) != len(want) {
		t.Fatalf("len(Offsets()) = %d, want %d", len(offsets), len(want))
	}
	for i := range want {
		if math.Abs(offsets[i]-want[i]) > 1e-12 {
			t.Errorf("Offsets()[%d] = %g, want %g", i, offsets[i], want[i])
		}
	}
	if offsets[len(offsets)-1] != s.TotalHeight() {
		t.Errorf("last offset %g != total height %g", offsets[len(offsets)-1], s.TotalHeight())
	}
}

func TestVolumeNames(t *testing.T) {
	anon, err := New(2, 10, []Layer{
		{Thickness: 3, Subdivisions: 1},
		{Thickness: 2, Subdivisions: 1},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if anon.Named() {
		t.Error("Named() = true for anonymous layers")
	}
	if anon.VolumeName(0) != "Layer_1" || anon.VolumeName(1) != "Layer_2" {
		t.Errorf("default names = %q, %q", anon.VolumeName(0), anon.VolumeName(1))
	}

	named, err := New(2, 10, []Layer{
		{Thickness: 2, Subdivisions: 1, Name: "Bottom"},
		{Thickness: 1, Subdivisions: 1, Name: "Spacer"},
		{Thickness: 3, Subdivisions: 1, Name: "Top"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i, want := range []string{"Bottom", "Spacer", "Top"} {
		if got := named.VolumeName(i); got != want {
			t.Errorf("VolumeName(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestLayersReturnsCopy(t *testing.T) {
	s, err := New(2, 10, []Layer{{Thickness: 1, Subdivisions: 1}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := s.Layers()
	got[0].Thickness = 99
	if s.Layer(0).Thickness != 1 {
		t.Error("mutating Layers() result should not affect the stack")
	}
}

func TestNewCopiesInput(t *testing.T) {
	in := []Layer{{Thickness: 1, Subdivisions: 1}}
	s, err := New(2, 10, in)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	in[0].Thickness = 42
	if s.Layer(0).Thickness != 1 {
		t.Error("mutating the input slice should not affect the stack")
	}
}
