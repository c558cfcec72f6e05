package gmsh

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMeshArgs(t *testing.T) {
	quiet := meshArgs("device.geo", "device.msh", Options{})
	want := []string{"device.geo", "-3", "-o", "device.msh", "-v", "0"}
	if !reflect.DeepEqual(quiet, want) {
		t.Errorf("meshArgs() = %v, want %v", quiet, want)
	}

	verbose := meshArgs("device.geo", "device.msh", Options{Verbose: true})
	if verbose[len(verbose)-1] != "2" {
		t.Errorf("verbose meshArgs() = %v, want -v 2", verbose)
	}
}

func TestNewRunnerDefaultBin(t *testing.T) {
	if r := NewRunner(""); r.bin != DefaultBin {
		t.Errorf("bin = %q, want %q", r.bin, DefaultBin)
	}
	if r := NewRunner("/opt/gmsh/bin/gmsh"); r.bin != "/opt/gmsh/bin/gmsh" {
		t.Errorf("bin = %q, override should stick", r.bin)
	}
}

func TestWriteScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "mesh.geo")

	if err := WriteScript("Point(1) = {0, 0, 0, 1};\n", path); err != nil {
		t.Fatalf("WriteScript() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "Point(1) = {0, 0, 0, 1};\n" {
		t.Errorf("written content = %q", data)
	}
}
