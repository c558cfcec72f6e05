package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/afanto/cylmesh/pkg/config"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.Execute()
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")

	if err := runCommand(t, "config", "init", path); err != nil {
		t.Fatalf("config init error: %v", err)
	}

	params, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := params.ToStack(); err != nil {
		t.Errorf("starter parameters should describe a valid stack: %v", err)
	}
	if len(params.Layers) != 3 {
		t.Errorf("starter file has %d layers, want 3", len(params.Layers))
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "config", "init", path); err == nil {
		t.Error("config init should refuse to overwrite an existing file")
	}
}

func TestConfigValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	params := config.Params{ML: 2, Radius: 10, Layers: []float64{3, 2}}
	if err := config.Save(params, path); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "config", "validate", path); err != nil {
		t.Errorf("config validate error: %v", err)
	}
}

func TestConfigValidateRejectsBadStack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	params := config.Params{ML: 2, Radius: -1, Layers: []float64{3}}
	if err := config.Save(params, path); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "config", "validate", path); err == nil {
		t.Error("config validate should reject a negative radius")
	}
}

func TestConfigConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "params.json")
	out := filepath.Join(dir, "params.yaml")

	orig := config.Params{
		ML:         1.5,
		Radius:     8,
		Layers:     []float64{2, 1, 3},
		LayerNames: []string{"FM1", "Spacer", "FM2"},
	}
	if err := config.Save(orig, in); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "config", "convert", in, out); err != nil {
		t.Fatalf("config convert error: %v", err)
	}

	got, err := config.Load(out)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Radius != orig.Radius || len(got.Layers) != len(orig.Layers) {
		t.Errorf("converted params = %+v, want %+v", got, orig)
	}
}
