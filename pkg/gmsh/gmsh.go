// Package gmsh wraps the external Gmsh process.
//
// Gmsh is only ever reached as an OS process: this package probes for the
// binary, writes geometry scripts to disk, and runs batch or GUI meshing.
// Everything else (script content, artifact parsing) lives in pkg/geo and
// pkg/msh and never touches the filesystem.
package gmsh

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/afanto/cylmesh/pkg/errors"
)

// DefaultBin is the binary probed on PATH when no override is given.
const DefaultBin = "gmsh"

// Runner invokes Gmsh.
type Runner struct {
	bin string
}

// NewRunner creates a runner for the given binary. An empty bin falls back
// to [DefaultBin].
func NewRunner(bin string) *Runner {
	if bin == "" {
		bin = DefaultBin
	}
	return &Runner{bin: bin}
}

// Options controls a batch mesh run.
type Options struct {
	// Verbose passes Gmsh's own verbose flag through instead of silencing it.
	Verbose bool
}

// Version probes for the Gmsh binary and returns its version line.
// A missing binary yields an ENGINE_MISSING error with install hints.
func (r *Runner) Version(ctx context.Context) (string, error) {
	if _, err := exec.LookPath(r.bin); err != nil {
		return "", errors.Wrap(errors.ErrCodeEngineMissing, err,
			"%s not found in PATH. Install with:\n  conda install gmsh\n  or download from https://gmsh.info/", r.bin)
	}

	out, err := exec.CommandContext(ctx, r.bin, "--version").CombinedOutput()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeEngineFailed, err, "%s --version failed", r.bin)
	}
	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return version, nil
}

// Mesh runs Gmsh in batch mode: 3-D meshing of geoPath into mshPath.
// The parent directory of mshPath is created if needed.
func (r *Runner) Mesh(ctx context.Context, geoPath, mshPath string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(mshPath), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory for %s", mshPath)
	}

	cmd := exec.CommandContext(ctx, r.bin, meshArgs(geoPath, mshPath, opts)...)
	var errBuf bytes.Buffer
	if opts.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &errBuf
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errBuf.String())
		if msg != "" {
			return errors.Wrap(errors.ErrCodeEngineFailed, err, "gmsh failed: %s", msg)
		}
		return errors.Wrap(errors.ErrCodeEngineFailed, err, "gmsh failed")
	}
	return nil
}

// meshArgs builds the batch command line: `<geo> -3 -o <msh> -v 0|2`.
func meshArgs(geoPath, mshPath string, opts Options) []string {
	verbosity := "0"
	if opts.Verbose {
		verbosity = "2"
	}
	return []string{geoPath, "-3", "-o", mshPath, "-v", verbosity}
}

// OpenGUI launches the Gmsh GUI on the geometry file without waiting for it
// to exit; mesh generation then depends on user actions inside Gmsh.
func (r *Runner) OpenGUI(ctx context.Context, geoPath string) error {
	if _, err := exec.LookPath(r.bin); err != nil {
		return errors.Wrap(errors.ErrCodeEngineMissing, err,
			"%s not found in PATH. Install with:\n  conda install gmsh\n  or download from https://gmsh.info/", r.bin)
	}
	cmd := exec.CommandContext(ctx, r.bin, geoPath)
	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeEngineFailed, err, "launch gmsh GUI")
	}
	// Detach: the GUI outlives the CLI invocation.
	return cmd.Process.Release()
}

// WriteScript persists a geometry script, creating parent directories as
// needed. Script persistence is the only write the tool performs on behalf
// of the builder, which itself only returns text.
func WriteScript(script, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write geometry file %s", path)
	}
	return nil
}
