package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/afanto/cylmesh/pkg/cache"
	"github.com/afanto/cylmesh/pkg/config"
	"github.com/afanto/cylmesh/pkg/errors"
	"github.com/afanto/cylmesh/pkg/geo"
	"github.com/afanto/cylmesh/pkg/gmsh"
	"github.com/afanto/cylmesh/pkg/msh"
	"github.com/afanto/cylmesh/pkg/observability"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	ml           float64   // characteristic mesh length (nm)
	radius       float64   // cylinder radius (nm)
	layers       []float64 // layer thicknesses (nm), bottom to top
	subdivisions []int     // vertical subdivisions per layer
	layerNames   []string  // optional physical volume names
	configPath   string    // parameter file to fill unset flags from
	saveConfig   string    // write resolved parameters here and exit
	geoPath      string    // output .geo path
	mshPath      string    // output .msh path
	noRun        bool      // only write the .geo file
	gui          bool      // open the Gmsh GUI instead of batch meshing
	noCache      bool      // bypass the mesh artifact cache
	gmshBin      string    // Gmsh binary override
}

// generateCommand creates the generate command, the main workflow:
// build geometry script, write it, run Gmsh, report statistics.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{geoPath: "mesh.geo", mshPath: "mesh.msh"}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a cylindrical multilayer mesh with Gmsh",
		Long: `Generate a cylindrical multilayer finite-element mesh.

The stack is described by layer thicknesses (bottom to top) sharing one
radius. Each layer becomes a named physical volume; the caps, the lateral
shell, and every inter-layer interface become physical surfaces.

Examples:
  cylmesh generate --ml 2 --radius 10 --layers 3,2
  cylmesh generate --ml 1.5 --radius 8 --layers 2,1,3 --subdivisions 2,1,2 \
      --layer-names FM1,Spacer,FM2
  cylmesh generate --config device.yaml --no-run
  cylmesh generate --ml 2 --radius 10 --layers 3,2 --save-config device.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.ml, "ml", 0, "characteristic mesh length in nm (required unless set via --config)")
	cmd.Flags().Float64Var(&opts.radius, "radius", 0, "cylinder radius in nm (required unless set via --config)")
	cmd.Flags().Float64SliceVar(&opts.layers, "layers", nil, "layer thicknesses in nm, bottom to top (required unless set via --config)")
	cmd.Flags().IntSliceVar(&opts.subdivisions, "subdivisions", nil, "vertical subdivisions per layer (default 1 each)")
	cmd.Flags().StringSliceVar(&opts.layerNames, "layer-names", nil, "names for the layer volumes (e.g. FM1,Spacer,FM2)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "load parameters from a .json/.yaml/.toml file")
	cmd.Flags().StringVar(&opts.saveConfig, "save-config", "", "save resolved parameters to a file and exit")
	cmd.Flags().StringVar(&opts.geoPath, "geo", opts.geoPath, "output .geo filename")
	cmd.Flags().StringVar(&opts.mshPath, "mesh", opts.mshPath, "output .msh filename")
	cmd.Flags().BoolVar(&opts.noRun, "no-run", false, "only write the .geo file; skip the Gmsh step")
	cmd.Flags().BoolVar(&opts.gui, "gui", false, "open the Gmsh GUI instead of meshing in batch mode")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the mesh artifact cache")
	cmd.Flags().StringVar(&opts.gmshBin, "gmsh-bin", "", "Gmsh binary to invoke (default: gmsh on PATH)")

	return cmd
}

// runGenerate resolves parameters, builds and writes the geometry script,
// and unless --no-run or --gui short-circuit, meshes it and prints a summary.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	params := config.Params{
		ML:           opts.ml,
		Radius:       opts.radius,
		Layers:       opts.layers,
		Subdivisions: opts.subdivisions,
		LayerNames:   opts.layerNames,
	}
	if opts.configPath != "" {
		fileParams, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		params = params.Merge(fileParams)
		c.Logger.Debugf("Loaded parameters from %s", opts.configPath)
	}

	if opts.saveConfig != "" {
		if err := config.Save(params, opts.saveConfig); err != nil {
			return err
		}
		printSuccess("Saved parameters to %s", opts.saveConfig)
		return nil
	}

	st, err := params.ToStack()
	if err != nil {
		return err
	}

	hooks := observability.Generator()
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, st.NumLayers())
	script, err := geo.Build(st)
	hooks.OnBuildComplete(ctx, st.NumLayers(), len(script), time.Since(buildStart), err)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Generated geometry script: %d bytes", len(script))

	if err := gmsh.WriteScript(script, opts.geoPath); err != nil {
		return err
	}
	printSuccess("Wrote %s", opts.geoPath)
	if len(script) < minScriptSize {
		printWarning("Generated .geo file is very small (%d bytes)", len(script))
	}

	if opts.noRun {
		printInfo("Skipping Gmsh run (per --no-run); geometry file ready")
		printSummary(st, opts.geoPath, "", nil, false)
		return nil
	}

	runner := gmsh.NewRunner(opts.gmshBin)
	version, err := runner.Version(ctx)
	if err != nil {
		return err
	}
	c.Logger.Infof("Using %s", version)

	if opts.gui {
		if err := runner.OpenGUI(ctx, opts.geoPath); err != nil {
			return err
		}
		printInfo("Gmsh GUI opened; mesh generation depends on user actions")
		return nil
	}

	artifact, cached, err := c.meshWithCache(ctx, runner, script, version, opts)
	if err != nil {
		return err
	}

	res := msh.Parse(string(artifact))
	hooks.OnStatsComplete(ctx, res.Stats.NumVertices, res.Stats.NumElements, res.Complete())

	printSummary(st, opts.geoPath, opts.mshPath, &res, cached)
	return nil
}

// meshWithCache returns the mesh artifact bytes for the script, either from
// the content-addressed cache or from a fresh Gmsh run. The artifact is
// written to opts.mshPath in both cases.
func (c *CLI) meshWithCache(ctx context.Context, runner *gmsh.Runner, script, version string, opts *generateOpts) (data []byte, cached bool, err error) {
	artifacts := newCache(opts.noCache)
	defer artifacts.Close()

	key := cache.ArtifactKey(script, version)
	if data, hit, getErr := artifacts.Get(ctx, key); getErr == nil && hit {
		observability.Cache().OnCacheHit(ctx, "msh")
		if err := writeArtifact(opts.mshPath, data); err != nil {
			return nil, false, err
		}
		c.Logger.Debugf("Mesh restored from cache (%d bytes)", len(data))
		printSuccess("Mesh restored from cache %s %s", iconArrow, opts.mshPath)
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "msh")

	hooks := observability.Generator()
	hooks.OnMeshStart(ctx, opts.geoPath, opts.mshPath)

	var spin *Spinner
	if !c.verbose() {
		spin = newSpinnerWithContext(ctx, "Meshing with Gmsh...")
		spin.Start()
	}

	p := newProgress(c.Logger)
	meshStart := time.Now()
	err = runner.Mesh(ctx, opts.geoPath, opts.mshPath, gmsh.Options{Verbose: c.verbose()})
	hooks.OnMeshComplete(ctx, opts.mshPath, time.Since(meshStart), err)
	if spin != nil {
		if err != nil {
			spin.StopWithError("Gmsh failed")
		} else {
			spin.Stop()
		}
	}
	if err != nil {
		return nil, false, err
	}
	p.done(fmt.Sprintf("Mesh generated %s %s", iconArrow, opts.mshPath))

	data, readErr := os.ReadFile(opts.mshPath)
	if readErr != nil {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, readErr, "mesh file not found at %s", opts.mshPath)
	}
	if len(data) == 0 {
		printWarning("Mesh file is empty")
		return data, false, nil
	}

	if setErr := artifacts.Set(ctx, key, data, 0); setErr == nil {
		observability.Cache().OnCacheSet(ctx, "msh", len(data))
	} else {
		c.Logger.Debugf("Cache write failed: %v", setErr)
	}
	return data, false, nil
}

// writeArtifact writes cached mesh bytes to the requested output path.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write mesh file %s", path)
	}
	return nil
}
