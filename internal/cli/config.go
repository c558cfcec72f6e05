package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/afanto/cylmesh/pkg/config"
	"github.com/afanto/cylmesh/pkg/errors"
)

// configCommand creates the config command with init, validate and
// convert subcommands for working with parameter files.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage parameter files",
		Long: `Manage mesh parameter files in JSON, YAML or TOML format.

The format is chosen by file extension: .json, .yaml/.yml or .toml.`,
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configValidateCommand())
	cmd.AddCommand(c.configConvertCommand())

	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter parameter file",
		Long: `Write a starter parameter file describing a three-layer stack.

Defaults to cylmesh.json; pass a .yaml or .toml path for those formats.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "cylmesh.json"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return errors.New(errors.ErrCodeInvalidPath, "refusing to overwrite existing file %s", path)
			}

			params := config.Params{
				ML:           2,
				Radius:       10,
				Layers:       []float64{3, 1, 3},
				Subdivisions: []int{1, 1, 1},
				LayerNames:   []string{"FM1", "Spacer", "FM2"},
			}
			if err := config.Save(params, path); err != nil {
				return err
			}
			printSuccess("Wrote starter parameters to %s", path)
			printDetail("Edit the file, then run: cylmesh generate --config %s", path)
			return nil
		},
	}
}

func (c *CLI) configValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that a parameter file describes a valid stack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.Load(args[0])
			if err != nil {
				return err
			}
			st, err := params.ToStack()
			if err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%d layer(s), total height %.3g nm", st.NumLayers(), st.TotalHeight())
			return nil
		},
	}
}

func (c *CLI) configConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a parameter file between formats",
		Long: `Convert a parameter file between JSON, YAML and TOML.

Both formats are chosen by file extension, e.g.:
  cylmesh config convert device.json device.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if _, err := params.ToStack(); err != nil {
				return err
			}
			if err := config.Save(params, args[1]); err != nil {
				return err
			}
			printSuccess("Converted %s %s %s", args[0], iconArrow, args[1])
			return nil
		},
	}
}
