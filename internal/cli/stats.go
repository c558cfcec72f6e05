package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afanto/cylmesh/pkg/errors"
	"github.com/afanto/cylmesh/pkg/msh"
)

// statsCommand creates the stats command for inspecting an existing
// mesh artifact without regenerating it.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <mesh.msh>",
		Short: "Show statistics for an existing mesh file",
		Long: `Show vertex and element counts and physical groups for a mesh file.

Parsing is best-effort: sections absent from the file are reported as
missing rather than treated as errors.

Examples:
  cylmesh stats mesh.msh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "read mesh file %s", path)
			}

			res := msh.Parse(string(data))

			printNewline()
			fmt.Println(StyleTitle.Render("Mesh Statistics"))
			printNewline()
			printFile(path)
			printNewline()
			printMeshStats(&res, "")
			printNewline()
			return nil
		},
	}
}
