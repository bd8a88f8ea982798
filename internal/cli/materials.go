package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadergraph/pkg/export"
	"github.com/matzehuels/shadergraph/pkg/host/scene"
)

// materialsOpts holds the command-line flags for the materials command.
type materialsOpts struct {
	dir      string // output directory; defaults to materials_dir from config
	selected bool   // only materials on selected objects
}

// materialsCommand creates the batch export command.
func (c *CLI) materialsCommand() *cobra.Command {
	var opts materialsOpts

	cmd := &cobra.Command{
		Use:   "materials <scene>",
		Short: "Export every node-based material to a directory",
		Long: `Export every material that uses nodes to its own JSON file in a directory.

With --selected only the materials assigned to the selected objects are
exported; a material shared by several objects is written once.`,
		Example: `  shadergraph materials scene.yaml
  shadergraph materials scene.yaml -d out/ --selected`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMaterials(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "output directory (default materials_dir from config)")
	cmd.Flags().BoolVar(&opts.selected, "selected", false, "only export materials on selected objects")

	return cmd
}

func (c *CLI) runMaterials(cmd *cobra.Command, scenePath string, opts materialsOpts) error {
	h, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	dir := opts.dir
	if dir == "" {
		dir = c.Config.MaterialsDir
	}

	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx), "scene", scenePath, "dir", dir)
	e := c.newExporter()

	var b *export.Batch
	if opts.selected {
		b, err = e.Selected(ctx, h, dir)
	} else {
		b, err = e.All(ctx, h, dir)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %s", count(b.Count(), "material")))

	if b.Count() == 0 && len(b.Failed) == 0 {
		printInfo("No node-based materials to export")
		return nil
	}

	printBatch(os.Stdout, b)
	if len(b.Failed) > 0 {
		printWarning("%s could not be exported", count(len(b.Failed), "material"))
	} else {
		printSuccess("Exported %s to %s", count(b.Count(), "material"), StyleValue.Render(dir))
	}
	return nil
}
