package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/errors"
	"github.com/matzehuels/shadergraph/pkg/host/scene"
)

// stdoutPath makes -o write the document to standard output.
const stdoutPath = "-"

// materialOpts holds the command-line flags for the material command.
type materialOpts struct {
	output string // output file, "-" for stdout; defaults to /tmp/<name>_nodes.json
}

// materialCommand creates the command that exports a single material.
func (c *CLI) materialCommand() *cobra.Command {
	var opts materialOpts

	cmd := &cobra.Command{
		Use:   "material <scene> <name>",
		Short: "Export one material's node graph to JSON",
		Long: `Export the node graph of a single material to an indented JSON document.

The scene is a YAML snapshot of the host's node types, materials, and objects.`,
		Example: `  shadergraph material scene.yaml Wood
  shadergraph material scene.yaml Wood -o wood.json
  shadergraph material scene.yaml Wood -o - | jq .nodes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMaterial(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file ("-" for stdout)`)

	return cmd
}

func (c *CLI) runMaterial(cmd *cobra.Command, scenePath, name string, opts materialOpts) error {
	if err := errors.ValidateMaterialName(name); err != nil {
		return err
	}
	h, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = defaultMaterialPath(name)
	}
	toStdout := path == stdoutPath
	if toStdout {
		path = ""
	}

	res, err := c.newExporter().Material(cmd.Context(), h, name, path)
	if err != nil {
		return err
	}

	if toStdout {
		return docio.WriteMaterial(res.Document, os.Stdout)
	}

	g := res.Document
	printSuccess("Exported material %s", StyleValue.Render(g.MaterialName))
	printStats([]string{count(len(g.Nodes), "node"), count(len(g.Links), "link")}, nil)
	if len(res.Issues) > 0 {
		printWarning("%s while reading properties (run with -v for details)", count(len(res.Issues), "issue"))
	}
	printFile(res.Path)
	return nil
}

// defaultMaterialPath is the file a single material is written to when no
// output is given.
func defaultMaterialPath(name string) string {
	return filepath.Join(os.TempDir(), errors.SafeFileName(name)+"_nodes.json")
}
