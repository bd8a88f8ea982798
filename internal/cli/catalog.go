package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shadergraph/pkg/docio"
	"github.com/matzehuels/shadergraph/pkg/host/scene"
)

// catalogOpts holds the command-line flags for the catalog command.
type catalogOpts struct {
	output  string // output file, "-" for stdout; defaults to catalog_path from config
	noCache bool   // skip the catalog cache
}

// catalogCommand creates the master catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var opts catalogOpts

	cmd := &cobra.Command{
		Use:   "catalog <scene>",
		Short: "Build the master catalog of shader node types",
		Long: `Instantiate every registered shader node type once in a scratch material
and write a catalog of their sockets and properties.

Catalogs are cached per host version and node type set; use --no-cache to
force a fresh scan.`,
		Example: `  shadergraph catalog scene.yaml
  shadergraph catalog scene.yaml -o nodes.json --no-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCatalog(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file ("-" for stdout, default catalog_path from config)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runCatalog(cmd *cobra.Command, scenePath string, opts catalogOpts) error {
	h, err := scene.Load(scenePath)
	if err != nil {
		return err
	}

	path := opts.output
	if path == "" {
		path = c.Config.CatalogPath
	}
	toStdout := path == stdoutPath
	if toStdout {
		path = ""
	}

	g, err := c.newGenerator(opts.noCache)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	prog := newProgress(loggerFromContext(ctx), "scene", scenePath)
	res, err := g.Generate(ctx, h, path)
	if err != nil {
		return err
	}

	if toStdout {
		return docio.WriteCatalog(res.Catalog, os.Stdout)
	}

	entries := len(res.Catalog.ShaderNodes)
	prog.done(fmt.Sprintf("Cataloged %s", count(entries, "node type")))

	printSuccess("Master catalog for version %s", StyleValue.Render(res.Catalog.HostVersion))
	printStats([]string{
		count(res.Candidates, "candidate"),
		count(entries, "entry"),
	}, &res.Cached)
	if skipped := res.Candidates - entries; skipped > 0 {
		printWarning("%s skipped", count(skipped, "node type"))
	}
	printFile(res.Path)
	printNewline()
	printNextStep("Export a material", fmt.Sprintf("%s material %s <name>", appName, scenePath))
	return nil
}
