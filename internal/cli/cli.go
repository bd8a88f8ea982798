// Package cli implements the shadergraph command-line interface.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shadergraph/pkg/buildinfo"
	"github.com/matzehuels/shadergraph/pkg/cache"
	"github.com/matzehuels/shadergraph/pkg/catalog"
	"github.com/matzehuels/shadergraph/pkg/export"
	"github.com/matzehuels/shadergraph/pkg/metrics"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shadergraph"

	// defaultMaterialsDir is where batch exports go unless configured.
	defaultMaterialsDir = "/tmp/materials"

	// defaultCatalogPath is where the master catalog goes unless configured.
	defaultCatalogPath = "/tmp/blender_shader_nodes_master.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
	metrics    *metrics.Hooks
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "Shadergraph exports shader node graphs as JSON",
		Long:              `Shadergraph exports material node graphs from a scene snapshot to JSON documents, builds a master catalog of every shader node type, and renders node graphs as diagrams.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shadergraph/config.toml)")

	root.AddCommand(c.materialCommand())
	root.AddCommand(c.materialsCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute runs the command tree and then flushes metrics, whether or not the
// command succeeded.
func (c *CLI) Execute(ctx context.Context, args ...string) error {
	root := c.RootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	err := root.ExecuteContext(ctx)
	if ferr := c.flushMetrics(); ferr != nil {
		return errors.Join(err, ferr)
	}
	return err
}

// =============================================================================
// Service Factories
// =============================================================================

// newExporter creates a material exporter for CLI use.
func (c *CLI) newExporter() *export.Exporter {
	return export.New(c.Logger)
}

// newGenerator creates a catalog generator backed by the CLI cache.
func (c *CLI) newGenerator(noCache bool) (*catalog.Generator, error) {
	cc, err := newCache(noCache || c.Config.NoCache)
	if err != nil {
		return nil, err
	}
	return catalog.New(c.Logger, cc, c.Config.CacheTTL.Duration), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shadergraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/shadergraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
