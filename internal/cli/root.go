package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/shadergraph/pkg/metrics"
	"github.com/matzehuels/shadergraph/pkg/observability"
)

// preRun runs before every command. It applies --verbose, loads the config
// file, attaches the logger to the command context, and registers the
// metrics hooks when a metrics file is configured.
func (c *CLI) preRun(cmd *cobra.Command, args []string) error {
	level := LogInfo
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Loaded config", "materials_dir", cfg.MaterialsDir, "catalog_path", cfg.CatalogPath, "cache_ttl", cfg.CacheTTL)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))

	if cfg.MetricsFile != "" {
		c.metrics = metrics.New()
		observability.SetExportHooks(c.metrics)
	}
	return nil
}

// flushMetrics writes the collected metrics, if any, to the configured file.
func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	defer func() {
		observability.ResetExportHooks()
		c.metrics = nil
	}()
	if err := c.metrics.WriteFile(c.Config.MetricsFile); err != nil {
		return err
	}
	c.Logger.Debugf("Wrote metrics to %s", c.Config.MetricsFile)
	return nil
}
