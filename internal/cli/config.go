package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// configFileName is the config file looked up in the config directory.
const configFileName = "config.toml"

// Config holds the settings read from config.toml. Command-line flags
// override every field.
//
//	materials_dir = "/tmp/materials"
//	catalog_path  = "/tmp/blender_shader_nodes_master.json"
//	metrics_file  = "/var/lib/node_exporter/shadergraph.prom"
//	no_cache      = false
//	cache_ttl     = "24h"
type Config struct {
	MaterialsDir string   `toml:"materials_dir"`
	CatalogPath  string   `toml:"catalog_path"`
	MetricsFile  string   `toml:"metrics_file"`
	NoCache      bool     `toml:"no_cache"`
	CacheTTL     Duration `toml:"cache_ttl"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		MaterialsDir: defaultMaterialsDir,
		CatalogPath:  defaultCatalogPath,
		CacheTTL:     Duration{24 * time.Hour},
	}
}

// Duration is a time.Duration written as a string such as "90m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// loadConfig reads the config file at path on top of the defaults. An empty
// path falls back to the default location, where a missing file is not an
// error. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
