package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/models"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	configName = "config.yaml"
	localName  = "partgen.yaml"
	envPrefix  = "PARTGEN_"
)

// Config represents the structure of partgen.yaml
//
//	output_dir: out
//	resolution: 0.2
//	database: ~/.local/share/partgen/builds.db
//	clip:
//	  width: 25
//	tail:
//	  feather_slice_angle: 0
//
// Every key can also be set from the environment: PARTGEN_OUTPUT_DIR,
// PARTGEN_CLIP__WIDTH (a double underscore separates nested keys).
type Config struct {
	LogLevel    string            `koanf:"log_level"`
	OutputDir   string            `koanf:"output_dir"`
	Resolution  float64           `koanf:"resolution"`
	SearchIters int               `koanf:"search_iters"`
	Database    string            `koanf:"database"`
	ApiBase     string            `koanf:"api_base"`
	MetricsFile string            `koanf:"metrics_file"`
	Density     float64           `koanf:"density"`
	Clip        models.ClipParams `koanf:"clip"`
	Tail        models.TailParams `koanf:"tail"`
}

func DefaultConfig() *Config {
	mesh := cad.DefaultMeshOptions()
	return &Config{
		LogLevel:    "info",
		OutputDir:   ".",
		Resolution:  mesh.Resolution,
		SearchIters: mesh.SearchIters,
		Density:     models.DefaultDensity,
		Clip:        models.DefaultClipParams(),
		Tail:        models.DefaultTailParams(),
	}
}

func (c Config) MeshOptions() cad.MeshOptions {
	return cad.MeshOptions{Resolution: c.Resolution, SearchIters: c.SearchIters}
}

func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %g", c.Resolution)
	}
	if c.SearchIters < 0 {
		return fmt.Errorf("search_iters must not be negative, got %d", c.SearchIters)
	}
	if c.Density <= 0 {
		return fmt.Errorf("density must be positive, got %g", c.Density)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir must not be empty")
	}
	return nil
}

// LoadConfig layers defaults, the YAML file at path, then PARTGEN_* env vars.
func LoadConfig(path string) (*Config, error) {
	return loadConfig([]string{path})
}

// LoadMergedConfig is LoadConfig over the standard locations when no explicit
// --config is provided. Precedence (later overrides earlier):
//  1. $HOME/.config/partgen/config.yaml
//  2. $XDG_CONFIG_HOME/partgen/config.yaml
//  3. ./partgen.yaml (current working directory)
//
// Missing files are skipped, so with none present the defaults and env apply.
func LoadMergedConfig() (*Config, error) {
	return loadConfig(discoverConfigPaths())
}

func loadConfig(paths []string) (*Config, error) {
	k := koanf.New(".")
	for _, p := range paths {
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed loading %s: %w", p, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed loading environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config parsing error: %w", err)
	}
	return cfg, nil
}

// discoverConfigPaths returns existing config paths in merge order.
func discoverConfigPaths() []string {
	var out []string
	if home, _ := os.UserHomeDir(); home != "" {
		p := filepath.Join(home, ".config", "partgen", configName)
		if exists(p) {
			out = append(out, p)
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		p := filepath.Join(xdg, "partgen", configName)
		if exists(p) {
			out = append(out, p)
		}
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		p := filepath.Join(cwd, localName)
		if exists(p) {
			out = append(out, p)
		}
	}

	return out
}

func exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)

	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
