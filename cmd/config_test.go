package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// isolate points every config location at empty temp dirs.
func isolate(t *testing.T) (home, xdg, cwd string) {
	t.Helper()
	home, xdg, cwd = t.TempDir(), t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	chdirForTest(t, cwd)
	return home, xdg, cwd
}

// chdirForTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadMergedConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadMergedConfig()
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("LoadMergedConfig() mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadMergedConfigPrecedence(t *testing.T) {
	home, xdg, cwd := isolate(t)

	writeFile(t, filepath.Join(home, ".config", "partgen", "config.yaml"), `
output_dir: home-out
database: home.db
resolution: 0.5
clip:
  width: 30
`)
	writeFile(t, filepath.Join(xdg, "partgen", "config.yaml"), `
output_dir: xdg-out
tail:
  feather_slice_angle: 0
`)
	writeFile(t, filepath.Join(cwd, "partgen.yaml"), `
output_dir: local-out
`)
	t.Setenv("PARTGEN_RESOLUTION", "0.3")
	t.Setenv("PARTGEN_CLIP__LENGTH", "14")

	cfg, err := LoadMergedConfig()
	require.NoError(t, err)

	require.Equal(t, "local-out", cfg.OutputDir)
	require.Equal(t, "home.db", cfg.Database)
	require.Equal(t, 0.3, cfg.Resolution)
	require.Equal(t, 30.0, cfg.Clip.Width)
	require.Equal(t, 14.0, cfg.Clip.Length)
	require.Equal(t, 1.6, cfg.Clip.ClipThickness, "untouched keys keep their defaults")
	require.Zero(t, cfg.Tail.FeatherSliceAngle)
	require.Equal(t, "tail_plain.stl", cfg.Tail.ModelName())
}

func TestLoadConfigExplicitFile(t *testing.T) {
	_, _, cwd := isolate(t)
	writeFile(t, filepath.Join(cwd, "partgen.yaml"), "output_dir: ignored\n")

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "api_base: http://spoolman.local:7912\ndensity: 1.27\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, ".", cfg.OutputDir)
	require.Equal(t, "http://spoolman.local:7912", cfg.ApiBase)
	require.Equal(t, 1.27, cfg.Density)
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "clip: [not, a, map\n")
	_, err = LoadConfig(bad)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero resolution", func(c *Config) { c.Resolution = 0 }},
		{"negative search iterations", func(c *Config) { c.SearchIters = -1 }},
		{"zero density", func(c *Config) { c.Density = 0 }},
		{"blank output dir", func(c *Config) { c.OutputDir = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestExists(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "exists.yaml")
	writeFile(t, tmpFile, "")

	if !exists(tmpFile) {
		t.Errorf("exists(%q) returned false, want true", tmpFile)
	}
	if exists(tmpFile + "nonexistent") {
		t.Errorf("exists() returned true for nonexistent file, want false")
	}
	if exists("") {
		t.Errorf("exists(\"\") returned true, want false")
	}
}
