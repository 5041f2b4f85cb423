package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, cwd string, args ...string) *Config {
	t.Helper()
	jsonPaths, yamlPaths, tomlPaths := CandidatePaths(cwd, ExplicitConfig(args))

	var cfg Config
	parser, err := kong.New(&cfg,
		kong.Name("frourio-express"),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := parse(t, t.TempDir())

	assert.NotEmpty(t, cfg.Dir)
	assert.False(t, cfg.Watch)
	assert.False(t, cfg.DumpRoutes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce)
	assert.NoError(t, cfg.Validate())
}

func TestFlags(t *testing.T) {
	cfg := parse(t, t.TempDir(), "-w", "--dump-routes", "--log-level=debug", "--debounce=250ms", "-q")

	assert.True(t, cfg.Watch)
	assert.True(t, cfg.DumpRoutes)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
}

func TestConfigFiles(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "frourio.json", `{"watch": true, "quiet": true}`},
		{"yaml", "frourio.yaml", "watch: true\nquiet: true\n"},
		{"yml", "frourio.yml", "watch: true\nquiet: true\n"},
		{"toml", "frourio.toml", "watch = true\nquiet = true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.file), []byte(tt.content), 0o644))

			cfg := parse(t, dir)
			assert.True(t, cfg.Watch)
			assert.True(t, cfg.Quiet)
		})
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "frourio.json"), []byte(`{"quiet": true}`), 0o644))

	cfg := parse(t, dir, "--quiet=false")
	assert.False(t, cfg.Quiet)
}

func TestExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte("watch = true\n"), 0o644))

	cfg := parse(t, t.TempDir(), "--config", custom)
	assert.True(t, cfg.Watch)
}

func TestCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := CandidatePaths("/work", "/etc/frourio/custom.yml")

	assert.Equal(t, []string{filepath.Join("/work", "frourio.json")}, jsonPaths)
	assert.Equal(t, []string{
		"/etc/frourio/custom.yml",
		filepath.Join("/work", "frourio.yaml"),
		filepath.Join("/work", "frourio.yml"),
	}, yamlPaths)
	assert.Equal(t, []string{filepath.Join("/work", "frourio.toml")}, tomlPaths)

	jsonPaths, _, _ = CandidatePaths("/work", "settings")
	assert.Equal(t, "settings", jsonPaths[0])
}

func TestExplicitConfigArgs(t *testing.T) {
	assert.Equal(t, "a.json", ExplicitConfig([]string{"-w", "--config=a.json"}))
	assert.Equal(t, "b.toml", ExplicitConfig([]string{"--config", "b.toml"}))
	assert.Empty(t, ExplicitConfig([]string{"--config"}))
	assert.Empty(t, ExplicitConfig(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestValidate(t *testing.T) {
	valid := Config{Dir: ".", LogLevel: "info", Debounce: 100 * time.Millisecond}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing dir", func(c *Config) { c.Dir = "" }, "--dir: required"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "--log-level: must be one of: debug info warn error"},
		{"short debounce", func(c *Config) { c.Debounce = time.Millisecond }, "--debounce: must be at least 10ms"},
		{"long debounce", func(c *Config) { c.Debounce = time.Minute }, "--debounce: must be at most 10s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	cfg := Config{LogLevel: "loud", Debounce: 100 * time.Millisecond}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dir")
	assert.Contains(t, err.Error(), "--log-level")
}
