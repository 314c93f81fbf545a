package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/grovetools/joystick/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("JOYSTICK_HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("version: \"1.0\"\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.DeviceIndex())
	assert.Equal(t, 50*time.Millisecond, cfg.SampleInterval())
	assert.Equal(t, 1_000_000, cfg.Sampling.Capacity)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "joystick", cfg.Export.Prefix)
	assert.False(t, cfg.SessionEnabled())
	assert.Equal(t, []string{"n"}, cfg.Keys.Next)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keys.Stop)
	assert.Equal(t, []string{"?"}, cfg.Keys.Help)
}

func TestLoadFromBytesValues(t *testing.T) {
	yaml := `
version: "1.0"
device:
  index: 0
sampling:
  interval: 20ms
  capacity: 500
export:
  dir: out
  prefix: run
  session: true
keys:
  next: [n, " "]
`
	cfg, err := LoadFromBytes([]byte(yaml))
	require.NoError(t, err)

	// An explicit zero index is kept, not replaced by the default.
	assert.Equal(t, 0, cfg.DeviceIndex())
	assert.Equal(t, 20*time.Millisecond, cfg.SampleInterval())
	assert.Equal(t, 500, cfg.Sampling.Capacity)
	assert.Equal(t, "out", cfg.Export.Dir)
	assert.Equal(t, "run", cfg.Export.Prefix)
	assert.True(t, cfg.SessionEnabled())
	assert.Equal(t, []string{"n", " "}, cfg.Keys.Next)
	assert.Equal(t, []string{"q", "ctrl+c"}, cfg.Keys.Stop)
}

func TestLoadFromBytesSchemaFailure(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative index", "device:\n  index: -2\n"},
		{"bad interval", "sampling:\n  interval: fast\n"},
		{"unknown sampling key", "sampling:\n  rate: 3\n"},
		{"malformed yaml", "device: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
		})
	}
}

func TestExtensions(t *testing.T) {
	yaml := `
version: "1.0"
logging:
  level: debug
  report_caller: true
tui:
  theme: gruvbox
`
	cfg, err := LoadFromBytes([]byte(yaml))
	require.NoError(t, err)

	var logCfg struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	require.NoError(t, cfg.UnmarshalExtension("tui", &tuiCfg))
	assert.Equal(t, "gruvbox", tuiCfg.Theme)

	var missing struct {
		Value string `yaml:"value"`
	}
	require.NoError(t, cfg.UnmarshalExtension("absent", &missing))
	assert.Empty(t, missing.Value)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("JOYSTICK_TEST_DIR", "/data/runs")

	cfg, err := LoadFromBytes([]byte("export:\n  dir: ${JOYSTICK_TEST_DIR}\n  prefix: ${JOYSTICK_TEST_UNSET:-pad}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/data/runs", cfg.Export.Dir)
	assert.Equal(t, "pad", cfg.Export.Prefix)
}

func TestLoadTOML(t *testing.T) {
	toml := `
version = "1.0"

[sampling]
interval = "10ms"
capacity = 42

[export]
prefix = "stick"

[logging]
level = "warn"
`
	cfg, err := LoadFromTOMLBytes([]byte(toml))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, cfg.SampleInterval())
	assert.Equal(t, 42, cfg.Sampling.Capacity)
	assert.Equal(t, "stick", cfg.Export.Prefix)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "joystick.toml")
	writeFile(t, path, "[device]\nindex = 3\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.DeviceIndex())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFileSearchesUpward(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "joystick.yml"), "version: \"1.0\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "joystick.yml"), path)
}

func TestFindConfigFileNotFound(t *testing.T) {
	isolate(t)
	_, err := FindConfigFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadFromMergesGlobal(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config", "config.yml"), `
sampling:
  interval: 5ms
export:
  prefix: global
logging:
  level: debug
  file:
    enabled: true
`)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "joystick.yml"), `
export:
  prefix: project
logging:
  level: warn
`)

	cfg, err := LoadFrom(project)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.SampleInterval())
	assert.Equal(t, "project", cfg.Export.Prefix)

	logging, ok := cfg.Extensions["logging"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "warn", logging["level"])
	assert.NotNil(t, logging["file"], "global-only extension keys survive the merge")
}

func TestLoadFromGlobalOnly(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "config", "config.yml"), "device:\n  index: 4\n")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.DeviceIndex())
}

func TestLoadOrDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadOrDefault(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, explicit, "export:\n  prefix: custom\n")
	cfg, err = LoadOrDefault(t.TempDir(), explicit)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Export.Prefix)

	_, err = LoadOrDefault(t.TempDir(), filepath.Join(t.TempDir(), "missing.yml"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoadLayered(t *testing.T) {
	home := isolate(t)
	globalPath := filepath.Join(home, "config", "config.yml")
	writeFile(t, globalPath, "sampling:\n  capacity: 10\n")
	project := t.TempDir()
	projectPath := filepath.Join(project, "joystick.yml")
	writeFile(t, projectPath, "sampling:\n  interval: 1s\n")

	layered, err := LoadLayered(project)
	require.NoError(t, err)

	assert.Equal(t, DefaultInterval, layered.Default.Sampling.Interval)
	require.NotNil(t, layered.Global)
	assert.Equal(t, 10, layered.Global.Sampling.Capacity)
	require.NotNil(t, layered.Project)
	assert.Equal(t, "1s", layered.Project.Sampling.Interval)
	assert.Equal(t, 10, layered.Final.Sampling.Capacity)
	assert.Equal(t, time.Second, layered.Final.SampleInterval())
	assert.Equal(t, globalPath, layered.FilePaths[SourceGlobal])
	assert.Equal(t, projectPath, layered.FilePaths[SourceProject])
}

func TestLoadLayeredWithoutFiles(t *testing.T) {
	isolate(t)
	layered, err := LoadLayered(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, layered.Global)
	assert.Nil(t, layered.Project)
	assert.Equal(t, Default(), layered.Final)
}
