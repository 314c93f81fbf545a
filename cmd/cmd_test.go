package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/joystick/config"
	"github.com/grovetools/joystick/device"
	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/export"
	"github.com/grovetools/joystick/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExecuteReportsErrors(t *testing.T) {
	testutil.Isolate(t)

	run := func(args ...string) (string, error) {
		root := NewRootCmd()
		var stderr bytes.Buffer
		root.SetArgs(args)
		root.SetIn(strings.NewReader("q\n"))
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&stderr)
		err := Execute(root)
		return stderr.String(), err
	}

	t.Run("usage error", func(t *testing.T) {
		stderr, err := run("plot")
		require.Error(t, err)
		assert.Contains(t, stderr, "Error:")
		assert.Contains(t, stderr, "Run 'joystick-reader plot --help' for usage.")
	})

	t.Run("unknown flag", func(t *testing.T) {
		stderr, err := run("record", "--no-such-flag")
		require.Error(t, err)
		assert.Contains(t, stderr, "no-such-flag")
		assert.Contains(t, stderr, "joystick-reader record --help")
	})

	t.Run("coded error", func(t *testing.T) {
		stderr, err := run("record", "--headless", "--simulate", "--device=-1")
		require.Error(t, err)
		assert.Contains(t, stderr, "No joystick at index -1")
		assert.NotContains(t, stderr, "--help' for usage")
	})

	t.Run("success", func(t *testing.T) {
		_, err := run("record", "--headless", "--simulate")
		require.NoError(t, err)
	})
}

func TestRecordHeadlessSimulated(t *testing.T) {
	work := testutil.Isolate(t)

	_, stderr, err := execute(t, "n\nq\n",
		"record", "--headless", "--simulate", "--interval", "1ms", "--output-dir", "out")
	require.NoError(t, err)

	for _, name := range []string{"joystick1.csv", "joystick2.csv"} {
		records := testutil.ReadCSV(t, filepath.Join(work, "out", name))
		require.NotEmpty(t, records, name)
		assert.Equal(t, []string{"0", "0"}, records[0], "%s starts at the origin", name)
	}
	assert.NoFileExists(t, filepath.Join(work, "out", "joystick3.csv"))
	assert.Contains(t, stderr, "Exported 2 traces")
}

func TestRecordIsTheDefaultAction(t *testing.T) {
	work := testutil.Isolate(t)

	_, _, err := execute(t, "q\n", "--headless", "--simulate", "--prefix", "run")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(work, "run1.csv"))
}

func TestRecordSessionDirectory(t *testing.T) {
	work := testutil.Isolate(t)

	_, _, err := execute(t, "q\n", "record", "--headless", "--simulate", "--session", "-o", "runs")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(work, "runs"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
	assert.True(t, strings.HasPrefix(entries[0].Name(), "joystick_reader_"))
	assert.FileExists(t, filepath.Join(work, "runs", entries[0].Name(), "joystick1.csv"))
}

func TestRecordUsesProjectConfig(t *testing.T) {
	work := testutil.Isolate(t)
	testutil.WriteFile(t, work, "joystick.yml", `version: "1.0"
export:
  prefix: cfg
  dir: traces
`)

	_, _, err := execute(t, "q\n", "record", "--headless", "--simulate")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(work, "traces", "cfg1.csv"))
}

func TestRecordMissingDevice(t *testing.T) {
	testutil.Isolate(t)

	_, _, err := execute(t, "q\n", "record", "--headless", "--simulate", "--device=-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDeviceNotFound), "got %v", err)
}

func TestRecordRejectsNonPositiveInterval(t *testing.T) {
	testutil.Isolate(t)

	_, _, err := execute(t, "q\n", "record", "--headless", "--simulate", "--interval", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--interval")
}

func TestResolveRecordSettings(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte(`version: "1.0"
device:
  index: 0
sampling:
  interval: 20ms
  capacity: 10
export:
  prefix: cfg
  session: true
`))
	require.NoError(t, err)

	t.Run("config only", func(t *testing.T) {
		cmd := NewRecordCmd()
		require.NoError(t, cmd.ParseFlags(nil))

		s := resolveRecordSettings(cmd, cfg)
		assert.Equal(t, 0, s.DeviceIndex)
		assert.Equal(t, 20*time.Millisecond, s.Interval)
		assert.Equal(t, 10, s.Capacity)
		assert.Equal(t, "cfg", s.Prefix)
		assert.Equal(t, ".", s.OutputDir)
		assert.True(t, s.Session)
		assert.False(t, s.Headless)
	})

	t.Run("flags win when set", func(t *testing.T) {
		cmd := NewRecordCmd()
		require.NoError(t, cmd.ParseFlags([]string{
			"--device", "3", "--interval", "5ms", "--prefix", "cli", "--session=false", "--headless",
		}))

		s := resolveRecordSettings(cmd, cfg)
		assert.Equal(t, 3, s.DeviceIndex)
		assert.Equal(t, 5*time.Millisecond, s.Interval)
		assert.Equal(t, 10, s.Capacity)
		assert.Equal(t, "cli", s.Prefix)
		assert.False(t, s.Session)
		assert.True(t, s.Headless)
	})
}

func withDevices(t *testing.T, infos []device.Info) {
	t.Helper()
	prev := deviceLister
	deviceLister = func() ([]device.Info, error) { return infos, nil }
	t.Cleanup(func() { deviceLister = prev })
}

func TestDevices(t *testing.T) {
	testutil.Isolate(t)

	t.Run("table", func(t *testing.T) {
		withDevices(t, []device.Info{
			{Index: 0, Name: "Xbox Controller", Axes: 6},
			{Index: 1, Name: "Flight Stick", Axes: 3},
		})

		out, _, err := execute(t, "", "devices")
		require.NoError(t, err)
		assert.Contains(t, out, "INDEX")
		assert.Contains(t, out, "Flight Stick")
		assert.Contains(t, out, "Joysticks")
		assert.Contains(t, out, "╭")
	})

	t.Run("json", func(t *testing.T) {
		withDevices(t, []device.Info{{Index: 1, Name: "Flight Stick", Axes: 3}})

		out, _, err := execute(t, "", "devices", "--json")
		require.NoError(t, err)

		var infos []device.Info
		require.NoError(t, json.Unmarshal([]byte(out), &infos))
		assert.Equal(t, []device.Info{{Index: 1, Name: "Flight Stick", Axes: 3}}, infos)
	})

	t.Run("none attached", func(t *testing.T) {
		withDevices(t, nil)

		out, _, err := execute(t, "", "devices", "--json")
		require.NoError(t, err)
		assert.JSONEq(t, "[]", out)

		out, _, err = execute(t, "", "devices")
		require.NoError(t, err)
		assert.Contains(t, out, "No joysticks attached.")
	})
}

func TestPlotWritesImage(t *testing.T) {
	work := testutil.Isolate(t)
	first := testutil.WriteFile(t, work, "joystick1.csv", "0,0\n0.1,0.1\n0.2,0.2\n")
	second := testutil.WriteFile(t, work, "joystick2.csv", "0,0\n-0.5,0.25\n")
	seedOnly := testutil.WriteFile(t, work, "joystick3.csv", "0,0\n")

	out := filepath.Join(work, "traces.png")
	_, stderr, err := execute(t, "", "plot", first, second, seedOnly, "-o", out, "--width", "3", "--height", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "output is a PNG")
	assert.Contains(t, stderr, out)
}

func TestPlotLastRecording(t *testing.T) {
	work := testutil.Isolate(t)

	_, _, err := execute(t, "", "plot", "--last")
	require.Error(t, err, "nothing recorded yet")

	_, _, err = execute(t, "n\nq\n", "record", "--headless", "--simulate", "--interval", "1ms")
	require.NoError(t, err)

	out := filepath.Join(work, "last.png")
	_, _, err = execute(t, "", "plot", "--last", "-o", out)
	require.NoError(t, err)
	assert.FileExists(t, out)

	_, _, err = execute(t, "", "plot", "--last", filepath.Join(work, "joystick1.csv"))
	require.Error(t, err)
}

func TestPlotErrors(t *testing.T) {
	work := testutil.Isolate(t)

	_, _, err := execute(t, "", "plot")
	require.Error(t, err)

	_, _, err = execute(t, "", "plot", filepath.Join(work, "missing.csv"))
	require.Error(t, err)

	bad := testutil.WriteFile(t, work, "bad.csv", "0,0\nnot,a-number\n")
	_, _, err = execute(t, "", "plot", bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)

	good := testutil.WriteFile(t, work, "good.csv", "0,0\n")
	_, _, err = execute(t, "", "plot", good, "--width", "0")
	require.Error(t, err)
}

func TestRenderPlotSVG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plot.svg")
	files := []export.File{{Path: "runs/joystick1.csv"}}

	require.NoError(t, renderPlot(files, plotOptions{Output: out, Title: "empty", Width: 2, Height: 2}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestTraceLabel(t *testing.T) {
	assert.Equal(t, "joystick3", traceLabel(filepath.Join("runs", "joystick3.csv")))
	assert.Equal(t, "trace", traceLabel("trace"))
}

func TestConfigShow(t *testing.T) {
	work := testutil.Isolate(t)
	testutil.WriteFile(t, work, "joystick.yml", `version: "1.0"
export:
  prefix: run
`)

	out, _, err := execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "--- # DEFAULT CONFIG")
	assert.Contains(t, out, "--- # PROJECT CONFIG")
	assert.Contains(t, out, "# Source: ")
	assert.Contains(t, out, "prefix: run")
	assert.NotContains(t, out, "GLOBAL CONFIG")

	out, _, err = execute(t, "", "config", "show", "--json")
	require.NoError(t, err)
	var final config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &final))
	assert.Equal(t, "run", final.Export.Prefix)
	assert.Equal(t, config.DefaultInterval, final.Sampling.Interval)
}

func TestConfigValidate(t *testing.T) {
	work := testutil.Isolate(t)
	good := testutil.WriteFile(t, work, "good.yml", "version: \"1.0\"\n")
	bad := testutil.WriteFile(t, work, "bad.yml", "version: \"1.0\"\nexport:\n  prefix: a/b\n")

	out, _, err := execute(t, "", "config", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	_, _, err = execute(t, "", "config", "validate", bad)
	require.Error(t, err)

	_, _, err = execute(t, "", "config", "validate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound), "got %v", err)
}

func TestConfigSchema(t *testing.T) {
	testutil.Isolate(t)

	for _, args := range [][]string{
		{"config", "schema"},
		{"config", "schema", "--generate"},
	} {
		out, _, err := execute(t, "", args...)
		require.NoError(t, err, args)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(out), &doc), args)
		assert.Contains(t, doc, "properties", args)
	}
}

func TestPaths(t *testing.T) {
	testutil.Isolate(t)
	home := os.Getenv(testutil.HomeEnv)

	out, _, err := execute(t, "", "paths")
	require.NoError(t, err)

	var paths PathsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.True(t, strings.HasPrefix(paths.ConfigFile, home), paths.ConfigFile)
	assert.Equal(t, "config.yml", filepath.Base(paths.ConfigFile))
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
}
