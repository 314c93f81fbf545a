package profiling

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerDisabled(t *testing.T) {
	var timer Timer
	timer.Start("ignored").Stop()

	var buf bytes.Buffer
	timer.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestTimerNesting(t *testing.T) {
	var timer Timer
	timer.Enable()

	record := timer.Start("record")
	timer.Start("open joystick").Stop()
	timer.Start("export").Stop()
	record.Stop()
	timer.Start("plot").Stop()

	var buf bytes.Buffer
	timer.Summarize(&buf)
	out := buf.String()

	assert.Contains(t, out, "- record (")
	assert.Contains(t, out, "  - open joystick (")
	assert.Contains(t, out, "  - export (")
	assert.Contains(t, out, "\n- plot (")
	assert.Contains(t, out, "total ")
}

func TestTimerUnstoppedChild(t *testing.T) {
	var timer Timer
	timer.Enable()

	outer := timer.Start("outer")
	timer.Start("leaked")
	outer.Stop()
	timer.Start("next").Stop()

	var buf bytes.Buffer
	timer.Summarize(&buf)
	assert.Contains(t, buf.String(), "\n- next (")
}

func TestCobraProfiler(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	p := NewCobraProfiler()
	cmd := &cobra.Command{
		Use:                "run",
		PersistentPreRunE:  p.PreRun,
		PersistentPostRunE: p.PostRun,
		RunE:               func(cmd *cobra.Command, args []string) error { return nil },
	}
	p.AddFlags(cmd)

	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--cpu-profile", cpu, "--mem-profile", mem})
	require.NoError(t, cmd.Execute())

	for _, path := range []string{cpu, mem} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), path)
	}
	assert.Contains(t, stderr.String(), "CPU profile written to")
	assert.Contains(t, stderr.String(), "Memory profile written to")
}
