package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/tui/theme"
	"github.com/grovetools/joystick/version"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardCommandFlags(t *testing.T) {
	cmd := NewStandardCommand("joystick-reader", "Sample a joystick")
	cmd.Run = func(*cobra.Command, []string) {}
	cmd.SetArgs([]string{"-v", "--json", "--config", "custom.yml"})
	require.NoError(t, cmd.Execute())

	opts := GetOptions(cmd)
	assert.Equal(t, CommandOptions{ConfigFile: "custom.yml", Verbose: true, JSONOutput: true}, opts)
}

func TestErrorHandlerMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "device not found",
			err:  errors.DeviceNotFound(1, 0),
			want: []string{"No joystick at index 1 (0 attached)", "joystick-reader devices"},
		},
		{
			name: "device init",
			err:  errors.DeviceInit(2, io.EOF),
			want: []string{"Could not open joystick 2", "--simulate"},
		},
		{
			name: "export failed",
			err:  errors.ExportFailed("out/joystick1.csv", io.ErrShortWrite),
			want: []string{"Traces were not saved", "out/joystick1.csv"},
		},
		{
			name: "session dir exists",
			err:  errors.SessionDirExists("joystick_reader_x"),
			want: []string{"Session directory joystick_reader_x already exists"},
		},
		{
			name: "wrapped config validation",
			err:  errors.Wrap(errors.New(errors.ErrCodeConfigValidation, "bad"), errors.ErrCodeConfigValidation, "invalid"),
			want: []string{"Invalid configuration", "config validate"},
		},
		{
			name: "plain error",
			err:  io.ErrUnexpectedEOF,
			want: []string{"Error: unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &ErrorHandler{Out: &buf}
			assert.Equal(t, tt.err, h.Handle(tt.err))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			assert.NotContains(t, buf.String(), "Error details")
		})
	}
}

func TestErrorHandlerVerbose(t *testing.T) {
	var buf bytes.Buffer
	h := &ErrorHandler{Verbose: true, Out: &buf}
	h.Handle(errors.DeviceNotFound(3, 1))

	out := buf.String()
	require.Contains(t, out, "Error details:")
	details := out[strings.Index(out, "{"):]
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(details)), &decoded))
	assert.Equal(t, "DEVICE_NOT_FOUND", decoded["code"])
}

func TestErrorHandlerNil(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, (&ErrorHandler{Out: &buf}).Handle(nil))
	assert.Empty(t, buf.String())
}

func TestVersionCommand(t *testing.T) {
	root := NewStandardCommand("joystick-reader", "Sample a joystick")
	root.AddCommand(NewVersionCommand("joystick-reader"))

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "joystick-reader "+version.Version)

	buf.Reset()
	root.SetArgs([]string{"version", "--json"})
	require.NoError(t, root.Execute())
	var info version.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, version.Version, info.Version)
}

func TestStyledHelp(t *testing.T) {
	root := NewStandardCommand("joystick-reader", "Sample a joystick")
	child := &cobra.Command{
		Use:   "plot FILE...",
		Short: "Render traces",
		Long:  "Render exported traces to a PNG.\n\nExamples:\n# Plot two traces\njoystick-reader plot joystick1.csv joystick2.csv -o out.png",
		Run:   func(*cobra.Command, []string) {},
	}
	child.Flags().StringP("output", "o", "traces.png", "Output image")
	root.AddCommand(child)
	ApplyStyledHelpRecursive(root)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"plot", "--help"})
	require.NoError(t, root.Execute())

	out := buf.String()
	assert.Contains(t, out, "JOYSTICK-READER PLOT")
	assert.Contains(t, out, "USAGE")
	assert.Contains(t, out, "FLAGS")
	assert.Contains(t, out, "--output")
	assert.Contains(t, out, "EXAMPLES")
	assert.Contains(t, out, "# Plot two traces")
}

func TestHelpExtras(t *testing.T) {
	cmd := NewStandardCommand("joystick-reader", "Sample a joystick")
	cmd.Run = func(*cobra.Command, []string) {}
	SetStyledHelpWithExtras(cmd, func(w io.Writer, _ *theme.Theme) {
		io.WriteString(w, "KEYS n q\n")
	})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "KEYS n q")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "short", wrapText("short", 10))
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "a\n\nb", wrapText("a\n\nb", 10))
}

func TestParseDescription(t *testing.T) {
	desc, ex := parseDescription("Does things.\nExamples:\n  tool run")
	assert.Equal(t, "Does things.", desc)
	assert.Equal(t, "tool run", ex)

	desc, ex = parseDescription("Only text")
	assert.Equal(t, "Only text", desc)
	assert.Empty(t, ex)
}

func TestParseChoices(t *testing.T) {
	desc, choices := parseChoices("Log format: json, simple, or default")
	assert.Equal(t, "Log format:", desc)
	assert.Equal(t, []string{"json", "simple", "default"}, choices)

	desc, choices = parseChoices("Output image path")
	assert.Equal(t, "Output image path", desc)
	assert.Nil(t, choices)

	bullets := "Mode:\n  • next\n  • stop"
	desc, choices = parseChoices(bullets)
	assert.Equal(t, bullets, desc)
	assert.Nil(t, choices)
}

func TestPrintError(t *testing.T) {
	cmd := &cobra.Command{Use: "plot"}
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)

	PrintError(cmd, fmt.Errorf("requires at least one trace file"))

	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "requires at least one trace file")
	assert.Contains(t, stderr.String(), "Run 'plot --help' for usage.")
}
