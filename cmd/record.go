package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/joystick/cli"
	"github.com/grovetools/joystick/config"
	"github.com/grovetools/joystick/device"
	"github.com/grovetools/joystick/device/sdljoy"
	"github.com/grovetools/joystick/export"
	"github.com/grovetools/joystick/logging"
	"github.com/grovetools/joystick/pkg/profiling"
	"github.com/grovetools/joystick/sampler"
	"github.com/grovetools/joystick/state"
	"github.com/grovetools/joystick/trace"
	"github.com/grovetools/joystick/tui"
	"github.com/grovetools/joystick/tui/keymap"
	"github.com/grovetools/joystick/tui/recorder"
	"github.com/grovetools/joystick/util/pathutil"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const recordLong = `Sample a joystick into traces and export them as CSV when recording stops.

Traces start at the origin. A sample is only recorded when the stick moved
since the previous one. When stdin and stdout are terminals, a live plot is
shown; press n to start a new trace and q or ctrl+c to stop and export.
Otherwise commands are read from stdin, one per line (n, next, q, quit,
stop), and SIGINT/SIGTERM stop and export.

Each trace i is written to <prefix><i>.csv as x,y rows without a header.

Examples:
  # Record from the second joystick into the current directory
  joystick-reader record

  # Record from the first joystick into a timestamped directory
  joystick-reader record --device 0 --output-dir runs --session

  # Try it without hardware
  joystick-reader record --simulate
`

// recordSettings are the effective record options after merging config and
// flags.
type recordSettings struct {
	DeviceIndex int
	Interval    time.Duration
	Capacity    int
	OutputDir   string
	Prefix      string
	Session     bool
	Headless    bool
	Simulate    bool
	Keys        config.KeysConfig
}

// NewRecordCmd creates the `record` command, which is also the root action.
func NewRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record joystick traces and export them as CSV",
		Long:  recordLong,
		Args:  cobra.NoArgs,
		RunE:  runRecordE,
	}
	addRecordFlags(cmd)
	return cmd
}

func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("device", "d", config.DefaultDeviceIndex, "Joystick index")
	cmd.Flags().Duration("interval", 50*time.Millisecond, "Time between samples")
	cmd.Flags().Int("capacity", config.DefaultCapacity, "Samples kept per trace before the oldest are dropped")
	cmd.Flags().StringP("output-dir", "o", config.DefaultExportDir, "Directory to write trace files to")
	cmd.Flags().String("prefix", config.DefaultPrefix, "Trace file name prefix")
	cmd.Flags().Bool("session", false, "Write files into a new joystick_reader_<timestamp> directory")
	cmd.Flags().Bool("headless", false, "Read commands from stdin instead of showing the live plot")
	cmd.Flags().Bool("simulate", false, "Use a simulated joystick that moves in a circle")
}

// resolveRecordSettings applies explicitly set flags over the configuration.
func resolveRecordSettings(cmd *cobra.Command, cfg *config.Config) recordSettings {
	s := recordSettings{
		DeviceIndex: cfg.DeviceIndex(),
		Interval:    cfg.SampleInterval(),
		Capacity:    cfg.Sampling.Capacity,
		OutputDir:   cfg.Export.Dir,
		Prefix:      cfg.Export.Prefix,
		Session:     cfg.SessionEnabled(),
		Keys:        cfg.Keys,
	}

	flags := cmd.Flags()
	if flags.Changed("device") {
		s.DeviceIndex, _ = flags.GetInt("device")
	}
	if flags.Changed("interval") {
		s.Interval, _ = flags.GetDuration("interval")
	}
	if flags.Changed("capacity") {
		s.Capacity, _ = flags.GetInt("capacity")
	}
	if flags.Changed("output-dir") {
		s.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("prefix") {
		s.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("session") {
		s.Session, _ = flags.GetBool("session")
	}
	s.Headless, _ = flags.GetBool("headless")
	s.Simulate, _ = flags.GetBool("simulate")
	return s
}

// opener returns the device source for the settings.
func (s recordSettings) opener() device.Opener {
	if s.Simulate {
		// The simulated device answers at any non-negative index.
		return device.NewCircle(0.8, 120).Opener(s.DeviceIndex + 1)
	}
	return sdljoy.Open
}

func runRecordE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	settings := resolveRecordSettings(cmd, cfg)
	if settings.Interval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", settings.Interval)
	}

	outputDir, err := pathutil.Expand(settings.OutputDir)
	if err != nil {
		return err
	}

	samplerLog := logging.NewLogger("sampler")
	if cli.GetOptions(cmd).Verbose {
		samplerLog.Logger.SetLevel(logrus.DebugLevel)
	}

	opening := profiling.Start("open joystick")
	loop, err := sampler.New(settings.opener(), sampler.Options{
		DeviceIndex: settings.DeviceIndex,
		Capacity:    settings.Capacity,
		Exporter: timedExporter{&export.CSVExporter{
			Dir:     outputDir,
			Prefix:  settings.Prefix,
			Session: settings.Session,
		}},
		Logger: samplerLog,
	})
	opening.Stop()
	if err != nil {
		return err
	}

	interactive := !settings.Headless &&
		term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
	logger.WithField("interactive", interactive).Debug("Starting recorder")

	recording := profiling.Start("record")
	var runErr error
	if interactive {
		runErr = runInteractive(loop, settings)
	} else {
		runErr = runHeadless(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), loop, settings)
	}

	// Stop is idempotent; this releases the device on every exit path.
	if err := loop.Stop(); err != nil && runErr == nil {
		runErr = err
	}
	recording.Stop()
	if runErr != nil {
		return runErr
	}

	reportExport(cmd.ErrOrStderr(), loop)
	rememberRecording(logger, loop)
	return nil
}

// State keys for the last recording, read back by `plot --last`.
const (
	lastFilesKey  = "last_recording.files"
	lastDeviceKey = "last_recording.device"
)

func rememberRecording(logger *logrus.Logger, loop *sampler.Loop) {
	files := make([]string, 0, len(loop.Exported()))
	for _, path := range loop.Exported() {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		files = append(files, path)
	}

	st, err := state.Load()
	if err == nil {
		st[lastFilesKey] = files
		st[lastDeviceKey] = loop.DeviceName()
		err = state.Save(st)
	}
	if err != nil {
		logger.WithError(err).Warn("Could not remember the recorded files")
	}
}

// timedExporter records the export in the --timing summary.
type timedExporter struct {
	sampler.Exporter
}

func (e timedExporter) Export(traces []*trace.Trace) ([]string, error) {
	defer profiling.Start("export").Stop()
	return e.Exporter.Export(traces)
}

func runInteractive(loop *sampler.Loop, s recordSettings) error {
	tui.InitializeTUI()

	// The live plot owns the terminal; log lines would tear it.
	prev := logging.SetGlobalOutput(io.Discard)
	defer logging.SetGlobalOutput(prev)

	model := recorder.New(loop, recorder.Options{
		Interval: s.Interval,
		Keys:     keymap.FromConfig(s.Keys),
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrInterrupted) || stderrors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	if m, ok := final.(recorder.Model); ok {
		return m.Err()
	}
	return nil
}

func runHeadless(ctx context.Context, in io.Reader, out io.Writer, loop *sampler.Loop, s recordSettings) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pretty := logging.NewPrettyLogger().WithWriter(out)
	pretty.InfoPretty(fmt.Sprintf("Recording from %s. Enter n for a new trace, q to stop and export.", loop.DeviceName()))

	return loop.Run(ctx, s.Interval, sampler.ReadCommands(ctx, in))
}

func reportExport(out io.Writer, loop *sampler.Loop) {
	pretty := logging.NewPrettyLogger().WithWriter(out)
	pretty.Success(fmt.Sprintf("Exported %d traces", loop.TraceCount()))
	for _, path := range loop.Exported() {
		pretty.Path("file", path)
	}
}
