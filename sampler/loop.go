// Package sampler drives a joystick device into a trace store. A Loop is
// scheduled either by the terminal UI or by Run, always from one goroutine.
package sampler

import (
	"context"
	"time"

	"github.com/grovetools/joystick/device"
	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/logging"
	"github.com/grovetools/joystick/trace"
	"github.com/sirupsen/logrus"
)

// RunState is the lifecycle state of a Loop. It only moves forward.
type RunState int

const (
	Running RunState = iota
	Stopped
)

func (s RunState) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "running"
}

// Exporter persists the traces of a finished recording and returns the
// paths it wrote.
type Exporter interface {
	Export(traces []*trace.Trace) ([]string, error)
}

// Options configures a Loop.
type Options struct {
	DeviceIndex int
	// Capacity is the per-trace sample retention. Zero selects the default.
	Capacity int
	// Exporter runs once when the loop stops. Nil disables export.
	Exporter Exporter
	Logger   *logrus.Entry
}

// Loop owns an opened device and the traces recorded from it. It is not
// safe for concurrent use.
type Loop struct {
	dev      device.Device
	store    *trace.Store
	state    RunState
	exporter Exporter
	exported []string
	log      *logrus.Entry
}

// New opens the device at opts.DeviceIndex and returns a running loop with
// a single seeded trace.
func New(open device.Opener, opts Options) (*Loop, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewLogger("sampler")
	}

	dev, err := open(opts.DeviceIndex)
	if err != nil {
		if errors.Is(err, errors.ErrCodeDeviceInit) || errors.Is(err, errors.ErrCodeDeviceNotFound) {
			return nil, err
		}
		return nil, errors.DeviceInit(opts.DeviceIndex, err)
	}
	if dev == nil {
		return nil, errors.DeviceInit(opts.DeviceIndex, nil)
	}

	l := &Loop{
		dev:      dev,
		store:    trace.NewStore(opts.Capacity),
		state:    Running,
		exporter: opts.Exporter,
		log:      log,
	}
	log.WithFields(logrus.Fields{
		"index":    opts.DeviceIndex,
		"device":   dev.Name(),
		"capacity": l.store.Capacity(),
	}).Info("Opened joystick")

	return l, nil
}

// Tick takes one sample. It drains pending device events, reads both axes
// and appends the position when it differs from the last one. The y axis is
// inverted so that pushing the stick forward is positive. It reports
// whether a sample was appended.
func (l *Loop) Tick() bool {
	if l.state != Running {
		return false
	}
	l.dev.PollEvents()

	x := l.dev.Axis(device.AxisX)
	y := -l.dev.Axis(device.AxisY)
	// Negating a zero reading gives -0, which would export as "-0".
	if y == 0 {
		y = 0
	}
	return l.store.AppendIfChanged(x, y)
}

// NextTrace starts a new trace. It is ignored once the loop has stopped.
func (l *Loop) NextTrace() bool {
	if l.state != Running {
		l.log.Debug("Ignoring next trace after stop")
		return false
	}
	l.store.StartNewTrace()
	l.log.WithField("trace", l.store.TraceCount()).Info("Started new trace")
	return true
}

// Stop ends the recording. The first call exports every trace and then
// releases the device, even when the export fails. Later calls return nil.
func (l *Loop) Stop() error {
	if l.state == Stopped {
		return nil
	}
	l.state = Stopped

	var exportErr error
	if l.exporter != nil {
		l.exported, exportErr = l.exporter.Export(l.store.AllTraces())
		if exportErr != nil {
			l.log.WithError(exportErr).Error("Export failed")
		}
	}

	closeErr := l.dev.Close()
	if closeErr != nil {
		l.log.WithError(closeErr).Warn("Failed to release joystick")
	}

	l.log.WithFields(logrus.Fields{
		"traces": l.store.TraceCount(),
		"files":  len(l.exported),
	}).Info("Stopped sampling")

	if exportErr != nil {
		return exportErr
	}
	if closeErr != nil {
		return errors.Wrap(closeErr, errors.ErrCodeInternal, "failed to release joystick")
	}
	return nil
}

// Handle applies a user command.
func (l *Loop) Handle(cmd Command) error {
	switch cmd {
	case CommandNextTrace:
		l.NextTrace()
		return nil
	case CommandStop:
		return l.Stop()
	}
	return errors.InvalidCommand(cmd)
}

// Run samples every interval and applies commands until a stop command
// arrives or ctx is done; both end in Stop, whose error is returned. A
// closed commands channel is not a stop request.
func (l *Loop) Run(ctx context.Context, interval time.Duration, commands <-chan Command) error {
	if interval <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sampling interval must be positive").
			WithDetail("interval", interval.String())
	}
	if l.state != Running {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.WithField("interval", interval).Debug("Sampling loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Debug("Context done, stopping")
			return l.Stop()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if err := l.Handle(cmd); err != nil {
				return err
			}
			if l.state == Stopped {
				return nil
			}
		case <-ticker.C:
			l.Tick()
		}
	}
}

// X returns the x component of the current position.
func (l *Loop) X() float64 {
	return l.Position().X
}

// Y returns the y component of the current position.
func (l *Loop) Y() float64 {
	return l.Position().Y
}

// Position returns the most recent sample of the current trace.
func (l *Loop) Position() trace.Sample {
	s, err := l.store.Current()
	if err != nil {
		// The store is seeded at construction.
		l.log.WithError(err).Debug("No current sample")
	}
	return s
}

// XSeries returns the x values of the current trace, oldest first.
func (l *Loop) XSeries() []float64 { return l.store.CurrentXSeries() }

// YSeries returns the y values of the current trace, oldest first.
func (l *Loop) YSeries() []float64 { return l.store.CurrentYSeries() }

// TraceCount returns the number of traces recorded so far.
func (l *Loop) TraceCount() int { return l.store.TraceCount() }

// Traces returns all traces in creation order.
func (l *Loop) Traces() []*trace.Trace { return l.store.AllTraces() }

// CurrentTrace returns the trace being recorded.
func (l *Loop) CurrentTrace() *trace.Trace { return l.store.CurrentTrace() }

// State returns the lifecycle state.
func (l *Loop) State() RunState { return l.state }

// Running reports whether the loop still samples.
func (l *Loop) Running() bool { return l.state == Running }

// Exported returns the paths written at stop.
func (l *Loop) Exported() []string { return l.exported }

// DeviceName returns the name of the opened device.
func (l *Loop) DeviceName() string { return l.dev.Name() }
