// Package recorder is the interactive live-plot view of a sampling loop.
// The bubbletea update loop is the sampling scheduler: every tick message
// takes one sample.
package recorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/joystick/sampler"
	"github.com/grovetools/joystick/tui/keymap"
	"github.com/grovetools/joystick/tui/plot"
	"github.com/grovetools/joystick/tui/theme"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// Lines used by the header, status and help rows plus the frame.
	chromeHeight = 6
)

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Interval time.Duration
	Keys     keymap.KeyMap
	Theme    *theme.Theme
}

// Model renders the current trace, earlier traces and the stick position,
// and forwards key presses to the loop as commands.
type Model struct {
	loop     *sampler.Loop
	keys     keymap.KeyMap
	help     help.Model
	theme    *theme.Theme
	interval time.Duration

	width, height int
	err           error

	bg *background
}

// background caches the grid and the earlier traces, which no longer change.
// It is shared by the copies bubbletea makes of the model.
type background struct {
	canvas *plot.Canvas
	key    [3]int
}

// New returns a model driving loop.
func New(loop *sampler.Loop, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.Theme == nil {
		opts.Theme = theme.DefaultTheme
	}
	if len(opts.Keys.Stop.Keys()) == 0 {
		opts.Keys = keymap.Default()
	}
	h := help.New()
	h.Styles.ShortKey = opts.Theme.Accent
	h.Styles.FullKey = opts.Theme.Accent

	return Model{
		loop:     loop,
		keys:     opts.Keys,
		help:     h,
		theme:    opts.Theme,
		interval: opts.Interval,
		width:    defaultWidth,
		height:   defaultHeight,
		bg:       &background{},
	}
}

// Err returns the error of the stop command, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the sampling ticks.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles ticks, resizes and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.loop.Running() {
			return m, nil
		}
		m.loop.Tick()
		return m, m.tick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		cmd, ok := m.keys.Command(msg)
		if !ok {
			return m, nil
		}
		if err := m.loop.Handle(cmd); err != nil {
			m.err = err
		}
		if !m.loop.Running() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// canvasSize picks a plot of roughly square dots that fits the window.
func (m Model) canvasSize() (cols, rows int) {
	rows = m.height - chromeHeight
	if m.help.ShowAll {
		rows -= len(m.keys.FullHelp())
	}
	cols = m.width - 2
	// A cell is 2x4 dots and about twice as tall as it is wide.
	if cols < rows*2 {
		rows = cols / 2
	}
	cols = rows * 2
	if rows < 2 {
		rows, cols = 2, 4
	}
	return cols, rows
}

func (m Model) canvas(cols, rows int) *plot.Canvas {
	traces := m.loop.Traces()
	k := [3]int{cols, rows, len(traces)}
	if m.bg.canvas == nil || m.bg.key != k {
		bg := plot.New(cols, rows)
		bg.Grid()
		for _, t := range traces[:len(traces)-1] {
			bg.Polyline(t.XSeries(), t.YSeries(), plot.LayerPrevious)
		}
		m.bg.canvas, m.bg.key = bg, k
	}

	c := m.bg.canvas.Clone()
	c.SetMarkerRune([]rune(theme.IconMarker)[0])
	c.Polyline(m.loop.XSeries(), m.loop.YSeries(), plot.LayerCurrent)
	pos := m.loop.Position()
	c.Mark(pos.X, pos.Y)
	return c
}

// View renders the header, plot, status line and help.
func (m Model) View() string {
	t := m.theme
	cols, rows := m.canvasSize()
	canvas := m.canvas(cols, rows)

	state := t.Recording.Render(theme.IconRecording + " recording")
	if !m.loop.Running() {
		state = t.Stopped.Render(theme.IconStopped + " stopped")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Title.Render("joystick-reader"),
		"  ",
		t.Muted.Render(theme.IconJoystick+" "+m.loop.DeviceName()),
		"  ",
		state,
	)

	body := t.PlotFrame.Render(canvas.Render(plot.Styles{
		Grid:     t.PlotAxis,
		Previous: t.Muted,
		Current:  t.PlotTrace,
		Marker:   t.PlotMarker,
	}))

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(t.StatusBar.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) status() string {
	pos := m.loop.Position()
	cur := m.loop.CurrentTrace()
	parts := []string{
		fmt.Sprintf("%s trace %d", theme.IconTrace, m.loop.TraceCount()),
		fmt.Sprintf("x=%+.3f y=%+.3f", pos.X, pos.Y),
	}
	if cur != nil {
		samples := fmt.Sprintf("%d samples", cur.Len())
		if cur.Dropped() > 0 {
			samples += fmt.Sprintf(" (%d dropped)", cur.Dropped())
		}
		parts = append(parts, samples)
	}
	if !m.loop.Running() {
		if m.err != nil {
			parts = append(parts, theme.IconError+" export failed")
		} else {
			parts = append(parts, fmt.Sprintf("%s %d files exported", theme.IconSuccess, len(m.loop.Exported())))
		}
	}
	return strings.Join(parts, "  ")
}
