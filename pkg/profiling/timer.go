// Package profiling records nested timing spans and CPU/heap profiles for
// a command run.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	timer    *Timer
}

func (s *span) Stop() {
	s.timer.end(s, time.Since(s.start))
}

// Timer collects a tree of spans. Spans started while another span is open
// become its children.
type Timer struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

var defaultTimer = &Timer{}

// Enable turns on the package timer. Spans started before Enable are not
// recorded.
func Enable() {
	defaultTimer.Enable()
}

// Start begins a span on the package timer.
func Start(name string) Stopper {
	return defaultTimer.Start(name)
}

// Summarize writes the package timer's span tree to w.
func Summarize(w io.Writer) {
	defaultTimer.Summarize(w)
}

// Enable starts recording.
func (t *Timer) Enable() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.enabled {
		return
	}
	t.enabled = true
	t.root = &span{name: "total", start: time.Now(), timer: t}
	t.stack = []*span{t.root}
}

// Start begins a span. It returns a no-op Stopper when t is disabled.
func (t *Timer) Start(name string) Stopper {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return noopStopper{}
	}

	parent := t.stack[len(t.stack)-1]
	s := &span{name: name, start: time.Now(), timer: t}
	parent.children = append(parent.children, s)
	t.stack = append(t.stack, s)
	return s
}

func (t *Timer) end(s *span, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s.duration = d
	// pop s and anything opened after it that was never stopped
	for i := len(t.stack) - 1; i > 0; i-- {
		if t.stack[i] == s {
			t.stack = t.stack[:i]
			return
		}
	}
}

// Summarize writes the span tree with each span's share of the total.
func (t *Timer) Summarize(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled {
		return
	}

	total := time.Since(t.root.start)
	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, child := range sortedChildren(t.root) {
		printSpan(w, child, 0, total)
	}
	fmt.Fprintf(w, "total %v\n", total.Round(100*time.Microsecond))
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n",
		strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), percentage)

	for _, child := range sortedChildren(s) {
		printSpan(w, child, depth+1, total)
	}
}

func sortedChildren(s *span) []*span {
	children := append([]*span(nil), s.children...)
	sort.Slice(children, func(i, j int) bool {
		return children[i].start.Before(children[j].start)
	})
	return children
}

type noopStopper struct{}

func (noopStopper) Stop() {}
