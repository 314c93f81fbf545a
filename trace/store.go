package trace

import (
	"github.com/grovetools/joystick/errors"
)

// Store is the ordered collection of traces. It always holds at least one
// trace and the last one created is current. Store is not safe for
// concurrent use.
type Store struct {
	traces   []*Trace
	current  *Trace
	capacity int
}

// NewStore creates a store with a single seeded trace. A capacity of zero
// or less selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{capacity: capacity}
	s.StartNewTrace()
	return s
}

// Capacity returns the per-trace retention capacity.
func (s *Store) Capacity() int {
	return s.capacity
}

// StartNewTrace appends a new trace seeded with (0, 0) and makes it current.
func (s *Store) StartNewTrace() {
	t := newTrace(s.capacity)
	s.traces = append(s.traces, t)
	s.current = t
}

// TraceCount returns the number of traces created so far.
func (s *Store) TraceCount() int {
	return len(s.traces)
}

// AppendIfChanged appends (x, y) to the current trace unless it equals the
// trace's most recent sample. Comparison is exact.
func (s *Store) AppendIfChanged(x, y float64) bool {
	if s.current == nil {
		s.StartNewTrace()
	}
	if last, ok := s.current.Last(); ok && last.X == x && last.Y == y {
		return false
	}
	s.current.append(Sample{X: x, Y: y})
	return true
}

// Current returns the most recent sample of the current trace.
func (s *Store) Current() (Sample, error) {
	if s.current == nil {
		return Sample{}, errors.EmptyTrace()
	}
	last, ok := s.current.Last()
	if !ok {
		return Sample{}, errors.EmptyTrace()
	}
	return last, nil
}

// CurrentX returns the x value of the most recent sample.
func (s *Store) CurrentX() (float64, error) {
	c, err := s.Current()
	return c.X, err
}

// CurrentY returns the y value of the most recent sample.
func (s *Store) CurrentY() (float64, error) {
	c, err := s.Current()
	return c.Y, err
}

// CurrentTrace returns the trace being recorded.
func (s *Store) CurrentTrace() *Trace {
	return s.current
}

// CurrentXSeries returns the retained x values of the current trace.
func (s *Store) CurrentXSeries() []float64 {
	if s.current == nil {
		return nil
	}
	return s.current.XSeries()
}

// CurrentYSeries returns the retained y values of the current trace.
func (s *Store) CurrentYSeries() []float64 {
	if s.current == nil {
		return nil
	}
	return s.current.YSeries()
}

// AllTraces returns the traces in creation order. The slice is a copy; the
// traces themselves are shared and must be treated as read-only.
func (s *Store) AllTraces() []*Trace {
	out := make([]*Trace, len(s.traces))
	copy(out, s.traces)
	return out
}
