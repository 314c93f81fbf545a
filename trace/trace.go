// Package trace holds recorded joystick trajectories.
//
// A Trace is an append-only sequence of samples backed by a fixed-capacity
// ring buffer. A Store owns an ordered, never-empty list of traces and an
// explicit reference to the one currently being recorded.
package trace

// DefaultCapacity is the number of samples retained per trace when no
// capacity is configured.
const DefaultCapacity = 1_000_000

// Sample is a single (x, y) joystick position.
type Sample struct {
	X float64
	Y float64
}

// Trace is a ring buffer of samples. The x and y series are projections of
// the same buffer so they always have the same length.
type Trace struct {
	buf      []Sample
	start    int
	capacity int
	appended int
}

// newTrace returns a trace seeded with the origin sample.
func newTrace(capacity int) *Trace {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	t := &Trace{capacity: capacity}
	t.append(Sample{})
	return t
}

// append adds a sample at the tail, evicting the oldest retained sample
// once capacity is reached. The buffer grows lazily up to capacity.
func (t *Trace) append(s Sample) {
	if len(t.buf) < t.capacity {
		t.buf = append(t.buf, s)
	} else {
		t.buf[t.start] = s
		t.start = (t.start + 1) % t.capacity
	}
	t.appended++
}

// Len returns the number of retained samples.
func (t *Trace) Len() int {
	return len(t.buf)
}

// Capacity returns the maximum number of retained samples.
func (t *Trace) Capacity() int {
	return t.capacity
}

// Appended returns the logical length of the trace, including evicted samples.
func (t *Trace) Appended() int {
	return t.appended
}

// Dropped returns how many samples have been evicted.
func (t *Trace) Dropped() int {
	return t.appended - len(t.buf)
}

// At returns the i'th retained sample, oldest first. It panics if i is out
// of range, like a slice index.
func (t *Trace) At(i int) Sample {
	if i < 0 || i >= len(t.buf) {
		panic("trace: index out of range")
	}
	return t.buf[(t.start+i)%len(t.buf)]
}

// Last returns the most recent sample. ok is false for an empty trace.
func (t *Trace) Last() (s Sample, ok bool) {
	if len(t.buf) == 0 {
		return Sample{}, false
	}
	return t.At(len(t.buf) - 1), true
}

// Samples returns a copy of the retained samples in append order.
func (t *Trace) Samples() []Sample {
	out := make([]Sample, 0, len(t.buf))
	out = append(out, t.buf[t.start:]...)
	out = append(out, t.buf[:t.start]...)
	return out
}

// XSeries returns the retained x values in append order.
func (t *Trace) XSeries() []float64 {
	out := make([]float64, len(t.buf))
	for i := range out {
		out[i] = t.At(i).X
	}
	return out
}

// YSeries returns the retained y values in append order.
func (t *Trace) YSeries() []float64 {
	out := make([]float64, len(t.buf))
	for i := range out {
		out[i] = t.At(i).Y
	}
	return out
}
