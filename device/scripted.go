package device

import (
	"math"

	"github.com/grovetools/joystick/errors"
)

// Reading is a raw (axis 0, axis 1) pair as reported by a driver.
type Reading struct {
	X float64
	Y float64
}

// Scripted is a Device that plays back a fixed list of readings, one per
// PollEvents call. Once the script is exhausted the last reading repeats.
type Scripted struct {
	name     string
	readings []Reading
	pos      int
	loop     bool

	Polls  int
	Closed int
}

// NewScripted returns a device that reports readings in order.
func NewScripted(readings ...Reading) *Scripted {
	return &Scripted{name: "scripted", readings: readings, pos: -1}
}

// NewCircle returns a looping device that traces a circle of the given
// radius in steps readings. It stands in for real hardware in simulate mode.
func NewCircle(radius float64, steps int) *Scripted {
	if steps < 1 {
		steps = 1
	}
	readings := make([]Reading, steps)
	for i := range readings {
		a := 2 * math.Pi * float64(i) / float64(steps)
		readings[i] = Reading{X: radius * math.Cos(a), Y: radius * math.Sin(a)}
	}
	s := NewScripted(readings...)
	s.name = "simulated circle"
	s.loop = true
	return s
}

// PollEvents advances to the next reading.
func (s *Scripted) PollEvents() {
	s.Polls++
	if len(s.readings) == 0 {
		return
	}
	switch {
	case s.pos+1 < len(s.readings):
		s.pos++
	case s.loop:
		s.pos = 0
	}
}

// Axis returns the current reading for axis 0 or 1, and 0 for anything else.
func (s *Scripted) Axis(index int) float64 {
	if s.pos < 0 || len(s.readings) == 0 {
		return 0
	}
	r := s.readings[s.pos]
	switch index {
	case AxisX:
		return r.X
	case AxisY:
		return r.Y
	}
	return 0
}

// Name implements Device.
func (s *Scripted) Name() string {
	return s.name
}

// Close implements Device. Closing more than once is recorded in Closed so
// tests can check for double release.
func (s *Scripted) Close() error {
	s.Closed++
	return nil
}

// Opener returns an Opener that hands out s for index 0..attached-1 and
// fails with DEVICE_NOT_FOUND otherwise.
func (s *Scripted) Opener(attached int) Opener {
	return func(index int) (Device, error) {
		if index < 0 || index >= attached {
			return nil, errors.DeviceNotFound(index, attached)
		}
		return s, nil
	}
}
