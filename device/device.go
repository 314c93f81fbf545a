// Package device defines the two-axis input capability the sampler reads
// from, and an in-memory implementation of it.
package device

// Axis indices read by the sampler.
const (
	AxisX = 0
	AxisY = 1
)

// Device is an opened joystick. Implementations need not be safe for
// concurrent use; the sampler calls them from a single goroutine.
type Device interface {
	// PollEvents drains pending driver events so that axis state is current.
	PollEvents()

	// Axis returns the position of an axis, approximately in [-1, 1].
	Axis(index int) float64

	// Name is a human readable description of the device.
	Name() string

	// Close releases the device and any subsystem it initialised.
	Close() error
}

// Opener acquires the device at index. It is the only way a Device comes
// into existence and should fail with a DEVICE_INIT or DEVICE_NOT_FOUND
// error when the device cannot be used.
type Opener func(index int) (Device, error)

// Info describes an attached device.
type Info struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Axes  int    `json:"axes"`
}
