package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// DeviceInit creates a device initialisation error. cause may be nil.
func DeviceInit(index int, cause error) *Error {
	msg := fmt.Sprintf("failed to initialise joystick %d", index)
	var err *Error
	if cause != nil {
		err = Wrap(cause, ErrCodeDeviceInit, msg)
	} else {
		err = New(ErrCodeDeviceInit, msg)
	}
	return err.WithDetail("index", index)
}

// DeviceNotFound creates an error for a device index that does not resolve
// to an attached joystick.
func DeviceNotFound(index, attached int) *Error {
	return New(ErrCodeDeviceNotFound,
		fmt.Sprintf("no joystick at index %d (%d attached)", index, attached)).
		WithDetail("index", index).
		WithDetail("attached", attached)
}

// EmptyTrace creates an error for reading a position from an unseeded trace
func EmptyTrace() *Error {
	return New(ErrCodeEmptyTrace, "trace has no samples")
}

// ExportFailed creates an export failure error for the given path
func ExportFailed(path string, err error) *Error {
	return Wrap(err, ErrCodeExportFailed, fmt.Sprintf("failed to export trace: %s", path)).
		WithDetail("path", path)
}

// SessionDirExists creates an error for a session directory collision
func SessionDirExists(path string) *Error {
	return New(ErrCodeSessionDirExists, fmt.Sprintf("session directory already exists: %s", path)).
		WithDetail("path", path)
}

// InvalidCommand creates an error for an unrecognised command
func InvalidCommand(command interface{}) *Error {
	return New(ErrCodeInvalidCommand, fmt.Sprintf("invalid command: %v", command)).
		WithDetail("command", command)
}
