package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeDeviceNotFound, "device not found")
	assert.Equal(t, ErrCodeDeviceNotFound, err.Code)
	assert.Equal(t, "DEVICE_NOT_FOUND: device not found", err.Error())

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeExportFailed, "export failed")

	assert.Equal(t, cause, wrapped.Unwrap())
	assert.Contains(t, wrapped.Error(), "caused by: underlying error")

	// Test Is function
	assert.True(t, Is(wrapped, ErrCodeExportFailed))
	assert.False(t, Is(wrapped, ErrCodeDeviceNotFound))
	assert.False(t, Is(nil, ErrCodeExportFailed))

	// Test WithDetail
	detailed := err.WithDetail("index", 1).WithDetail("attached", 0)
	assert.Equal(t, 1, detailed.Details["index"])
	assert.Equal(t, 0, detailed.Details["attached"])
}

func TestErrorSatisfiesStdlibAs(t *testing.T) {
	var err error = fmt.Errorf("export: %w", ExportFailed("joystick1.csv", fmt.Errorf("disk full")))

	var target *Error
	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, ErrCodeExportFailed, target.Code)
	assert.Equal(t, "joystick1.csv", target.Details["path"])
}

func TestIsSearchesChain(t *testing.T) {
	inner := DeviceInit(1, fmt.Errorf("sdl: no joystick subsystem"))
	outer := fmt.Errorf("startup: %w", Wrap(inner, ErrCodeInternal, "loop construction failed"))

	assert.True(t, Is(outer, ErrCodeInternal))
	assert.True(t, Is(outer, ErrCodeDeviceInit))
	assert.Equal(t, ErrCodeInternal, GetCode(outer))

	coded, ok := As(outer)
	require.True(t, ok)
	assert.Equal(t, ErrCodeInternal, coded.Code)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestErrorConstructors(t *testing.T) {
	err := DeviceNotFound(1, 0)
	assert.Equal(t, ErrCodeDeviceNotFound, err.Code)
	assert.Equal(t, 1, err.Details["index"])
	assert.Equal(t, 0, err.Details["attached"])

	err = DeviceInit(2, nil)
	assert.Equal(t, ErrCodeDeviceInit, err.Code)
	assert.Nil(t, err.Cause)

	err = ExportFailed("out/joystick1.csv", fmt.Errorf("disk full"))
	assert.Equal(t, ErrCodeExportFailed, err.Code)
	assert.Equal(t, "out/joystick1.csv", err.Details["path"])

	err = SessionDirExists("joystick_reader_2024-01-02_03:04:05")
	assert.Equal(t, ErrCodeSessionDirExists, err.Code)

	err = InvalidCommand("x")
	assert.Equal(t, ErrCodeInvalidCommand, err.Code)
	assert.Equal(t, "x", err.Details["command"])

	assert.Equal(t, ErrCodeEmptyTrace, EmptyTrace().Code)
}

func TestToJSON(t *testing.T) {
	err := DeviceNotFound(3, 1)
	out := err.ToJSON()
	assert.Contains(t, out, `"code": "DEVICE_NOT_FOUND"`)
	assert.Contains(t, out, `"index": 3`)
}
