package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/tui/theme"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a message for err based on its code and returns err.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	fail := theme.DefaultTheme.Error.Render(theme.IconError)
	hint := theme.DefaultTheme.Muted

	coded, _ := errors.As(err)
	detail := func(key string) interface{} {
		if coded == nil {
			return "?"
		}
		return coded.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeDeviceNotFound:
		fmt.Fprintf(out, "%s No joystick at index %v (%v attached)\n", fail, detail("index"), detail("attached"))
		fmt.Fprintln(out, hint.Render("Run 'joystick-reader devices' to list joysticks, then pass --device."))

	case errors.ErrCodeDeviceInit:
		fmt.Fprintf(out, "%s Could not open joystick %v: %v\n", fail, detail("index"), err)
		fmt.Fprintln(out, hint.Render("Check that SDL2 is installed and the controller is connected, or try --simulate."))

	case errors.ErrCodeExportFailed:
		fmt.Fprintf(out, "%s Traces were not saved: %v\n", fail, err)
		fmt.Fprintln(out, hint.Render("Check that the output directory exists and is writable (--output-dir)."))

	case errors.ErrCodeSessionDirExists:
		fmt.Fprintf(out, "%s Session directory %v already exists\n", fail, detail("path"))
		fmt.Fprintln(out, hint.Render("Session names have one-second resolution; retry, or run without --session."))

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "%s Configuration file not found: %v\n", fail, detail("path"))

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(out, "%s Invalid configuration: %v\n", fail, err)
		fmt.Fprintln(out, hint.Render("Run 'joystick-reader config validate' for details."))

	default:
		fmt.Fprintf(out, "%s Error: %v\n", fail, err)
	}

	if h.Verbose && coded != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", coded.ToJSON())
	}
	return err
}
