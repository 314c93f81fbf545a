// Package cmd holds the joystick-reader commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/grovetools/joystick/cli"
	"github.com/grovetools/joystick/config"
	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/pkg/profiling"
	"github.com/grovetools/joystick/tui/theme"
	"github.com/grovetools/joystick/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the joystick-reader command tree. Running the root
// command without a subcommand records, exactly like `record`.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(version.Name, "Record joystick traces to CSV with a live plot")
	root.Long = recordLong
	root.Args = cobra.NoArgs
	root.RunE = runRecordE
	addRecordFlags(root)

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRunE = profiler.PostRun

	cli.SetVersionTemplate(root, version.GetInfo())

	root.AddCommand(NewRecordCmd())
	root.AddCommand(NewDevicesCmd())
	root.AddCommand(NewPlotCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(NewPathsCmd())
	root.AddCommand(NewVersionCmd())

	cli.ApplyStyledHelpRecursive(root)
	cli.SetStyledHelpWithExtras(root, controlsHelp)

	return root
}

// Execute runs root and reports a failure on its stderr. Errors without a
// code (bad flags, wrong arguments) are printed with a usage hint; coded
// errors get the error handler's specific message.
func Execute(root *cobra.Command) error {
	executed, err := root.ExecuteC()
	if err == nil {
		return nil
	}

	if errors.GetCode(err) == "" {
		cli.PrintError(executed, err)
		return err
	}

	verbose, _ := root.PersistentFlags().GetBool("verbose")
	handler := cli.NewErrorHandler(verbose)
	handler.Out = root.ErrOrStderr()
	return handler.Handle(err)
}

// controlsHelp lists the default live plot keys below the command list.
func controlsHelp(w io.Writer, t *theme.Theme) {
	fmt.Fprintln(w, t.Header.Render("CONTROLS"))
	fmt.Fprintf(w, "  %-10s %s\n", config.DefaultNextKeys[0], t.Muted.Render("start a new trace"))
	fmt.Fprintf(w, "  %-10s %s\n", config.DefaultStopKeys[0], t.Muted.Render("stop, export and exit"))
	fmt.Fprintf(w, "  %-10s %s\n", config.DefaultHelpKeys[0], t.Muted.Render("toggle the full key help"))
	fmt.Fprintln(w)
}
