package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/grovetools/joystick/cli"
	"github.com/grovetools/joystick/device"
	"github.com/grovetools/joystick/device/sdljoy"
	"github.com/grovetools/joystick/tui/components/table"
	"github.com/grovetools/joystick/tui/theme"
	"github.com/spf13/cobra"
)

// deviceLister is swapped out in tests; SDL needs real hardware to list
// anything.
var deviceLister = sdljoy.List

func NewDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List attached joysticks",
		Long: `List the joysticks SDL can see, with the index to pass to --device.

Examples:
  joystick-reader devices
  joystick-reader devices --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := deviceLister()
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				if infos == nil {
					infos = []device.Info{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			return printDevices(cmd.OutOrStdout(), infos)
		},
	}
}

func printDevices(w io.Writer, infos []device.Info) error {
	t := theme.DefaultTheme
	if len(infos) == 0 {
		_, err := fmt.Fprintln(w, t.Muted.Render("No joysticks attached."))
		return err
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{strconv.Itoa(info.Index), info.Name, strconv.Itoa(info.Axes)})
	}
	tbl := table.NewBuilder().
		WithHeaders("INDEX", "NAME", "AXES").
		WithRows(rows...).
		Build()

	_, err := fmt.Fprintf(w, "%s\n%s\n", theme.RenderHeader("Joysticks"), tbl.String())
	return err
}
