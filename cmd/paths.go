package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/joystick/pkg/paths"
	"github.com/spf13/cobra"
)

// PathsOutput represents the directories joystick-reader reads and writes.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	ConfigFile string `json:"config_file"`
	StateDir   string `json:"state_dir"`
}

func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the directories used by joystick-reader",
		Long: `Print the directories used by joystick-reader as JSON.

- config_dir: where the global configuration lives
- config_file: the global configuration file (config.yml)
- state_dir: log files, when file logging is enabled

Setting JOYSTICK_HOME moves all of them under a single directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := PathsOutput{
				ConfigDir:  paths.ConfigDir(),
				ConfigFile: paths.GlobalConfigFile(),
				StateDir:   paths.StateDir(),
			}

			jsonData, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal paths to JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	return cmd
}
