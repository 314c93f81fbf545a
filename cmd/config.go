package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/grovetools/joystick/cli"
	"github.com/grovetools/joystick/config"
	"github.com/grovetools/joystick/logging"
	"github.com/grovetools/joystick/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate joystick-reader configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigSchemaCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Built-in defaults
2. Global config (<config dir>/config.yml)
3. Project config (joystick.yml, searched upward from the current directory)
This is useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			layered, err := config.LoadLayered(cwd)
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(layered.Final)
			}

			out := cmd.OutOrStdout()
			printLayer(out, "DEFAULT CONFIG", "", layered.Default)
			printLayer(out, "GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global)
			printLayer(out, "PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project)
			printLayer(out, "FINAL MERGED CONFIG", "", layered.Final)
			return nil
		},
	}
}

func printLayer(w io.Writer, title, path string, cfg *config.Config) {
	if cfg == nil {
		return
	}
	fmt.Fprintf(w, "--- # %s\n", title)
	if path != "" {
		fmt.Fprintf(w, "# Source: %s\n", path)
	}
	data, _ := yaml.Marshal(cfg)
	fmt.Fprintln(w, string(data))
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Long: `Validate a configuration file against the schema and the semantic rules.

Without an argument the file joystick-reader would load from the current
directory is validated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cli.GetOptions(cmd).ConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				found, err := config.FindConfigFile(cwd)
				if err != nil {
					return err
				}
				path = found
			}

			if _, err := config.Load(path); err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success("Configuration is valid")
			pretty.Path("file", path)
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Long: `Print the JSON schema that configuration files are validated against.

By default the schema embedded in the binary is printed. --generate reflects
a fresh schema from the configuration types instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generate, _ := cmd.Flags().GetBool("generate")

			var data []byte
			if generate {
				generated, err := config.GenerateSchema()
				if err != nil {
					return err
				}
				data = generated
			} else {
				data = schema.Schema()
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().Bool("generate", false, "Reflect the schema from the configuration types")
	return cmd
}
