package cmd

import (
	"github.com/grovetools/joystick/cli"
	"github.com/grovetools/joystick/version"
	"github.com/spf13/cobra"
)

func NewVersionCmd() *cobra.Command {
	return cli.NewVersionCommand(version.Name)
}
