package main

import (
	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/harness"
)

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "joystick-basic-version",
		Tags: []string{"joystick", "basic"},
		Steps: []harness.Step{
			harness.NewStep("Run 'joystick-reader version'", func(ctx *harness.Context) error {
				binary, err := findJoystickBinary()
				if err != nil {
					return err
				}

				cmd := command.New(binary, "version")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "joystick-reader version should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "joystick-reader", "Output should name the binary")
			}),
		},
	}
}
