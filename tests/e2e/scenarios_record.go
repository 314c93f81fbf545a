package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

var headlessArgs = []string{"record", "--simulate", "--headless", "--interval", "10ms"}

// RecordStopCommandScenario records two traces and stops with the q command.
func RecordStopCommandScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "joystick-record-stop-command",
		Description: "Records two simulated traces headless, stops with q and checks the exported CSV files.",
		Tags:        []string{"joystick", "record"},
		Steps: []harness.Step{
			{
				Name: "Record, start a second trace, stop",
				Func: func(ctx *harness.Context) error {
					binary, err := findJoystickBinary()
					if err != nil {
						return err
					}
					dir := ctx.NewDir("stop-command")

					result, err := runRecorder(ctx, binary, dir, "n\nq\n", 0, headlessArgs...)
					if err != nil {
						return err
					}
					if err := assert.Equal(0, result.ExitCode, "record should exit successfully after q"); err != nil {
						return err
					}

					for _, name := range []string{"joystick1.csv", "joystick2.csv"} {
						line, err := firstLine(filepath.Join(dir, name))
						if err != nil {
							return err
						}
						if err := assert.Equal("0,0", line, name+" should start at the origin"); err != nil {
							return err
						}
					}
					return assert.Contains(result.Stdout, "Exported 2 traces", "summary should count both traces")
				},
			},
		},
	}
}

// RecordInterruptScenario stops a headless recording with SIGINT.
func RecordInterruptScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "joystick-record-interrupt",
		Description: "An interrupted headless recording still exports its trace and exits cleanly.",
		Tags:        []string{"joystick", "record", "signal"},
		Steps: []harness.Step{
			{
				Name: "Record until SIGINT",
				Func: func(ctx *harness.Context) error {
					binary, err := findJoystickBinary()
					if err != nil {
						return err
					}
					dir := ctx.NewDir("interrupt")

					result, err := runRecorder(ctx, binary, dir, "", time.Second, headlessArgs...)
					if err != nil {
						return err
					}
					if err := assert.Equal(0, result.ExitCode, "record should exit successfully on SIGINT"); err != nil {
						return err
					}

					line, err := firstLine(filepath.Join(dir, "joystick1.csv"))
					if err != nil {
						return err
					}
					if err := assert.Equal("0,0", line, "joystick1.csv should start at the origin"); err != nil {
						return err
					}
					if _, err := os.Stat(filepath.Join(dir, "joystick2.csv")); !os.IsNotExist(err) {
						return fmt.Errorf("only one trace was recorded but joystick2.csv exists")
					}
					return nil
				},
			},
		},
	}
}

// RecordMissingDeviceScenario checks the error reported for a bad index.
func RecordMissingDeviceScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "joystick-record-missing-device",
		Description: "Recording from an index with no joystick fails with a hint.",
		Tags:        []string{"joystick", "record", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Record from index -1", func(ctx *harness.Context) error {
				binary, err := findJoystickBinary()
				if err != nil {
					return err
				}
				dir := ctx.NewDir("missing-device")

				result, err := runRecorder(ctx, binary, dir, "q\n", 0, "record", "--simulate", "--headless", "--device=-1")
				if err != nil {
					return err
				}
				if result.ExitCode == 0 {
					return fmt.Errorf("record with --device=-1 should fail")
				}
				if err := assert.Contains(result.Stderr, "No joystick at index -1", "error should name the index"); err != nil {
					return err
				}
				return assert.Contains(result.Stderr, "joystick-reader devices", "error should point at the devices command")
			}),
		},
	}
}

// RecordThenPlotScenario plots the last recording from a project config.
func RecordThenPlotScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "joystick-record-then-plot",
		Description: "Records into the directory named by joystick.yml, then renders it with plot --last.",
		Tags:        []string{"joystick", "record", "plot", "config"},
		Steps: []harness.Step{
			harness.NewStep("Write project config", func(ctx *harness.Context) error {
				dir := ctx.NewDir("plot-project")
				config := `version: "1.0"
export:
  dir: traces
  prefix: run
`
				if err := fs.CreateDir(filepath.Join(dir, "traces")); err != nil {
					return err
				}
				ctx.Set("project_dir", dir)
				return fs.WriteString(filepath.Join(dir, "joystick.yml"), config)
			}),
			harness.NewStep("Record and plot", func(ctx *harness.Context) error {
				binary, err := findJoystickBinary()
				if err != nil {
					return err
				}
				dir := ctx.Get("project_dir").(string)

				result, err := runRecorder(ctx, binary, dir, "q\n", 0, headlessArgs...)
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "record should exit successfully"); err != nil {
					return err
				}
				line, err := firstLine(filepath.Join(dir, "traces", "run1.csv"))
				if err != nil {
					return err
				}
				if err := assert.Equal("0,0", line, "run1.csv should start at the origin"); err != nil {
					return err
				}

				result, err = runRecorder(ctx, binary, dir, "", 0, "plot", "--last", "-o", "last.svg")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "plot --last should exit successfully"); err != nil {
					return err
				}
				svg, err := fs.ReadString(filepath.Join(dir, "last.svg"))
				if err != nil {
					return err
				}
				return assert.Contains(svg, "<svg", "plot should write an SVG document")
			}),
		},
	}
}

// RecordTUIScenario drives the live plot and stops it with the q key.
func RecordTUIScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "joystick-record-tui",
		Description: "Starts the interactive recorder, adds a trace with n and stops it with q.",
		Tags:        []string{"joystick", "record", "tui", "interactive"},
		LocalOnly:   true, // TUI tests require tmux
		Steps: []harness.Step{
			harness.NewStep("Launch recorder", func(ctx *harness.Context) error {
				binary, err := findJoystickBinary()
				if err != nil {
					return err
				}

				// StartTUI runs in ctx.RootDir, where the traces will land
				session, err := ctx.StartTUI(binary, []string{"record", "--simulate"})
				if err != nil {
					return fmt.Errorf("failed to start TUI: %w", err)
				}
				ctx.Set("tui_session", session)
				return nil
			}),
			harness.NewStep("Verify recording status", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)

				if err := session.WaitForText("recording", 10*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("recorder did not start within timeout: %w\nContent: %s", err, content)
				}
				return session.AssertContains("trace 1")
			}),
			harness.NewStep("Start a second trace", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)

				if err := session.SendKeys("n"); err != nil {
					return fmt.Errorf("failed to send n key: %w", err)
				}
				if err := session.WaitForText("trace 2", 2*time.Second); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("second trace not shown: %w\nContent: %s", err, content)
				}
				return nil
			}),
			harness.NewStep("Stop and verify export", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)

				if err := session.SendKeys("q"); err != nil {
					return fmt.Errorf("failed to send q key: %w", err)
				}

				path := filepath.Join(ctx.RootDir, "joystick2.csv")
				if err := waitForFile(path, 5*time.Second); err != nil {
					return err
				}
				line, err := firstLine(filepath.Join(ctx.RootDir, "joystick1.csv"))
				if err != nil {
					return err
				}
				return assert.Equal("0,0", line, "joystick1.csv should start at the origin")
			}),
		},
	}
}
