package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/grovetools/tend/pkg/harness"
)

// binaryEnv overrides the joystick-reader binary under test.
const binaryEnv = "JOYSTICK_READER_BIN"

// findJoystickBinary finds the joystick-reader binary under test, from
// JOYSTICK_READER_BIN or the PATH.
func findJoystickBinary() (string, error) {
	if path := os.Getenv(binaryEnv); path != "" {
		return path, nil
	}
	path, err := exec.LookPath("joystick-reader")
	if err != nil {
		return "", fmt.Errorf("could not find 'joystick-reader' binary in PATH; build it or set %s", binaryEnv)
	}
	return path, nil
}

// runResult is the outcome of runRecorder.
type runResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// runRecorder runs the binary in dir with stdin attached and the sandboxed
// home as JOYSTICK_HOME. A positive interruptAfter sends SIGINT after that
// delay. The run is killed if it has not exited within 30 seconds.
func runRecorder(ctx *harness.Context, binary, dir, stdin string, interruptAfter time.Duration, args ...string) (runResult, error) {
	runCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(runCtx, binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "JOYSTICK_HOME="+ctx.HomeDir())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	} else {
		// keep stdin open so end of input never reaches the recorder
		pr, pw, err := os.Pipe()
		if err != nil {
			return runResult{}, err
		}
		defer pw.Close()
		defer pr.Close()
		cmd.Stdin = pr
	}

	if err := cmd.Start(); err != nil {
		return runResult{}, fmt.Errorf("failed to start %s: %w", binary, err)
	}
	if interruptAfter > 0 {
		timer := time.AfterFunc(interruptAfter, func() {
			_ = cmd.Process.Signal(os.Interrupt)
		})
		defer timer.Stop()
	}

	err := cmd.Wait()
	ctx.ShowCommandOutput(cmd.String(), stdout.String(), stderr.String())

	result := runResult{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, err
	}
	if runCtx.Err() != nil {
		return result, fmt.Errorf("%s did not exit within the timeout", cmd.String())
	}
	return result, nil
}

// firstLine returns the first line of the file at path.
func firstLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%s is empty", path)
	}
	return strings.TrimRight(sc.Text(), "\r"), nil
}

// waitForFile polls until path exists or the timeout elapses.
func waitForFile(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s was not written within %s", path, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
