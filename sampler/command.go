package sampler

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/logging"
)

// Command is a user request to the sampling loop.
type Command int

const (
	// CommandNextTrace starts a new trace.
	CommandNextTrace Command = iota + 1
	// CommandStop stops sampling and exports.
	CommandStop
)

func (c Command) String() string {
	switch c {
	case CommandNextTrace:
		return "next"
	case CommandStop:
		return "stop"
	}
	return "unknown"
}

// ParseCommand maps a headless input word to a Command. Matching ignores
// case and surrounding space.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "next":
		return CommandNextTrace, nil
	case "q", "quit", "stop":
		return CommandStop, nil
	}
	return 0, errors.InvalidCommand(s)
}

// ReadCommands parses one command per line from r and sends it on the
// returned channel. Blank lines are ignored and unparseable lines are logged
// and skipped. The channel is closed at end of input or when ctx is done.
//
// A read blocked in r is not interrupted by ctx.
func ReadCommands(ctx context.Context, r io.Reader) <-chan Command {
	log := logging.NewLogger("sampler")
	out := make(chan Command)

	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			cmd, err := ParseCommand(line)
			if err != nil {
				log.WithField("input", line).Warn("Ignoring unknown command (use n or q)")
				continue
			}
			select {
			case out <- cmd:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.WithError(err).Debug("Command input closed")
		}
	}()

	return out
}
