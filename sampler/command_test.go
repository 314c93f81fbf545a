package sampler

import (
	"context"
	"strings"
	"testing"

	"github.com/grovetools/joystick/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input   string
		want    Command
		wantErr bool
	}{
		{input: "n", want: CommandNextTrace},
		{input: "next", want: CommandNextTrace},
		{input: "  N ", want: CommandNextTrace},
		{input: "q", want: CommandStop},
		{input: "quit", want: CommandStop},
		{input: "STOP", want: CommandStop},
		{input: "", wantErr: true},
		{input: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidCommand, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "next", CommandNextTrace.String())
	assert.Equal(t, "stop", CommandStop.String())
	assert.Equal(t, "unknown", Command(0).String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}

func TestReadCommands(t *testing.T) {
	in := strings.NewReader("n\nbogus\n\n next \nq\n")

	var got []Command
	for cmd := range ReadCommands(context.Background(), in) {
		got = append(got, cmd)
	}
	assert.Equal(t, []Command{CommandNextTrace, CommandNextTrace, CommandStop}, got)
}

func TestReadCommandsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cmds := ReadCommands(ctx, strings.NewReader("n\nn\nn\n"))

	assert.Equal(t, CommandNextTrace, <-cmds)
	cancel()

	// The channel closes without delivering the whole input; a send racing
	// the cancellation may still arrive.
	count := 0
	for range cmds {
		count++
	}
	assert.LessOrEqual(t, count, 2)
}
