// Package keymap binds recorder keys to sampler commands.
package keymap

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/joystick/config"
	"github.com/grovetools/joystick/sampler"
)

// KeyMap holds the recorder keybindings. It implements help.KeyMap.
type KeyMap struct {
	Next key.Binding
	Stop key.Binding
	Help key.Binding
}

// Default returns the default keymap: n for a new trace, q or ctrl+c to stop
// and export, ? for help.
func Default() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys(config.DefaultNextKeys...),
			key.WithHelp(helpKeys(config.DefaultNextKeys), "new trace"),
		),
		Stop: key.NewBinding(
			key.WithKeys(config.DefaultStopKeys...),
			key.WithHelp(helpKeys(config.DefaultStopKeys), "stop & export"),
		),
		Help: key.NewBinding(
			key.WithKeys(config.DefaultHelpKeys...),
			key.WithHelp(helpKeys(config.DefaultHelpKeys), "help"),
		),
	}
}

// FromConfig returns the default keymap with the keys section applied.
func FromConfig(keys config.KeysConfig) KeyMap {
	km := Default()
	ApplyOverrides(&km, Overrides{
		"next": keys.Next,
		"stop": keys.Stop,
		"help": keys.Help,
	})
	return km
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Stop, k.Help}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Stop},
		{k.Help},
	}
}

// Command maps a key press to a sampler command. Help and unbound keys
// report false.
func (k KeyMap) Command(msg tea.KeyMsg) (sampler.Command, bool) {
	switch {
	case key.Matches(msg, k.Stop):
		return sampler.CommandStop, true
	case key.Matches(msg, k.Next):
		return sampler.CommandNextTrace, true
	}
	return 0, false
}

// helpKeys renders a key list for the help view, e.g. "q/ctrl+c".
func helpKeys(keys []string) string {
	shown := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		shown = append(shown, k)
	}
	return strings.Join(shown, "/")
}
