// Package state persists small values between runs, such as the files
// written by the last recording.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/joystick/pkg/paths"
	"gopkg.in/yaml.v3"
)

// State is a generic map of key-value pairs stored as YAML.
type State map[string]interface{}

// FilePath returns the path of the state file, <state dir>/state.yml.
func FilePath() (string, error) {
	dir := paths.StateDir()
	if dir == "" {
		return "", fmt.Errorf("no state directory available")
	}
	return filepath.Join(dir, "state.yml"), nil
}

// Load loads the state from the state file.
// Returns an empty state if the file doesn't exist.
func Load() (State, error) {
	path, err := FilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}

	if state == nil {
		state = make(State)
	}

	return state, nil
}

// Save saves the state to the state file.
func Save(state State) error {
	path, err := FilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	return nil
}

// Get retrieves a value from the state by key.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}

	val, ok := state[key]
	return val, ok, nil
}

// GetString returns the string stored under key, or "" when the key is
// missing or holds something else.
func GetString(key string) (string, error) {
	val, ok, err := Get(key)
	if err != nil || !ok {
		return "", err
	}

	str, _ := val.(string)
	return str, nil
}

// GetStrings returns the string list stored under key. Non-string elements
// are skipped.
func GetStrings(key string) ([]string, error) {
	val, ok, err := Get(key)
	if err != nil || !ok {
		return nil, err
	}

	switch v := val.(type) {
	case []string:
		return v, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, nil
	}
	return nil, nil
}

// Set sets a value in the state.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}

	state[key] = value
	return Save(state)
}

// Delete removes a key from the state.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}

	delete(state, key)
	return Save(state)
}
