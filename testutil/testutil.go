// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// HomeEnv is the variable that relocates every joystick-reader directory.
const HomeEnv = "JOYSTICK_HOME"

// Isolate points JOYSTICK_HOME at a fresh temporary directory and changes
// into another one, so neither a real global config nor a joystick.yml in a
// parent directory leaks into the test. It returns the working directory.
func Isolate(t *testing.T) string {
	t.Helper()

	t.Setenv(HomeEnv, t.TempDir())
	work := t.TempDir()
	t.Chdir(work)
	return work
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadCSV reads every record of the CSV file at path.
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err, "failed to parse %s", path)
	return records
}

