// Package export writes recorded traces to CSV files and reads them back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/logging"
	"github.com/grovetools/joystick/trace"
)

// SessionDirLayout is the time layout of session directory names.
const SessionDirLayout = "2006-01-02_15:04:05"

// DefaultPrefix is used when CSVExporter.Prefix is empty.
const DefaultPrefix = "joystick"

var log = logging.NewLogger("export")

// SessionDirName returns the directory name used for a session started at t.
func SessionDirName(t time.Time) string {
	return "joystick_reader_" + t.Format(SessionDirLayout)
}

// CSVExporter writes each trace to <Dir>/<Prefix><i>.csv, i starting at 1.
type CSVExporter struct {
	// Dir is the output directory. Empty means the working directory.
	Dir    string
	Prefix string
	// Session places the files in a new timestamped directory under Dir.
	Session bool
	// Now is the clock used for session names. Nil means time.Now.
	Now func() time.Time
}

// FileName returns the file name of the i-th trace (1-based).
func (e *CSVExporter) FileName(i int) string {
	prefix := e.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s%d.csv", prefix, i)
}

// Export writes every trace and returns the written paths in trace order.
// Existing files are overwritten. The first failure aborts the export.
func (e *CSVExporter) Export(traces []*trace.Trace) ([]string, error) {
	dir, err := e.outputDir()
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(traces))
	for i, t := range traces {
		path := filepath.Join(dir, e.FileName(i+1))
		if err := writeFile(path, t); err != nil {
			return written, err
		}
		log.WithField("path", path).WithField("samples", t.Len()).Debug("Wrote trace")
		written = append(written, path)
	}

	log.WithField("dir", dir).WithField("files", len(written)).Info("Exported traces")
	return written, nil
}

func (e *CSVExporter) outputDir() (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if !e.Session {
		return dir, nil
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	session := filepath.Join(dir, SessionDirName(now()))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.ExportFailed(dir, err)
	}
	if err := os.Mkdir(session, 0o755); err != nil {
		if os.IsExist(err) {
			return "", errors.SessionDirExists(session)
		}
		return "", errors.ExportFailed(session, err)
	}
	return session, nil
}

func writeFile(path string, t *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed(path, err)
	}

	if err := WriteTrace(f, t); err != nil {
		f.Close()
		return errors.ExportFailed(path, err)
	}
	if err := f.Close(); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}
