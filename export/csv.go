package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/trace"
)

// useCRLF matches the platform line ending.
var useCRLF = runtime.GOOS == "windows"

// FormatFloat renders v in the shortest form that parses back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTrace writes the retained samples of t as x,y rows, oldest first,
// with no header row.
func WriteTrace(w io.Writer, t *trace.Trace) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = useCRLF

	for i := 0; i < t.Len(); i++ {
		s := t.At(i)
		if err := cw.Write([]string{FormatFloat(s.X), FormatFloat(s.Y)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadTrace parses x,y rows as written by WriteTrace. Blank lines are skipped
// and both line endings are accepted.
func ReadTrace(r io.Reader) ([]trace.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	var samples []trace.Sample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "malformed trace row")
		}

		x, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid x value").
				WithDetail("line", line)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			line, _ := cr.FieldPos(1)
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid y value").
				WithDetail("line", line)
		}
		samples = append(samples, trace.Sample{X: x, Y: y})
	}

	return samples, nil
}

// File is a trace read back from disk.
type File struct {
	Path    string
	Samples []trace.Sample
}

// ReadFiles reads each path with ReadTrace, in order.
func ReadFiles(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		samples, err := readFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: path, Samples: samples})
	}
	return files, nil
}

func readFile(path string) ([]trace.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("cannot open %s", path)).
			WithDetail("path", path)
	}
	defer f.Close()

	samples, err := ReadTrace(f)
	if err != nil {
		if ge, ok := errors.As(err); ok {
			return nil, ge.WithDetail("path", path)
		}
		return nil, err
	}
	return samples, nil
}
