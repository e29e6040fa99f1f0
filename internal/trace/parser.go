package trace

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseError reports a trace file that could not be decoded.
type ParseError struct {
	Path   string
	Reason string
	Err    error // underlying I/O error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing trace file %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parsing trace file %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseFile decodes one trace file into a Record. It fails with a *ParseError
// when the file is unreadable, has fewer than five fields, or carries a
// non-numeric pid.
func ParseFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, &ParseError{Path: path, Reason: "unreadable", Err: err}
	}

	fields := strings.Split(string(data), RecordSep)
	if len(fields) < 5 {
		return Record{}, &ParseError{
			Path:   path,
			Reason: fmt.Sprintf("expected 5 fields, got %d", len(fields)),
		}
	}

	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, &ParseError{Path: path, Reason: "malformed pid", Err: err}
	}
	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return Record{}, &ParseError{Path: path, Reason: "malformed ppid", Err: err}
	}

	// The argument vector is terminated, not separated: drop the trailing
	// empty element the library writes after the last argument.
	args := strings.Split(fields[4], UnitSep)
	args = args[:len(args)-1]

	return Record{
		PID:       pid,
		PPID:      ppid,
		Function:  fields[2],
		Directory: fields[3],
		Args:      args,
	}, nil
}
