// Package collect composes the trace parser, compiler recognizer, command
// classifier, and database assembler over a scratch directory of trace files.
//
// Collection is single-threaded and synchronous: build execution finished
// before collection starts, the scratch directory is static, and entries are
// independent, so processing order affects only output ordering.
package collect

import (
	"errors"

	"github.com/earshot-dev/earshot/internal/command"
	"github.com/earshot-dev/earshot/internal/compdb"
	"github.com/earshot-dev/earshot/internal/compiler"
	"github.com/earshot-dev/earshot/internal/log"
	"github.com/earshot-dev/earshot/internal/trace"
)

// Options configures a collection pass.
type Options struct {
	// Tolerant skips unparseable trace files with a warning instead of
	// aborting the whole collection. Default is the eager policy: one bad
	// file fails the run and no partial database is written.
	Tolerant bool
}

// Records parses every trace file in dir and returns the raw records in
// discovery order. This is the unfiltered diagnostic mode; the record count
// equals the trace-file count.
func Records(dir string, opts Options) ([]trace.Record, error) {
	files, err := trace.ScanDir(dir)
	if err != nil {
		return nil, err
	}

	records := make([]trace.Record, 0, len(files))
	for _, file := range files {
		rec, err := trace.ParseFile(file)
		if err != nil {
			if opts.Tolerant && isParseError(err) {
				log.Warn("skipping unparseable trace file", "path", file, "error", err)
				continue
			}
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Entries runs the full curation chain over dir: parse, recognize, classify,
// assemble. The result is flat, in discovery order, not deduplicated and not
// sorted.
func Entries(dir string, opts Options) ([]compdb.Entry, error) {
	records, err := Records(dir, opts)
	if err != nil {
		return nil, err
	}

	var entries []compdb.Entry
	for _, rec := range records {
		if !compiler.Recognize(rec.Args) {
			log.Debug("dropping non-compiler execution", "pid", rec.PID, "args", rec.Args)
			continue
		}
		cls, err := command.Classify(rec.Args)
		if err != nil {
			return nil, err
		}
		if cls.Action != command.ActionCompile {
			log.Debug("dropping non-compile invocation",
				"pid", rec.PID, "action", cls.Action.String())
			continue
		}
		assembled, err := compdb.Assemble(rec, cls)
		if err != nil {
			return nil, err
		}
		entries = append(entries, assembled...)
	}
	return entries, nil
}

func isParseError(err error) bool {
	var perr *trace.ParseError
	return errors.As(err, &perr)
}
