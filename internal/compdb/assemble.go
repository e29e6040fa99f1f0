package compdb

import (
	"path/filepath"
	"strings"

	"github.com/earshot-dev/earshot/internal/command"
	"github.com/earshot-dev/earshot/internal/trace"
)

// Assemble joins a recognizer-accepted record with its classification. It
// yields nothing unless the action is a compile, and one entry per
// source-file operand otherwise.
//
// Two deliberate compatibility quirks live here:
//
//   - Command is the space-joined original argument vector with no
//     re-quoting. Arguments containing whitespace are rendered lossily;
//     fixing that would change the on-disk command string existing
//     consumers parse.
//   - File is resolved absolute against the collecting process's current
//     working directory, not rec.Directory. Consumers depend on the
//     resulting paths as-is.
func Assemble(rec trace.Record, cls command.Classification) ([]Entry, error) {
	if cls.Action != command.ActionCompile {
		return nil, nil
	}

	cmd := strings.Join(rec.Args, " ")
	entries := make([]Entry, 0, len(cls.Files))
	for _, file := range cls.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Command:   cmd,
			Directory: rec.Directory,
			File:      abs,
		})
	}
	return entries, nil
}
