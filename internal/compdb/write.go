package compdb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/earshot-dev/earshot/internal/trace"
)

// encode renders v as a 4-space-indented JSON document with HTML escaping
// disabled: `<`, `>`, and `&` appear verbatim in commands like
// `c++ -DT=std::vector<int>`. The encoder's trailing newline is dropped so
// the document ends at the closing bracket.
func encode(w io.Writer, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
	return err
}

// Write serializes entries as a single JSON array with 4-space indentation.
// The byte-for-byte shape (key order, indentation, unescaped shell
// metacharacters, no trailing newline) is a compatibility surface; do not
// change it without a migration plan for database consumers.
func Write(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	if err := encode(w, entries); err != nil {
		return fmt.Errorf("writing compilation database: %w", err)
	}
	return nil
}

// WriteRecords serializes unfiltered trace records in the same array shape,
// for diagnostic raw-dump output.
func WriteRecords(w io.Writer, records []trace.Record) error {
	if records == nil {
		records = []trace.Record{}
	}
	if err := encode(w, records); err != nil {
		return fmt.Errorf("writing trace records: %w", err)
	}
	return nil
}

// WriteFile writes the database to path, replacing any existing file.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, entries); err != nil {
		return err
	}
	return f.Close()
}
