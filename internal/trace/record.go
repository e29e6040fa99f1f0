// Package trace decodes the per-process execution records written by the
// preloaded interception library while a build runs.
//
// # Wire format
//
// One file per intercepted process, named cmd.<pid>. The content is five
// fields separated by the ASCII record separator (0x1E): pid, ppid, the
// intercepted libc function, the working directory, and the argument vector.
// The argument vector is itself separated by the ASCII unit separator (0x1F)
// and carries a trailing empty element that the parser discards.
package trace

import "encoding/json"

// Separator control characters of the trace wire format.
const (
	RecordSep = "\x1e"
	UnitSep   = "\x1f"
)

// filePattern is the glob the interception library names its files by.
const filePattern = "cmd.*"

// Record is one intercepted process execution. Records are immutable once
// parsed and are consumed within a single collection pass.
type Record struct {
	PID       int
	PPID      int
	Function  string
	Directory string
	Args      []string
}

// MarshalJSON renders the record with alphabetically ordered keys, the same
// key-order contract the curated database output follows.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Command   []string `json:"command"`
		Directory string   `json:"directory"`
		Function  string   `json:"function"`
		PID       int      `json:"pid"`
		PPID      int      `json:"ppid"`
	}{r.Args, r.Directory, r.Function, r.PID, r.PPID})
}
