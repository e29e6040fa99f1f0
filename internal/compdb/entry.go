// Package compdb assembles and serializes the JSON compilation database
// consumed by downstream source-analysis tooling.
package compdb

// Entry is one compilation database record: how a single translation unit
// was compiled. Entries are not deduplicated; a file compiled by several
// build steps appears once per step.
//
// The JSON field order is the compatibility surface: keys sorted
// alphabetically (command, directory, file), matching what existing
// consumers were written against.
type Entry struct {
	Command   string `json:"command"`
	Directory string `json:"directory"`
	File      string `json:"file"`
}
