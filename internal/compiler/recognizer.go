// Package compiler recognizes which intercepted executions are genuine
// compiler invocations. Both tables below are closed and hand-maintained;
// supporting a new compiler means adding a row here.
package compiler

import "regexp"

// namePattern pairs a human-readable label with the executable-name pattern
// it recognizes. The label exists so the table rows can be tested and
// reported individually.
type namePattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// knownCompilers is the ordered table of recognized compiler names. An
// optional leading path is tolerated on every row.
var knownCompilers = []namePattern{
	{"cc", regexp.MustCompile(`^([^/]*/)*c(c|\+\+)$`)},
	{"gcc", regexp.MustCompile(`^([^/]*/)*([^-]*-)*g(cc|\+\+)(-[34].[0-9])?$`)},
	{"clang", regexp.MustCompile(`^([^/]*/)*clang(\+\+)?(-[23].[0-9])?$`)},
	{"llvm-gcc", regexp.MustCompile(`^([^/]*/)*llvm-g(cc|\+\+)$`)},
}

// cancelArgs marks arguments that turn a name match into a rejection: the
// invocation is an internal compiler re-exec, not a genuine compile step.
var cancelArgs = []namePattern{
	{"clang frontend", regexp.MustCompile(`^-cc1$`)},
}

// Recognize reports whether the argument vector is a recognized,
// non-cancelled compiler invocation. It is pure and total; an empty vector
// is not a compiler call.
func Recognize(args []string) bool {
	return KnownCompiler(args) && !cancelled(args)
}

// KnownCompiler reports whether the executable name (argv[0]) matches a row
// of the recognized-compiler table.
func KnownCompiler(args []string) bool {
	if len(args) == 0 {
		return false
	}
	for _, row := range knownCompilers {
		if row.Pattern.MatchString(args[0]) {
			return true
		}
	}
	return false
}

// cancelled reports whether any argument after argv[0] matches a row of the
// cancellation table.
func cancelled(args []string) bool {
	for _, arg := range args[1:] {
		for _, row := range cancelArgs {
			if row.Pattern.MatchString(arg) {
				return true
			}
		}
	}
	return false
}
