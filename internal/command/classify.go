// Package command labels compiler argument vectors and extracts the source
// files they operate on.
package command

import (
	"errors"
	"path/filepath"
	"strings"
)

// Action labels what a compiler invocation does.
type Action int

const (
	// ActionLink drives the linker (the compiler driver default).
	ActionLink Action = iota
	// ActionCompile produces object code (or assembly) from sources.
	ActionCompile
	// ActionPreprocess runs the preprocessor only.
	ActionPreprocess
	// ActionInfo prints version/help/driver information.
	ActionInfo
)

func (a Action) String() string {
	switch a {
	case ActionLink:
		return "link"
	case ActionCompile:
		return "compile"
	case ActionPreprocess:
		return "preprocess"
	case ActionInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Classification is the result of labeling one argument vector.
type Classification struct {
	Action Action
	// Files are the source-file operands, in argument order.
	Files []string
	// Output is the -o operand, when present.
	Output string
}

// ErrEmptyCommand reports an argument vector with no executable.
var ErrEmptyCommand = errors.New("empty argument vector")

// sourceExtensions are the file extensions treated as source operands.
var sourceExtensions = map[string]bool{
	".c": true, ".i": true,
	".cc": true, ".cp": true, ".cpp": true, ".cxx": true, ".c++": true,
	".ii": true,
	".m":  true, ".mi": true, ".mm": true, ".mii": true,
	".s": true, ".sx": true,
}

// consumesNext are flags whose operand is the following argument.
var consumesNext = map[string]bool{
	"-o": true, "-x": true, "-I": true, "-D": true, "-U": true,
	"-include": true, "-imacros": true, "-isystem": true, "-iquote": true,
	"-idirafter": true, "-iprefix": true,
	"-MF": true, "-MT": true, "-MQ": true,
	"-arch": true, "--param": true,
	"-Xlinker": true, "-Xpreprocessor": true, "-Xassembler": true, "-Xclang": true,
}

// infoFlags short-circuit the driver without compiling anything.
var infoFlags = map[string]bool{
	"-version": true, "--version": true, "-help": true, "--help": true,
	"-###": true, "-dumpversion": true, "-dumpmachine": true,
}

// Classify labels the argument vector and extracts its source-file operands.
// The executable name is argv[0] and is not inspected here; callers gate on
// the recognizer first.
func Classify(args []string) (Classification, error) {
	if len(args) == 0 {
		return Classification{}, ErrEmptyCommand
	}

	cls := Classification{Action: ActionLink}
	compileOnly := false
	preprocessOnly := false

	rest := args[1:]
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case infoFlags[arg]:
			return Classification{Action: ActionInfo}, nil
		case arg == "-c" || arg == "-S":
			compileOnly = true
		case arg == "-E":
			preprocessOnly = true
		case arg == "-o":
			if i+1 < len(rest) {
				cls.Output = rest[i+1]
				i++
			}
		case consumesNext[arg]:
			i++
		case strings.HasPrefix(arg, "-"):
			// Remaining flags carry their operand attached (-DFOO, -O2, …).
		case isSource(arg):
			cls.Files = append(cls.Files, arg)
		}
	}

	switch {
	case preprocessOnly:
		cls.Action = ActionPreprocess
	case compileOnly:
		cls.Action = ActionCompile
	}
	return cls, nil
}

// isSource reports whether the operand looks like a translation-unit source.
func isSource(arg string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(arg))]
}
