//go:build !linux && !darwin

package build

import "errors"

// EnvOutput tells the interception library where to write trace files.
const EnvOutput = "EARSHOT_OUTPUT"

// ErrUnsupportedPlatform is returned where no dynamic-loader preload
// mechanism is available.
var ErrUnsupportedPlatform = errors.New("build interception is only supported on linux and darwin")

func injectionEnv(traceDir, library string) ([]string, error) {
	return nil, ErrUnsupportedPlatform
}
