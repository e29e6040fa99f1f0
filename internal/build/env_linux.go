package build

// EnvOutput tells the interception library where to write trace files.
const EnvOutput = "EARSHOT_OUTPUT"

// EnvPreload is the dynamic-loader variable naming the injected library.
const EnvPreload = "LD_PRELOAD"

// injectionEnv returns the variables to add to the build's environment so
// the dynamic loader injects the interception library into every spawned
// process.
func injectionEnv(traceDir, library string) ([]string, error) {
	return []string{
		EnvOutput + "=" + traceDir,
		EnvPreload + "=" + library,
	}, nil
}
