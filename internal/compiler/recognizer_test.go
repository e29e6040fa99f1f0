package compiler

import "testing"

func TestRecognize(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"gcc", []string{"gcc"}, true},
		{"g++", []string{"g++"}, true},
		{"versioned gcc", []string{"gcc-4.8"}, true},
		{"versioned g++", []string{"g++-3.9"}, true},
		{"cross gcc", []string{"arm-none-eabi-gcc"}, true},
		{"cc", []string{"cc"}, true},
		{"c++", []string{"c++"}, true},
		{"absolute cc", []string{"/usr/bin/cc", "-c", "foo.c"}, true},
		{"clang", []string{"clang"}, true},
		{"clang++ with path", []string{"/usr/bin/clang++"}, true},
		{"versioned clang", []string{"clang-3.8"}, true},
		{"llvm-gcc", []string{"llvm-gcc"}, true},
		{"llvm-g++", []string{"llvm-g++"}, true},

		{"python", []string{"python"}, false},
		{"ls", []string{"/bin/ls", "-la"}, false},
		{"make", []string{"make", "all"}, false},
		{"gcc-like suffix", []string{"mygcc2"}, false},
		{"empty vector", nil, false},

		// A name match is necessary but not sufficient: internal re-execs
		// are cancelled by their marker argument.
		{"clang frontend re-exec", []string{"clang", "-cc1", "x.c"}, false},
		{"gcc with -cc1", []string{"gcc", "-cc1"}, false},
		{"cancel token only in argv[0] position", []string{"-cc1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Recognize(tt.args); got != tt.want {
				t.Errorf("Recognize(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestKnownCompilerIgnoresLaterArgs(t *testing.T) {
	// KnownCompiler looks at argv[0] only; cancellation is a separate check.
	if !KnownCompiler([]string{"clang", "-cc1"}) {
		t.Error("KnownCompiler should match clang regardless of later args")
	}
}
