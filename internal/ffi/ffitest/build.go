package ffitest

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mylib/internal/ffi"
)

// Fixture names under testdata/.
const (
	FixtureFull    = "mylib.c"
	FixturePartial = "partial.c"
)

// TestdataDir returns the absolute path of this package's testdata directory.
func TestdataDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata")
}

// BuildNative compiles a fixture from testdata into dir as a shared library
// named for the host OS and returns its path. The test is skipped when no C
// compiler is available.
func BuildNative(tb testing.TB, fixture, dir string) string {
	tb.Helper()
	if runtime.GOOS == "windows" {
		tb.Skip("native fixture build is not supported on windows")
	}
	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	if _, err := exec.LookPath(cc); err != nil {
		tb.Skipf("C compiler %q not available: %v", cc, err)
	}

	out := filepath.Join(dir, ffi.LibraryFileName(ffi.DefaultBaseName, runtime.GOOS))
	src := filepath.Join(TestdataDir(), fixture)
	cmd := exec.Command(cc, "-shared", "-fPIC", "-O2", "-o", out, src, "-lm")
	output, err := cmd.CombinedOutput()
	require.NoErrorf(tb, err, "compile %s:\n%s", fixture, output)
	return out
}
