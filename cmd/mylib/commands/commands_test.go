package commands

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mylib"
	"github.com/agiangrant/mylib/internal/ffi/ffitest"
)

type harness struct {
	out     *bytes.Buffer
	backend *ffitest.Backend
	lib     string
}

func setup(t *testing.T) harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MYLIB_LIB_PATH", "")

	h := harness{
		out:     &bytes.Buffer{},
		backend: ffitest.NewBackend(),
		lib:     filepath.Join(dir, "mylib.so"),
	}
	require.NoError(t, os.WriteFile(h.lib, nil, 0644))

	oldOut, oldOpts := stdout, extraOptions
	stdout = h.out
	extraOptions = []mylib.Option{mylib.WithLoader(h.backend)}
	t.Cleanup(func() {
		stdout, extraOptions = oldOut, oldOpts
	})
	return h
}

func TestCalc(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "5", "3"}, "8"},
		{[]string{"sub", "-5", "3"}, "-8"},
		{[]string{"mul", "6", "7"}, "42"},
		{[]string{"*", "-3", "-4"}, "12"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			h := setup(t)
			require.NoError(t, Calc(append([]string{"-lib", h.lib}, tt.args...)))
			assert.Equal(t, tt.want+"\n", h.out.String())
			assert.Equal(t, 0, h.backend.OpenCount())
		})
	}
}

func TestCalcErrors(t *testing.T) {
	h := setup(t)
	assert.ErrorContains(t, Calc([]string{"-lib", h.lib, "div", "1", "2"}), "unknown operation")
	assert.ErrorContains(t, Calc([]string{"-lib", h.lib, "add", "1"}), "usage")
	assert.ErrorContains(t, Calc([]string{"-lib", h.lib, "add", "1", "x"}), "invalid integer")
	assert.ErrorContains(t, Calc([]string{"-lib", h.lib, "add", "1", "99999999999"}), "invalid integer")
	assert.Equal(t, 0, h.backend.OpenCount())
}

func TestSum(t *testing.T) {
	h := setup(t)
	require.NoError(t, Sum([]string{"-lib", h.lib, "1", "2", "3", "-4"}))
	assert.Equal(t, "2\n", h.out.String())

	h.out.Reset()
	require.NoError(t, Sum([]string{"-lib", h.lib}))
	assert.Equal(t, "0\n", h.out.String())
}

func TestComplex(t *testing.T) {
	h := setup(t)
	require.NoError(t, Complex([]string{"-lib", h.lib, "3", "4", "add", "1", "2"}))

	out := h.out.String()
	assert.Contains(t, out, "set (3+4i): |z| = 5\n")
	assert.Contains(t, out, "add (1+2i): |z| = 7.211102550927978\n")
	assert.Contains(t, out, "type: Complex\n")

	assert.ErrorContains(t, Complex([]string{"-lib", h.lib, "3"}), "usage")
	assert.ErrorContains(t, Complex([]string{"-lib", h.lib, "3", "4", "div", "1", "2"}), "unknown operation")
}

func TestVector(t *testing.T) {
	h := setup(t)
	require.NoError(t, Vector([]string{"-lib", h.lib, "1.5", "2.5", "3.5", "4.5", "5.5"}))

	out := h.out.String()
	assert.Contains(t, out, "Size: 5\n")
	assert.Contains(t, out, "Sum: 17.5\n")
	assert.Contains(t, out, "Values: [1.5 2.5 3.5 4.5 5.5]\n")
}

func TestInfo(t *testing.T) {
	h := setup(t)
	require.NoError(t, Info([]string{"-lib", h.lib}))

	out := h.out.String()
	assert.Contains(t, out, "path:    "+h.lib)
	assert.Contains(t, out, "backend: ffitest")
	assert.Contains(t, out, "version: 1.0.0")
	assert.Contains(t, out, "status:  1")
}

func TestLocate(t *testing.T) {
	h := setup(t)
	require.NoError(t, Locate([]string{"-lib", h.lib}))
	assert.Equal(t, h.lib+"\n", h.out.String())

	h.out.Reset()
	err := Locate([]string{"-lib", filepath.Join(t.TempDir(), "nope.so")})
	var de *mylib.DiscoveryError
	require.ErrorAs(t, err, &de)
	assert.Contains(t, h.out.String(), "not found. Searched:")
}

func TestCycle(t *testing.T) {
	h := setup(t)
	require.NoError(t, Cycle([]string{"-lib", h.lib, "-n", "3"}))

	assert.Equal(t, 3, strings.Count(h.out.String(), "status 1"))
	assert.Equal(t, 3, h.backend.Opens())
	assert.Equal(t, 0, h.backend.OpenCount())
}

func TestDemo(t *testing.T) {
	h := setup(t)
	require.NoError(t, Demo([]string{"-lib", h.lib}))

	out := h.out.String()
	assert.Contains(t, out, "5 + 3 = 8")
	assert.Contains(t, out, "sum([1 2 3 4 5]) = 15")
	assert.Contains(t, out, "Magnitude: 5 (expected: 5)")
	assert.Contains(t, out, "20 + 30 = 50")
	assert.Contains(t, out, "All examples completed")
	assert.Equal(t, 2, h.backend.Opens())
	assert.Equal(t, 0, h.backend.OpenCount())
}

func TestConfigFileIsUsed(t *testing.T) {
	h := setup(t)
	cfg := mylib.DefaultConfig()
	cfg.Library.Path = "mylib.so"
	require.NoError(t, mylib.SaveConfig(mylib.ConfigFileName, cfg))

	require.NoError(t, Info(nil))
	assert.Contains(t, h.out.String(), "version: 1.0.0")
}

func TestInit(t *testing.T) {
	h := setup(t)
	require.NoError(t, Init([]string{"-backend", "purego"}))
	assert.Contains(t, h.out.String(), "Created")

	cfg, err := mylib.LoadConfig(mylib.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "purego", cfg.Library.Backend)

	assert.ErrorContains(t, Init(nil), "already exists")
	assert.NoError(t, Init([]string{"-force"}))
	assert.ErrorContains(t, Init([]string{"-force", "-backend", "jni"}), "unknown backend")
}

func TestRunRepl(t *testing.T) {
	h := setup(t)
	l, err := mylib.Open(mylib.WithPath(h.lib), mylib.WithLoader(h.backend))
	require.NoError(t, err)
	defer l.Close()

	script := strings.Join([]string{
		"add 2 3",
		"",
		"sum 1 2 3",
		"set 3 4",
		"mag",
		"cadd 1 2",
		"type",
		"push 1.5 2.5",
		"size",
		"get 1",
		"get 7",
		"vsum",
		"clear",
		"vprod",
		"frobnicate",
		"version",
		"quit",
		"add 100 100",
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, runRepl(l, lineScanner{bufio.NewScanner(strings.NewReader(script))}, &out))

	want := strings.Join([]string{
		"5",
		"6",
		"5",
		"Complex",
		"2",
		"2.5",
		"error: vector_get_double(7) with size 2: mylib: vector index out of range",
		"4",
		"1",
		`error: unknown command "frobnicate" (try help)`,
		"1.0.0",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestRunReplEOF(t *testing.T) {
	h := setup(t)
	l, err := mylib.Open(mylib.WithPath(h.lib), mylib.WithLoader(h.backend))
	require.NoError(t, err)
	defer l.Close()

	var out bytes.Buffer
	require.NoError(t, runRepl(l, lineScanner{bufio.NewScanner(strings.NewReader("status"))}, &out))
	assert.Equal(t, "1\n", out.String())
}
