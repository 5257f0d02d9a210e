package mylib

import (
	"fmt"
	"io"
	"log"
	"math"
	"runtime"

	"github.com/agiangrant/mylib/internal/ffi"
)

// State is the wrapper-side lifecycle of a Library.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateBound
	StateInitialized
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateBound:
		return "bound"
	case StateInitialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Library is a handle to the native mylib library.
//
// A Library is not safe for concurrent use. The complex number and vector
// live inside the native library; every accessor re-reads them.
type Library struct {
	opts   options
	native ffi.Library
	calls  ffi.Calls
	state  State
	path   string
	mode   ffi.BackendMode

	// cleanupPending is set by Load and Init and cleared by Cleanup, so
	// cleanup_library runs once before every unload.
	cleanupPending bool
}

// New returns an unloaded Library. Nothing is searched or opened until Load.
func New(opts ...Option) *Library {
	o := options{
		backend: ffi.BackendPurego,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Library{opts: o}
}

// State returns the current lifecycle state.
func (l *Library) State() State {
	return l.state
}

// Path returns the file the library was loaded from, or "" when unloaded.
func (l *Library) Path() string {
	return l.path
}

// Backend returns the name of the loader backend in use, or "" when unloaded.
func (l *Library) Backend() string {
	return string(l.mode)
}

// Locate resolves the library file without loading it.
func (l *Library) Locate() (string, error) {
	return ffi.Locate(l.opts.search)
}

func (l *Library) loader() (ffi.Backend, error) {
	if l.opts.loader != nil {
		return l.opts.loader, nil
	}
	return ffi.GetBackend(l.opts.backend)
}

// Load locates and opens the library and binds every native symbol.
// On a bind failure the library is closed again and the state stays
// StateUnloaded.
func (l *Library) Load() error {
	if l.state != StateUnloaded {
		return fmt.Errorf("load: library already loaded from %s", l.path)
	}

	backend, err := l.loader()
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	path, err := l.Locate()
	if err != nil {
		return err
	}

	l.opts.logger.Printf("mylib: loading %s (backend %s, %s/%s)", path, backend.Mode(), runtime.GOOS, runtime.GOARCH)
	native, err := backend.Open(path)
	if err != nil {
		return err
	}
	l.native = native
	l.path = path
	l.mode = backend.Mode()
	l.state = StateLoaded

	if err := ffi.Bind(native, &l.calls); err != nil {
		l.opts.logger.Printf("mylib: %v", err)
		if cerr := native.Close(); cerr != nil {
			l.opts.logger.Printf("mylib: close after bind failure: %v", cerr)
		}
		l.reset()
		return err
	}

	l.state = StateBound
	l.cleanupPending = true
	l.opts.logger.Printf("mylib: bound %d symbols from %s", len(ffi.Signatures), path)
	return nil
}

// Init calls init_library and reports whether the native side accepted it.
// Both StatusOK and StatusAlreadyInitialized count as success.
func (l *Library) Init() (bool, error) {
	if err := l.require("init", StateBound); err != nil {
		return false, err
	}
	code := l.calls.InitLibrary()
	l.cleanupPending = true
	ok := code == ffi.StatusOK || code == ffi.StatusAlreadyInitialized
	if ok {
		l.state = StateInitialized
	}
	l.opts.logger.Printf("mylib: init_library returned %d", code)
	return ok, nil
}

// Cleanup calls cleanup_library. The library stays loaded and bound.
func (l *Library) Cleanup() error {
	if err := l.require("cleanup", StateBound); err != nil {
		return err
	}
	l.calls.CleanupLibrary()
	l.cleanupPending = false
	l.state = StateBound
	l.opts.logger.Printf("mylib: cleanup_library done")
	return nil
}

// Unload runs any pending cleanup and releases the library handle.
func (l *Library) Unload() error {
	if l.state == StateUnloaded {
		return ffi.NotLoaded("unload")
	}
	if l.cleanupPending && l.calls.CleanupLibrary != nil {
		l.calls.CleanupLibrary()
		l.opts.logger.Printf("mylib: cleanup_library done")
	}
	path := l.path
	err := l.native.Close()
	l.reset()
	if err != nil {
		return fmt.Errorf("unload %s: %w", path, err)
	}
	l.opts.logger.Printf("mylib: unloaded %s", path)
	return nil
}

// Close releases the library on every path: pending cleanup, then unload.
// Closing an unloaded Library is a no-op.
func (l *Library) Close() error {
	if l.state == StateUnloaded {
		return nil
	}
	return l.Unload()
}

func (l *Library) reset() {
	l.native = nil
	l.calls = ffi.Calls{}
	l.state = StateUnloaded
	l.path = ""
	l.mode = ""
	l.cleanupPending = false
}

func (l *Library) require(op string, min State) error {
	if l.state < min {
		return ffi.NotLoaded(op)
	}
	return nil
}

// Status returns the native initialization flag (1 initialized, 0 not).
func (l *Library) Status() (int, error) {
	if err := l.require(ffi.SymGetStatus, StateBound); err != nil {
		return 0, err
	}
	return int(l.calls.GetStatus()), nil
}

// Version returns the native version string, or "Unknown" for NULL.
func (l *Library) Version() (string, error) {
	if err := l.require(ffi.SymGetVersion, StateBound); err != nil {
		return "", err
	}
	return ffi.CString(l.calls.GetVersion()), nil
}

func (l *Library) Add(a, b int32) (int32, error) {
	if err := l.require(ffi.SymAdd, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.Add(a, b), nil
}

func (l *Library) Subtract(a, b int32) (int32, error) {
	if err := l.require(ffi.SymSubtract, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.Subtract(a, b), nil
}

func (l *Library) Multiply(a, b int32) (int32, error) {
	if err := l.require(ffi.SymMultiply, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.Multiply(a, b), nil
}

// SumArray sums values natively. An empty slice sums to 0.
func (l *Library) SumArray(values []int32) (int32, error) {
	if err := l.require(ffi.SymSumArray, StateInitialized); err != nil {
		return 0, err
	}
	if len(values) > math.MaxInt32 {
		return 0, fmt.Errorf("%s: %d values exceed the native length type", ffi.SymSumArray, len(values))
	}
	var ptr *int32
	if len(values) > 0 {
		ptr = &values[0]
	}
	sum := l.calls.SumArray(ptr, int32(len(values)))
	runtime.KeepAlive(values)
	return sum, nil
}
