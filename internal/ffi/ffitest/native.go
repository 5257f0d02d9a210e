// Package ffitest provides test doubles for the mylib native library: an
// in-process backend implementing the native contract in Go, and a helper
// that compiles the C reference fixture into a real shared library.
package ffitest

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"sync"
	"unsafe"

	"github.com/agiangrant/mylib/internal/ffi"
)

// Mode is the backend name the double registers under by default.
const Mode ffi.BackendMode = "ffitest"

// Version is the string returned by get_version.
const Version = "1.0.0"

// NumberType is the string returned by get_number_type.
const NumberType = "Complex"

// Process-lifetime C strings handed out by the double.
var (
	versionC    = []byte(Version + "\x00")
	numberTypeC = []byte(NumberType + "\x00")
)

// Native is the state of one loaded copy of the library. A fresh Native is
// created per Open, like static storage after a real dlopen.
type Native struct {
	initialized bool
	real, imag  float64
	vec         []float64

	// InitCalls and CleanupCalls count native lifecycle invocations.
	InitCalls    int
	CleanupCalls int
}

// Complex returns the stored complex value.
func (n *Native) Complex() complex128 {
	return complex(n.real, n.imag)
}

// Initialized reports the native init flag.
func (n *Native) Initialized() bool {
	return n.initialized
}

// Backend is an ffi.Backend whose libraries are implemented in Go.
type Backend struct {
	// Name is the registered mode; empty means Mode.
	Name ffi.BackendMode
	// Missing lists symbols the library pretends not to export.
	Missing []string
	// OpenErr, when set, is returned (wrapped in *ffi.LoadError) by Open.
	OpenErr error
	// InitStatus, when non-nil, replaces the init_library return code.
	InitStatus *int32
	// FailMutations makes every status-returning mutator report 1.
	FailMutations bool
	// NullStrings makes string calls return NULL.
	NullStrings bool

	mu     sync.Mutex
	open   int
	opens  int
	native *Native
}

// NewBackend returns a Backend with native behavior.
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Mode() ffi.BackendMode {
	if b.Name == "" {
		return Mode
	}
	return b.Name
}

func (b *Backend) Open(path string) (ffi.Library, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.OpenErr != nil {
		return nil, &ffi.LoadError{Path: path, Err: b.OpenErr}
	}
	b.open++
	b.opens++
	b.native = &Native{}
	return &library{backend: b, path: path, native: b.native}, nil
}

// OpenCount returns how many libraries are currently open.
func (b *Backend) OpenCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

// Opens returns how many times Open succeeded.
func (b *Backend) Opens() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opens
}

// Native returns the state of the most recently opened library.
func (b *Backend) Native() *Native {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.native
}

type library struct {
	backend *Backend
	path    string
	native  *Native
	closed  bool
}

func (l *library) Path() string {
	return l.path
}

func (l *library) Bind(sig ffi.Signature, fptr any) error {
	if l.closed {
		return ffi.ErrNotLoaded
	}
	if slices.Contains(l.backend.Missing, sig.Name) {
		return fmt.Errorf("%s: undefined symbol: %s", l.path, sig.Name)
	}
	impl, ok := l.symbols()[sig.Name]
	if !ok {
		return fmt.Errorf("%s: undefined symbol: %s", l.path, sig.Name)
	}
	target := reflect.ValueOf(fptr).Elem()
	fn := reflect.ValueOf(impl)
	if !fn.Type().AssignableTo(target.Type()) {
		return fmt.Errorf("%s: double has type %s, want %s", sig.Name, fn.Type(), target.Type())
	}
	target.Set(fn)
	return nil
}

func (l *library) Close() error {
	if l.closed {
		return errors.New("library already closed")
	}
	l.closed = true
	l.backend.mu.Lock()
	l.backend.open--
	l.backend.mu.Unlock()
	return nil
}

func (l *library) cstring(b []byte) uintptr {
	if l.backend.NullStrings {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}

func (l *library) symbols() map[string]any {
	n := l.native
	return map[string]any{
		ffi.SymInitLibrary: func() int32 {
			n.InitCalls++
			if l.backend.InitStatus != nil {
				if *l.backend.InitStatus == ffi.StatusOK {
					n.initialized = true
				}
				return *l.backend.InitStatus
			}
			if n.initialized {
				return ffi.StatusAlreadyInitialized
			}
			n.initialized = true
			return ffi.StatusOK
		},
		ffi.SymCleanupLibrary: func() {
			n.CleanupCalls++
			n.initialized = false
		},
		ffi.SymAdd:      func(a, b int32) int32 { return a + b },
		ffi.SymSubtract: func(a, b int32) int32 { return a - b },
		ffi.SymMultiply: func(a, b int32) int32 { return a * b },
		ffi.SymGetVersion: func() uintptr {
			return l.cstring(versionC)
		},
		ffi.SymSumArray: func(arr *int32, length int32) int32 {
			if arr == nil || length <= 0 {
				return 0
			}
			var sum int32
			for _, v := range unsafe.Slice(arr, length) {
				sum += v
			}
			return sum
		},
		ffi.SymGetStatus: func() int32 {
			if n.initialized {
				return 1
			}
			return 0
		},
		ffi.SymSetComplexNumber: func(real, imag float64) int32 {
			if l.backend.FailMutations {
				return 1
			}
			n.real, n.imag = real, imag
			return ffi.StatusOK
		},
		ffi.SymGetComplexMagnitude: func() float64 {
			return math.Sqrt(n.real*n.real + n.imag*n.imag)
		},
		ffi.SymAddComplex: func(real, imag float64) int32 {
			if l.backend.FailMutations {
				return 1
			}
			n.real += real
			n.imag += imag
			return ffi.StatusOK
		},
		ffi.SymMultiplyComplex: func(real, imag float64) int32 {
			if l.backend.FailMutations {
				return 1
			}
			n.real, n.imag = n.real*real-n.imag*imag, n.real*imag+n.imag*real
			return ffi.StatusOK
		},
		ffi.SymGetNumberType: func() uintptr {
			return l.cstring(numberTypeC)
		},
		ffi.SymVectorPushDouble: func(value float64) int32 {
			if l.backend.FailMutations {
				return 1
			}
			n.vec = append(n.vec, value)
			return ffi.StatusOK
		},
		ffi.SymVectorSize: func() int32 {
			return int32(len(n.vec))
		},
		ffi.SymVectorGetDouble: func(index int32) float64 {
			if index < 0 || int(index) >= len(n.vec) {
				return 0
			}
			return n.vec[index]
		},
		ffi.SymVectorClear: func() {
			n.vec = n.vec[:0]
		},
		ffi.SymVectorSum: func() float64 {
			var sum float64
			for _, v := range n.vec {
				sum += v
			}
			return sum
		},
		ffi.SymVectorProduct: func() float64 {
			prod := 1.0
			for _, v := range n.vec {
				prod *= v
			}
			return prod
		},
	}
}
