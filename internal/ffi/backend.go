package ffi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// BackendMode selects how the native library is opened and called.
type BackendMode string

const (
	// BackendPurego opens the library with dlopen (LoadDLL on Windows) and
	// calls through purego trampolines. This is the default.
	BackendPurego BackendMode = "purego"

	// BackendLibffi prepares a libffi call interface for every signature.
	// Only registered in builds with the libffi tag; requires libffi at
	// runtime.
	BackendLibffi BackendMode = "libffi"
)

// Library is an opened native library.
type Library interface {
	// Path returns the file the library was opened from.
	Path() string

	// Bind resolves sig.Name and stores a typed Go func in fptr, which must
	// be a pointer to a func matching sig (see CheckSignature).
	Bind(sig Signature, fptr any) error

	// Close releases the library back to the OS loader. Functions bound
	// from it must not be called afterwards.
	Close() error
}

// Backend opens native libraries.
type Backend interface {
	Mode() BackendMode
	Open(path string) (Library, error)
}

var (
	backendsMu sync.RWMutex
	backends   = map[BackendMode]Backend{}
)

// RegisterBackend makes b available to GetBackend under b.Mode(),
// replacing any previous registration.
func RegisterBackend(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Mode()] = b
}

// GetBackend returns the backend registered for mode.
func GetBackend(mode BackendMode) (Backend, error) {
	if mode == "" {
		mode = BackendPurego
	}
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[mode]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %s)", mode, strings.Join(backendNames(), ", "))
	}
	return b, nil
}

// ParseBackendMode validates a backend name from config or flags.
func ParseBackendMode(s string) (BackendMode, error) {
	mode := BackendMode(strings.ToLower(strings.TrimSpace(s)))
	if mode == "" {
		return BackendPurego, nil
	}
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	if _, ok := backends[mode]; !ok {
		return "", fmt.Errorf("unknown backend %q (available: %s)", s, strings.Join(backendNames(), ", "))
	}
	return mode, nil
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for mode := range backends {
		names = append(names, string(mode))
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterBackend(puregoBackend{})
}
