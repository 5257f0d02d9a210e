package ffi

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	// ErrNotLoaded is returned by typed calls made before the library was
	// loaded (or initialized) or after it was unloaded.
	ErrNotLoaded = errors.New("mylib: library not loaded")

	// ErrIndexOutOfRange is returned when a vector index is outside the
	// native sequence.
	ErrIndexOutOfRange = errors.New("mylib: vector index out of range")
)

// DiscoveryError reports that the library file was not found anywhere.
type DiscoveryError struct {
	Name     string
	Searched []string
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("library %q not found (searched: %s); build it first, e.g. with make",
		e.Name, strings.Join(e.Searched, ", "))
}

func (e *DiscoveryError) Unwrap() error {
	return fs.ErrNotExist
}

// LoadError wraps the OS loader diagnostic for a file that could not be opened.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load library from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// BindError names a declared symbol that could not be attached.
type BindError struct {
	Symbol string
	Err    error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind symbol %s: %v", e.Symbol, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// NotLoaded wraps ErrNotLoaded with the name of the attempted operation.
func NotLoaded(op string) error {
	return fmt.Errorf("%s: %w", op, ErrNotLoaded)
}
