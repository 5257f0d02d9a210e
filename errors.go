package mylib

import "github.com/agiangrant/mylib/internal/ffi"

// Errors returned by Library. Use errors.Is / errors.As.
var (
	ErrNotLoaded       = ffi.ErrNotLoaded
	ErrIndexOutOfRange = ffi.ErrIndexOutOfRange
)

type (
	// DiscoveryError reports that no library file was found.
	DiscoveryError = ffi.DiscoveryError
	// LoadError carries the OS loader diagnostic.
	LoadError = ffi.LoadError
	// BindError names the symbol that could not be bound.
	BindError = ffi.BindError
)

// BackendMode selects the loader backend.
// This is a re-export of ffi.BackendMode for consumer convenience.
type BackendMode = ffi.BackendMode

// Backend opens native libraries; see WithLoader.
type Backend = ffi.Backend

const (
	BackendPurego = ffi.BackendPurego
	BackendLibffi = ffi.BackendLibffi
)

// LibraryFileName returns the default library file name for goos.
func LibraryFileName(goos string) string {
	return ffi.LibraryFileName(ffi.DefaultBaseName, goos)
}
