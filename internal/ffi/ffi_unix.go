//go:build darwin || freebsd || linux || netbsd

package ffi

import (
	"github.com/ebitengine/purego"
)

// openLibrary loads a dynamic library on Unix-like systems
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

// getSymbol retrieves a symbol from the loaded library
func getSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

// closeLibrary drops the reference taken by openLibrary
func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return purego.Dlclose(handle)
}
