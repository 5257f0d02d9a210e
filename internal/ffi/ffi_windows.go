//go:build windows

package ffi

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// openLibrary loads a dynamic library on Windows
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	// Return the actual HMODULE handle, not a pointer to the DLL struct
	return uintptr(dll.Handle), nil
}

// getSymbol retrieves a symbol from the loaded library on Windows
func getSymbol(handle uintptr, name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(windows.Handle(handle), name)
	if err != nil {
		return 0, fmt.Errorf("GetProcAddress(%s) failed: %w", name, err)
	}
	return addr, nil
}

// closeLibrary drops the reference taken by openLibrary
func closeLibrary(handle uintptr) error {
	if handle == 0 {
		return nil
	}
	return windows.FreeLibrary(windows.Handle(handle))
}
