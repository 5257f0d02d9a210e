package ffi

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
)

// puregoBackend opens libraries with the platform loader and attaches
// symbols with purego.RegisterFunc. No cgo required.
type puregoBackend struct{}

func (puregoBackend) Mode() BackendMode {
	return BackendPurego
}

func (puregoBackend) Open(path string) (Library, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if handle == 0 {
		return nil, &LoadError{Path: path, Err: errors.New("loader returned a nil handle")}
	}
	return &puregoLibrary{path: path, handle: handle}, nil
}

type puregoLibrary struct {
	path   string
	handle uintptr
}

func (l *puregoLibrary) Path() string {
	return l.path
}

func (l *puregoLibrary) Bind(sig Signature, fptr any) (err error) {
	if l.handle == 0 {
		return ErrNotLoaded
	}
	addr, err := getSymbol(l.handle, sig.Name)
	if err != nil {
		return err
	}
	if addr == 0 {
		return fmt.Errorf("symbol %s resolved to a nil address", sig.Name)
	}
	// RegisterFunc panics on unsupported Go types instead of returning an error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("register %s: %v", sig, r)
		}
	}()
	purego.RegisterFunc(fptr, addr)
	return nil
}

func (l *puregoLibrary) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}
