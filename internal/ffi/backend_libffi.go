//go:build libffi

package ffi

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	libffi "github.com/jupiterrider/ffi"
)

func init() {
	RegisterBackend(libffiBackend{})
}

// libffiBackend prepares one libffi call interface per signature and
// exposes it as a typed Go func built with reflect.MakeFunc.
type libffiBackend struct{}

func (libffiBackend) Mode() BackendMode {
	return BackendLibffi
}

func (libffiBackend) Open(path string) (Library, error) {
	lib, err := libffi.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &libffiLibrary{path: path, lib: lib, open: true}, nil
}

type libffiLibrary struct {
	path string
	lib  libffi.Lib
	open bool
}

func (l *libffiLibrary) Path() string {
	return l.path
}

func libffiType(k Kind) (*libffi.Type, error) {
	switch k {
	case KindVoid:
		return &libffi.TypeVoid, nil
	case KindInt32:
		return &libffi.TypeSint32, nil
	case KindDouble:
		return &libffi.TypeDouble, nil
	case KindCString, KindInt32Array:
		return &libffi.TypePointer, nil
	default:
		return nil, fmt.Errorf("no libffi type for %s", k)
	}
}

func (l *libffiLibrary) Bind(sig Signature, fptr any) error {
	if !l.open {
		return ErrNotLoaded
	}
	ret, err := libffiType(sig.Result)
	if err != nil {
		return err
	}
	args := make([]*libffi.Type, len(sig.Params))
	for i, p := range sig.Params {
		if args[i], err = libffiType(p); err != nil {
			return err
		}
	}
	fun, err := l.lib.Prep(sig.Name, ret, args...)
	if err != nil {
		return err
	}

	fv := reflect.ValueOf(fptr)
	if fv.Kind() != reflect.Pointer || fv.Elem().Kind() != reflect.Func {
		return errors.New("target must be a pointer to a func")
	}
	fn := fv.Elem()
	fn.Set(reflect.MakeFunc(fn.Type(), func(in []reflect.Value) []reflect.Value {
		argPtrs := make([]unsafe.Pointer, len(in))
		for i, v := range in {
			switch sig.Params[i] {
			case KindInt32:
				x := int32(v.Int())
				argPtrs[i] = unsafe.Pointer(&x)
			case KindDouble:
				x := v.Float()
				argPtrs[i] = unsafe.Pointer(&x)
			case KindInt32Array:
				p := v.UnsafePointer()
				argPtrs[i] = unsafe.Pointer(&p)
			}
		}

		call := func(ret unsafe.Pointer) {
			libffi.Call(fun.Cif, fun.Addr, ret, argPtrs...)
		}

		switch sig.Result {
		case KindInt32:
			// libffi widens small integer returns to a full register
			var r libffi.Arg
			call(unsafe.Pointer(&r))
			return []reflect.Value{reflect.ValueOf(int32(r))}
		case KindDouble:
			var r float64
			call(unsafe.Pointer(&r))
			return []reflect.Value{reflect.ValueOf(r)}
		case KindCString:
			var r uintptr
			call(unsafe.Pointer(&r))
			return []reflect.Value{reflect.ValueOf(r)}
		default:
			call(nil)
			return nil
		}
	}))
	return nil
}

func (l *libffiLibrary) Close() error {
	if !l.open {
		return nil
	}
	l.open = false
	return l.lib.Close()
}
