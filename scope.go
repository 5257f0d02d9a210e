package mylib

import (
	"errors"
	"fmt"
)

// ErrInitFailed is returned by Open when init_library reports failure.
var ErrInitFailed = errors.New("mylib: init_library reported failure")

// Open loads and initializes the library. The caller owns the result and
// must Close it; if any step fails everything acquired so far is released
// before Open returns.
func Open(opts ...Option) (*Library, error) {
	l := New(opts...)
	if err := l.Load(); err != nil {
		return nil, err
	}
	ok, err := l.Init()
	if err == nil && !ok {
		err = ErrInitFailed
	}
	if err != nil {
		path := l.Path()
		if cerr := l.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return l, nil
}

// With opens the library, runs fn and closes the library whether fn
// returns normally, returns an error or panics. Errors from fn and from
// Close are joined.
func With(fn func(*Library) error, opts ...Option) (err error) {
	l, err := Open(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(l)
}
