package mylib

import (
	"io"
	"log"

	"github.com/agiangrant/mylib/internal/ffi"
)

type options struct {
	search  ffi.SearchOptions
	backend ffi.BackendMode
	loader  ffi.Backend
	logger  *log.Logger
}

// Option configures a Library.
type Option func(*options)

// WithPath loads the library from path instead of searching for it.
func WithPath(path string) Option {
	return func(o *options) {
		o.search.Path = path
	}
}

// WithBaseName changes the library file name stem (default "mylib").
func WithBaseName(name string) Option {
	return func(o *options) {
		o.search.BaseName = name
	}
}

// WithSearchDirs replaces the directories searched before the executable
// directory and the working directory. Relative dirs are resolved against
// root, or the project root when root is empty.
func WithSearchDirs(root string, dirs ...string) Option {
	return func(o *options) {
		o.search.Root = root
		o.search.Dirs = dirs
	}
}

// WithBackend selects a registered loader backend by mode.
func WithBackend(mode BackendMode) Option {
	return func(o *options) {
		o.backend = mode
	}
}

// WithLoader uses b directly, bypassing the backend registry.
func WithLoader(b Backend) Option {
	return func(o *options) {
		o.loader = b
	}
}

// WithLogger sets the logger for lifecycle messages. A nil logger discards.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		o.logger = logger
	}
}
