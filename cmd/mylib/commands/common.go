package commands

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/agiangrant/mylib"
)

// stdout is where command output goes; tests replace it.
var stdout io.Writer = os.Stdout

// extraOptions are appended to every library a command opens; tests use it
// to inject a loader.
var extraOptions []mylib.Option

// libraryFlags are the options every command that opens the library accepts.
type libraryFlags struct {
	lib     *string
	backend *string
	config  *string
	verbose *bool
}

func addLibraryFlags(fs *flag.FlagSet) libraryFlags {
	return libraryFlags{
		lib:     fs.String("lib", "", "Path to the native library"),
		backend: fs.String("backend", "", "Loader backend (purego, libffi)"),
		config:  fs.String("config", "", "Path to mylib.toml"),
		verbose: fs.Bool("v", false, "Log library lifecycle to stderr"),
	}
}

// loadConfig reads the configuration file named by -config, or the nearest
// mylib.toml, and applies flag overrides.
func (f libraryFlags) loadConfig() (mylib.Config, error) {
	path := *f.config
	if path == "" {
		found, err := mylib.FindConfig()
		if err != nil {
			return mylib.Config{}, err
		}
		path = found
	}

	cfg := mylib.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = mylib.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if *f.lib != "" {
		cfg.Library.Path = *f.lib
	}
	if *f.backend != "" {
		cfg.Library.Backend = *f.backend
	}
	if *f.verbose {
		cfg.Log.Verbose = true
	}
	return cfg, nil
}

func (f libraryFlags) options() ([]mylib.Option, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options(log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		return nil, err
	}
	if *f.lib != "" {
		// Relative -lib paths are relative to the working directory, not
		// the config file.
		opts = append(opts, mylib.WithPath(*f.lib))
	}
	return append(opts, extraOptions...), nil
}

// with opens the library for the duration of fn.
func (f libraryFlags) with(fn func(*mylib.Library) error) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	return mylib.With(fn, opts...)
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q: %w", s, err)
	}
	return int32(v), nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

func checkNative(op string, ok bool) error {
	if !ok {
		return fmt.Errorf("%s: native call reported failure", op)
	}
	return nil
}
