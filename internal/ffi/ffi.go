// Package ffi binds the mylib native library to Go.
// It locates the platform library file, opens it through a pluggable
// loader backend (purego by default, libffi optionally) and attaches the
// exported symbols to typed Go functions declared in Signatures.
package ffi

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultBaseName is the file name of the native library without extension.
const DefaultBaseName = "mylib"

// EnvLibraryPath overrides library discovery when set.
const EnvLibraryPath = "MYLIB_LIB_PATH"

// DefaultBuildDir is where the native build drops the library, relative to
// the project root.
var DefaultBuildDir = filepath.Join("build", "lib")

// LibraryFileName returns the library file name for a target OS.
func LibraryFileName(base, goos string) string {
	if base == "" {
		base = DefaultBaseName
	}
	switch goos {
	case "windows":
		return base + ".dll"
	case "darwin", "ios":
		return base + ".dylib"
	default:
		return base + ".so"
	}
}

// SearchOptions controls Locate.
type SearchOptions struct {
	// Path, when set, is used as-is and must exist.
	Path string
	// BaseName overrides DefaultBaseName.
	BaseName string
	// GOOS overrides runtime.GOOS for file naming.
	GOOS string
	// Dirs are searched in order before the executable directory and the
	// working directory. Relative entries are resolved against Root.
	Dirs []string
	// Root is the project root; empty means ProjectRoot().
	Root string
	// SkipEnv ignores EnvLibraryPath.
	SkipEnv bool
}

// Locate resolves the library file. It returns an absolute path or a
// *DiscoveryError listing every candidate tried.
func Locate(opts SearchOptions) (string, error) {
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	libName := LibraryFileName(opts.BaseName, goos)

	var searchPaths []string
	if opts.Path != "" {
		searchPaths = append(searchPaths, opts.Path)
	} else {
		if !opts.SkipEnv {
			if path := os.Getenv(EnvLibraryPath); path != "" {
				searchPaths = append(searchPaths, path)
			}
		}

		root := opts.Root
		if root == "" {
			root, _ = ProjectRoot()
		}
		dirs := opts.Dirs
		if dirs == nil {
			dirs = []string{DefaultBuildDir}
		}
		for _, dir := range dirs {
			if !filepath.IsAbs(dir) && root != "" {
				dir = filepath.Join(root, dir)
			}
			searchPaths = append(searchPaths, filepath.Join(dir, libName))
		}

		if execPath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(filepath.Dir(execPath), libName))
		}

		// Current directory
		searchPaths = append(searchPaths, libName)
	}

	for _, path := range searchPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			if absPath, err := filepath.Abs(path); err == nil {
				return absPath, nil
			}
			return path, nil
		}
	}

	return "", &DiscoveryError{Name: libName, Searched: searchPaths}
}

// ProjectRoot finds the project root by looking for mylib.toml or go.mod,
// walking up from the working directory.
func ProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "mylib.toml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
