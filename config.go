package mylib

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/mylib/internal/ffi"
)

// ConfigFileName is the project configuration file.
const ConfigFileName = "mylib.toml"

// Config represents the mylib.toml configuration file
type Config struct {
	Library LibraryConfig `toml:"library"`
	Log     LogConfig     `toml:"log"`

	// dir is the directory the config was read from; relative search dirs
	// resolve against it.
	dir string
}

type LibraryConfig struct {
	// Explicit library file; empty means search
	Path string `toml:"path"`
	// File name stem (mylib -> mylib.so / mylib.dylib / mylib.dll)
	Name string `toml:"name"`
	// Directories searched before the executable dir and the working dir
	SearchDirs []string `toml:"search_dirs"`
	// Loader backend: purego or libffi
	Backend string `toml:"backend"`
}

type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Library: LibraryConfig{
			Name:       ffi.DefaultBaseName,
			SearchDirs: []string{ffi.DefaultBuildDir},
			Backend:    string(ffi.BackendPurego),
		},
	}
}

// LoadConfig loads configuration from path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Apply defaults for empty values
	if config.Library.Name == "" {
		config.Library.Name = ffi.DefaultBaseName
	}
	if config.Library.Backend == "" {
		config.Library.Backend = string(ffi.BackendPurego)
	}
	if abs, err := filepath.Abs(path); err == nil {
		config.dir = filepath.Dir(abs)
	}

	return config, nil
}

// SaveConfig writes config to path
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// FindConfig returns the path of the nearest mylib.toml, walking up from the
// working directory. It returns "" when there is none.
func FindConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Options converts the configuration into Library options. Verbose logging
// goes to logger, or stderr when logger is nil.
func (c Config) Options(logger *log.Logger) ([]Option, error) {
	mode, err := ffi.ParseBackendMode(c.Library.Backend)
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithBackend(mode),
		WithBaseName(c.Library.Name),
		WithSearchDirs(c.dir, c.Library.SearchDirs...),
	}
	if c.Library.Path != "" {
		path := c.Library.Path
		if !filepath.IsAbs(path) && c.dir != "" {
			path = filepath.Join(c.dir, path)
		}
		opts = append(opts, WithPath(path))
	}
	if c.Log.Verbose {
		if logger == nil {
			logger = log.New(os.Stderr, "", log.LstdFlags)
		}
		opts = append(opts, WithLogger(logger))
	}
	return opts, nil
}
