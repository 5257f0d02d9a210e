package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiangrant/mylib"
)

// Init implements the 'mylib init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	dir := fs.String("dir", ".", "Directory to write mylib.toml into")
	lib := fs.String("lib", "", "Explicit library path to record")
	backend := fs.String("backend", "", "Loader backend to record")
	force := fs.Bool("force", false, "Overwrite an existing mylib.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := filepath.Join(*dir, mylib.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	config := mylib.DefaultConfig()
	if *lib != "" {
		config.Library.Path = *lib
	}
	if *backend != "" {
		config.Library.Backend = *backend
	}
	// Validate before writing
	if _, err := config.Options(nil); err != nil {
		return err
	}

	if err := mylib.SaveConfig(path, config); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  ✓ Created %s\n", path)
	return nil
}
