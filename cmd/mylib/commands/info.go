package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/agiangrant/mylib"
)

// Info implements the 'mylib info' command
func Info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return lf.with(func(l *mylib.Library) error {
		version, err := l.Version()
		if err != nil {
			return err
		}
		status, err := l.Status()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "path:    %s\n", l.Path())
		fmt.Fprintf(stdout, "backend: %s\n", l.Backend())
		fmt.Fprintf(stdout, "version: %s\n", version)
		fmt.Fprintf(stdout, "status:  %d\n", status)
		return nil
	})
}

// Locate implements the 'mylib locate' command
func Locate(args []string) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := lf.options()
	if err != nil {
		return err
	}

	path, err := mylib.New(opts...).Locate()
	var de *mylib.DiscoveryError
	if errors.As(err, &de) {
		fmt.Fprintf(stdout, "%s not found. Searched:\n", de.Name)
		for _, p := range de.Searched {
			fmt.Fprintf(stdout, "  %s\n", p)
		}
		return err
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}

// Cycle implements the 'mylib cycle' command
func Cycle(args []string) error {
	fs := flag.NewFlagSet("cycle", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	n := fs.Int("n", 3, "Number of load/unload cycles")
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := lf.options()
	if err != nil {
		return err
	}

	for i := 1; i <= *n; i++ {
		l, err := mylib.Open(opts...)
		if err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		status, err := l.Status()
		if cerr := l.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
		fmt.Fprintf(stdout, "  ✓ cycle %d: status %d\n", i, status)
	}
	return nil
}
