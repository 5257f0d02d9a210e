package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/mylib/cmd/mylib/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "demo":
		err = commands.Demo(args)
	case "calc":
		err = commands.Calc(args)
	case "sum":
		err = commands.Sum(args)
	case "complex":
		err = commands.Complex(args)
	case "vector":
		err = commands.Vector(args)
	case "info":
		err = commands.Info(args)
	case "locate":
		err = commands.Locate(args)
	case "cycle":
		err = commands.Cycle(args)
	case "repl":
		err = commands.Repl(args)
	case "init":
		err = commands.Init(args)
	case "version", "-v", "--version":
		fmt.Printf("mylib version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mylib - call the mylib native library from Go

Usage: mylib <command> [options]

Commands:
  demo      Run the walkthrough: arithmetic, complex numbers, vectors
  calc      Integer arithmetic: calc add|sub|mul <a> <b>
  sum       Sum integers natively: sum 1 2 3
  complex   Complex accumulator: complex <re> <im> [add|mul <re> <im>]...
  vector    Vector accumulator: vector 1.5 2.5 3.5
  info      Print library path, backend, version and status
  locate    Show where the library is found (or every place searched)
  cycle     Load/init/cleanup/unload the library repeatedly
  repl      Interactive calculator
  init      Write a default mylib.toml
  version   Print version information
  help      Show this help message

Common options:
  -lib <path>        Use this library file instead of searching
  -backend <name>    Loader backend (purego, or libffi in libffi builds)
  -config <path>     Configuration file (default: nearest mylib.toml)
  -v                 Log library lifecycle to stderr

Configuration:
  Projects can be configured via mylib.toml in the project root.
  Run 'mylib init' to create one with default settings.
  MYLIB_LIB_PATH overrides library discovery.`)
}
