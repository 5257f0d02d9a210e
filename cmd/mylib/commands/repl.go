package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/agiangrant/mylib"
)

const replPrompt = "mylib> "

const replHelp = `commands:
  add|sub|mul <a> <b>      integer arithmetic
  sum <n>...               sum integers
  set <re> <im>            store a complex number
  cadd|cmul <re> <im>      add to / multiply the stored complex number
  mag                      magnitude of the stored complex number
  type                     type name of the stored number
  push <x>...              append to the vector
  get <i>                  vector element
  size|values|clear        inspect or empty the vector
  vsum|vprod               vector sum / product
  version|status           library info
  quit                     leave`

// lineReader is satisfied by term.Terminal and lineScanner.
type lineReader interface {
	ReadLine() (string, error)
}

type lineScanner struct {
	s *bufio.Scanner
}

func (r lineScanner) ReadLine() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// Repl implements the 'mylib repl' command
func Repl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return lf.with(func(l *mylib.Library) error {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return runRepl(l, lineScanner{bufio.NewScanner(os.Stdin)}, stdout)
		}

		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, oldState)

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, replPrompt)
		if width, height, err := term.GetSize(fd); err == nil {
			t.SetSize(width, height)
		}
		fmt.Fprintln(t, "type 'help' for commands, 'quit' to leave")
		return runRepl(l, t, t)
	})
}

func runRepl(l *mylib.Library, in lineReader, out io.Writer) error {
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}

		result, err := evalLine(l, fields[0], fields[1:])
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}

func evalLine(l *mylib.Library, cmd string, args []string) (string, error) {
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s)", cmd, n)
		}
		return nil
	}

	switch cmd {
	case "help":
		return replHelp, nil

	case "add", "sub", "mul":
		if err := want(2); err != nil {
			return "", err
		}
		a, err := parseInt32(args[0])
		if err != nil {
			return "", err
		}
		b, err := parseInt32(args[1])
		if err != nil {
			return "", err
		}
		r, err := calculate(l, cmd, a, b)
		return fmt.Sprint(r), err

	case "sum":
		values := make([]int32, 0, len(args))
		for _, arg := range args {
			v, err := parseInt32(arg)
			if err != nil {
				return "", err
			}
			values = append(values, v)
		}
		r, err := l.SumArray(values)
		return fmt.Sprint(r), err

	case "set", "cadd", "cmul":
		if err := want(2); err != nil {
			return "", err
		}
		re, im, err := parseComplex(args[0], args[1])
		if err != nil {
			return "", err
		}
		var ok bool
		switch cmd {
		case "set":
			ok, err = l.SetComplex(re, im)
		case "cadd":
			ok, err = l.AddComplex(re, im)
		default:
			ok, err = l.MultiplyComplex(re, im)
		}
		if err != nil {
			return "", err
		}
		return "", checkNative(cmd, ok)

	case "mag":
		r, err := l.ComplexMagnitude()
		return fmt.Sprint(r), err

	case "type":
		return l.NumberType()

	case "push":
		values := make([]float64, 0, len(args))
		for _, arg := range args {
			v, err := parseFloat(arg)
			if err != nil {
				return "", err
			}
			values = append(values, v)
		}
		return "", l.VectorPushAll(values...)

	case "get":
		if err := want(1); err != nil {
			return "", err
		}
		i, err := parseInt32(args[0])
		if err != nil {
			return "", err
		}
		r, err := l.VectorGet(int(i))
		return fmt.Sprint(r), err

	case "size":
		r, err := l.VectorSize()
		return fmt.Sprint(r), err

	case "values":
		r, err := l.VectorValues()
		return fmt.Sprint(r), err

	case "clear":
		return "", l.VectorClear()

	case "vsum":
		r, err := l.VectorSum()
		return fmt.Sprint(r), err

	case "vprod":
		r, err := l.VectorProduct()
		return fmt.Sprint(r), err

	case "version":
		return l.Version()

	case "status":
		r, err := l.Status()
		return fmt.Sprint(r), err

	default:
		return "", fmt.Errorf("unknown command %q (try help)", cmd)
	}
}
