package commands

import (
	"flag"
	"fmt"

	"github.com/agiangrant/mylib"
)

// Calc implements the 'mylib calc' command
func Calc(args []string) error {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("usage: mylib calc add|sub|mul <a> <b>")
	}

	a, err := parseInt32(fs.Arg(1))
	if err != nil {
		return err
	}
	b, err := parseInt32(fs.Arg(2))
	if err != nil {
		return err
	}

	return lf.with(func(l *mylib.Library) error {
		r, err := calculate(l, fs.Arg(0), a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, r)
		return nil
	})
}

func calculate(l *mylib.Library, op string, a, b int32) (int32, error) {
	switch op {
	case "add", "+":
		return l.Add(a, b)
	case "sub", "subtract", "-":
		return l.Subtract(a, b)
	case "mul", "multiply", "*":
		return l.Multiply(a, b)
	default:
		return 0, fmt.Errorf("unknown operation %q (want add, sub or mul)", op)
	}
}

// Sum implements the 'mylib sum' command
func Sum(args []string) error {
	fs := flag.NewFlagSet("sum", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	values := make([]int32, 0, fs.NArg())
	for _, arg := range fs.Args() {
		v, err := parseInt32(arg)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	return lf.with(func(l *mylib.Library) error {
		sum, err := l.SumArray(values)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, sum)
		return nil
	})
}
