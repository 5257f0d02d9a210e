package commands

import (
	"flag"
	"fmt"

	"github.com/agiangrant/mylib"
)

// Complex implements the 'mylib complex' command:
//
//	mylib complex 3 4 add 1 2 mul 0 1
func Complex(args []string) error {
	fs := flag.NewFlagSet("complex", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) < 2 || (len(rest)-2)%3 != 0 {
		return fmt.Errorf("usage: mylib complex <re> <im> [add|mul <re> <im>]...")
	}

	re, im, err := parseComplex(rest[0], rest[1])
	if err != nil {
		return err
	}
	type step struct {
		op     string
		re, im float64
	}
	var steps []step
	for i := 2; i < len(rest); i += 3 {
		if rest[i] != "add" && rest[i] != "mul" {
			return fmt.Errorf("unknown operation %q (want add or mul)", rest[i])
		}
		sre, sim, err := parseComplex(rest[i+1], rest[i+2])
		if err != nil {
			return err
		}
		steps = append(steps, step{rest[i], sre, sim})
	}

	return lf.with(func(l *mylib.Library) error {
		ok, err := l.SetComplex(re, im)
		if err != nil {
			return err
		}
		if err := checkNative("set_complex_number", ok); err != nil {
			return err
		}
		if err := printMagnitude(l, fmt.Sprintf("set (%g%+gi)", re, im)); err != nil {
			return err
		}

		for _, s := range steps {
			if s.op == "add" {
				ok, err = l.AddComplex(s.re, s.im)
			} else {
				ok, err = l.MultiplyComplex(s.re, s.im)
			}
			if err != nil {
				return err
			}
			if err := checkNative(s.op+"_complex", ok); err != nil {
				return err
			}
			if err := printMagnitude(l, fmt.Sprintf("%s (%g%+gi)", s.op, s.re, s.im)); err != nil {
				return err
			}
		}

		typ, err := l.NumberType()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "type: %s\n", typ)
		return nil
	})
}

func parseComplex(re, im string) (float64, float64, error) {
	r, err := parseFloat(re)
	if err != nil {
		return 0, 0, err
	}
	i, err := parseFloat(im)
	if err != nil {
		return 0, 0, err
	}
	return r, i, nil
}

func printMagnitude(l *mylib.Library, label string) error {
	mag, err := l.ComplexMagnitude()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: |z| = %g\n", label, mag)
	return nil
}

// Vector implements the 'mylib vector' command
func Vector(args []string) error {
	fs := flag.NewFlagSet("vector", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	values := make([]float64, 0, fs.NArg())
	for _, arg := range fs.Args() {
		v, err := parseFloat(arg)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	return lf.with(func(l *mylib.Library) error {
		if err := l.VectorClear(); err != nil {
			return err
		}
		if err := l.VectorPushAll(values...); err != nil {
			return err
		}
		return printVector(l)
	})
}
