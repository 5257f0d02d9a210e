package commands

import (
	"flag"
	"fmt"

	"github.com/agiangrant/mylib"
)

// Demo implements the 'mylib demo' command
func Demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	lf := addLibraryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts, err := lf.options()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Example 1: arithmetic (manual load/unload)")
	l := mylib.New(opts...)
	if err := l.Load(); err != nil {
		return err
	}
	// Close is a no-op once the explicit Unload below has run.
	defer l.Close()

	if err := demoArithmetic(l); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "\nExample 2: complex numbers")
	if err := demoComplex(l); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "\nExample 3: vector")
	if err := demoVector(l); err != nil {
		return err
	}
	if err := l.Cleanup(); err != nil {
		return err
	}
	if err := l.Unload(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nExample 4: scoped (automatic cleanup)")
	err = mylib.With(func(l *mylib.Library) error {
		version, err := l.Version()
		if err != nil {
			return err
		}
		sum, err := l.Add(20, 30)
		if err != nil {
			return err
		}
		status, err := l.Status()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  Version: %s\n  20 + 30 = %d\n  Status: %d\n", version, sum, status)

		ok, err := l.SetComplex(1, 1)
		if err != nil {
			return err
		}
		if err := checkNative("set_complex_number", ok); err != nil {
			return err
		}
		mag, err := l.ComplexMagnitude()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  |1+i| = %.4f\n", mag)
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\n  ✓ All examples completed")
	return nil
}

func demoArithmetic(l *mylib.Library) error {
	ok, err := l.Init()
	if err != nil {
		return err
	}
	if err := checkNative("init_library", ok); err != nil {
		return err
	}

	version, err := l.Version()
	if err != nil {
		return err
	}
	status, err := l.Status()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  Version: %s\n  Status: %d (1=initialized, 0=not)\n", version, status)

	ops := []struct {
		sym  string
		fn   func(a, b int32) (int32, error)
		a, b int32
	}{
		{"+", l.Add, 5, 3},
		{"-", l.Subtract, 10, 4},
		{"*", l.Multiply, 6, 7},
	}
	for _, op := range ops {
		r, err := op.fn(op.a, op.b)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %d %s %d = %d\n", op.a, op.sym, op.b, r)
	}

	values := []int32{1, 2, 3, 4, 5}
	sum, err := l.SumArray(values)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  sum(%v) = %d\n", values, sum)
	return nil
}

func demoComplex(l *mylib.Library) error {
	ok, err := l.SetComplex(3, 4)
	if err != nil {
		return err
	}
	if err := checkNative("set_complex_number", ok); err != nil {
		return err
	}
	mag, err := l.ComplexMagnitude()
	if err != nil {
		return err
	}
	typ, err := l.NumberType()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  Set complex: 3 + 4i\n  Magnitude: %g (expected: 5)\n  Type: %s\n", mag, typ)

	ok, err = l.AddComplex(1, 2)
	if err != nil {
		return err
	}
	if err := checkNative("add_complex", ok); err != nil {
		return err
	}
	mag, err = l.ComplexMagnitude()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  After adding (1+2i): magnitude = %.4f\n", mag)
	return nil
}

func demoVector(l *mylib.Library) error {
	if err := l.VectorClear(); err != nil {
		return err
	}
	values := []float64{1.5, 2.5, 3.5, 4.5, 5.5}
	if err := l.VectorPushAll(values...); err != nil {
		return err
	}
	return printVector(l)
}

func printVector(l *mylib.Library) error {
	values, err := l.VectorValues()
	if err != nil {
		return err
	}
	sum, err := l.VectorSum()
	if err != nil {
		return err
	}
	product, err := l.VectorProduct()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "  Values: %v\n  Size: %d\n  Sum: %g\n  Product: %.4f\n", values, len(values), sum, product)
	return nil
}
