package ffi

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Kind is the native type of a parameter or return value.
type Kind uint8

const (
	KindVoid       Kind = iota // no value (return only)
	KindInt32                  // C int
	KindDouble                 // C double
	KindCString                // const char*, returned only
	KindInt32Array             // int*, passed as a pointer to the first element
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt32:
		return "int"
	case KindDouble:
		return "double"
	case KindCString:
		return "char*"
	case KindInt32Array:
		return "int*"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// goType returns the Go type a bound function uses for k.
func (k Kind) goType() reflect.Type {
	switch k {
	case KindInt32:
		return reflect.TypeOf(int32(0))
	case KindDouble:
		return reflect.TypeOf(float64(0))
	case KindCString:
		return reflect.TypeOf(uintptr(0))
	case KindInt32Array:
		return reflect.TypeOf((*int32)(nil))
	default:
		return nil
	}
}

// Signature describes one exported symbol of the native library.
type Signature struct {
	Name   string
	Params []Kind
	Result Kind
}

func (s Signature) String() string {
	params := ""
	for i, p := range s.Params {
		if i > 0 {
			params += ", "
		}
		params += p.String()
	}
	return fmt.Sprintf("%s %s(%s)", s.Result, s.Name, params)
}

// Symbol names exported by the native library.
const (
	SymInitLibrary         = "init_library"
	SymCleanupLibrary      = "cleanup_library"
	SymAdd                 = "add"
	SymSubtract            = "subtract"
	SymMultiply            = "multiply"
	SymGetVersion          = "get_version"
	SymSumArray            = "sum_array"
	SymGetStatus           = "get_status"
	SymSetComplexNumber    = "set_complex_number"
	SymGetComplexMagnitude = "get_complex_magnitude"
	SymAddComplex          = "add_complex"
	SymMultiplyComplex     = "multiply_complex"
	SymGetNumberType       = "get_number_type"
	SymVectorPushDouble    = "vector_push_double"
	SymVectorSize          = "vector_size"
	SymVectorGetDouble     = "vector_get_double"
	SymVectorClear         = "vector_clear"
	SymVectorSum           = "vector_sum"
	SymVectorProduct       = "vector_product"
)

// Native status codes.
const (
	StatusOK                 = 0
	StatusAlreadyInitialized = 1
)

// UnknownString is returned for string calls when the native side returns NULL.
const UnknownString = "Unknown"

var (
	none       = []Kind{}
	twoInts    = []Kind{KindInt32, KindInt32}
	twoDoubles = []Kind{KindDouble, KindDouble}
)

// Signatures is the full native contract, in binding order.
var Signatures = []Signature{
	{SymInitLibrary, none, KindInt32},
	{SymCleanupLibrary, none, KindVoid},
	{SymAdd, twoInts, KindInt32},
	{SymSubtract, twoInts, KindInt32},
	{SymMultiply, twoInts, KindInt32},
	{SymGetVersion, none, KindCString},
	{SymSumArray, []Kind{KindInt32Array, KindInt32}, KindInt32},
	{SymGetStatus, none, KindInt32},

	{SymSetComplexNumber, twoDoubles, KindInt32},
	{SymGetComplexMagnitude, none, KindDouble},
	{SymAddComplex, twoDoubles, KindInt32},
	{SymMultiplyComplex, twoDoubles, KindInt32},
	{SymGetNumberType, none, KindCString},

	{SymVectorPushDouble, []Kind{KindDouble}, KindInt32},
	{SymVectorSize, none, KindInt32},
	{SymVectorGetDouble, []Kind{KindInt32}, KindDouble},
	{SymVectorClear, none, KindVoid},
	{SymVectorSum, none, KindDouble},
	{SymVectorProduct, none, KindDouble},
}

// Calls holds the bound native functions. A zero Calls has every field nil.
type Calls struct {
	InitLibrary    func() int32
	CleanupLibrary func()
	Add            func(a, b int32) int32
	Subtract       func(a, b int32) int32
	Multiply       func(a, b int32) int32
	GetVersion     func() uintptr
	SumArray       func(arr *int32, length int32) int32
	GetStatus      func() int32

	SetComplexNumber    func(real, imag float64) int32
	GetComplexMagnitude func() float64
	AddComplex          func(real, imag float64) int32
	MultiplyComplex     func(real, imag float64) int32
	GetNumberType       func() uintptr

	VectorPushDouble func(value float64) int32
	VectorSize       func() int32
	VectorGetDouble  func(index int32) float64
	VectorClear      func()
	VectorSum        func() float64
	VectorProduct    func() float64
}

// targets maps every symbol to the address of its field in c.
func (c *Calls) targets() map[string]any {
	return map[string]any{
		SymInitLibrary:         &c.InitLibrary,
		SymCleanupLibrary:      &c.CleanupLibrary,
		SymAdd:                 &c.Add,
		SymSubtract:            &c.Subtract,
		SymMultiply:            &c.Multiply,
		SymGetVersion:          &c.GetVersion,
		SymSumArray:            &c.SumArray,
		SymGetStatus:           &c.GetStatus,
		SymSetComplexNumber:    &c.SetComplexNumber,
		SymGetComplexMagnitude: &c.GetComplexMagnitude,
		SymAddComplex:          &c.AddComplex,
		SymMultiplyComplex:     &c.MultiplyComplex,
		SymGetNumberType:       &c.GetNumberType,
		SymVectorPushDouble:    &c.VectorPushDouble,
		SymVectorSize:          &c.VectorSize,
		SymVectorGetDouble:     &c.VectorGetDouble,
		SymVectorClear:         &c.VectorClear,
		SymVectorSum:           &c.VectorSum,
		SymVectorProduct:       &c.VectorProduct,
	}
}

// CheckSignature reports whether fptr points to a func whose Go type
// matches sig.
func CheckSignature(sig Signature, fptr any) error {
	v := reflect.ValueOf(fptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Func {
		return fmt.Errorf("%s: target must be a pointer to a func, got %T", sig.Name, fptr)
	}
	ft := v.Elem().Type()
	if ft.NumIn() != len(sig.Params) {
		return fmt.Errorf("%s: func has %d params, signature declares %d", sig.Name, ft.NumIn(), len(sig.Params))
	}
	for i, p := range sig.Params {
		want := p.goType()
		if want == nil || ft.In(i) != want {
			return fmt.Errorf("%s: param %d is %s, signature declares %s", sig.Name, i, ft.In(i), p)
		}
	}
	switch {
	case sig.Result == KindVoid && ft.NumOut() != 0:
		return fmt.Errorf("%s: func returns a value, signature declares void", sig.Name)
	case sig.Result != KindVoid && (ft.NumOut() != 1 || ft.Out(0) != sig.Result.goType()):
		return fmt.Errorf("%s: func result does not match %s", sig.Name, sig.Result)
	}
	return nil
}

// Bind resolves every entry of Signatures in lib and stores the typed calls
// in c. On failure c is left zeroed.
func Bind(lib Library, c *Calls) error {
	targets := c.targets()
	for _, sig := range Signatures {
		fptr, ok := targets[sig.Name]
		if !ok {
			*c = Calls{}
			return &BindError{Symbol: sig.Name, Err: fmt.Errorf("no Go target for %s", sig)}
		}
		if err := CheckSignature(sig, fptr); err != nil {
			*c = Calls{}
			return &BindError{Symbol: sig.Name, Err: err}
		}
		if err := lib.Bind(sig, fptr); err != nil {
			*c = Calls{}
			return &BindError{Symbol: sig.Name, Err: err}
		}
	}
	return nil
}

// goString copies the NUL-terminated C string at ptr into a Go string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Pointer(ptr + uintptr(length))) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}

// CString decodes a string returned by the native library, mapping NULL to
// UnknownString.
func CString(ptr uintptr) string {
	if ptr == 0 {
		return UnknownString
	}
	return goString(ptr)
}
