package mylib

import "github.com/agiangrant/mylib/internal/ffi"

// SetComplex stores real+imag·i in the native accumulator. The boolean is
// the native status (true when it returned 0).
func (l *Library) SetComplex(real, imag float64) (bool, error) {
	if err := l.require(ffi.SymSetComplexNumber, StateInitialized); err != nil {
		return false, err
	}
	return l.calls.SetComplexNumber(real, imag) == ffi.StatusOK, nil
}

// SetComplex128 is SetComplex for a Go complex value.
func (l *Library) SetComplex128(c complex128) (bool, error) {
	return l.SetComplex(real(c), imag(c))
}

// ComplexMagnitude returns |z| of the stored complex number.
func (l *Library) ComplexMagnitude() (float64, error) {
	if err := l.require(ffi.SymGetComplexMagnitude, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.GetComplexMagnitude(), nil
}

// AddComplex adds real+imag·i to the stored complex number.
func (l *Library) AddComplex(real, imag float64) (bool, error) {
	if err := l.require(ffi.SymAddComplex, StateInitialized); err != nil {
		return false, err
	}
	return l.calls.AddComplex(real, imag) == ffi.StatusOK, nil
}

// MultiplyComplex multiplies the stored complex number by real+imag·i.
func (l *Library) MultiplyComplex(real, imag float64) (bool, error) {
	if err := l.require(ffi.SymMultiplyComplex, StateInitialized); err != nil {
		return false, err
	}
	return l.calls.MultiplyComplex(real, imag) == ffi.StatusOK, nil
}

// NumberType returns the native type name of the stored number, or
// "Unknown" for NULL.
func (l *Library) NumberType() (string, error) {
	if err := l.require(ffi.SymGetNumberType, StateInitialized); err != nil {
		return "", err
	}
	return ffi.CString(l.calls.GetNumberType()), nil
}
