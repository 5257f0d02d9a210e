package mylib

import (
	"fmt"

	"github.com/agiangrant/mylib/internal/ffi"
)

// VectorPush appends value to the native vector.
func (l *Library) VectorPush(value float64) (bool, error) {
	if err := l.require(ffi.SymVectorPushDouble, StateInitialized); err != nil {
		return false, err
	}
	return l.calls.VectorPushDouble(value) == ffi.StatusOK, nil
}

// VectorPushAll pushes values in order and stops at the first value the
// native side rejects.
func (l *Library) VectorPushAll(values ...float64) error {
	for i, v := range values {
		ok, err := l.VectorPush(v)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: native failure pushing value %d (%g)", ffi.SymVectorPushDouble, i, v)
		}
	}
	return nil
}

func (l *Library) VectorSize() (int, error) {
	if err := l.require(ffi.SymVectorSize, StateInitialized); err != nil {
		return 0, err
	}
	return int(l.calls.VectorSize()), nil
}

// VectorGet returns the element at index. The index is checked against the
// current native size; out-of-range indices return ErrIndexOutOfRange
// without calling vector_get_double.
func (l *Library) VectorGet(index int) (float64, error) {
	size, err := l.VectorSize()
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= size {
		return 0, fmt.Errorf("%s(%d) with size %d: %w", ffi.SymVectorGetDouble, index, size, ffi.ErrIndexOutOfRange)
	}
	return l.calls.VectorGetDouble(int32(index)), nil
}

// VectorValues reads the whole native vector, one element per call.
func (l *Library) VectorValues() ([]float64, error) {
	size, err := l.VectorSize()
	if err != nil {
		return nil, err
	}
	values := make([]float64, size)
	for i := range values {
		values[i] = l.calls.VectorGetDouble(int32(i))
	}
	return values, nil
}

func (l *Library) VectorClear() error {
	if err := l.require(ffi.SymVectorClear, StateInitialized); err != nil {
		return err
	}
	l.calls.VectorClear()
	return nil
}

func (l *Library) VectorSum() (float64, error) {
	if err := l.require(ffi.SymVectorSum, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.VectorSum(), nil
}

// VectorProduct returns the product of the native vector. The empty
// product is whatever the native library reports.
func (l *Library) VectorProduct() (float64, error) {
	if err := l.require(ffi.SymVectorProduct, StateInitialized); err != nil {
		return 0, err
	}
	return l.calls.VectorProduct(), nil
}
