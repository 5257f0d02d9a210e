package mylib_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mylib"
	"github.com/agiangrant/mylib/internal/ffi/ffitest"
)

func TestNativeLibrary(t *testing.T) {
	path := ffitest.BuildNative(t, ffitest.FixtureFull, t.TempDir())

	var handle *mylib.Library
	err := mylib.With(func(l *mylib.Library) error {
		handle = l

		status, err := l.Status()
		require.NoError(t, err)
		assert.Equal(t, 1, status)

		version, err := l.Version()
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", version)

		sum, err := l.SumArray([]int32{1, 2, 3, 4, 5})
		require.NoError(t, err)
		assert.Equal(t, int32(15), sum)

		_, err = l.SetComplex(3, 4)
		require.NoError(t, err)
		_, err = l.AddComplex(1, 2)
		require.NoError(t, err)
		mag, err := l.ComplexMagnitude()
		require.NoError(t, err)
		assert.Equal(t, math.Sqrt(52), mag)

		require.NoError(t, l.VectorClear())
		require.NoError(t, l.VectorPushAll(1.5, 2.5, 3.5, 4.5, 5.5))
		vsum, err := l.VectorSum()
		require.NoError(t, err)
		assert.Equal(t, 17.5, vsum)
		return nil
	}, mylib.WithPath(path))
	require.NoError(t, err)

	_, err = handle.Add(1, 1)
	assert.ErrorIs(t, err, mylib.ErrNotLoaded)
}

func TestNativeLoadUnloadCycles(t *testing.T) {
	path := ffitest.BuildNative(t, ffitest.FixtureFull, t.TempDir())

	for i := 0; i < 3; i++ {
		l, err := mylib.Open(mylib.WithPath(path))
		require.NoError(t, err)

		status, err := l.Status()
		require.NoError(t, err)
		assert.Equal(t, 1, status, "cycle %d", i)
		require.NoError(t, l.Close())
	}
}
