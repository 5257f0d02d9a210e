package mylib

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/mylib/internal/ffi/ffitest"
)

func TestWithReleasesOnReturn(t *testing.T) {
	b := ffitest.NewBackend()
	var inside *Library

	err := With(func(l *Library) error {
		inside = l
		status, err := l.Status()
		require.NoError(t, err)
		assert.Equal(t, 1, status)

		sum, err := l.Add(20, 30)
		require.NoError(t, err)
		assert.Equal(t, int32(50), sum)
		return nil
	}, doubleOptions(t, b)...)
	require.NoError(t, err)

	assert.Equal(t, StateUnloaded, inside.State())
	assert.Equal(t, 0, b.OpenCount())
	assert.Equal(t, 1, b.Native().CleanupCalls)

	_, err = inside.Add(1, 2)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = inside.Status()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestWithReleasesOnError(t *testing.T) {
	b := ffitest.NewBackend()
	errTest := errors.New("test error")

	err := With(func(l *Library) error {
		status, err := l.Status()
		require.NoError(t, err)
		assert.Equal(t, 1, status)
		return errTest
	}, doubleOptions(t, b)...)

	assert.ErrorIs(t, err, errTest)
	assert.Equal(t, 0, b.OpenCount())
	assert.Equal(t, 1, b.Native().CleanupCalls)
	assert.False(t, b.Native().Initialized())
}

func TestWithReleasesOnPanic(t *testing.T) {
	b := ffitest.NewBackend()

	assert.PanicsWithValue(t, "boom", func() {
		_ = With(func(l *Library) error {
			panic("boom")
		}, doubleOptions(t, b)...)
	})

	assert.Equal(t, 0, b.OpenCount())
	assert.Equal(t, 1, b.Native().CleanupCalls)
}

func TestWithOpenFailureSkipsBody(t *testing.T) {
	b := ffitest.NewBackend()
	b.Missing = []string{"add"}
	called := false

	err := With(func(*Library) error {
		called = true
		return nil
	}, doubleOptions(t, b)...)

	var be *BindError
	require.ErrorAs(t, err, &be)
	assert.False(t, called)
	assert.Equal(t, 0, b.OpenCount())
}

func TestOpenInitFailureReleases(t *testing.T) {
	b := ffitest.NewBackend()
	code := int32(-1)
	b.InitStatus = &code

	l, err := Open(doubleOptions(t, b)...)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, ErrInitFailed)
	assert.Equal(t, 0, b.OpenCount())
	assert.Equal(t, 1, b.Native().CleanupCalls)
}
