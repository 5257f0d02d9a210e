// Package mylib loads the mylib native library and calls it from Go.
//
// The usual entry point is With, which loads and initializes the library,
// runs a function and always cleans up and unloads afterwards:
//
//	err := mylib.With(func(l *mylib.Library) error {
//		sum, err := l.Add(2, 3)
//		...
//	})
//
// Open and Close give the same guarantees for longer-lived handles. For
// step-by-step control use New followed by Load, Init, Cleanup and Unload.
//
// The library file is mylib.so, mylib.dylib or mylib.dll depending on the
// OS. It is searched for in build/lib under the project root, next to the
// executable and in the working directory; MYLIB_LIB_PATH, WithPath or
// mylib.toml override the search.
package mylib
