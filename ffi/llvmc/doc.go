// Package llvmc binds ffi.Library to libLLVM through cgo.
//
// The binding is compiled only with the llvm build tag and cgo enabled:
//
//	CGO_CFLAGS="$(llvm-config --cflags)" \
//	CGO_LDFLAGS="$(llvm-config --ldflags --libs)" \
//	go build -tags llvm ./...
//
// Without the tag New reports an unavailable error, so callers can fall back
// to ffi/hostlib.
package llvmc
