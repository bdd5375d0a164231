// Package ffi describes the foreign LLVM-C ABI the safe layer is built on.
//
// Every resource crosses the boundary as an opaque pointer with its own named
// type, mirroring the LLVM-C typedefs:
//
//	Context       LLVMContextRef
//	MemoryBuffer  LLVMMemoryBufferRef
//	Binary        LLVMBinaryRef
//	Module        LLVMModuleRef
//	Message       char * returned by the library, released with LLVMDisposeMessage
//
// The Library interface lists the entry points 1:1. Its contract is the C
// contract: raw handles in and out, NUL-terminated strings, Bool status codes
// and out-parameters for results and messages. Nothing in this package owns or
// releases a handle; see package handle for the ownership model.
//
// # Implementations
//
//	ffi/hostlib  pure Go implementation backed by Go memory, used in tests
//	ffi/llvmc    cgo binding to libLLVM, built with -tags llvm
//
// # Marshalling
//
// Go strings must be copied into NUL-terminated storage before a call and the
// storage kept alive until the call returns:
//
//	err := ffi.WithCString(path, func(p *byte) {
//	    failed = lib.CreateMemoryBufferWithContentsOfFile(p, &out, &msg)
//	})
//
// Foreign length and pointer pairs are read with View, which never assumes a
// trailing NUL. NUL-terminated foreign strings are read with StringView.
package ffi
