// Package llvm provides ownership-checked access to LLVM objects through the
// LLVM-C interface.
//
// Every foreign resource is held by an owning wrapper that releases it
// exactly once, and handles that only live as long as a parent (modules and
// binaries inside a context) are released before that parent. Borrowed
// references stop working when their owner is released instead of reading
// freed memory.
//
// # Architecture Overview
//
//	llvm/           Context, MemoryBuffer, Binary, Module, Message wrappers
//	├── handle/     Box, SemiBox, Scope and Ref ownership containers
//	├── ffi/        Foreign handle types and the Library entry point surface
//	│   ├── hostlib/  Pure Go Library used for tests and tooling
//	│   └── llvmc/    cgo Library bound to libLLVM (-tags llvm)
//	└── errors/     Structured error types
//
// # Quick Start
//
// Read an object file and report its format:
//
//	lib := hostlib.New()
//
//	ctx := llvm.NewContext(lib)
//	defer ctx.Close()
//
//	bin, err := llvm.ReadBinary(ctx, "main.o")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(bin.Type()) // ELF64L
//
// # Errors
//
// Operations that the foreign library can refuse return an *errors.Error of
// kind foreign whose Detail is the library's own diagnostic. The diagnostic
// is copied and the foreign message released before the call returns.
//
// Misuse of the ownership model panics with an *errors.Error instead: using a
// closed context, a moved or closed wrapper, a zero handle, or a format tag
// this package does not know. Use errors.IsContractViolation on a recovered
// value to tell the two apart.
//
// # Logging
//
// The package logs handle creation, release and foreign failures at debug
// level. It is silent until SetLogger installs a logger.
package llvm
