// Package hostlib is a pure Go implementation of the LLVM-C entry points in
// ffi.Library.
//
// Every handle is the address of a real Go object, and buffer data is real
// NUL-terminated memory, so the safe layer reads it exactly as it would read
// memory owned by libLLVM. A registry tracks every live handle:
//
//	lib := hostlib.New()
//	// ... use the safe layer ...
//	if n := lib.Live(); n != 0 {
//	    t.Fatalf("%d handles leaked", n)
//	}
//
// # Faults
//
// Where libLLVM would crash or corrupt memory, hostlib panics with a *Fault:
// releasing an unknown or already released handle, releasing a handle through
// the wrong dispose function, releasing a buffer a binary still reads from, or
// releasing a context while modules or binaries created in it are alive.
//
// # Object Files
//
// CreateBinary identifies archives, ELF, Mach-O (thin and universal),
// COFF objects and import libraries, PE images, Windows resource files, LLVM
// bitcode and WebAssembly by their magic numbers. WebAssembly modules are
// compiled by a wazero runtime owned by the context, so malformed modules
// fail with the wazero diagnostic.
//
// # IR
//
// ParseIRInContext reads textual IR far enough to check top-level structure
// and the source_filename directive. It performs no semantic checks.
package hostlib
