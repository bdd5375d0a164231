// Package errors provides structured error types for the go-llvm library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// Each Error names the foreign entry point involved (Op), the resource type or
// handle (Handle), and the path or name the call operated on (Subject).
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindForeign).
//		Op("LLVMCreateMemoryBufferWithContentsOfFile").
//		Subject("/tmp/missing.o").
//		Detail("No such file or directory").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Foreign(errors.PhaseParse, "LLVMParseIRInContext", msg)
//	err := errors.InvalidInput(errors.PhaseMarshal, "string contains NUL byte")
//
// # Foreign Diagnostics
//
// A KindForeign error carries a copy of the message the foreign library
// produced; the foreign message itself is released before the error is
// returned, so an Error never needs closing. Callers that want to hold a
// foreign-owned string use llvm.Message, as returned by ModuleRef.Print.
//
// # Contract Violations
//
// A nil handle where the foreign ABI requires one, use of a disposed or moved
// handle, a closed parent scope, or a foreign tag outside the known set are
// programming errors. Those are raised with panic, carrying an *Error as the
// panic value; IsContractViolation recognizes them after recover.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
