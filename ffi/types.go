package ffi

import "unsafe"

// Opaque foreign handle types. The zero value is the null handle.
type (
	Context      unsafe.Pointer
	MemoryBuffer unsafe.Pointer
	Binary       unsafe.Pointer
	Module       unsafe.Pointer
	Message      unsafe.Pointer
)

// Bool is the foreign boolean. Entry points that report status return True
// on failure.
type Bool int32

const (
	False Bool = 0
	True  Bool = 1
)

// BinaryTag is the foreign object format enumeration (LLVMBinaryType).
type BinaryTag int32

const (
	BinaryTypeArchive BinaryTag = iota
	BinaryTypeMachOUniversalBinary
	BinaryTypeCOFFImportFile
	BinaryTypeIR
	BinaryTypeWinRes
	BinaryTypeCOFF
	BinaryTypeELF32L
	BinaryTypeELF32B
	BinaryTypeELF64L
	BinaryTypeELF64B
	BinaryTypeMachO32L
	BinaryTypeMachO32B
	BinaryTypeMachO64L
	BinaryTypeMachO64B
	BinaryTypeWasm
	// BinaryTypeOffload was added in newer LLVM releases. The safe layer does
	// not map it.
	BinaryTypeOffload
)
