package llvm

import (
	"strconv"

	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
)

// BinaryType is the object file format of a Binary.
type BinaryType int

const (
	Archive              BinaryType = iota // static archive
	MachOUniversalBinary                   // fat Mach-O
	COFFImportFile                         // COFF import library member
	IR                                     // LLVM bitcode
	WinRes                                 // Windows resource file
	COFF                                   // COFF object or PE image
	ELF32L
	ELF32B
	ELF64L
	ELF64B
	MachO32L
	MachO32B
	MachO64L
	MachO64B
	Wasm
)

var binaryTypeNames = [...]string{
	Archive:              "Archive",
	MachOUniversalBinary: "MachOUniversalBinary",
	COFFImportFile:       "COFFImportFile",
	IR:                   "IR",
	WinRes:               "WinRes",
	COFF:                 "COFF",
	ELF32L:               "ELF32L",
	ELF32B:               "ELF32B",
	ELF64L:               "ELF64L",
	ELF64B:               "ELF64B",
	MachO32L:             "MachO32L",
	MachO32B:             "MachO32B",
	MachO64L:             "MachO64L",
	MachO64B:             "MachO64B",
	Wasm:                 "Wasm",
}

func (t BinaryType) String() string {
	if t < 0 || int(t) >= len(binaryTypeNames) {
		return "BinaryType(" + strconv.Itoa(int(t)) + ")"
	}
	return binaryTypeNames[t]
}

var tagTypes = map[ffi.BinaryTag]BinaryType{
	ffi.BinaryTypeArchive:              Archive,
	ffi.BinaryTypeMachOUniversalBinary: MachOUniversalBinary,
	ffi.BinaryTypeCOFFImportFile:       COFFImportFile,
	ffi.BinaryTypeIR:                   IR,
	ffi.BinaryTypeWinRes:               WinRes,
	ffi.BinaryTypeCOFF:                 COFF,
	ffi.BinaryTypeELF32L:               ELF32L,
	ffi.BinaryTypeELF32B:               ELF32B,
	ffi.BinaryTypeELF64L:               ELF64L,
	ffi.BinaryTypeELF64B:               ELF64B,
	ffi.BinaryTypeMachO32L:             MachO32L,
	ffi.BinaryTypeMachO32B:             MachO32B,
	ffi.BinaryTypeMachO64L:             MachO64L,
	ffi.BinaryTypeMachO64B:             MachO64B,
	ffi.BinaryTypeWasm:                 Wasm,
}

// BinaryTypeFromTag maps a foreign format tag. Tags outside the known set,
// including formats added by newer LLVM releases, are an unknown_tag error.
func BinaryTypeFromTag(tag ffi.BinaryTag) (BinaryType, error) {
	t, ok := tagTypes[tag]
	if !ok {
		return 0, errors.UnknownTag("binary type", int(tag))
	}
	return t, nil
}
