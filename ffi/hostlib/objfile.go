package hostlib

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/wippyai/go-llvm/ffi"
)

// diagnostic is a message phrased the way libLLVM phrases it.
type diagnostic string

func (d diagnostic) Error() string { return string(d) }

const errUnrecognized diagnostic = "The file was not recognized as a valid object file"

var (
	archiveMagic     = []byte("!<arch>\n")
	thinArchiveMagic = []byte("!<thin>\n")
	elfMagic         = []byte("\x7fELF")
	wasmMagic        = []byte("\x00asm")
	bitcodeMagic     = []byte("BC\xc0\xde")
	bitcodeWrapper   = []byte("\xde\xc0\x17\x0b")
	winResMagic      = []byte("\x00\x00\x00\x00\x20\x00\x00\x00\xff\xff\x00\x00\xff\xff\x00\x00")
	peSignature      = []byte("PE\x00\x00")
)

// COFF machine types accepted as object files.
var coffMachines = map[uint16]bool{
	0x014c: true, // i386
	0x0200: true, // ia64
	0x01c0: true, // arm
	0x01c4: true, // armnt
	0x8664: true, // amd64
	0xa641: true, // arm64ec
	0xaa64: true, // arm64
}

// identify maps file content to an object format.
func identify(data []byte) (ffi.BinaryTag, error) {
	switch {
	case bytes.HasPrefix(data, archiveMagic), bytes.HasPrefix(data, thinArchiveMagic):
		return ffi.BinaryTypeArchive, nil
	case bytes.HasPrefix(data, elfMagic):
		return identifyELF(data)
	case bytes.HasPrefix(data, wasmMagic):
		return ffi.BinaryTypeWasm, nil
	case bytes.HasPrefix(data, bitcodeMagic), bytes.HasPrefix(data, bitcodeWrapper):
		return ffi.BinaryTypeIR, nil
	case bytes.HasPrefix(data, winResMagic):
		return ffi.BinaryTypeWinRes, nil
	}

	if len(data) >= 4 {
		switch binary.BigEndian.Uint32(data) {
		case 0xfeedface:
			return identifyMachO(data, ffi.BinaryTypeMachO32B, 28)
		case 0xcefaedfe:
			return identifyMachO(data, ffi.BinaryTypeMachO32L, 28)
		case 0xfeedfacf:
			return identifyMachO(data, ffi.BinaryTypeMachO64B, 32)
		case 0xcffaedfe:
			return identifyMachO(data, ffi.BinaryTypeMachO64L, 32)
		case 0xcafebabe:
			// Java class files share this magic; their version word is far
			// larger than any plausible architecture count.
			if len(data) >= 8 && binary.BigEndian.Uint32(data[4:]) < 43 {
				return ffi.BinaryTypeMachOUniversalBinary, nil
			}
			return 0, errUnrecognized
		case 0xcafebabf:
			if len(data) >= 8 {
				return ffi.BinaryTypeMachOUniversalBinary, nil
			}
			return 0, errUnrecognized
		}
	}

	switch {
	case bytes.HasPrefix(data, []byte("MZ")):
		return identifyPE(data)
	case isCOFFImport(data):
		return ffi.BinaryTypeCOFFImportFile, nil
	case isCOFFObject(data):
		return ffi.BinaryTypeCOFF, nil
	}
	return 0, errUnrecognized
}

func identifyELF(data []byte) (ffi.BinaryTag, error) {
	const identSize = 16
	if len(data) < identSize {
		return 0, diagnostic(fmt.Sprintf("invalid buffer: the size (%d) is smaller than an ELF identification (%d)", len(data), identSize))
	}

	var tag ffi.BinaryTag
	var headerSize int
	switch class, order := data[4], data[5]; {
	case class == 1 && order == 1:
		tag, headerSize = ffi.BinaryTypeELF32L, 52
	case class == 1 && order == 2:
		tag, headerSize = ffi.BinaryTypeELF32B, 52
	case class == 2 && order == 1:
		tag, headerSize = ffi.BinaryTypeELF64L, 64
	case class == 2 && order == 2:
		tag, headerSize = ffi.BinaryTypeELF64B, 64
	case class != 1 && class != 2:
		return 0, diagnostic("invalid ELF class")
	default:
		return 0, diagnostic("invalid ELF data encoding")
	}

	if len(data) < headerSize {
		return 0, diagnostic(fmt.Sprintf("invalid buffer: the size (%d) is smaller than an ELF header (%d)", len(data), headerSize))
	}
	return tag, nil
}

func identifyMachO(data []byte, tag ffi.BinaryTag, headerSize int) (ffi.BinaryTag, error) {
	if len(data) < headerSize {
		return 0, diagnostic("truncated or malformed object (mach header extends past the end of the file)")
	}
	return tag, nil
}

func identifyPE(data []byte) (ffi.BinaryTag, error) {
	const lfanewOffset = 0x3c
	if len(data) < lfanewOffset+4 {
		return 0, errUnrecognized
	}
	off := uint64(binary.LittleEndian.Uint32(data[lfanewOffset:]))
	if off+uint64(len(peSignature)) > uint64(len(data)) {
		return 0, errUnrecognized
	}
	if !bytes.Equal(data[off:off+uint64(len(peSignature))], peSignature) {
		return 0, errUnrecognized
	}
	return ffi.BinaryTypeCOFF, nil
}

// isCOFFImport reports a short import library member: Sig1 0, Sig2 0xffff,
// version 0.
func isCOFFImport(data []byte) bool {
	if len(data) < 20 {
		return false
	}
	return binary.LittleEndian.Uint16(data[0:]) == 0 &&
		binary.LittleEndian.Uint16(data[2:]) == 0xffff &&
		binary.LittleEndian.Uint16(data[4:]) == 0
}

func isCOFFObject(data []byte) bool {
	if len(data) < 20 {
		return false
	}
	return coffMachines[binary.LittleEndian.Uint16(data)]
}
