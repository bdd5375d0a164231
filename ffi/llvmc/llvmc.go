//go:build llvm && cgo

package llvmc

/*
#cgo LDFLAGS: -lLLVM
#include <stdlib.h>
#include <llvm-c/Core.h>
#include <llvm-c/IRReader.h>
#include <llvm-c/Object.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/go-llvm/ffi"
)

// Available reports whether the binding was compiled in.
const Available = true

type library struct{}

var _ ffi.Library = library{}

// New returns the libLLVM binding.
func New() (ffi.Library, error) {
	return library{}, nil
}

func cstr(p *byte) *C.char { return (*C.char)(unsafe.Pointer(p)) }

func status(b C.LLVMBool) ffi.Bool {
	if b != 0 {
		return ffi.True
	}
	return ffi.False
}

func (library) ContextCreate() ffi.Context {
	return ffi.Context(unsafe.Pointer(C.LLVMContextCreate()))
}

func (library) ContextDispose(c ffi.Context) {
	C.LLVMContextDispose(C.LLVMContextRef(unsafe.Pointer(c)))
}

func (library) CreateMemoryBufferWithContentsOfFile(path *byte, out *ffi.MemoryBuffer, msg *ffi.Message) ffi.Bool {
	var buf C.LLVMMemoryBufferRef
	var cmsg *C.char
	r := C.LLVMCreateMemoryBufferWithContentsOfFile(cstr(path), &buf, &cmsg)
	*out = ffi.MemoryBuffer(unsafe.Pointer(buf))
	*msg = ffi.Message(unsafe.Pointer(cmsg))
	return status(r)
}

func (library) CreateMemoryBufferWithMemoryRangeCopy(data *byte, length uint64, name *byte) ffi.MemoryBuffer {
	b := C.LLVMCreateMemoryBufferWithMemoryRangeCopy(cstr(data), C.size_t(length), cstr(name))
	return ffi.MemoryBuffer(unsafe.Pointer(b))
}

func (library) GetBufferStart(b ffi.MemoryBuffer) *byte {
	return (*byte)(unsafe.Pointer(C.LLVMGetBufferStart(C.LLVMMemoryBufferRef(unsafe.Pointer(b)))))
}

func (library) GetBufferSize(b ffi.MemoryBuffer) uint64 {
	return uint64(C.LLVMGetBufferSize(C.LLVMMemoryBufferRef(unsafe.Pointer(b))))
}

func (library) DisposeMemoryBuffer(b ffi.MemoryBuffer) {
	C.LLVMDisposeMemoryBuffer(C.LLVMMemoryBufferRef(unsafe.Pointer(b)))
}

func (library) CreateBinary(buf ffi.MemoryBuffer, c ffi.Context, msg *ffi.Message) ffi.Binary {
	var cmsg *C.char
	b := C.LLVMCreateBinary(
		C.LLVMMemoryBufferRef(unsafe.Pointer(buf)),
		C.LLVMContextRef(unsafe.Pointer(c)),
		&cmsg,
	)
	*msg = ffi.Message(unsafe.Pointer(cmsg))
	return ffi.Binary(unsafe.Pointer(b))
}

func (library) BinaryGetType(b ffi.Binary) ffi.BinaryTag {
	return ffi.BinaryTag(C.LLVMBinaryGetType(C.LLVMBinaryRef(unsafe.Pointer(b))))
}

func (library) BinaryCopyMemoryBuffer(b ffi.Binary) ffi.MemoryBuffer {
	return ffi.MemoryBuffer(unsafe.Pointer(C.LLVMBinaryCopyMemoryBuffer(C.LLVMBinaryRef(unsafe.Pointer(b)))))
}

func (library) DisposeBinary(b ffi.Binary) {
	C.LLVMDisposeBinary(C.LLVMBinaryRef(unsafe.Pointer(b)))
}

func (library) ModuleCreateWithNameInContext(name *byte, c ffi.Context) ffi.Module {
	m := C.LLVMModuleCreateWithNameInContext(cstr(name), C.LLVMContextRef(unsafe.Pointer(c)))
	return ffi.Module(unsafe.Pointer(m))
}

func (library) ParseIRInContext(c ffi.Context, buf ffi.MemoryBuffer, out *ffi.Module, msg *ffi.Message) ffi.Bool {
	var m C.LLVMModuleRef
	var cmsg *C.char
	r := C.LLVMParseIRInContext(
		C.LLVMContextRef(unsafe.Pointer(c)),
		C.LLVMMemoryBufferRef(unsafe.Pointer(buf)),
		&m,
		&cmsg,
	)
	*out = ffi.Module(unsafe.Pointer(m))
	*msg = ffi.Message(unsafe.Pointer(cmsg))
	return status(r)
}

func (library) CloneModule(m ffi.Module) ffi.Module {
	return ffi.Module(unsafe.Pointer(C.LLVMCloneModule(C.LLVMModuleRef(unsafe.Pointer(m)))))
}

func (library) GetModuleIdentifier(m ffi.Module, length *uint64) *byte {
	var n C.size_t
	p := C.LLVMGetModuleIdentifier(C.LLVMModuleRef(unsafe.Pointer(m)), &n)
	if length != nil {
		*length = uint64(n)
	}
	return (*byte)(unsafe.Pointer(p))
}

func (library) SetModuleIdentifier(m ffi.Module, ident *byte, length uint64) {
	C.LLVMSetModuleIdentifier(C.LLVMModuleRef(unsafe.Pointer(m)), cstr(ident), C.size_t(length))
}

func (library) PrintModuleToString(m ffi.Module) ffi.Message {
	return ffi.Message(unsafe.Pointer(C.LLVMPrintModuleToString(C.LLVMModuleRef(unsafe.Pointer(m)))))
}

func (library) GetModuleContext(m ffi.Module) ffi.Context {
	return ffi.Context(unsafe.Pointer(C.LLVMGetModuleContext(C.LLVMModuleRef(unsafe.Pointer(m)))))
}

func (library) DisposeModule(m ffi.Module) {
	C.LLVMDisposeModule(C.LLVMModuleRef(unsafe.Pointer(m)))
}

func (library) DisposeMessage(m ffi.Message) {
	C.LLVMDisposeMessage((*C.char)(unsafe.Pointer(m)))
}
