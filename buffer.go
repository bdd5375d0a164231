package llvm

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

// MemoryBuffer owns a foreign memory buffer.
type MemoryBuffer struct {
	lib  ffi.Library
	box  *handle.Box[ffi.MemoryBuffer]
	name string
}

func newMemoryBuffer(lib ffi.Library, b ffi.MemoryBuffer, name string) *MemoryBuffer {
	return &MemoryBuffer{
		lib:  lib,
		box:  handle.New(b, disposer("LLVMDisposeMemoryBuffer", lib.DisposeMemoryBuffer)),
		name: name,
	}
}

// NewMemoryBufferFromFile reads the file at path into a new buffer. A file
// that cannot be read yields an error carrying the foreign diagnostic.
func NewMemoryBufferFromFile(lib ffi.Library, path string) (*MemoryBuffer, error) {
	const op = "LLVMCreateMemoryBufferWithContentsOfFile"

	cpath, err := ffi.NewCString(path)
	if err != nil {
		return nil, err
	}

	var out ffi.MemoryBuffer
	var msg ffi.Message
	failed := lib.CreateMemoryBufferWithContentsOfFile(cpath.Ptr(), &out, &msg)
	cpath.KeepAlive()

	if failed != ffi.False {
		return nil, foreignError(lib, errors.PhaseLoad, op, path, msg)
	}
	return newMemoryBuffer(lib, mustResult(op, out), path), nil
}

// NewMemoryBufferFromString copies content into a new buffer. content may
// contain NUL bytes; name may not.
func NewMemoryBufferFromString(lib ffi.Library, content, name string) (*MemoryBuffer, error) {
	b, err := newRangeCopy(lib, unsafe.StringData(content), len(content), name)
	runtime.KeepAlive(content)
	return b, err
}

// NewMemoryBufferFromBytes copies data into a new buffer.
func NewMemoryBufferFromBytes(lib ffi.Library, data []byte, name string) (*MemoryBuffer, error) {
	b, err := newRangeCopy(lib, unsafe.SliceData(data), len(data), name)
	runtime.KeepAlive(data)
	return b, err
}

func newRangeCopy(lib ffi.Library, data *byte, n int, name string) (*MemoryBuffer, error) {
	const op = "LLVMCreateMemoryBufferWithMemoryRangeCopy"

	cname, err := ffi.NewCString(name)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		data = nil
	}
	b := mustResult(op, lib.CreateMemoryBufferWithMemoryRangeCopy(data, uint64(n), cname.Ptr()))
	cname.KeepAlive()
	return newMemoryBuffer(lib, b, name), nil
}

// Name returns the path or name the buffer was created with.
func (b *MemoryBuffer) Name() string {
	return b.name
}

// Borrow returns a reference valid until the buffer is released.
func (b *MemoryBuffer) Borrow() BufferRef {
	return BufferRef{lib: b.lib, ref: b.box.Borrow()}
}

// Valid reports whether b still owns a live buffer.
func (b *MemoryBuffer) Valid() bool {
	return b != nil && b.box.Valid()
}

// Take moves the buffer into a new wrapper. b becomes inert.
func (b *MemoryBuffer) Take() *MemoryBuffer {
	return &MemoryBuffer{lib: b.lib, box: b.box.Take(), name: b.name}
}

// Close releases the buffer. Closing an inert or closed buffer does nothing.
func (b *MemoryBuffer) Close() {
	if b == nil {
		return
	}
	b.box.Dispose()
}

func (b *MemoryBuffer) View() string   { return b.Borrow().View() }
func (b *MemoryBuffer) Bytes() []byte  { return b.Borrow().Bytes() }
func (b *MemoryBuffer) Len() int       { return b.Borrow().Len() }
func (b *MemoryBuffer) String() string { return b.Borrow().String() }

// BufferRef is a borrowed memory buffer. Accessors query the foreign buffer
// on every call.
type BufferRef struct {
	lib ffi.Library
	ref handle.Ref[ffi.MemoryBuffer]
}

func (r BufferRef) Native() ffi.MemoryBuffer { return r.ref.Native() }
func (r BufferRef) Valid() bool              { return r.ref.Valid() }

// View returns the buffer contents without copying. The string must not be
// used after the buffer is released.
func (r BufferRef) View() string {
	b := r.ref.Native()
	return ffi.View(r.lib.GetBufferStart(b), r.lib.GetBufferSize(b))
}

// Bytes returns a copy of the buffer contents.
func (r BufferRef) Bytes() []byte {
	return []byte(r.View())
}

// Len returns the buffer size in bytes.
func (r BufferRef) Len() int {
	return int(r.lib.GetBufferSize(r.ref.Native()))
}

// String returns a copy of the buffer contents.
func (r BufferRef) String() string {
	return strings.Clone(r.View())
}
