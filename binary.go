package llvm

import (
	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

// Binary is an object file read into a context. It owns the buffer it was
// read from, which stays alive until the binary is released.
type Binary struct {
	ctx  *Context
	box  *handle.SemiBox[ffi.Binary]
	name string
}

// ReadBinary loads the file at path and reads it as an object file.
func ReadBinary(ctx *Context, path string) (*Binary, error) {
	ctx.scope()
	buf, err := NewMemoryBufferFromFile(ctx.lib, path)
	if err != nil {
		return nil, err
	}
	return NewBinary(ctx, buf)
}

// NewBinary reads buf as an object file in ctx. It takes ownership of buf,
// which is released with the binary, or immediately if reading fails.
func NewBinary(ctx *Context, buf *MemoryBuffer) (*Binary, error) {
	const op = "LLVMCreateBinary"

	scope := ctx.scope()
	if buf == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "*llvm.MemoryBuffer"))
	}
	owned := buf.Take()
	lib := ctx.lib

	var msg ffi.Message
	b := lib.CreateBinary(owned.box.Native(), ctx.box.Native(), &msg)
	if b == nil {
		owned.Close()
		return nil, foreignError(lib, errors.PhaseParse, op, owned.name, msg)
	}
	debugHandle("handle acquired", op, b)

	release := disposer("LLVMDisposeBinary", func(b ffi.Binary) {
		lib.DisposeBinary(b)
		owned.Close()
	})
	return &Binary{
		ctx:  ctx,
		box:  handle.NewSemi(scope, b, release),
		name: owned.name,
	}, nil
}

// Context returns the context the binary was read into.
func (b *Binary) Context() *Context {
	return b.ctx
}

// Name returns the name of the source buffer.
func (b *Binary) Name() string {
	return b.name
}

// Borrow returns a reference valid until the binary or its context is
// released.
func (b *Binary) Borrow() BinaryRef {
	return BinaryRef{lib: b.ctx.lib, ref: b.box.Borrow(), name: b.name}
}

// Type returns the object file format.
func (b *Binary) Type() BinaryType {
	return b.Borrow().Type()
}

// Valid reports whether the binary is still open.
func (b *Binary) Valid() bool {
	return b != nil && b.box.Valid()
}

// Take moves the binary into a new wrapper. b becomes inert.
func (b *Binary) Take() *Binary {
	return &Binary{ctx: b.ctx, box: b.box.Take(), name: b.name}
}

// Close releases the binary and its source buffer.
func (b *Binary) Close() {
	if b == nil {
		return
	}
	b.box.Dispose()
}

// BinaryRef is a borrowed binary.
type BinaryRef struct {
	lib  ffi.Library
	ref  handle.Ref[ffi.Binary]
	name string
}

func (r BinaryRef) Native() ffi.Binary { return r.ref.Native() }
func (r BinaryRef) Valid() bool        { return r.ref.Valid() }

// Tag returns the object file format, or an unknown_tag error for a tag
// outside the known set.
func (r BinaryRef) Tag() (BinaryType, error) {
	return BinaryTypeFromTag(r.lib.BinaryGetType(r.ref.Native()))
}

// Type returns the object file format. A tag outside the known set panics
// with an unknown_tag error rather than being mapped to a default.
func (r BinaryRef) Type() BinaryType {
	t, err := r.Tag()
	if err != nil {
		panic(err)
	}
	return t
}

// CopyMemoryBuffer returns a new buffer holding a copy of the binary's
// contents. The caller owns it.
func (r BinaryRef) CopyMemoryBuffer() *MemoryBuffer {
	const op = "LLVMBinaryCopyMemoryBuffer"
	b := mustResult(op, r.lib.BinaryCopyMemoryBuffer(r.ref.Native()))
	return newMemoryBuffer(r.lib, b, r.name)
}
