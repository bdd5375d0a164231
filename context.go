package llvm

import (
	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

// Context owns an LLVM context. Modules and binaries created in it are
// released when it is closed.
type Context struct {
	lib ffi.Library
	box *handle.Box[ffi.Context]
}

// NewContext creates a context in lib.
func NewContext(lib ffi.Library) *Context {
	if lib == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "ffi.Library"))
	}
	c := mustResult("LLVMContextCreate", lib.ContextCreate())
	return &Context{
		lib: lib,
		box: handle.New(c, disposer("LLVMContextDispose", lib.ContextDispose)),
	}
}

// WithContext runs fn with a new context and closes it when fn returns.
func WithContext(lib ffi.Library, fn func(ctx *Context) error) error {
	ctx := NewContext(lib)
	defer ctx.Close()
	return fn(ctx)
}

// Library returns the foreign library the context belongs to.
func (c *Context) Library() ffi.Library {
	return c.lib
}

// Borrow returns a reference valid until the context is closed.
func (c *Context) Borrow() ContextRef {
	return ContextRef{ref: c.box.Borrow()}
}

// Valid reports whether the context is open.
func (c *Context) Valid() bool {
	return c != nil && c.box.Valid()
}

// Live returns the number of open modules and binaries in the context.
func (c *Context) Live() int {
	if !c.Valid() {
		return 0
	}
	return c.box.Scope().Len()
}

// Close releases every module and binary of the context, newest first, then
// the context itself. Closing twice does nothing.
func (c *Context) Close() {
	if c == nil {
		return
	}
	c.box.Dispose()
}

// scope returns the children scope, panicking if the context is closed.
func (c *Context) scope() *handle.Scope {
	if c == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "*llvm.Context"))
	}
	return c.box.Scope()
}

// ContextRef is a borrowed context.
type ContextRef struct {
	ref handle.Ref[ffi.Context]
}

func (r ContextRef) Native() ffi.Context { return r.ref.Native() }
func (r ContextRef) Valid() bool         { return r.ref.Valid() }
