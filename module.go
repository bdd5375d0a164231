package llvm

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

// Module is an LLVM module owned by a context.
type Module struct {
	ctx *Context
	box *handle.SemiBox[ffi.Module]
}

func (c *Context) adoptModule(scope *handle.Scope, m ffi.Module) *Module {
	return &Module{
		ctx: c,
		box: handle.NewSemi(scope, m, disposer("LLVMDisposeModule", c.lib.DisposeModule)),
	}
}

// NewModule creates an empty module named name.
func (c *Context) NewModule(name string) (*Module, error) {
	const op = "LLVMModuleCreateWithNameInContext"

	scope := c.scope()
	cname, err := ffi.NewCString(name)
	if err != nil {
		return nil, err
	}
	m := mustResult(op, c.lib.ModuleCreateWithNameInContext(cname.Ptr(), c.box.Native()))
	cname.KeepAlive()
	return c.adoptModule(scope, m), nil
}

// ParseIR parses buf as LLVM IR. The buffer is consumed whether or not
// parsing succeeds and is invalid afterwards.
func (c *Context) ParseIR(buf *MemoryBuffer) (*Module, error) {
	const op = "LLVMParseIRInContext"

	scope := c.scope()
	if buf == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "*llvm.MemoryBuffer"))
	}
	name := buf.name
	native := buf.box.Relinquish()

	var out ffi.Module
	var msg ffi.Message
	if c.lib.ParseIRInContext(c.box.Native(), native, &out, &msg) != ffi.False {
		return nil, foreignError(c.lib, errors.PhaseParse, op, name, msg)
	}
	return c.adoptModule(scope, mustResult(op, out)), nil
}

// Context returns the owning context.
func (m *Module) Context() *Context {
	return m.ctx
}

// Borrow returns a reference valid until the module or its context is
// released.
func (m *Module) Borrow() ModuleRef {
	return ModuleRef{lib: m.ctx.lib, ref: m.box.Borrow()}
}

// Clone copies the module into a new module of the same context.
func (m *Module) Clone() *Module {
	scope := m.box.Parent()
	cl := mustResult("LLVMCloneModule", m.ctx.lib.CloneModule(m.box.Native()))
	return m.ctx.adoptModule(scope, cl)
}

// Identifier returns the module identifier.
func (m *Module) Identifier() string { return m.Borrow().Identifier() }

// String returns the module as textual IR.
func (m *Module) String() string { return m.Borrow().String() }

// Valid reports whether the module is still open.
func (m *Module) Valid() bool {
	return m != nil && m.box.Valid()
}

// Take moves the module into a new wrapper. m becomes inert.
func (m *Module) Take() *Module {
	return &Module{ctx: m.ctx, box: m.box.Take()}
}

// Close releases the module. Closing an inert or closed module does nothing.
func (m *Module) Close() {
	if m == nil {
		return
	}
	m.box.Dispose()
}

// ModuleRef is a borrowed module.
type ModuleRef struct {
	lib ffi.Library
	ref handle.Ref[ffi.Module]
}

func (r ModuleRef) Native() ffi.Module { return r.ref.Native() }
func (r ModuleRef) Valid() bool        { return r.ref.Valid() }

// Identifier returns a copy of the module identifier.
func (r ModuleRef) Identifier() string {
	var n uint64
	p := r.lib.GetModuleIdentifier(r.ref.Native(), &n)
	return strings.Clone(ffi.View(p, n))
}

// SetIdentifier replaces the module identifier. The identifier is passed with
// its length and may contain NUL bytes.
func (r ModuleRef) SetIdentifier(id string) {
	r.lib.SetModuleIdentifier(r.ref.Native(), unsafe.StringData(id), uint64(len(id)))
	runtime.KeepAlive(id)
}

// Print renders the module as textual IR. The caller owns the message.
func (r ModuleRef) Print() *Message {
	const op = "LLVMPrintModuleToString"
	return newMessage(r.lib, mustResult(op, r.lib.PrintModuleToString(r.ref.Native())))
}

// String returns a copy of the printed module.
func (r ModuleRef) String() string {
	msg := r.Print()
	defer msg.Close()
	return msg.String()
}

// Context returns the module's context as a reference that is valid only
// while the module is.
func (r ModuleRef) Context() ContextRef {
	c := mustResult("LLVMGetModuleContext", r.lib.GetModuleContext(r.ref.Native()))
	return ContextRef{ref: handle.Derive(r.ref, c)}
}
