package hostlib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/go-llvm/ffi"
)

// Library implements ffi.Library in Go memory.
type Library struct {
	reg           *registry
	readFile      func(name string) ([]byte, error)
	runtimeConfig wazero.RuntimeConfig
	logger        *zap.Logger
}

var _ ffi.Library = (*Library)(nil)

type hostContext struct {
	rt   wazero.Runtime
	deps int
}

func (c *hostContext) runtime(cfg wazero.RuntimeConfig) wazero.Runtime {
	if c.rt == nil {
		c.rt = wazero.NewRuntimeWithConfig(context.Background(), cfg)
	}
	return c.rt
}

type buffer struct {
	name    string
	data    []byte // payload followed by a NUL
	readers int
}

func (b *buffer) bytes() []byte {
	return b.data[:len(b.data)-1]
}

type hostBinary struct {
	ctx      *hostContext
	buf      *buffer
	compiled wazero.CompiledModule
	tag      ffi.BinaryTag
}

type module struct {
	ctx        *hostContext
	ident      []byte // NUL-terminated
	sourceFile string
	body       []string
}

func (m *module) setIdentifier(s string) {
	m.ident = append([]byte(s), 0)
}

func (m *module) identifier() string {
	return string(m.ident[:len(m.ident)-1])
}

// New creates an empty library.
func New(opts ...Option) *Library {
	l := &Library{reg: newRegistry()}
	defaults(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Live returns the number of handles not yet released.
func (l *Library) Live() int {
	return l.reg.len()
}

// LiveOf returns the number of live handles of one kind.
func (l *Library) LiveOf(kind Kind) int {
	return l.reg.lenOf(kind)
}

// Created returns how many handles of kind were ever created.
func (l *Library) Created(kind Kind) int {
	created, _ := l.reg.counts(kind)
	return created
}

// Disposed returns how many handles of kind were released.
func (l *Library) Disposed(kind Kind) int {
	_, disposed := l.reg.counts(kind)
	return disposed
}

// Each calls fn for every live handle until fn returns false. fn must not
// call back into the library.
func (l *Library) Each(fn func(p unsafe.Pointer, kind Kind) bool) {
	l.reg.each(fn)
}

func (l *Library) fault(op, reason string, kind Kind, p unsafe.Pointer) {
	l.logger.Error("native fault",
		zap.String("op", op),
		zap.String("reason", reason),
		zap.Stringer("kind", kind),
		zap.Uintptr("handle", uintptr(p)),
	)
	panic(&Fault{Ptr: p, Op: op, Reason: reason, Kind: kind})
}

func (l *Library) reason(p unsafe.Pointer) string {
	if p == nil {
		return "null"
	}
	if k, ok := l.reg.kindOf(p); ok {
		return "mismatched (" + k.String() + ")"
	}
	return "invalid or released"
}

func (l *Library) lookup(op string, p unsafe.Pointer, kind Kind) any {
	v := l.reg.get(p, kind)
	if v == nil {
		l.fault(op, l.reason(p), kind, p)
	}
	return v
}

func (l *Library) release(op string, p unsafe.Pointer, kind Kind) any {
	v := l.reg.drop(p, kind)
	if v == nil {
		l.fault(op, l.reason(p), kind, p)
	}
	return v
}

func (l *Library) newMessage(text string) ffi.Message {
	b := make([]byte, len(text)+1)
	copy(b, text)
	p := unsafe.Pointer(&b[0])
	l.reg.add(p, KindMessage, b)
	return ffi.Message(p)
}

func (l *Library) newBuffer(name string, src []byte) ffi.MemoryBuffer {
	data := make([]byte, len(src)+1)
	copy(data, src)
	b := &buffer{name: name, data: data}
	l.reg.add(unsafe.Pointer(b), KindBuffer, b)
	return ffi.MemoryBuffer(unsafe.Pointer(b))
}

func (l *Library) newModule(c *hostContext, ident, sourceFile string, body []string) ffi.Module {
	m := &module{ctx: c, sourceFile: sourceFile, body: body}
	m.setIdentifier(ident)
	c.deps++
	l.reg.add(unsafe.Pointer(m), KindModule, m)
	return ffi.Module(unsafe.Pointer(m))
}

// describe renders a load failure the way libLLVM reports errno values.
func describe(err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return "No such file or directory"
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	s := err.Error()
	if s == "" {
		return "Unknown error"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (l *Library) ContextCreate() ffi.Context {
	c := &hostContext{}
	l.reg.add(unsafe.Pointer(c), KindContext, c)
	return ffi.Context(unsafe.Pointer(c))
}

func (l *Library) ContextDispose(c ffi.Context) {
	const op = "LLVMContextDispose"
	p := unsafe.Pointer(c)
	hc := l.lookup(op, p, KindContext).(*hostContext)
	if hc.deps > 0 {
		l.fault(op, fmt.Sprintf("%d live dependents on", hc.deps), KindContext, p)
	}
	l.reg.drop(p, KindContext)
	if hc.rt != nil {
		_ = hc.rt.Close(context.Background())
	}
}

func (l *Library) CreateMemoryBufferWithContentsOfFile(path *byte, out *ffi.MemoryBuffer, msg *ffi.Message) ffi.Bool {
	if path == nil || out == nil || msg == nil {
		l.fault("LLVMCreateMemoryBufferWithContentsOfFile", "null argument for", KindBuffer, nil)
	}
	name := ffi.GoString(path)
	data, err := l.readFile(name)
	if err != nil {
		*msg = l.newMessage(describe(err))
		return ffi.True
	}
	*out = l.newBuffer(name, data)
	return ffi.False
}

func (l *Library) CreateMemoryBufferWithMemoryRangeCopy(data *byte, length uint64, name *byte) ffi.MemoryBuffer {
	var src []byte
	if length > 0 {
		if data == nil {
			l.fault("LLVMCreateMemoryBufferWithMemoryRangeCopy", "null data for", KindBuffer, nil)
		}
		src = unsafe.Slice(data, length)
	}
	return l.newBuffer(ffi.GoString(name), src)
}

func (l *Library) GetBufferStart(b ffi.MemoryBuffer) *byte {
	buf := l.lookup("LLVMGetBufferStart", unsafe.Pointer(b), KindBuffer).(*buffer)
	return &buf.data[0]
}

func (l *Library) GetBufferSize(b ffi.MemoryBuffer) uint64 {
	buf := l.lookup("LLVMGetBufferSize", unsafe.Pointer(b), KindBuffer).(*buffer)
	return uint64(len(buf.data) - 1)
}

func (l *Library) DisposeMemoryBuffer(b ffi.MemoryBuffer) {
	const op = "LLVMDisposeMemoryBuffer"
	p := unsafe.Pointer(b)
	buf := l.lookup(op, p, KindBuffer).(*buffer)
	if buf.readers > 0 {
		l.fault(op, fmt.Sprintf("%d binaries still reading", buf.readers), KindBuffer, p)
	}
	l.reg.drop(p, KindBuffer)
}

func (l *Library) CreateBinary(b ffi.MemoryBuffer, c ffi.Context, msg *ffi.Message) ffi.Binary {
	const op = "LLVMCreateBinary"
	buf := l.lookup(op, unsafe.Pointer(b), KindBuffer).(*buffer)
	var hc *hostContext
	if c != nil {
		hc = l.lookup(op, unsafe.Pointer(c), KindContext).(*hostContext)
	}

	tag, err := identify(buf.bytes())
	if err != nil {
		*msg = l.newMessage(err.Error())
		return nil
	}

	bin := &hostBinary{ctx: hc, buf: buf, tag: tag}
	if tag == ffi.BinaryTypeWasm {
		compiled, err := l.compileWasm(hc, buf.bytes())
		if err != nil {
			*msg = l.newMessage(err.Error())
			return nil
		}
		bin.compiled = compiled
	}

	buf.readers++
	if hc != nil {
		hc.deps++
	}
	l.reg.add(unsafe.Pointer(bin), KindBinary, bin)
	return ffi.Binary(unsafe.Pointer(bin))
}

func (l *Library) BinaryGetType(b ffi.Binary) ffi.BinaryTag {
	return l.lookup("LLVMBinaryGetType", unsafe.Pointer(b), KindBinary).(*hostBinary).tag
}

func (l *Library) BinaryCopyMemoryBuffer(b ffi.Binary) ffi.MemoryBuffer {
	bin := l.lookup("LLVMBinaryCopyMemoryBuffer", unsafe.Pointer(b), KindBinary).(*hostBinary)
	return l.newBuffer(bin.buf.name, bin.buf.bytes())
}

func (l *Library) DisposeBinary(b ffi.Binary) {
	bin := l.release("LLVMDisposeBinary", unsafe.Pointer(b), KindBinary).(*hostBinary)
	bin.buf.readers--
	if bin.ctx != nil {
		bin.ctx.deps--
	}
	if bin.compiled != nil {
		_ = bin.compiled.Close(context.Background())
	}
}

func (l *Library) ModuleCreateWithNameInContext(name *byte, c ffi.Context) ffi.Module {
	hc := l.lookup("LLVMModuleCreateWithNameInContext", unsafe.Pointer(c), KindContext).(*hostContext)
	ident := ffi.GoString(name)
	return l.newModule(hc, ident, ident, nil)
}

func (l *Library) ParseIRInContext(c ffi.Context, b ffi.MemoryBuffer, out *ffi.Module, msg *ffi.Message) ffi.Bool {
	const op = "LLVMParseIRInContext"
	hc := l.lookup(op, unsafe.Pointer(c), KindContext).(*hostContext)
	p := unsafe.Pointer(b)
	buf := l.lookup(op, p, KindBuffer).(*buffer)
	if buf.readers > 0 {
		l.fault(op, fmt.Sprintf("%d binaries still reading", buf.readers), KindBuffer, p)
	}
	l.reg.drop(p, KindBuffer)

	parsed, err := parseIR(buf.name, buf.bytes())
	if err != nil {
		*msg = l.newMessage(err.Error())
		return ffi.True
	}
	*out = l.newModule(hc, buf.name, parsed.sourceFile, parsed.body)
	return ffi.False
}

func (l *Library) CloneModule(m ffi.Module) ffi.Module {
	mod := l.lookup("LLVMCloneModule", unsafe.Pointer(m), KindModule).(*module)
	return l.newModule(mod.ctx, mod.identifier(), mod.sourceFile, slices.Clone(mod.body))
}

func (l *Library) GetModuleIdentifier(m ffi.Module, length *uint64) *byte {
	mod := l.lookup("LLVMGetModuleIdentifier", unsafe.Pointer(m), KindModule).(*module)
	if length != nil {
		*length = uint64(len(mod.ident) - 1)
	}
	return &mod.ident[0]
}

func (l *Library) SetModuleIdentifier(m ffi.Module, ident *byte, length uint64) {
	mod := l.lookup("LLVMSetModuleIdentifier", unsafe.Pointer(m), KindModule).(*module)
	mod.setIdentifier(ffi.View(ident, length))
}

func (l *Library) PrintModuleToString(m ffi.Module) ffi.Message {
	mod := l.lookup("LLVMPrintModuleToString", unsafe.Pointer(m), KindModule).(*module)
	return l.newMessage(mod.print())
}

func (l *Library) GetModuleContext(m ffi.Module) ffi.Context {
	mod := l.lookup("LLVMGetModuleContext", unsafe.Pointer(m), KindModule).(*module)
	return ffi.Context(unsafe.Pointer(mod.ctx))
}

func (l *Library) DisposeModule(m ffi.Module) {
	mod := l.release("LLVMDisposeModule", unsafe.Pointer(m), KindModule).(*module)
	mod.ctx.deps--
}

func (l *Library) DisposeMessage(m ffi.Message) {
	l.release("LLVMDisposeMessage", unsafe.Pointer(m), KindMessage)
}
