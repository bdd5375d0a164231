package ffi

// Library is the foreign entry point surface. Method names follow the LLVM-C
// functions without the LLVM prefix.
//
// Handles returned by constructors are owned by the caller and must be
// released exactly once with the matching Dispose function. Accessors such as
// GetBufferStart and GetModuleIdentifier return memory owned by the handle.
type Library interface {
	ContextCreate() Context
	ContextDispose(c Context)

	// CreateMemoryBufferWithContentsOfFile reads path into a new buffer. On
	// failure it returns True and stores a message that must be released with
	// DisposeMessage.
	CreateMemoryBufferWithContentsOfFile(path *byte, out *MemoryBuffer, msg *Message) Bool
	// CreateMemoryBufferWithMemoryRangeCopy copies length bytes at data. name
	// may be nil.
	CreateMemoryBufferWithMemoryRangeCopy(data *byte, length uint64, name *byte) MemoryBuffer
	GetBufferStart(b MemoryBuffer) *byte
	GetBufferSize(b MemoryBuffer) uint64
	DisposeMemoryBuffer(b MemoryBuffer)

	// CreateBinary parses buf as an object file. The binary refers to the
	// buffer memory, which must outlive it. On failure it returns nil and
	// stores a message.
	CreateBinary(buf MemoryBuffer, c Context, msg *Message) Binary
	BinaryGetType(b Binary) BinaryTag
	BinaryCopyMemoryBuffer(b Binary) MemoryBuffer
	DisposeBinary(b Binary)

	ModuleCreateWithNameInContext(name *byte, c Context) Module
	// ParseIRInContext takes ownership of buf whether or not parsing succeeds.
	ParseIRInContext(c Context, buf MemoryBuffer, out *Module, msg *Message) Bool
	CloneModule(m Module) Module
	GetModuleIdentifier(m Module, length *uint64) *byte
	SetModuleIdentifier(m Module, ident *byte, length uint64)
	// PrintModuleToString returns a message that must be released with
	// DisposeMessage.
	PrintModuleToString(m Module) Message
	GetModuleContext(m Module) Context
	DisposeModule(m Module)

	DisposeMessage(m Message)
}
