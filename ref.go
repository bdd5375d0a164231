package llvm

import "github.com/wippyai/go-llvm/ffi"

// NativeRef is a borrowed reference that converts back to the raw handle for
// a foreign call. Native panics once the owner has been released.
type NativeRef[P comparable] interface {
	Native() P
	Valid() bool
}

var (
	_ NativeRef[ffi.Context]      = ContextRef{}
	_ NativeRef[ffi.MemoryBuffer] = BufferRef{}
	_ NativeRef[ffi.Binary]       = BinaryRef{}
	_ NativeRef[ffi.Module]       = ModuleRef{}
)
