//go:build !llvm || !cgo

package llvmc

import (
	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
)

// Available reports whether the binding was compiled in.
const Available = false

// New reports that the binary was built without libLLVM.
func New() (ffi.Library, error) {
	return nil, errors.Unavailable("llvm", "built without the llvm tag or without cgo")
}
