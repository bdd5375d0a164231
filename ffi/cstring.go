package ffi

import (
	"runtime"
	"strings"
	"unsafe"

	"github.com/wippyai/go-llvm/errors"
)

// CString is a NUL-terminated copy of a Go string, suitable for passing to
// foreign entry points that take const char *.
type CString struct {
	buf []byte
}

// NewCString copies s into NUL-terminated storage. Strings with an interior
// NUL cannot be represented and are rejected.
func NewCString(s string) (CString, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return CString{}, errors.New(errors.PhaseMarshal, errors.KindInvalidInput).
			Subject(s).
			Value(i).
			Detail("string contains NUL byte at offset %d", i).
			Build()
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return CString{buf: buf}, nil
}

// Ptr returns the first byte of the string, or nil for the zero CString.
func (c CString) Ptr() *byte {
	if c.buf == nil {
		return nil
	}
	return &c.buf[0]
}

// Len returns the length without the terminator.
func (c CString) Len() int {
	if c.buf == nil {
		return 0
	}
	return len(c.buf) - 1
}

// KeepAlive keeps the storage reachable until this point.
func (c CString) KeepAlive() {
	runtime.KeepAlive(c.buf)
}

// WithCString marshals s and runs fn with the NUL-terminated pointer. The
// pointer is only valid inside fn.
func WithCString(s string, fn func(p *byte)) error {
	c, err := NewCString(s)
	if err != nil {
		return err
	}
	fn(c.Ptr())
	c.KeepAlive()
	return nil
}

// View returns a read-only string over length bytes at p without copying.
// The length is authoritative; no terminator is assumed or required.
func View(p *byte, length uint64) string {
	if p == nil || length == 0 {
		return ""
	}
	return unsafe.String(p, int(length))
}

// StringView returns a read-only string over the NUL-terminated sequence at p
// without copying.
func StringView(p *byte) string {
	if p == nil {
		return ""
	}
	return unsafe.String(p, strlen(p))
}

// GoString copies the NUL-terminated sequence at p.
func GoString(p *byte) string {
	return strings.Clone(StringView(p))
}

func strlen(p *byte) int {
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}
