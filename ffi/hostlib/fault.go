package hostlib

import (
	"fmt"
	"unsafe"
)

// Fault is the panic value raised where the native library would abort.
type Fault struct {
	Ptr    unsafe.Pointer
	Op     string
	Reason string
	Kind   Kind
}

func (f *Fault) Error() string {
	return fmt.Sprintf("hostlib: %s: %s %s handle %p", f.Op, f.Reason, f.Kind, f.Ptr)
}
