package handle

import "github.com/wippyai/go-llvm/errors"

// Ref is a borrowed reference to a foreign handle. It is freely copyable and
// never releases anything. The zero Ref refers to nothing.
type Ref[P comparable] struct {
	ptr  P
	cell *cell
}

// Native converts the reference back to the raw handle. Calling it after the
// owner or one of its parents was released is a contract violation.
func (r Ref[P]) Native() P {
	if r.cell == nil {
		panic(errors.NilHandle(errors.PhaseBorrow, typeName[P]()))
	}
	if !r.cell.alive() {
		panic(errors.UseAfterDispose(typeName[P]()))
	}
	return r.ptr
}

// Valid reports whether Native would succeed.
func (r Ref[P]) Valid() bool {
	return r.cell != nil && r.cell.alive()
}

// Derive converts a handle the foreign library returned by borrowing from
// parent (for example the context of a module) into a reference that lives
// no longer than parent. ptr must not be zero.
func Derive[P, Q comparable](parent Ref[Q], ptr P) Ref[P] {
	parent.Native()
	mustHandle(ptr)
	return Ref[P]{ptr: ptr, cell: parent.cell}
}
