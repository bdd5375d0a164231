package handle

import "github.com/wippyai/go-llvm/errors"

// Box owns exactly one foreign handle and releases it exactly once.
type Box[P comparable] struct {
	_ noCopy
	s *slot[P]
}

// New takes ownership of ptr. A zero handle or nil disposer is a contract
// violation.
func New[P comparable](ptr P, d Disposer[P]) *Box[P] {
	mustHandle(ptr)
	if d == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "disposer for "+typeName[P]()))
	}
	return &Box[P]{s: &slot[P]{ptr: ptr, dispose: d, cell: &cell{}}}
}

// Valid reports whether the box still owns a live handle.
func (b *Box[P]) Valid() bool {
	return b != nil && b.s != nil && b.s.cell.alive()
}

// Borrow returns a reference valid until the handle is released.
func (b *Box[P]) Borrow() Ref[P] {
	mustLive(b.slot())
	return Ref[P]{ptr: b.s.ptr, cell: b.s.cell}
}

// Native returns the raw handle for a foreign call.
func (b *Box[P]) Native() P {
	return b.Borrow().Native()
}

// Scope returns the scope of children bound to this handle.
func (b *Box[P]) Scope() *Scope {
	mustLive(b.slot())
	return b.s.childScope()
}

// Take moves ownership into a new box. The receiver becomes inert.
func (b *Box[P]) Take() *Box[P] {
	mustLive(b.slot())
	nb := &Box[P]{s: b.s}
	b.s = nil
	return nb
}

// Relinquish gives up ownership without releasing, for foreign calls that
// take the handle over. References to the handle die with it.
func (b *Box[P]) Relinquish() P {
	mustLive(b.slot())
	s := b.s
	b.s = nil
	return s.relinquish()
}

// Dispose releases the handle. Disposing an inert or already released box
// does nothing.
func (b *Box[P]) Dispose() {
	if b == nil || b.s == nil {
		return
	}
	b.s.release()
}

func (b *Box[P]) slot() *slot[P] {
	if b == nil {
		return nil
	}
	return b.s
}
