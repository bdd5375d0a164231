package handle

import "github.com/wippyai/go-llvm/errors"

// SemiBox owns a foreign handle whose validity is additionally bound to a
// parent scope. It releases its own handle, but never after the parent: if
// the parent closes first, the child is released as part of the close.
type SemiBox[P comparable] struct {
	_ noCopy
	s *slot[P]
}

// NewSemi takes ownership of ptr and registers it in parent. Creating a child
// in a closed scope is a contract violation.
func NewSemi[P comparable](parent *Scope, ptr P, d Disposer[P]) *SemiBox[P] {
	if parent == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "scope for "+typeName[P]()))
	}
	if !parent.Alive() {
		panic(errors.ScopeClosed(typeName[P]()))
	}
	mustHandle(ptr)
	if d == nil {
		panic(errors.NilHandle(errors.PhaseAcquire, "disposer for "+typeName[P]()))
	}
	s := &slot[P]{
		ptr:     ptr,
		dispose: d,
		cell:    &cell{parent: parent.owner},
		owner:   parent,
	}
	parent.adopt(s)
	return &SemiBox[P]{s: s}
}

// Valid reports whether the handle and its parent are still live.
func (b *SemiBox[P]) Valid() bool {
	return b != nil && b.s != nil && b.s.cell.alive()
}

// Parent returns the scope the handle is bound to.
func (b *SemiBox[P]) Parent() *Scope {
	if b == nil || b.s == nil {
		panic(errors.Moved(typeName[P]()))
	}
	return b.s.owner
}

// Borrow returns a reference valid until the handle or its parent is released.
func (b *SemiBox[P]) Borrow() Ref[P] {
	mustLive(b.slot())
	return Ref[P]{ptr: b.s.ptr, cell: b.s.cell}
}

// Native returns the raw handle for a foreign call.
func (b *SemiBox[P]) Native() P {
	return b.Borrow().Native()
}

// Scope returns the scope of children bound to this handle.
func (b *SemiBox[P]) Scope() *Scope {
	mustLive(b.slot())
	return b.s.childScope()
}

// Take moves ownership into a new container bound to the same parent.
func (b *SemiBox[P]) Take() *SemiBox[P] {
	mustLive(b.slot())
	nb := &SemiBox[P]{s: b.s}
	b.s = nil
	return nb
}

// Relinquish gives up ownership without releasing.
func (b *SemiBox[P]) Relinquish() P {
	mustLive(b.slot())
	s := b.s
	b.s = nil
	return s.relinquish()
}

// Dispose releases the handle. It does nothing on an inert box or when the
// parent scope already released it.
func (b *SemiBox[P]) Dispose() {
	if b == nil || b.s == nil {
		return
	}
	b.s.release()
}

func (b *SemiBox[P]) slot() *slot[P] {
	if b == nil {
		return nil
	}
	return b.s
}
