package handle

import (
	"fmt"

	"github.com/wippyai/go-llvm/errors"
)

// cell records whether a handle is still live. A cell is dead once its own
// handle or any owner up the parent chain has been released.
type cell struct {
	parent *cell
	dead   bool
}

func (c *cell) alive() bool {
	for ; c != nil; c = c.parent {
		if c.dead {
			return false
		}
	}
	return true
}

// slot is the single owner record behind a Box or SemiBox. Moving a
// container moves the slot pointer, so references taken before the move stay
// bound to the same cell.
type slot[P comparable] struct {
	ptr     P
	dispose Disposer[P]
	cell    *cell
	owner   *Scope // scope the slot is registered in, nil for top-level
	scope   *Scope // children of this handle, created lazily
}

func (s *slot[P]) release() {
	if s.cell.dead {
		return
	}
	if s.scope != nil {
		s.scope.close()
	}
	s.cell.dead = true
	s.dispose.Dispose(s.ptr)
	if s.owner != nil {
		s.owner.forget(s)
	}
}

func (s *slot[P]) relinquish() P {
	if s.scope != nil {
		s.scope.close()
	}
	s.cell.dead = true
	if s.owner != nil {
		s.owner.forget(s)
	}
	return s.ptr
}

func (s *slot[P]) childScope() *Scope {
	if s.scope == nil {
		s.scope = &Scope{owner: s.cell}
	}
	return s.scope
}

func typeName[P comparable]() string {
	var zero P
	return fmt.Sprintf("%T", zero)
}

func mustHandle[P comparable](ptr P) {
	var zero P
	if ptr == zero {
		panic(errors.NilHandle(errors.PhaseAcquire, typeName[P]()))
	}
}

func mustLive[P comparable](s *slot[P]) {
	if s == nil {
		panic(errors.Moved(typeName[P]()))
	}
	if !s.cell.alive() {
		panic(errors.UseAfterDispose(typeName[P]()))
	}
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
