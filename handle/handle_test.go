package handle

import (
	"errors"
	"testing"

	llvmerrors "github.com/wippyai/go-llvm/errors"
)

type ptr uintptr

// recorder counts disposals per handle and fails the test on a second one.
type recorder struct {
	t     *testing.T
	order []ptr
	count map[ptr]int
}

func newRecorder(t *testing.T) *recorder {
	return &recorder{t: t, count: make(map[ptr]int)}
}

func (r *recorder) Dispose(p ptr) {
	r.count[p]++
	if r.count[p] > 1 {
		r.t.Fatalf("handle %d disposed %d times", p, r.count[p])
	}
	r.order = append(r.order, p)
}

func mustPanic(t *testing.T, kind llvmerrors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		v := recover()
		if v == nil {
			t.Fatalf("expected panic with kind %s", kind)
		}
		err, ok := v.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", v)
		}
		var e *llvmerrors.Error
		if !errors.As(err, &e) {
			t.Fatalf("panic value %T is not *errors.Error", v)
		}
		if e.Kind != kind {
			t.Fatalf("panic kind = %s, want %s", e.Kind, kind)
		}
		if !llvmerrors.IsContractViolation(v) {
			t.Fatalf("panic %v is not classified as a contract violation", v)
		}
	}()
	fn()
}

func TestBox_DisposeOnce(t *testing.T) {
	rec := newRecorder(t)
	b := New[ptr](1, rec)

	if !b.Valid() {
		t.Fatal("new box should be valid")
	}
	if b.Native() != 1 {
		t.Fatalf("Native = %d, want 1", b.Native())
	}

	b.Dispose()
	b.Dispose()

	if rec.count[1] != 1 {
		t.Fatalf("disposed %d times, want 1", rec.count[1])
	}
	if b.Valid() {
		t.Fatal("disposed box should be invalid")
	}
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() { b.Borrow() })
}

func TestBox_NilHandle(t *testing.T) {
	mustPanic(t, llvmerrors.KindNilHandle, func() {
		New[ptr](0, newRecorder(t))
	})
	mustPanic(t, llvmerrors.KindNilHandle, func() {
		New[ptr](1, nil)
	})
}

func TestBox_Take(t *testing.T) {
	rec := newRecorder(t)
	src := New[ptr](7, rec)
	before := src.Borrow()

	dst := src.Take()

	if src.Valid() {
		t.Fatal("moved-from box should be inert")
	}
	mustPanic(t, llvmerrors.KindMoved, func() { src.Borrow() })

	src.Dispose()
	if rec.count[7] != 0 {
		t.Fatal("disposing a moved-from box must not release the handle")
	}

	if !before.Valid() {
		t.Fatal("references survive a move because the handle is still owned")
	}

	dst.Dispose()
	if rec.count[7] != 1 {
		t.Fatalf("disposed %d times, want 1", rec.count[7])
	}
	if before.Valid() {
		t.Fatal("reference should die with the handle")
	}
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() { before.Native() })
}

func TestBox_Relinquish(t *testing.T) {
	rec := newRecorder(t)
	b := New[ptr](3, rec)
	r := b.Borrow()

	if got := b.Relinquish(); got != 3 {
		t.Fatalf("Relinquish = %d, want 3", got)
	}
	b.Dispose()

	if rec.count[3] != 0 {
		t.Fatal("relinquished handle must not be disposed")
	}
	if r.Valid() {
		t.Fatal("references die when ownership leaves")
	}
}

func TestRef_SharedState(t *testing.T) {
	rec := newRecorder(t)
	b := New[ptr](9, rec)
	defer b.Dispose()

	r1 := b.Borrow()
	r2 := b.Borrow()

	if r1 != r2 {
		t.Fatal("borrows of one box should be identical")
	}
	if r1.Native() != r2.Native() {
		t.Fatal("borrows should observe the same handle")
	}
	if len(rec.order) != 0 {
		t.Fatal("borrowing must not dispose")
	}
}

func TestRef_Zero(t *testing.T) {
	var r Ref[ptr]
	if r.Valid() {
		t.Fatal("zero ref should be invalid")
	}
	mustPanic(t, llvmerrors.KindNilHandle, func() { r.Native() })
}

func TestRef_Derive(t *testing.T) {
	rec := newRecorder(t)
	parent := New[ptr](1, rec)

	child := Derive[int](parent.Borrow(), 42)
	if child.Native() != 42 {
		t.Fatalf("Native = %d, want 42", child.Native())
	}

	mustPanic(t, llvmerrors.KindNilHandle, func() {
		Derive[int](parent.Borrow(), 0)
	})

	parent.Dispose()
	if child.Valid() {
		t.Fatal("derived reference should die with its parent")
	}
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() {
		Derive[int](Ref[ptr]{ptr: 1, cell: &cell{dead: true}}, 5)
	})
}

func TestSemiBox_ParentClosesChildren(t *testing.T) {
	rec := newRecorder(t)
	parent := New[ptr](100, rec)
	scope := parent.Scope()

	a := NewSemi[ptr](scope, 1, rec)
	b := NewSemi[ptr](scope, 2, rec)
	c := NewSemi[ptr](scope, 3, rec)
	ra := a.Borrow()

	if scope.Len() != 3 {
		t.Fatalf("Len = %d, want 3", scope.Len())
	}

	b.Dispose()
	if scope.Len() != 2 {
		t.Fatalf("Len after child dispose = %d, want 2", scope.Len())
	}

	parent.Dispose()

	want := []ptr{2, 3, 1, 100}
	if len(rec.order) != len(want) {
		t.Fatalf("order = %v, want %v", rec.order, want)
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("order = %v, want %v", rec.order, want)
		}
	}

	if a.Valid() || c.Valid() {
		t.Fatal("children should be invalid after parent close")
	}
	if ra.Valid() {
		t.Fatal("child references should be invalid after parent close")
	}
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() { a.Borrow() })

	a.Dispose()
	c.Dispose()
	for p, n := range rec.count {
		if n != 1 {
			t.Fatalf("handle %d disposed %d times", p, n)
		}
	}
}

func TestSemiBox_ClosedScope(t *testing.T) {
	rec := newRecorder(t)
	parent := New[ptr](1, rec)
	scope := parent.Scope()
	parent.Dispose()

	if scope.Alive() {
		t.Fatal("scope should be closed with its owner")
	}
	mustPanic(t, llvmerrors.KindScopeClosed, func() {
		NewSemi[ptr](scope, 2, rec)
	})
	mustPanic(t, llvmerrors.KindNilHandle, func() {
		NewSemi[ptr](nil, 2, rec)
	})
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() {
		(&Box[ptr]{s: &slot[ptr]{ptr: 5, cell: &cell{dead: true}}}).Scope()
	})
}

func TestSemiBox_TakeKeepsParent(t *testing.T) {
	rec := newRecorder(t)
	parent := New[ptr](1, rec)
	scope := parent.Scope()

	child := NewSemi[ptr](scope, 2, rec)
	moved := child.Take()

	if moved.Parent() != scope {
		t.Fatal("moved child should stay bound to its parent")
	}
	mustPanic(t, llvmerrors.KindMoved, func() { child.Parent() })

	parent.Dispose()
	if rec.count[2] != 1 {
		t.Fatal("moved child should be released by the parent scope")
	}
	moved.Dispose()
	if rec.count[2] != 1 {
		t.Fatal("child released twice")
	}
}

func TestSemiBox_Nested(t *testing.T) {
	rec := newRecorder(t)
	root := New[ptr](1, rec)
	mid := NewSemi[ptr](root.Scope(), 2, rec)
	leaf := NewSemi[ptr](mid.Scope(), 3, rec)
	leafRef := leaf.Borrow()

	root.Dispose()

	want := []ptr{3, 2, 1}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("order = %v, want %v", rec.order, want)
		}
	}
	if leafRef.Valid() {
		t.Fatal("grandchild reference should be invalid")
	}
}

func TestSemiBox_Relinquish(t *testing.T) {
	rec := newRecorder(t)
	parent := New[ptr](1, rec)
	scope := parent.Scope()
	child := NewSemi[ptr](scope, 2, rec)

	if child.Relinquish() != 2 {
		t.Fatal("Relinquish returned wrong handle")
	}
	if scope.Len() != 0 {
		t.Fatal("relinquished child should leave its scope")
	}
	parent.Dispose()
	if rec.count[2] != 0 {
		t.Fatal("relinquished child must not be disposed")
	}
}

func TestDisposeFunc(t *testing.T) {
	var got ptr
	b := New[ptr](11, DisposeFunc[ptr](func(p ptr) { got = p }))
	b.Dispose()
	if got != 11 {
		t.Fatalf("DisposeFunc received %d, want 11", got)
	}
}

func TestNilContainers(t *testing.T) {
	var b *Box[ptr]
	var s *SemiBox[ptr]
	if b.Valid() || s.Valid() {
		t.Fatal("nil containers are invalid")
	}
	b.Dispose()
	s.Dispose()
	mustPanic(t, llvmerrors.KindMoved, func() { b.Borrow() })
	mustPanic(t, llvmerrors.KindMoved, func() { s.Borrow() })
}
