// Package handle implements single ownership of foreign handles.
//
// The foreign ABI documents its rules in prose: call X exactly once to free
// what Y returned, and pointer P is only valid while context C is alive. This
// package turns those rules into types.
//
//	Box[P]      owns one handle and releases it exactly once
//	SemiBox[P]  owns one handle that is also bound to a parent Scope
//	Scope       the children of an owner; closed before the owner is released
//	Ref[P]      a copyable borrow that converts back to the raw handle
//	Disposer[P] the per-type release contract
//
// # Ownership
//
// Boxes are never copied, only moved with Take. The moved-from box is inert:
// borrowing from it panics and disposing it does nothing.
//
//	buf := handle.New(ptr, handle.DisposeFunc[ffi.MemoryBuffer](lib.DisposeMemoryBuffer))
//	defer buf.Dispose()
//
//	r := buf.Borrow()        // copyable, no ownership
//	n := lib.GetBufferSize(r.Native())
//
// # Lifetimes
//
// Go cannot reject a reference that outlives its parent at compile time, so
// every Ref carries the liveness of its owner and of the owner's parents.
// Native panics once any of them is released. Closing a scope releases its
// live children in reverse creation order before the owner itself, so a child
// handle is never released after its parent.
//
//	ctx := handle.New(c, contextDisposer)
//	mod := handle.NewSemi(ctx.Scope(), m, moduleDisposer)
//	ctx.Dispose()            // disposes mod first
//	mod.Borrow()             // panics: use_after_dispose
//
// # Contract Violations
//
// A zero handle, a moved or disposed container, and a closed scope are
// programming errors. They panic with an *errors.Error.
//
// # Thread Safety
//
// None. Containers and references are for use by one goroutine at a time,
// matching the foreign library.
package handle
