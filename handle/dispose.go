package handle

// Disposer is the release contract of one foreign handle type. Containers
// call Dispose at most once per handle; callers never call it directly.
// Foreign disposal is assumed infallible.
type Disposer[P comparable] interface {
	Dispose(p P)
}

// DisposeFunc adapts a foreign release function to Disposer.
type DisposeFunc[P comparable] func(p P)

// Dispose calls f(p).
func (f DisposeFunc[P]) Dispose(p P) {
	f(p)
}
