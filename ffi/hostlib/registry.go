package hostlib

import (
	"sync"
	"unsafe"
)

// Kind identifies the resource type behind a handle.
type Kind uint8

const (
	KindContext Kind = iota + 1
	KindBuffer
	KindBinary
	KindModule
	KindMessage
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindBuffer:
		return "memory buffer"
	case KindBinary:
		return "binary"
	case KindModule:
		return "module"
	case KindMessage:
		return "message"
	}
	return "unknown"
}

type entry struct {
	value any
	kind  Kind
}

// registry tracks live handles by address.
type registry struct {
	entries  map[unsafe.Pointer]entry
	created  [kindCount]int
	disposed [kindCount]int
	mu       sync.RWMutex
}

func newRegistry() *registry {
	return &registry{
		entries: make(map[unsafe.Pointer]entry, 64),
	}
}

func (r *registry) add(p unsafe.Pointer, kind Kind, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[p] = entry{value: value, kind: kind}
	r.created[kind]++
}

// get returns the value behind p, or nil when p is not a live handle of kind.
func (r *registry) get(p unsafe.Pointer, kind Kind) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[p]
	if !ok || e.kind != kind {
		return nil
	}
	return e.value
}

// drop removes p and returns its value, or nil when p is not a live handle
// of kind.
func (r *registry) drop(p unsafe.Pointer, kind Kind) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[p]
	if !ok || e.kind != kind {
		return nil
	}
	delete(r.entries, p)
	r.disposed[kind]++
	return e.value
}

// kindOf reports the kind of a live handle.
func (r *registry) kindOf(p unsafe.Pointer) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[p]
	return e.kind, ok
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *registry) lenOf(kind Kind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.entries {
		if e.kind == kind {
			count++
		}
	}
	return count
}

func (r *registry) counts(kind Kind) (created, disposed int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.created[kind], r.disposed[kind]
}

// each iterates over live handles until fn returns false.
func (r *registry) each(fn func(unsafe.Pointer, Kind) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for p, e := range r.entries {
		if !fn(p, e.kind) {
			break
		}
	}
}
