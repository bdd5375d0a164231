package llvm

import (
	"errors"
	"testing"
	"testing/fstest"

	llvmerrors "github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/ffi/hostlib"
)

func elfHeader(class, order byte, size int) []byte {
	b := make([]byte, size)
	copy(b, "\x7fELF")
	b[4], b[5], b[6] = class, order, 1
	return b
}

var testFS = fstest.MapFS{
	"obj/main.o":     {Data: elfHeader(2, 1, 64)},
	"obj/lib.a":      {Data: []byte("!<arch>\n")},
	"obj/notes.txt":  {Data: []byte("not an object")},
	"obj/empty.wasm": {Data: []byte("\x00asm\x01\x00\x00\x00")},
	"ir/add.ll":      {Data: []byte(addIR)},
	"ir/bad.ll":      {Data: []byte("this is not IR\n")},
}

const addIR = `source_filename = "add.c"

define i32 @add(i32 %a, i32 %b) {
  %s = add i32 %a, %b
  ret i32 %s
}
`

func newLib(t *testing.T) *hostlib.Library {
	t.Helper()
	lib := hostlib.New(hostlib.WithFS(testFS))
	t.Cleanup(func() {
		if n := lib.Live(); n != 0 {
			t.Errorf("%d foreign handles leaked", n)
		}
	})
	return lib
}

func mustPanic(t *testing.T, kind llvmerrors.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		v := recover()
		if v == nil {
			t.Fatalf("expected panic with kind %s", kind)
		}
		var e *llvmerrors.Error
		err, ok := v.(error)
		if !ok || !errors.As(err, &e) {
			t.Fatalf("panic value %T (%v) is not *errors.Error", v, v)
		}
		if e.Kind != kind {
			t.Fatalf("panic kind = %s, want %s", e.Kind, kind)
		}
		if !llvmerrors.IsContractViolation(v) {
			t.Fatalf("panic %v is not a contract violation", v)
		}
	}()
	fn()
}

func foreignDetail(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	msg, ok := llvmerrors.ForeignMessage(err)
	if !ok {
		t.Fatalf("error %v is not a foreign failure", err)
	}
	return msg
}

// unknownTagLib reports a format tag newer than the safe layer knows.
type unknownTagLib struct {
	*hostlib.Library
}

func (unknownTagLib) BinaryGetType(ffi.Binary) ffi.BinaryTag {
	return ffi.BinaryTypeOffload
}

// silentLib fails file loads without producing a message.
type silentLib struct {
	*hostlib.Library
}

func (silentLib) CreateMemoryBufferWithContentsOfFile(*byte, *ffi.MemoryBuffer, *ffi.Message) ffi.Bool {
	return ffi.True
}

// nilBufferLib returns no buffer from a call that cannot report failure.
type nilBufferLib struct {
	*hostlib.Library
}

func (nilBufferLib) CreateMemoryBufferWithMemoryRangeCopy(*byte, uint64, *byte) ffi.MemoryBuffer {
	return nil
}

func asError(err error, target **llvmerrors.Error) bool {
	return errors.As(err, target)
}
