package llvm

import (
	"strings"
	"testing"

	llvmerrors "github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/ffi/hostlib"
)

func TestReadBinary(t *testing.T) {
	tests := []struct {
		path string
		want BinaryType
	}{
		{"obj/main.o", ELF64L},
		{"obj/lib.a", Archive},
		{"obj/empty.wasm", Wasm},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lib := newLib(t)
			ctx := NewContext(lib)
			defer ctx.Close()

			bin, err := ReadBinary(ctx, tt.path)
			if err != nil {
				t.Fatalf("ReadBinary: %v", err)
			}
			defer bin.Close()

			if got := bin.Type(); got != tt.want {
				t.Errorf("type = %v, want %v", got, tt.want)
			}
			if bin.Name() != tt.path {
				t.Errorf("name = %q", bin.Name())
			}
		})
	}
}

func TestReadBinary_Unrecognized(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	bin, err := ReadBinary(ctx, "obj/notes.txt")
	if bin != nil {
		t.Fatal("expected nil binary")
	}
	if msg := foreignDetail(t, err); !strings.Contains(msg, "not recognized") {
		t.Errorf("message = %q", msg)
	}
	if lib.LiveOf(hostlib.KindBuffer) != 0 {
		t.Error("source buffer should be released on failure")
	}
	if ctx.Live() != 0 {
		t.Errorf("context children = %d, want 0", ctx.Live())
	}
}

func TestReadBinary_MissingFile(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	_, err := ReadBinary(ctx, "obj/missing.o")
	if msg := foreignDetail(t, err); msg == "" {
		t.Error("expected a diagnostic")
	}
}

func TestBinary_OwnsBuffer(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	buf, err := NewMemoryBufferFromBytes(lib, elfHeader(1, 2, 52), "be32.o")
	if err != nil {
		t.Fatalf("NewMemoryBufferFromBytes: %v", err)
	}
	bin, err := NewBinary(ctx, buf)
	if err != nil {
		t.Fatalf("NewBinary: %v", err)
	}

	if buf.Valid() {
		t.Error("NewBinary should take the buffer")
	}
	buf.Close()
	if lib.LiveOf(hostlib.KindBuffer) != 1 {
		t.Fatal("buffer must stay alive while the binary reads it")
	}

	if got := bin.Type(); got != ELF32B {
		t.Errorf("type = %v, want ELF32B", got)
	}

	bin.Close()
	if lib.LiveOf(hostlib.KindBuffer) != 0 || lib.LiveOf(hostlib.KindBinary) != 0 {
		t.Error("binary and buffer should be released together")
	}
}

func TestBinary_CopyMemoryBuffer(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	bin, err := ReadBinary(ctx, "obj/lib.a")
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	cp := bin.Borrow().CopyMemoryBuffer()
	bin.Close()

	if got := cp.String(); got != "!<arch>\n" {
		t.Errorf("copy = %q", got)
	}
	cp.Close()
}

func TestBinary_UnknownTag(t *testing.T) {
	lib := unknownTagLib{newLib(t)}
	ctx := NewContext(lib)
	defer ctx.Close()

	bin, err := ReadBinary(ctx, "obj/main.o")
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	defer bin.Close()

	mustPanic(t, llvmerrors.KindUnknownTag, func() { bin.Type() })
}

func TestBinary_ContextClosed(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)

	bin, err := ReadBinary(ctx, "obj/main.o")
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	ref := bin.Borrow()

	ctx.Close()
	if bin.Valid() || ref.Valid() {
		t.Error("binary should be released with its context")
	}
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() { ref.Type() })
	mustPanic(t, llvmerrors.KindUseAfterDispose, func() { _, _ = ReadBinary(ctx, "obj/main.o") })

	bin.Close()
}

func TestBinaryTypeFromTag(t *testing.T) {
	for tag := ffi.BinaryTypeArchive; tag <= ffi.BinaryTypeWasm; tag++ {
		bt, err := BinaryTypeFromTag(tag)
		if err != nil {
			t.Fatalf("tag %d: %v", tag, err)
		}
		if int(bt) != int(tag) {
			t.Errorf("tag %d mapped to %v", tag, bt)
		}
		if strings.HasPrefix(bt.String(), "BinaryType(") {
			t.Errorf("tag %d has no name", tag)
		}
	}

	for _, tag := range []ffi.BinaryTag{-1, ffi.BinaryTypeOffload, 99} {
		_, err := BinaryTypeFromTag(tag)
		var e *llvmerrors.Error
		if !asError(err, &e) || e.Kind != llvmerrors.KindUnknownTag {
			t.Errorf("tag %d: expected unknown_tag, got %v", tag, err)
		}
	}
}

func TestBinaryType_String(t *testing.T) {
	if got := ELF64L.String(); got != "ELF64L" {
		t.Errorf("String() = %q", got)
	}
	if got := BinaryType(42).String(); got != "BinaryType(42)" {
		t.Errorf("String() = %q", got)
	}
}

func TestBinaryRef_Tag(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	bin, err := ReadBinary(ctx, "obj/main.o")
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	got, err := bin.Borrow().Tag()
	if err != nil || got != ELF64L {
		t.Errorf("Tag() = %v, %v; want ELF64L", got, err)
	}

	odd := unknownTagLib{lib}
	ref := BinaryRef{lib: odd, ref: bin.box.Borrow()}
	_, err = ref.Tag()
	var e *llvmerrors.Error
	if !asError(err, &e) || e.Kind != llvmerrors.KindUnknownTag {
		t.Errorf("Tag() err = %v, want unknown_tag", err)
	}
}

func TestNewBinary_NilBuffer(t *testing.T) {
	lib := newLib(t)
	ctx := NewContext(lib)
	defer ctx.Close()

	mustPanic(t, llvmerrors.KindNilHandle, func() { _, _ = NewBinary(ctx, nil) })
}
