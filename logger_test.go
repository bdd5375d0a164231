package llvm

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_HandleEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	lib := newLib(t)
	ctx := NewContext(lib)
	if _, err := ctx.NewModule("logged"); err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	ctx.Close()

	if n := logs.FilterMessage("handle acquired").Len(); n != 2 {
		t.Errorf("acquired events = %d, want 2", n)
	}
	released := logs.FilterMessage("handle released").All()
	if len(released) != 2 {
		t.Fatalf("released events = %d, want 2", len(released))
	}
	if op := released[0].ContextMap()["op"]; op != "LLVMDisposeModule" {
		t.Errorf("first release = %v, want the module", op)
	}
}

func TestLogger_ForeignFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	lib := newLib(t)
	if _, err := NewMemoryBufferFromFile(lib, "missing.o"); err == nil {
		t.Fatal("expected error")
	}

	entries := logs.FilterMessage("foreign call failed").All()
	if len(entries) != 1 {
		t.Fatalf("failure events = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["subject"] != "missing.o" || fields["message"] == "" {
		t.Errorf("fields = %v", fields)
	}
}
