package llvm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

const noDiagnostic = "no diagnostic provided"

// foreignError converts a failed call into an error. msg, if set, is owned
// by the caller and released here after its text is copied.
func foreignError(lib ffi.Library, phase errors.Phase, op, subject string, msg ffi.Message) error {
	detail := noDiagnostic
	if msg != nil {
		box := handle.New(msg, disposer("LLVMDisposeMessage", lib.DisposeMessage))
		if text := ffi.GoString((*byte)(box.Native())); text != "" {
			detail = text
		}
		box.Dispose()
	}

	Logger().Debug("foreign call failed",
		zap.String("op", op),
		zap.String("subject", subject),
		zap.String("message", detail),
	)

	return errors.New(phase, errors.KindForeign).
		Op(op).
		Subject(subject).
		Detail("%s", detail).
		Build()
}

// mustResult checks the result of a call that has no error channel. A zero
// handle from such a call is a contract violation.
func mustResult[P comparable](op string, p P) P {
	var zero P
	if p == zero {
		panic(errors.New(errors.PhaseAcquire, errors.KindNilHandle).
			Op(op).
			Handle(fmt.Sprintf("%T", p)).
			Detail("foreign call returned a nil handle").
			Build())
	}
	debugHandle("handle acquired", op, p)
	return p
}
