package llvm

import (
	"strings"

	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/handle"
)

// Message owns a NUL-terminated string allocated by the foreign library.
type Message struct {
	box *handle.Box[ffi.Message]
}

func newMessage(lib ffi.Library, m ffi.Message) *Message {
	return &Message{box: handle.New(m, disposer("LLVMDisposeMessage", lib.DisposeMessage))}
}

// View returns the text without copying. The string must not be used after
// the message is closed.
func (m *Message) View() string {
	return ffi.StringView((*byte)(m.box.Native()))
}

// String returns a copy of the text.
func (m *Message) String() string {
	return strings.Clone(m.View())
}

// Len returns the text length in bytes.
func (m *Message) Len() int {
	return len(m.View())
}

// Valid reports whether the message has not been closed.
func (m *Message) Valid() bool {
	return m != nil && m.box.Valid()
}

// Close releases the message.
func (m *Message) Close() {
	if m == nil {
		return
	}
	m.box.Dispose()
}
