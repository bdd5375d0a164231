package hostlib

import (
	"io/fs"
	"os"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

// Option configures a Library.
type Option func(*Library)

// WithFS reads files from fsys instead of the operating system. Leading
// slashes are stripped so absolute-looking paths resolve inside fsys.
func WithFS(fsys fs.FS) Option {
	return func(l *Library) {
		l.readFile = func(name string) ([]byte, error) {
			return fs.ReadFile(fsys, strings.TrimLeft(name, "/"))
		}
	}
}

// WithReadFile replaces the function used to load files.
func WithReadFile(fn func(name string) ([]byte, error)) Option {
	return func(l *Library) {
		l.readFile = fn
	}
}

// WithRuntimeConfig sets the wazero configuration of the runtimes contexts
// create for WebAssembly objects.
func WithRuntimeConfig(cfg wazero.RuntimeConfig) Option {
	return func(l *Library) {
		l.runtimeConfig = cfg
	}
}

// WithLogger sets the logger faults are reported to before panicking.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

func defaults(l *Library) {
	l.readFile = os.ReadFile
	l.runtimeConfig = wazero.NewRuntimeConfig()
	l.logger = zap.NewNop()
}
