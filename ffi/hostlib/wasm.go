package hostlib

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
)

// compileWasm validates a WebAssembly object in the runtime of its context.
// Without a context the module is compiled in a throwaway runtime and only
// the validation result is kept.
func (l *Library) compileWasm(c *hostContext, data []byte) (wazero.CompiledModule, error) {
	ctx := context.Background()

	if c == nil {
		rt := wazero.NewRuntimeWithConfig(ctx, l.runtimeConfig)
		defer rt.Close(ctx)
		if _, err := rt.CompileModule(ctx, data); err != nil {
			return nil, fmt.Errorf("invalid WebAssembly module: %w", err)
		}
		return nil, nil
	}

	compiled, err := c.runtime(l.runtimeConfig).CompileModule(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("invalid WebAssembly module: %w", err)
	}
	return compiled, nil
}
