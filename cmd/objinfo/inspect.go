package main

import (
	"fmt"
	"io"

	llvm "github.com/wippyai/go-llvm"
	"github.com/wippyai/go-llvm/errors"
	"github.com/wippyai/go-llvm/ffi"
)

type fileInfo struct {
	err    error
	path   string
	format string
	size   int
}

func inspect(lib ffi.Library, path string) fileInfo {
	info := fileInfo{path: path}
	info.err = llvm.WithContext(lib, func(ctx *llvm.Context) error {
		buf, err := llvm.NewMemoryBufferFromFile(lib, path)
		if err != nil {
			return err
		}
		info.size = buf.Len()

		bin, err := llvm.NewBinary(ctx, buf)
		if err != nil {
			return err
		}
		t, err := bin.Borrow().Tag()
		if err != nil {
			return err
		}
		info.format = t.String()
		return nil
	})
	return info
}

func parseModule(lib ffi.Library, path string) (string, error) {
	var out string
	err := llvm.WithContext(lib, func(ctx *llvm.Context) error {
		buf, err := llvm.NewMemoryBufferFromFile(lib, path)
		if err != nil {
			return err
		}
		m, err := ctx.ParseIR(buf)
		if err != nil {
			return err
		}
		out = m.String()
		return nil
	})
	return out, err
}

// describe prefers the foreign diagnostic over the structured error text.
func describe(err error) string {
	if msg, ok := errors.ForeignMessage(err); ok {
		return msg
	}
	return err.Error()
}

func (f fileInfo) String() string {
	if f.err != nil {
		return fmt.Sprintf("%s: %s", f.path, describe(f.err))
	}
	return fmt.Sprintf("%s: %d bytes, %s", f.path, f.size, f.format)
}

func run(w io.Writer, lib ffi.Library, files []string, printIR bool) error {
	failed := 0
	for _, path := range files {
		if printIR {
			out, err := parseModule(lib, path)
			if err != nil {
				failed++
				fmt.Fprintf(w, "%s: %s\n", path, describe(err))
				continue
			}
			fmt.Fprint(w, out)
			continue
		}

		info := inspect(lib, path)
		if info.err != nil {
			failed++
		}
		fmt.Fprintln(w, info)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
