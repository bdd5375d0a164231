package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	llvm "github.com/wippyai/go-llvm"
	"github.com/wippyai/go-llvm/ffi"
	"github.com/wippyai/go-llvm/ffi/hostlib"
	"github.com/wippyai/go-llvm/ffi/llvmc"
)

func main() {
	var (
		backend     = flag.String("backend", "host", "Foreign library: host or llvm")
		printIR     = flag.Bool("ir", false, "Parse files as textual IR and print the module")
		verbose     = flag.Bool("v", false, "Log handle activity")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()
	files := flag.Args()

	if len(files) == 0 && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: objinfo [-backend host|llvm] [-v] file...")
		fmt.Fprintln(os.Stderr, "       objinfo -ir file.ll...")
		fmt.Fprintln(os.Stderr, "       objinfo -i [file...]  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer l.Sync()
		logger = l
		llvm.SetLogger(logger)
	}

	lib, err := openLibrary(*backend, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(lib, files); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(os.Stdout, lib, files, *printIR); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openLibrary(name string, logger *zap.Logger) (ffi.Library, error) {
	switch name {
	case "host":
		return hostlib.New(hostlib.WithLogger(logger)), nil
	case "llvm":
		return llvmc.New()
	default:
		return nil, fmt.Errorf("unknown backend %q (want host or llvm)", name)
	}
}
