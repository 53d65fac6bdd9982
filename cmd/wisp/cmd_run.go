package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nilsdev/wisp/compiler"
	"github.com/nilsdev/wisp/internal/bytecodefile"
	"github.com/nilsdev/wisp/internal/config"
	"github.com/nilsdev/wisp/lexer"
	"github.com/nilsdev/wisp/parser"
	"github.com/nilsdev/wisp/vm"
)

type runCmd struct {
	bytecode bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and execute a wisp source file" }
func (*runCmd) Usage() string {
	return `run [-bytecode] <file>:
  Compile and execute a wisp source file. With -bytecode, <file> is treated
  as a file previously produced by "wisp build" instead of source.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.bytecode, "bytecode", false, "treat <file> as a compiled bytecode file")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "wisp run: no file given")
		return subcommands.ExitUsageError
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisp: loading config: %s\n", err)
		return subcommands.ExitFailure
	}

	var code *compiler.Bytecode
	if c.bytecode {
		code, err = bytecodefile.Read(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wisp run: %s\n", err)
			return subcommands.ExitFailure
		}
	} else {
		code, err = compileFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "wisp run: %s\n", err)
			return subcommands.ExitFailure
		}
	}

	machine := vm.NewWithOptions(code, vm.Options{
		StackSize:   cfg.StackSize,
		GlobalsSize: cfg.GlobalsSize,
		MaxFrames:   cfg.MaxFrames,
	})
	if err := machine.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wisp run: runtime error: %s\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

func compileFile(path string) (*compiler.Bytecode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	l := lexer.New(string(data))
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse errors:\n\t%s", joinErrors(errs))
	}

	comp := compiler.New()
	if err := comp.Compile(program); err != nil {
		return nil, fmt.Errorf("compile error: %w", err)
	}

	return comp.Bytecode(), nil
}

func joinErrors(errs []string) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "\n\t"
		}
		out += e
	}
	return out
}
