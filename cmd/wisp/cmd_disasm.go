package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nilsdev/wisp/compiler"
	"github.com/nilsdev/wisp/internal/bytecodefile"
	"github.com/nilsdev/wisp/object"
)

type disasmCmd struct {
	bytecode bool
}

func (*disasmCmd) Name() string     { return "disasm" }
func (*disasmCmd) Synopsis() string { return "Print the disassembly of a wisp program" }
func (*disasmCmd) Usage() string {
	return `disasm [-bytecode] <file>:
  Print the disassembled instructions of <file>. With -bytecode, <file> is
  treated as a file produced by "wisp build" instead of source.
`
}

func (c *disasmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.bytecode, "bytecode", false, "treat <file> as a compiled bytecode file")
}

func (c *disasmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "wisp disasm: no file given")
		return subcommands.ExitUsageError
	}

	var code *compiler.Bytecode
	var err error
	if c.bytecode {
		code, err = bytecodefile.Read(args[0])
	} else {
		code, err = compileFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisp disasm: %s\n", err)
		return subcommands.ExitFailure
	}

	fmt.Print(code.Instructions.String())

	for i, c := range code.Constants {
		if fn, ok := c.(*object.CompiledFunction); ok {
			fmt.Printf("CONSTANT %d (CompiledFunction):\n%s\n", i, fn.Instructions.String())
		}
	}

	return subcommands.ExitSuccess
}
