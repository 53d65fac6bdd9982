package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nilsdev/wisp/internal/bytecodefile"
)

type buildCmd struct {
	out string
}

func (*buildCmd) Name() string     { return "build" }
func (*buildCmd) Synopsis() string { return "Compile a wisp source file to a bytecode file" }
func (*buildCmd) Usage() string {
	return `build -o <out> <file>:
  Compile <file> and write its bytecode to <out> without running it.
`
}

func (c *buildCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "o", "", "output bytecode file path (required)")
}

func (c *buildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "wisp build: no file given")
		return subcommands.ExitUsageError
	}
	if c.out == "" {
		fmt.Fprintln(os.Stderr, "wisp build: -o is required")
		return subcommands.ExitUsageError
	}

	code, err := compileFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisp build: %s\n", err)
		return subcommands.ExitFailure
	}

	if err := bytecodefile.Write(c.out, code); err != nil {
		fmt.Fprintf(os.Stderr, "wisp build: %s\n", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
