package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/nilsdev/wisp/internal/config"
	"github.com/nilsdev/wisp/internal/replui"
)

type replCmd struct {
	plain    bool
	username string
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive wisp session" }
func (*replCmd) Usage() string {
	return `repl [-plain] [-user NAME]:
  Start an interactive read-eval-print loop.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "use the plain line-editing REPL instead of the TUI")
	f.StringVar(&c.username, "user", "", "name shown in the TUI welcome message")
}

func (c *replCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wisp: loading config: %s\n", err)
		return subcommands.ExitFailure
	}

	opts := replui.Options{NoColor: cfg.NoColor, Username: c.username}

	if c.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		if err := replui.StartPlain(cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "wisp: %s\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if err := replui.StartTUI(cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "wisp: %s\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
