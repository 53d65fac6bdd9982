package replui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nilsdev/wisp/internal/config"
)

// StartPlain runs a line-editing REPL backed by chzyer/readline, for
// terminals the bubbletea TUI can't attach to (piped stdout, --plain).
// Like the TUI, it keeps reading lines while brackets are unbalanced; unlike
// the TUI, an empty line does not submit an unbalanced buffer.
func StartPlain(cfg config.Config, opts Options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          Prompt,
		HistoryFile:     "",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "wisp REPL. Press Ctrl+D to exit.")

	session := NewSession(cfg)
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(Prompt)
		} else {
			rl.SetPrompt(ContPrompt)
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if strings.TrimSpace(source) == "" {
			buffer.Reset()
			continue
		}
		if !isBalanced(source) {
			continue
		}

		output, evalErr := session.Eval(source)
		buffer.Reset()

		if evalErr != nil {
			fmt.Fprintf(rl.Stdout(), "%s error: %s\n", evalErr.Stage, evalErr.Error())
			continue
		}
		fmt.Fprintln(rl.Stdout(), output)
	}
}
