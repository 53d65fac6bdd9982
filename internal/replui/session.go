// Package replui implements the interactive front ends for wisp: a styled
// bubbletea TUI and a plain chzyer/readline-driven fallback. Both front ends
// share a [Session], which keeps the compiler's constant pool and symbol
// table, and the VM's globals table, alive across successive submissions —
// so a let binding made in one line is visible to the next.
package replui

import (
	"github.com/nilsdev/wisp/compiler"
	"github.com/nilsdev/wisp/internal/config"
	"github.com/nilsdev/wisp/lexer"
	"github.com/nilsdev/wisp/object"
	"github.com/nilsdev/wisp/parser"
	"github.com/nilsdev/wisp/vm"
)

// Session holds the state that must persist across REPL submissions.
type Session struct {
	symbolTable *compiler.SymbolTable
	constants   []object.Object
	globals     []object.Object
	opts        vm.Options
}

// NewSession creates an empty session sized by cfg.
func NewSession(cfg config.Config) *Session {
	return &Session{
		symbolTable: compiler.NewSymbolTable(),
		constants:   []object.Object{},
		globals:     make([]object.Object, cfg.GlobalsSize),
		opts: vm.Options{
			StackSize:   cfg.StackSize,
			GlobalsSize: cfg.GlobalsSize,
			MaxFrames:   cfg.MaxFrames,
		},
	}
}

// EvalError distinguishes a parse failure from a compile/runtime failure, so a
// front end can style or explain the two differently.
type EvalError struct {
	Stage string // "parse", "compile", or "runtime"
	Err   error
}

func (e *EvalError) Error() string { return e.Err.Error() }
func (e *EvalError) Unwrap() error { return e.Err }

// Eval compiles and runs one submission against the session's persistent
// state, returning the inspected value of the last expression statement.
func (s *Session) Eval(input string) (string, *EvalError) {
	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		return "", &EvalError{Stage: "parse", Err: parseErrors(errs)}
	}

	comp := compiler.NewWithState(s.symbolTable, s.constants)
	if err := comp.Compile(program); err != nil {
		return "", &EvalError{Stage: "compile", Err: err}
	}

	code := comp.Bytecode()
	s.constants = code.Constants

	machine := vm.NewWithGlobalsStoreAndOptions(code, s.globals, s.opts)
	if err := machine.Run(); err != nil {
		return "", &EvalError{Stage: "runtime", Err: err}
	}

	return machine.LastPoppedStackElem().Inspect(), nil
}

func parseErrors(errs []string) error {
	msg := "parser errors:"
	for _, e := range errs {
		msg += "\n\t" + e
	}
	return &multiError{msg}
}

type multiError struct{ msg string }

func (e *multiError) Error() string { return e.msg }
