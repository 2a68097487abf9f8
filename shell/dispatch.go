package shell

import (
	"errors"
	"fmt"
	"slices"

	"github.com/brettbedarf/yshell/internal/util"
)

var (
	ErrNoSuchFunction  = errors.New("no such function")
	ErrMissingOperand  = errors.New("missing operand")
	ErrTooManyOperands = errors.New("too many operands")
)

// Result is what a command hands back to the read loop. Exit asks the loop
// to stop; Status, when set, replaces the exit status.
type Result struct {
	Exit   bool
	Status *int
}

// commandFn runs one command line. words[0] is the command name.
type commandFn func(sh *Shell, words []string) (Result, error)

var commands = map[string]commandFn{
	"cat":    cmdCat,
	"cd":     cmdCd,
	"echo":   cmdEcho,
	"exit":   cmdExit,
	"ls":     cmdLs,
	"lsr":    cmdLsr,
	"make":   cmdMake,
	"mkdir":  cmdMkdir,
	"prompt": cmdPrompt,
	"pwd":    cmdPwd,
	"rm":     cmdRm,
	"rmr":    cmdRmr,
}

// Commands returns the names of every known command, sorted
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CommandError attaches the command name to one or more failures reported
// by a single command line.
type CommandError struct {
	Name string
	Err  error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Failures returns the individual failures, one per reported message
func (e *CommandError) Failures() []error {
	if joined, ok := e.Err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{e.Err}
}

// Execute looks up words[0] and runs it. Any failure, including a panic in
// the handler, comes back as a *CommandError; the shell keeps running.
func (sh *Shell) Execute(words []string) (res Result, err error) {
	logger := util.GetFlagLogger(util.CommandFlag, "Shell.Execute")

	if len(words) == 0 {
		return Result{}, nil
	}
	name := words[0]
	fn, ok := commands[name]
	if !ok {
		return Result{}, &CommandError{Name: name, Err: ErrNoSuchFunction}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("cmd", name).Interface("panic", r).Msg("Command panicked")
			res = Result{}
			err = &CommandError{Name: name, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	logger.Trace().Strs("words", words).Msg("Dispatching")
	res, err = fn(sh, words)
	if err != nil {
		return res, &CommandError{Name: name, Err: err}
	}
	return res, nil
}
