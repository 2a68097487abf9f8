// Package shell drives a filesystem tree from a line-oriented command stream:
// it reads lines, tokenizes them, dispatches them to command handlers and
// tracks the exit status.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/config"
	"github.com/brettbedarf/yshell/internal/util"
)

// CommentPrefix starts a line the shell ignores
const CommentPrefix = "#"

// eofMarker is echoed in place of the line that was never read
const eofMarker = "^D"

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

// Shell reads commands from in and runs them against a tree.
// Command output goes to out, error messages to errOut.
type Shell struct {
	cfg    *config.Config
	fs     yshell.Tree
	state  *State
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	echo   bool
}

// New creates a Shell with cwd at the tree's root and the configured prompt.
// Echo starts on only when cfg.Echo is always; see [Shell.SetEcho].
func New(cfg *config.Config, fs yshell.Tree, in io.Reader, out, errOut io.Writer) *Shell {
	return &Shell{
		cfg:    cfg,
		fs:     fs,
		state:  NewState(fs.Root(), cfg.Prompt),
		in:     in,
		out:    out,
		errOut: errOut,
		echo:   cfg.Echo == config.EchoAlways,
	}
}

// SetEcho turns echoing of input lines on or off
func (sh *Shell) SetEcho(echo bool) {
	sh.echo = echo
}

// State returns the shell's mutable state
func (sh *Shell) State() *State {
	return sh.state
}

// Run reads and executes lines until end of input or an exit command, prints
// the final exit message and returns the exit status.
func (sh *Shell) Run() int {
	logger := util.GetFlagLogger(util.ReadLoopFlag, "Shell.Run")

	status := yshell.ExitSuccess
	scanner := bufio.NewScanner(sh.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for {
		fmt.Fprint(sh.out, sh.state.Prompt())
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Error().Err(err).Msg("Failed to read input")
				status = yshell.ExitFailure
			}
			if sh.echo {
				fmt.Fprint(sh.out, eofMarker)
			}
			fmt.Fprintln(sh.out)
			logger.Trace().Msg("EOF")
			break
		}
		line := scanner.Text()
		if sh.echo {
			fmt.Fprintln(sh.out, line)
		}

		words := Tokenize(line)
		logger.Trace().Strs("words", words).Msg("Read line")
		if len(words) == 0 || strings.HasPrefix(words[0], CommentPrefix) {
			continue
		}

		res, err := sh.Execute(words)
		if err != nil {
			sh.report(err)
			status = yshell.ExitFailure
		}
		if res.Exit {
			if res.Status != nil {
				status = *res.Status
			}
			break
		}
	}

	fmt.Fprintf(sh.out, "%s: exit(%d)\n", sh.cfg.ExecName, status)
	return status
}

// report prints one line per failure to errOut
func (sh *Shell) report(err error) {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		fmt.Fprintf(sh.errOut, "%s: %v\n", sh.cfg.ExecName, err)
		return
	}
	for _, e := range cmdErr.Failures() {
		fmt.Fprintf(sh.errOut, "%s: %s: %v\n", sh.cfg.ExecName, cmdErr.Name, e)
	}
}

func (sh *Shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

// Tokenize splits line into words separated by runs of spaces and tabs
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}
