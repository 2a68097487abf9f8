package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
)

// listingFormat is one entry line of ls and lsr: inode number, size, name
const listingFormat = "%6d  %6d  %s\n"

func cmdCat(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	var errs []error
	for _, p := range words[1:] {
		f, err := sh.fs.ResolveFile(p, sh.state.Cwd())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		contents, err := f.Read()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sh.println(strings.Join(contents, " "))
	}
	return Result{}, errors.Join(errs...)
}

// cmdCd moves cwd to the named directory, or to root with no operand.
// On failure cwd is left where it was.
func cmdCd(sh *Shell, words []string) (Result, error) {
	switch len(words) {
	case 1:
		sh.state.SetCwd(sh.state.Root())
		return Result{}, nil
	case 2:
	default:
		return Result{}, ErrTooManyOperands
	}
	dir, err := sh.fs.ResolveDir(words[1], sh.state.Cwd())
	if err != nil {
		return Result{}, err
	}
	sh.state.SetCwd(dir)
	return Result{}, nil
}

func cmdEcho(sh *Shell, words []string) (Result, error) {
	sh.println(strings.Join(words[1:], " "))
	return Result{}, nil
}

// cmdExit stops the shell. A numeric operand becomes the exit status, any
// other operand exits with [yshell.ExitMalformed].
func cmdExit(_ *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{Exit: true}, nil
	}
	status, err := strconv.Atoi(words[1])
	if err != nil {
		status = yshell.ExitMalformed
	}
	return Result{Exit: true, Status: util.Pointer(status)}, nil
}

// cmdLs lists every entry, including "." and "..", of each operand
func cmdLs(sh *Shell, words []string) (Result, error) {
	var errs []error
	for _, p := range operandsOrCwd(words) {
		node, err := sh.fs.Resolve(p, sh.state.Cwd())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !node.IsDir() {
			sh.printf(listingFormat, node.ID(), node.Size(), p)
			continue
		}
		if err := sh.listDir(node); err != nil {
			errs = append(errs, err)
		}
	}
	return Result{}, errors.Join(errs...)
}

func (sh *Shell) listDir(dir *filesystem.Inode) error {
	return sh.withCwd(dir, func(cwd *filesystem.Inode) error {
		entries, err := sh.fs.ListEntries(cwd)
		if err != nil {
			return err
		}
		sh.println(cwd.Path() + ":")
		sh.printEntries(entries)
		return nil
	})
}

// cmdLsr lists each operand and, pre-order, every directory below it
func cmdLsr(sh *Shell, words []string) (Result, error) {
	logger := util.GetFlagLogger(util.CommandFlag, "Shell.lsr")

	var errs []error
	for _, p := range operandsOrCwd(words) {
		node, err := sh.fs.Resolve(p, sh.state.Cwd())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !node.IsDir() {
			sh.printf(listingFormat, node.ID(), node.Size(), p)
			continue
		}
		dirCnt := 0
		err = sh.withCwd(node, func(cwd *filesystem.Inode) error {
			return sh.fs.ListRecursive(cwd, func(dir *filesystem.Inode, entries []filesystem.Entry) error {
				dirCnt++
				sh.println(dir.Path() + ":")
				sh.printEntries(entries)
				return nil
			})
		})
		if err != nil {
			errs = append(errs, err)
		}
		logger.Trace().Str("path", node.Path()).Int("dirs", dirCnt).Msg("Listed tree")
	}
	return Result{}, errors.Join(errs...)
}

// withCwd runs fn with cwd moved to node, restoring it however fn returns
func (sh *Shell) withCwd(node *filesystem.Inode, fn func(cwd *filesystem.Inode) error) error {
	scope := sh.state.EnterCwd(node)
	defer scope.Close()
	return fn(sh.state.Cwd())
}

func (sh *Shell) printEntries(entries []filesystem.Entry) {
	for _, e := range entries {
		name := e.Name
		if e.IsSubdir() {
			name += "/"
		}
		sh.printf(listingFormat, e.Node.ID(), e.Node.Size(), name)
	}
}

// cmdMake creates the named file, or rewrites it if it exists, with the
// remaining words as its contents.
func cmdMake(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	p := words[1]
	parent, name, err := sh.resolveParent(p)
	if err != nil {
		return Result{}, err
	}
	if name == "" {
		return Result{}, fmt.Errorf("%s: %w", p, filesystem.ErrAlreadyExists)
	}
	f, err := sh.fs.CreateFile(parent, name)
	if err != nil {
		return Result{}, err
	}
	return Result{}, f.Write(words[2:])
}

func cmdMkdir(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	var errs []error
	for _, p := range words[1:] {
		parent, name, err := sh.resolveParent(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if name == "" {
			errs = append(errs, fmt.Errorf("%s: %w", p, filesystem.ErrAlreadyExists))
			continue
		}
		if _, err := sh.fs.CreateDirectory(parent, name); err != nil {
			errs = append(errs, err)
		}
	}
	return Result{}, errors.Join(errs...)
}

// cmdPrompt sets the prompt to the operands followed by a space
func cmdPrompt(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	sh.state.SetPrompt(strings.Join(words[1:], " ") + " ")
	return Result{}, nil
}

func cmdPwd(sh *Shell, _ []string) (Result, error) {
	sh.println(sh.state.Cwd().Path())
	return Result{}, nil
}

// cmdRm removes files and empty directories
func cmdRm(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	var errs []error
	for _, p := range words[1:] {
		parent, name, err := sh.resolveParent(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := sh.fs.Remove(parent, name); err != nil {
			errs = append(errs, err)
			continue
		}
		sh.leaveRemoved(parent)
	}
	return Result{}, errors.Join(errs...)
}

// cmdRmr removes each operand and everything below it. Removing "/" empties
// the root directory.
func cmdRmr(sh *Shell, words []string) (Result, error) {
	if len(words) < 2 {
		return Result{}, ErrMissingOperand
	}
	var errs []error
	for _, p := range words[1:] {
		if err := sh.removeTree(p); err != nil {
			errs = append(errs, err)
		}
	}
	return Result{}, errors.Join(errs...)
}

func (sh *Shell) removeTree(p string) error {
	logger := util.GetFlagLogger(util.CommandFlag, "Shell.rmr")

	target, err := sh.fs.Resolve(p, sh.state.Cwd())
	if err != nil {
		return err
	}
	if !target.IsDir() {
		parent, _, err := sh.resolveParent(p)
		if err != nil {
			return err
		}
		return sh.fs.Unlink(parent, target.Name())
	}

	root := sh.state.Root()
	if target == root {
		logger.Debug().Msg("Emptying root")
		if err := sh.fs.DeleteRecursive(root); err != nil {
			return err
		}
		sh.state.SetCwd(root)
		return nil
	}

	parent, err := sh.fs.Parent(target)
	if err != nil {
		return err
	}
	if err := sh.fs.DeleteRecursive(target); err != nil {
		return err
	}
	if err := sh.fs.Unlink(parent, target.Name()); err != nil {
		return err
	}
	logger.Debug().Str("path", target.Path()).Msg("Removed tree")
	sh.leaveRemoved(parent)
	return nil
}

// leaveRemoved moves cwd to fallback if cwd was unlinked
func (sh *Shell) leaveRemoved(fallback *filesystem.Inode) {
	if sh.state.Cwd().IsDel() {
		sh.state.SetCwd(fallback)
	}
}

// resolveParent resolves the directory holding the final component of p and
// returns it with that component. The component is "" when p names root.
func (sh *Shell) resolveParent(p string) (*filesystem.Inode, string, error) {
	dir, name := filesystem.Split(p)
	if trimmed := strings.TrimRight(dir, "/"); trimmed != "" {
		dir = trimmed
	} else if dir != "" {
		dir = "/"
	}
	parent, err := sh.fs.ResolveDir(dir, sh.state.Cwd())
	if err != nil {
		return nil, "", err
	}
	return parent, name, nil
}

func operandsOrCwd(words []string) []string {
	if len(words) < 2 {
		return []string{filesystem.SelfName}
	}
	return words[1:]
}
