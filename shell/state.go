package shell

import (
	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
)

// State holds the mutable shell state: the cwd cursor, the tree root and the
// prompt text.
//
// NOTE: State is not thread-safe; the shell runs one command at a time.
type State struct {
	root   *filesystem.Inode
	cwd    *filesystem.Inode
	prompt string
}

var _ yshell.State = (*State)(nil)

// NewState returns a State whose cwd starts at root
func NewState(root *filesystem.Inode, prompt string) *State {
	return &State{root: root, cwd: root, prompt: prompt}
}

func (s *State) Cwd() *filesystem.Inode {
	return s.cwd
}

// SetCwd moves the cursor to node. A nil node moves it to root.
func (s *State) SetCwd(node *filesystem.Inode) {
	if node == nil {
		node = s.root
	}
	s.cwd = node
}

func (s *State) Root() *filesystem.Inode {
	return s.root
}

func (s *State) Prompt() string {
	return s.prompt
}

func (s *State) SetPrompt(text string) {
	s.prompt = text
}

// CwdScope temporarily moves the cwd cursor.
// Calling CwdScope.Close() unwinds all cleanup callbacks in reverse order,
// the first of which restores the prior cursor.
//
// NOTE: CwdScope itself is **not** thread-safe meaning references
// to it should not be shared between goroutines
type CwdScope struct {
	state    *State
	closeFns []func()
}

// EnterCwd saves the current cursor, moves it to node and returns the scope
// that restores it. If the saved cursor has been unlinked by the time the
// scope closes, the cursor falls back to root.
func (s *State) EnterCwd(node *filesystem.Inode) *CwdScope {
	logger := util.GetFlagLogger(util.CommandFlag, "State.EnterCwd")

	prev := s.cwd
	s.SetCwd(node)
	scope := &CwdScope{state: s}
	scope.AddClose(func() {
		if prev.IsDel() {
			logger.Trace().Str("path", prev.Path()).Msg("Saved cwd was removed; restoring root")
			prev = s.root
		}
		s.cwd = prev
	})
	logger.Trace().Str("from", prev.Path()).Str("to", s.cwd.Path()).Msg("Entered cwd scope")
	return scope
}

// AddClose pushes a cleanup callback onto the end of the stack.
func (sc *CwdScope) AddClose(fn func()) {
	sc.closeFns = append(sc.closeFns, fn)
}

// Close unwinds all cleanup callbacks in reverse order.
// Safe to call even if sc is nil or already closed, so you can
// `defer scope.Close()` unconditionally.
//
// Example:
//
//	scope := state.EnterCwd(dir)
//	defer scope.Close()
func (sc *CwdScope) Close() {
	if sc == nil {
		return
	}
	for i := len(sc.closeFns) - 1; i >= 0; i-- {
		sc.closeFns[i]()
	}
	sc.closeFns = nil
}
