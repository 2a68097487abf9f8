package yshell

import "github.com/brettbedarf/yshell/filesystem"

// State is the mutable shell state command handlers read and update.
type State interface {
	// Cwd returns the current working directory cursor
	Cwd() *filesystem.Inode
	SetCwd(node *filesystem.Inode)
	// Root returns the tree's root directory
	Root() *filesystem.Inode
	Prompt() string
	SetPrompt(text string)
}

// Tree is the narrow surface of the filesystem core the command layer uses.
type Tree interface {
	Root() *filesystem.Inode
	Resolve(path string, start *filesystem.Inode) (*filesystem.Inode, error)
	ResolveDir(path string, start *filesystem.Inode) (*filesystem.Inode, error)
	ResolveFile(path string, start *filesystem.Inode) (*filesystem.Inode, error)
	Lookup(dir *filesystem.Inode, name string) (*filesystem.Inode, error)
	Parent(node *filesystem.Inode) (*filesystem.Inode, error)
	CreateFile(dir *filesystem.Inode, name string) (*filesystem.Inode, error)
	CreateDirectory(dir *filesystem.Inode, name string) (*filesystem.Inode, error)
	Unlink(dir *filesystem.Inode, name string) error
	ListEntries(dir *filesystem.Inode) ([]filesystem.Entry, error)
	ListRecursive(dir *filesystem.Inode, visit filesystem.VisitFunc) error
	DeleteRecursive(dir *filesystem.Inode) error
	Remove(parent *filesystem.Inode, name string) error
	IsAncestor(ancestor, node *filesystem.Inode) bool
}

var _ Tree = (*filesystem.FileSystem)(nil)
var _ NodeInfo = (*filesystem.Inode)(nil)
