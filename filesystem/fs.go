package filesystem

import (
	"path"
	"strings"
	"sync/atomic"

	"github.com/brettbedarf/yshell/internal/util"
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v3"
)

// FileSystem owns every inode of one in-memory tree. Directory entries hold
// inode numbers that are resolved through the inodes arena.
type FileSystem struct {
	id      uuid.UUID                    // Identifies this tree in logs
	root    *Inode                       // Root of the tree; its own parent
	lastIno atomic.Uint64                // Last inode number assigned
	inodes  *xsync.MapOf[uint64, *Inode] // arena of live inodes by number
}

func NewFS() *FileSystem {
	logger := util.GetLogger("FS.New")

	fs := &FileSystem{
		id:     uuid.New(),
		inodes: xsync.NewMapOf[uint64, *Inode](),
	}
	fs.lastIno.Store(fuse.FUSE_ROOT_ID)

	root := newInode(fuse.FUSE_ROOT_ID, DirKind, "", "/")
	fs.wireSpecialLinks(root, root)
	fs.inodes.Store(root.ID(), root)
	fs.root = root

	logger.Debug().Stringer("fs", fs.id).Msg("Created filesystem")
	return fs
}

// ID returns the unique id of this tree instance
func (fs *FileSystem) ID() uuid.UUID {
	return fs.id
}

func (fs *FileSystem) Root() *Inode {
	return fs.root
}

// Len returns the number of inodes held by the arena
func (fs *FileSystem) Len() int {
	return fs.inodes.Size()
}

// Get returns the live inode numbered ino
func (fs *FileSystem) Get(ino uint64) (*Inode, bool) {
	return fs.inodes.Load(ino)
}

// valid reports whether n is a live node of this tree
func (fs *FileSystem) valid(n *Inode) bool {
	if n == nil || n.IsDel() {
		return false
	}
	live, ok := fs.inodes.Load(n.ID())
	return ok && live == n
}

// release drops n from the arena and marks it deleted
func (fs *FileSystem) release(n *Inode) {
	fs.inodes.Delete(n.ID())
	n.isDel.Store(true)
}

// Parent returns the directory n's ".." entry refers to; root is its own parent.
// Files have no ".." entry and fail with ErrNotADirectory.
func (fs *FileSystem) Parent(n *Inode) (*Inode, error) {
	return fs.Lookup(n, ParentName)
}

// IsAncestor reports whether ancestor is node or, following ".." links, one
// of node's ancestors. Files have no ".." entry so only match themselves.
func (fs *FileSystem) IsAncestor(ancestor, node *Inode) bool {
	if ancestor == nil || node == nil {
		return false
	}
	for cur := node; ; {
		if cur.ID() == ancestor.ID() {
			return true
		}
		if cur == fs.root || !cur.IsDir() {
			return false
		}
		parent, err := fs.Parent(cur)
		if err != nil {
			return false
		}
		cur = parent
	}
}

// MakeDirs creates all missing directories in p starting at root and returns
// the leaf. It is equivalent to `mkdir -p` and does not error if the leaf
// already exists.
func (fs *FileSystem) MakeDirs(p string) (*Inode, error) {
	logger := util.GetFlagLogger(util.InodeFlag, "FS.MakeDirs")

	cur := fs.root
	newCnt := 0
	for _, name := range components(p) {
		child, err := fs.Lookup(cur, name)
		if err == nil {
			if !child.IsDir() {
				return nil, pathError(child.Path(), ErrNotADirectory)
			}
			cur = child
			continue
		}
		if cur, err = fs.CreateDirectory(cur, name); err != nil {
			return nil, err
		}
		newCnt++
	}
	if newCnt > 0 {
		logger.Debug().Str("path", p).Int("created", newCnt).Msg("Created missing directories")
	}
	return cur, nil
}

// Split separates p into the path of its parent directory and its final
// component. Trailing slashes are ignored. A path without a slash has an
// empty dir, meaning the current directory; "/" has an empty base.
func Split(p string) (dir, base string) {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		if p == "" {
			return "", ""
		}
		return "/", ""
	}
	return path.Split(trimmed)
}

// components splits p on "/" into its non-empty components
func components(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}
