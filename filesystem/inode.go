package filesystem

import (
	"fmt"
	"os"
	"slices"
	"sync/atomic"
	"time"

	"github.com/brettbedarf/yshell/internal/util"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Kind tags an Inode as a file or a directory. The set is closed.
type Kind uint8

const (
	FileKind Kind = iota + 1
	DirKind
)

func (k Kind) String() string {
	switch k {
	case FileKind:
		return "file"
	case DirKind:
		return "directory"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Default permission bits; permissions are not enforced
const (
	DefaultFilePerms = 0o644
	DefaultDirPerms  = 0o755
)

type Inode struct {
	// Low-level fuse wire protocol attributes. Ino is the inode's unique id.
	attr  *fuse.Attr
	kind  Kind
	name  string // Entry name in the parent at creation; "" for root
	path  string // Absolute path cached at creation
	isDel atomic.Bool

	// Exactly one of these is set, matching kind
	words []string
	dir   *directory
}

func newInode(ino uint64, kind Kind, name, path string) *Inode {
	logger := util.GetFlagLogger(util.InodeFlag, "Inode.New")

	n := &Inode{kind: kind, name: name, path: path}
	switch kind {
	case FileKind:
		n.attr = newDefaultAttr(ino, fuse.S_IFREG|DefaultFilePerms)
		n.words = []string{}
	case DirKind:
		n.attr = newDefaultAttr(ino, fuse.S_IFDIR|DefaultDirPerms)
		n.dir = newDirectory()
	default:
		panic(fmt.Sprintf("newInode: invalid kind %d", kind))
	}
	logger.Trace().Uint64("ino", ino).Stringer("kind", kind).Str("path", path).Msg("Inode created")
	return n
}

// ID returns the inode number, unique within its FileSystem
func (n *Inode) ID() uint64 {
	return n.attr.Ino
}

func (n *Inode) Kind() Kind {
	return n.kind
}

func (n *Inode) IsDir() bool {
	return n.kind == DirKind
}

// Name returns the node's immutable name.
func (n *Inode) Name() string {
	return n.name
}

// Path returns the absolute path set at creation. Paths are never updated.
func (n *Inode) Path() string {
	return n.path
}

// IsDel reports whether the node has been unlinked from its parent
func (n *Inode) IsDel() bool {
	return n.isDel.Load()
}

// Attr returns a snapshot of the fuse attributes with Size refreshed
func (n *Inode) Attr() fuse.Attr {
	attr := *n.attr
	attr.Size = n.Size()
	return attr
}

// Size is the number of words in a file, or the number of entries
// (including "." and "..") in a directory.
func (n *Inode) Size() uint64 {
	switch n.kind {
	case FileKind:
		return uint64(len(n.words))
	case DirKind:
		return uint64(len(n.dir.entries))
	default:
		return 0
	}
}

// Read returns a copy of the file's words
func (n *Inode) Read() ([]string, error) {
	if n.kind != FileKind {
		return nil, pathError(n.path, ErrNotAFile)
	}
	touch(&n.attr.Atime, &n.attr.Atimensec)
	return slices.Clone(n.words), nil
}

// Write replaces the file's contents wholesale
func (n *Inode) Write(words []string) error {
	logger := util.GetFlagLogger(util.InodeFlag, "Inode.Write")

	if n.kind != FileKind {
		return pathError(n.path, ErrNotAFile)
	}
	n.words = slices.Clone(words)
	if n.words == nil {
		n.words = []string{}
	}
	n.attr.Size = uint64(len(n.words))
	touch(&n.attr.Mtime, &n.attr.Mtimensec)
	logger.Trace().Uint64("ino", n.ID()).Int("words", len(n.words)).Msg("File rewritten")
	return nil
}

func touch(sec *uint64, nsec *uint32) {
	now := time.Now()
	*sec = uint64(now.Unix())
	*nsec = uint32(now.Nanosecond())
}

// newDefaultAttr returns the default attributes for a new inode
func newDefaultAttr(ino uint64, mode uint32) *fuse.Attr {
	now := time.Now()
	return &fuse.Attr{
		Ino:  ino,
		Mode: mode,
		// Links are counted as entries referencing the inode get installed
		Nlink: 0,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     uint64(now.Unix()),
		Mtime:     uint64(now.Unix()),
		Ctime:     uint64(now.Unix()),
		Atimensec: uint32(now.Nanosecond()),
		Mtimensec: uint32(now.Nanosecond()),
		Ctimensec: uint32(now.Nanosecond()),
		Blksize:   4096,
	}
}
