package filesystem

import (
	"fmt"
	"slices"
	"strings"

	"github.com/brettbedarf/yshell/internal/util"
)

// Names of the link entries every directory carries
const (
	SelfName   = "."
	ParentName = ".."
)

type direntKind uint8

const (
	childEntry  direntKind = iota // Ownership edge to a child node
	selfEntry                     // "." link back to the directory itself
	parentEntry                   // ".." link to the parent directory
)

// dirent references a node by inode number; the FileSystem arena owns nodes
type dirent struct {
	ino  uint64
	kind direntKind
}

func (d dirent) isLink() bool {
	return d.kind != childEntry
}

type directory struct {
	entries map[string]dirent
}

func newDirectory() *directory {
	return &directory{entries: make(map[string]dirent)}
}

// Entry is a directory entry resolved to its node
type Entry struct {
	Name string
	Node *Inode
	Link bool // "." or ".."; never an ownership edge
}

// IsSubdir reports whether the entry is a proper subdirectory, i.e. a
// directory reached through a child entry rather than a link.
func (e Entry) IsSubdir() bool {
	return !e.Link && e.Node.IsDir()
}

// dirOf returns the directory contents of n, or an error if n is not a live
// directory in this tree.
func (fs *FileSystem) dirOf(n *Inode) (*directory, error) {
	if !fs.valid(n) {
		return nil, ErrNotFound
	}
	switch n.kind {
	case DirKind:
		return n.dir, nil
	case FileKind:
		return nil, pathError(n.path, ErrNotADirectory)
	default:
		return nil, pathError(n.path, ErrWrongKind)
	}
}

// Lookup returns the node named name in dir.
// A missing entry, or an entry whose node has left the arena, is ErrNotFound.
func (fs *FileSystem) Lookup(dir *Inode, name string) (*Inode, error) {
	d, err := fs.dirOf(dir)
	if err != nil {
		return nil, err
	}
	ent, ok := d.entries[name]
	if !ok {
		return nil, ErrNotFound
	}
	node, ok := fs.inodes.Load(ent.ino)
	if !ok {
		return nil, ErrNotFound
	}
	return node, nil
}

// CreateFile creates a file named name in dir.
// If a file of that name already exists it is returned as the overwrite
// target. An existing directory fails with ErrAlreadyExists.
func (fs *FileSystem) CreateFile(dir *Inode, name string) (*Inode, error) {
	logger := util.GetFlagLogger(util.InodeFlag, "FS.CreateFile")

	d, err := fs.dirOf(dir)
	if err != nil {
		return nil, err
	}
	if existing, err := fs.Lookup(dir, name); err == nil {
		if existing.IsDir() {
			return nil, pathError(childPath(dir, name), ErrAlreadyExists)
		}
		logger.Trace().Str("path", existing.Path()).Msg("Reusing existing file")
		return existing, nil
	}
	if err := validName(name); err != nil {
		return nil, err
	}

	node := newInode(fs.lastIno.Add(1), FileKind, name, childPath(dir, name))
	fs.link(d, name, node)
	logger.Debug().Str("path", node.Path()).Uint64("ino", node.ID()).Msg("Created file")
	return node, nil
}

// CreateDirectory creates an empty directory named name in dir.
// Any existing entry of that name fails with ErrAlreadyExists.
func (fs *FileSystem) CreateDirectory(dir *Inode, name string) (*Inode, error) {
	logger := util.GetFlagLogger(util.InodeFlag, "FS.CreateDirectory")

	d, err := fs.dirOf(dir)
	if err != nil {
		return nil, err
	}
	if _, exists := d.entries[name]; exists {
		return nil, pathError(childPath(dir, name), ErrAlreadyExists)
	}
	if err := validName(name); err != nil {
		return nil, err
	}

	node := newInode(fs.lastIno.Add(1), DirKind, name, childPath(dir, name))
	fs.wireSpecialLinks(node, dir)
	fs.link(d, name, node)
	logger.Debug().Str("path", node.Path()).Uint64("ino", node.ID()).Msg("Created directory")
	return node, nil
}

// Unlink removes the entry name from dir. It neither recurses nor checks
// emptiness; the unlinked node is released from the arena.
func (fs *FileSystem) Unlink(dir *Inode, name string) error {
	logger := util.GetFlagLogger(util.InodeFlag, "FS.Unlink")

	d, err := fs.dirOf(dir)
	if err != nil {
		return err
	}
	ent, ok := d.entries[name]
	if !ok {
		return pathError(childPath(dir, name), ErrNotFound)
	}
	if ent.isLink() {
		return pathError(childPath(dir, name), ErrInvalidName)
	}
	delete(d.entries, name)

	if child, ok := fs.inodes.Load(ent.ino); ok {
		if child.IsDir() {
			// child's ".." no longer references dir
			dir.attr.Nlink--
		}
		child.attr.Nlink--
		fs.release(child)
	}
	logger.Debug().Str("path", childPath(dir, name)).Uint64("ino", ent.ino).Msg("Unlinked entry")
	return nil
}

// ListEntries returns every entry of dir, including "." and "..",
// sorted by name.
func (fs *FileSystem) ListEntries(dir *Inode) ([]Entry, error) {
	d, err := fs.dirOf(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(d.entries))
	for name, ent := range d.entries {
		node, ok := fs.inodes.Load(ent.ino)
		if !ok {
			// node already left the arena
			continue
		}
		entries = append(entries, Entry{Name: name, Node: node, Link: ent.isLink()})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// ListSubdirectories returns the proper subdirectories of dir, sorted by name
func (fs *FileSystem) ListSubdirectories(dir *Inode) ([]Entry, error) {
	return fs.listFiltered(dir, DirKind)
}

// ListFiles returns the files of dir, sorted by name
func (fs *FileSystem) ListFiles(dir *Inode) ([]Entry, error) {
	return fs.listFiltered(dir, FileKind)
}

func (fs *FileSystem) listFiltered(dir *Inode, kind Kind) ([]Entry, error) {
	entries, err := fs.ListEntries(dir)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(entries, func(e Entry) bool {
		return e.Link || e.Node.Kind() != kind
	}), nil
}

// wireSpecialLinks installs "." and ".." in self. It is the only place link
// entries are created.
func (fs *FileSystem) wireSpecialLinks(self, parent *Inode) {
	self.dir.entries[SelfName] = dirent{ino: self.ID(), kind: selfEntry}
	self.dir.entries[ParentName] = dirent{ino: parent.ID(), kind: parentEntry}
	self.attr.Nlink++
	parent.attr.Nlink++
}

func (fs *FileSystem) link(d *directory, name string, node *Inode) {
	d.entries[name] = dirent{ino: node.ID(), kind: childEntry}
	node.attr.Nlink++
	fs.inodes.Store(node.ID(), node)
}

func validName(name string) error {
	if name == "" || name == SelfName || name == ParentName || strings.Contains(name, "/") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

func childPath(dir *Inode, name string) string {
	if dir.path == "/" {
		return "/" + name
	}
	return dir.path + "/" + name
}
