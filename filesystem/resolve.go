package filesystem

import (
	"strings"

	"github.com/brettbedarf/yshell/internal/util"
)

// Resolve walks p one component at a time from start, or from root when p
// is absolute, and returns the node it names. The result may be a file or a
// directory; kind checks are left to the caller.
//
// Fails with ErrNotFound when a component is missing or the walk reaches a
// node that is no longer part of the tree, and with ErrNotADirectory when a
// non-final component names a file.
func (fs *FileSystem) Resolve(p string, start *Inode) (*Inode, error) {
	logger := util.GetFlagLogger(util.ResolveFlag, "FS.Resolve")

	cur := start
	if strings.HasPrefix(p, "/") {
		cur = fs.root
	}
	for _, name := range components(p) {
		if !fs.valid(cur) {
			logger.Trace().Str("path", p).Str("at", name).Msg("Walk reached an invalid node")
			return nil, pathError(p, ErrNotFound)
		}
		if !cur.IsDir() {
			return nil, pathError(p, ErrNotADirectory)
		}
		next, err := fs.Lookup(cur, name)
		if err != nil {
			logger.Trace().Str("path", p).Str("at", name).Err(err).Msg("Lookup failed")
			return nil, pathError(p, ErrNotFound)
		}
		cur = next
	}
	if !fs.valid(cur) {
		return nil, pathError(p, ErrNotFound)
	}
	logger.Trace().Str("path", p).Uint64("ino", cur.ID()).Msg("Resolved")
	return cur, nil
}

// ResolveDir resolves p from start and requires the result to be a directory
func (fs *FileSystem) ResolveDir(p string, start *Inode) (*Inode, error) {
	node, err := fs.Resolve(p, start)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, pathError(p, ErrNotADirectory)
	}
	return node, nil
}

// ResolveFile resolves p from start and requires the result to be a file
func (fs *FileSystem) ResolveFile(p string, start *Inode) (*Inode, error) {
	node, err := fs.Resolve(p, start)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, pathError(p, ErrNotAFile)
	}
	return node, nil
}
