package filesystem

import (
	"github.com/brettbedarf/yshell/internal/util"
)

// VisitFunc receives a directory and its non-link entries sorted by name.
// Returning an error stops the walk.
type VisitFunc func(dir *Inode, entries []Entry) error

// ListRecursive walks the tree under dir in pre-order: dir is visited before
// any of its subdirectories, which are visited in name order. Link entries are
// neither listed nor followed.
func (fs *FileSystem) ListRecursive(dir *Inode, visit VisitFunc) error {
	logger := util.GetFlagLogger(util.TraverseFlag, "FS.ListRecursive")

	entries, err := fs.ListEntries(dir)
	if err != nil {
		return err
	}
	proper := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Link {
			proper = append(proper, e)
		}
	}
	logger.Trace().Str("path", dir.Path()).Int("entries", len(proper)).Msg("Visiting directory")
	if err := visit(dir, proper); err != nil {
		return err
	}
	for _, e := range proper {
		if !e.IsSubdir() {
			continue
		}
		if err := fs.ListRecursive(e.Node, visit); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRecursive empties dir bottom-up: every subdirectory is emptied and
// unlinked before dir's own files are unlinked. dir itself stays linked in
// its parent; unlinking it is the caller's job.
func (fs *FileSystem) DeleteRecursive(dir *Inode) error {
	logger := util.GetFlagLogger(util.TraverseFlag, "FS.DeleteRecursive")

	subdirs, err := fs.ListSubdirectories(dir)
	if err != nil {
		return err
	}
	for _, sd := range subdirs {
		if err := fs.DeleteRecursive(sd.Node); err != nil {
			return err
		}
		if err := fs.Unlink(dir, sd.Name); err != nil {
			return err
		}
	}

	files, err := fs.ListFiles(dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := fs.Unlink(dir, f.Name); err != nil {
			return err
		}
	}
	logger.Trace().Str("path", dir.Path()).Int("subdirs", len(subdirs)).Int("files", len(files)).Msg("Emptied directory")
	return nil
}

// Remove unlinks the entry name from parent. A directory must hold nothing
// but its "." and ".." entries or Remove fails with ErrDirectoryNotEmpty.
func (fs *FileSystem) Remove(parent *Inode, name string) error {
	logger := util.GetFlagLogger(util.TraverseFlag, "FS.Remove")

	if _, err := fs.dirOf(parent); err != nil {
		return err
	}
	if name == SelfName || name == ParentName || name == "" {
		return pathError(childPath(parent, name), ErrInvalidName)
	}
	child, err := fs.Lookup(parent, name)
	if err != nil {
		return pathError(childPath(parent, name), err)
	}
	if child.IsDir() {
		entries, err := fs.ListEntries(child)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.Link {
				logger.Trace().Str("path", child.Path()).Str("entry", e.Name).Msg("Refusing to remove")
				return pathError(child.Path(), ErrDirectoryNotEmpty)
			}
		}
	}
	return fs.Unlink(parent, name)
}
