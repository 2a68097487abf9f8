package yshell

// NodeInfo provides read-only access to node information for external consumers
type NodeInfo interface {
	// Name returns the node's name (last path component); "" for the root
	Name() string

	// ID returns the unique inode number
	ID() uint64

	// Path returns the absolute path cached at creation
	Path() string

	// IsDir reports whether the node is a directory
	IsDir() bool

	// Size returns the word count of a file or the entry count of a directory
	Size() uint64

	// IsDel returns true once the node has been unlinked from the tree
	IsDel() bool
}
