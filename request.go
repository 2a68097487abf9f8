package yshell

// NodeRequest describes a node to create in the tree before the shell starts
type NodeRequest struct {
	Path     string
	Type     NodeType
	UUID     string   // Identifies the request in logs
	Contents []string // Words written to a file node; ignored for directories
}

// NodeType valid types are FileNodeType "file", DirNodeType "dir"
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// Valid reports whether t is one of the known node types
func (t NodeType) Valid() bool {
	switch t {
	case FileNodeType, DirNodeType:
		return true
	}
	return false
}
