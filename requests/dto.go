package requests

import (
	"github.com/brettbedarf/yshell"
)

// NodeRequestDTO is the YAML/JSON representation of [yshell.NodeRequest]
type NodeRequestDTO struct {
	Path     string          `yaml:"path" json:"path"`
	Type     yshell.NodeType `yaml:"type" json:"type"`
	UUID     *string         `yaml:"uuid,omitempty" json:"uuid,omitempty"`         // Optional id to correlate the request in logs
	Contents []string        `yaml:"contents,omitempty" json:"contents,omitempty"` // Words of a file node
}
