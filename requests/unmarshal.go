package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/internal/util"
)

var (
	ErrInvalidType = errors.New("invalid node type")
	ErrInvalidPath = errors.New("node path must be absolute")
)

// LoadFile reads a list of node requests from path.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadFile(path string) ([]*yshell.NodeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return UnmarshalYAML(data)
	case ".json":
		return UnmarshalJSON(data)
	default:
		return nil, fmt.Errorf("unknown nodes file extension: %s", path)
	}
}

// UnmarshalJSON decodes a JSON array of node requests
func UnmarshalJSON(data []byte) ([]*yshell.NodeRequest, error) {
	var dtos []NodeRequestDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	return convertAll(dtos)
}

// UnmarshalYAML decodes a YAML sequence of node requests
func UnmarshalYAML(data []byte) ([]*yshell.NodeRequest, error) {
	var dtos []NodeRequestDTO
	if err := yaml.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	return convertAll(dtos)
}

// convertAll converts every DTO, collecting the failures of invalid entries
// while keeping the valid ones.
func convertAll(dtos []NodeRequestDTO) ([]*yshell.NodeRequest, error) {
	logger := util.GetFlagLogger(util.RequestsFlag, "Requests.Convert")

	reqs := make([]*yshell.NodeRequest, 0, len(dtos))
	var errs []error
	for i, dto := range dtos {
		req, err := convertNodeDTO(dto)
		if err != nil {
			errs = append(errs, fmt.Errorf("node %d: %w", i, err))
			continue
		}
		logger.Trace().Str("uuid", req.UUID).Str("path", req.Path).Str("type", string(req.Type)).Msg("Processed node request")
		reqs = append(reqs, req)
	}
	return reqs, errors.Join(errs...)
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) (*yshell.NodeRequest, error) {
	if !dto.Type.Valid() {
		return nil, fmt.Errorf("%q: %w", dto.Type, ErrInvalidType)
	}
	if !strings.HasPrefix(dto.Path, "/") {
		return nil, fmt.Errorf("%q: %w", dto.Path, ErrInvalidPath)
	}
	contents := dto.Contents
	if contents == nil {
		contents = []string{}
	}
	return &yshell.NodeRequest{
		Path:     dto.Path,
		Type:     dto.Type,
		UUID:     valueOrDefault(dto.UUID, uuid.New().String()),
		Contents: contents,
	}, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
