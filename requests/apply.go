package requests

import (
	"fmt"

	"github.com/brettbedarf/yshell"
	"github.com/brettbedarf/yshell/filesystem"
	"github.com/brettbedarf/yshell/internal/util"
)

// Stats counts the nodes Apply added and the requests it could not apply
type Stats struct {
	Dirs   int
	Files  int
	Failed int
}

// Apply adds the requested nodes to fs. Directory requests are applied before
// file requests; missing parent directories are created. A failed request is
// logged and skipped.
func Apply(fs *filesystem.FileSystem, reqs []*yshell.NodeRequest) Stats {
	logger := util.GetFlagLogger(util.RequestsFlag, "Requests.Apply")

	var stats Stats
	for _, req := range reqs {
		if req.Type != yshell.DirNodeType {
			continue
		}
		if _, err := fs.MakeDirs(req.Path); err != nil {
			logger.Warn().Str("uuid", req.UUID).Str("path", req.Path).Err(err).Msg("Failed to add directory request")
			stats.Failed++
			continue
		}
		stats.Dirs++
	}
	for _, req := range reqs {
		if req.Type != yshell.FileNodeType {
			continue
		}
		if err := addFile(fs, req); err != nil {
			logger.Warn().Str("uuid", req.UUID).Str("path", req.Path).Err(err).Msg("Failed to add file request")
			stats.Failed++
			continue
		}
		stats.Files++
	}

	logger.Info().Int("directories", stats.Dirs).Int("files", stats.Files).Int("failed", stats.Failed).
		Msg("Added new nodes to filesystem")
	return stats
}

func addFile(fs *filesystem.FileSystem, req *yshell.NodeRequest) error {
	dir, name := filesystem.Split(req.Path)
	if name == "" {
		return fmt.Errorf("%s: %w", req.Path, filesystem.ErrInvalidName)
	}
	parent, err := fs.MakeDirs(dir)
	if err != nil {
		return err
	}
	f, err := fs.CreateFile(parent, name)
	if err != nil {
		return err
	}
	return f.Write(req.Contents)
}
