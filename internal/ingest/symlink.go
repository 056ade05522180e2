package ingest

import (
	"fmt"
	"os"
	"path/filepath"
)

// symlinkResolver tracks visited real paths to detect symlink loops while
// walking a directory tree for JSON input files. Single-threaded: directory
// walks are sequential, unlike the bounded-parallel file reads that follow.
type symlinkResolver struct {
	visited map[string]bool
}

func newSymlinkResolver() *symlinkResolver {
	return &symlinkResolver{visited: make(map[string]bool)}
}

// resolve follows path through any symlinks and reports whether the
// resolved target has already been visited in this walk (a loop) or is
// dangling.
func (s *symlinkResolver) resolve(path string) (realPath string, isLoop bool, err error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, fmt.Errorf("dangling symlink %s: %w", path, err)
		}
		return "", false, fmt.Errorf("resolving symlink %s: %w", path, err)
	}
	if s.visited[resolved] {
		return resolved, true, nil
	}
	return resolved, false, nil
}

func (s *symlinkResolver) markVisited(realPath string) {
	s.visited[realPath] = true
}
