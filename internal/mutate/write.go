package mutate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsonai/jsonai/internal/core"
)

// WriteAtomic serializes data to a temp file in the same directory as path,
// syncs it, and renames it over path -- so a reader never observes a
// partially written file and a crash mid-write leaves the original intact.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return core.NewEngineError(fmt.Sprintf("creating temp file for %s", path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.NewEngineError(fmt.Sprintf("writing temp file for %s", path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return core.NewEngineError(fmt.Sprintf("syncing temp file for %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return core.NewEngineError(fmt.Sprintf("closing temp file for %s", path), err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return core.NewEngineError(fmt.Sprintf("replacing %s", path), err)
	}
	return nil
}
