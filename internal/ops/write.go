package ops

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/robinrosenstock/vcard/internal/errors"
)

// defaultFileMode is used when the destination does not exist yet.
const defaultFileMode fs.FileMode = 0644

// WriteFile replaces path with data in one step: data is written to a temp file
// in the same directory, synced, and renamed over path. On failure the previous
// content of path is left untouched. An existing file's permissions are kept;
// a symlink destination is refused.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return errors.NewInvalidRequest("output path is required")
	}

	perm := defaultFileMode
	if info, err := os.Lstat(path); err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest(fmt.Sprintf("output path is a symlink: %s", path))
		}
		perm = info.Mode().Perm()
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.NewInternal(err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}

	tempPath := filepath.Join(dir, "."+filepath.Base(path)+"."+ulid.Make().String()+".tmp")
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create temp file: %w", err))
	}

	// Clean up temp file on failure (original file is preserved)
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}
	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close temp file: %w", err))
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to replace %s: %w", path, err))
	}

	success = true
	return nil
}
