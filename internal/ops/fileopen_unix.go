//go:build !windows

package ops

import (
	stderrors "errors"
	"os"
	"syscall"

	"github.com/robinrosenstock/vcard/internal/errors"
)

// openFileNoFollow creates the temp file that WriteFile later renames over the
// destination. A symlink already sitting at that name makes the open fail with
// ELOOP instead of writing contact data through it.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := syscall.Open(path, flag|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, uint32(perm))
	switch {
	case err == nil:
		return os.NewFile(uintptr(fd), path), nil
	case stderrors.Is(err, syscall.ELOOP):
		return nil, errors.NewInvalidRequest("refusing to write vCard data through a symlink: " + path)
	default:
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
}
