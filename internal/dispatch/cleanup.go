package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
)

// removeFailedAttempt forcibly restores writable/executable mode on every
// non-symlink entry under dir (handlers can leave read-only files behind)
// and then removes dir recursively. Symlinks are never chmod'ed, since
// that would affect the link's target rather than the link itself.
func removeFailedAttempt(dir string) error {
	if _, err := os.Lstat(dir); os.IsNotExist(err) {
		return nil
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // best-effort: keep walking, Rm will surface what's left
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		mode := info.Mode().Perm() | 0700
		return os.Chmod(path, mode)
	})
	if err != nil {
		return fmt.Errorf("chmod-walk %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %s: %w", dir, err)
	}
	return nil
}
