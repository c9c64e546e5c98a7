// Package stage bootstraps the per-run staging directory tree.
package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/knilch0r/binaryanalysis-ng/internal/dispatch"
)

// Root describes a fully-prepared staging tree.
type Root struct {
	Path    string // <baseunpackdirectory>/bang-scan-<uuid>
	Unpack  string
	Results string
	Logs    string
}

// New creates <baseDir>/bang-scan-<random>/{unpack,results,logs}, copies
// inputFile into unpack/ by its basename, and returns the staging root
// together with the seeded root task. The random suffix is a UUID so
// concurrent runs against the same baseDir never collide.
func New(baseDir, inputFile string) (Root, dispatch.Task, error) {
	root := Root{Path: filepath.Join(baseDir, "bang-scan-"+uuid.NewString())}
	root.Unpack = filepath.Join(root.Path, "unpack")
	root.Results = filepath.Join(root.Path, "results")
	root.Logs = filepath.Join(root.Path, "logs")

	for _, dir := range []string{root.Unpack, root.Results, root.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Root{}, dispatch.Task{}, fmt.Errorf("create staging dir %s: %w", dir, err)
		}
	}

	dst := filepath.Join(root.Unpack, filepath.Base(inputFile))
	if err := copyFile(inputFile, dst); err != nil {
		return Root{}, dispatch.Task{}, fmt.Errorf("stage input file: %w", err)
	}

	return root, dispatch.Task{Path: dst, Labels: []string{"root"}}, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return nil
}
