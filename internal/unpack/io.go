package unpack

import (
	"fmt"
	"io"
	"os"
)

// ReadRemaining reads inputPath from offset to EOF into memory. Reference
// handlers operate on the tail of the input as a byte slice so format
// parsers (archive/tar, archive/zip, the zstd frame reader) can look ahead
// and behind without juggling a seekable stream themselves.
func ReadRemaining(inputPath string, offset int64) ([]byte, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek input: %w", err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
