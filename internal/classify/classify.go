// Package classify performs the pre-scan checks every task goes through
// before the sliding-window scanner ever touches its bytes: file-type
// short-circuits and the triple-hash pass.
package classify

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
)

const hashChunkSize = 10 * 1024 * 1024

// Classification is the outcome of the pre-scan check. When Skip is true,
// the file must not be scanned; Labels and Size are already final.
type Classification struct {
	Skip   bool
	Labels []string
	Size   int64
	MD5    string
	SHA1   string
	SHA256 string
}

// File inspects path's mode and, for ordinary non-empty files, computes
// MD5/SHA-1/SHA-256 in a single streaming pass.
func File(path string) (Classification, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return Classification{}, fmt.Errorf("stat %s: %w", path, err)
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		return Classification{Skip: true}, nil
	case mode&os.ModeSymlink != 0:
		return Classification{Skip: true, Labels: []string{"symbolic link"}}, nil
	case mode&os.ModeSocket != 0:
		return Classification{Skip: true, Labels: []string{"socket"}}, nil
	case mode&os.ModeNamedPipe != 0:
		return Classification{Skip: true, Labels: []string{"fifo"}}, nil
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return Classification{Skip: true, Labels: []string{"character device"}}, nil
	case mode&os.ModeDevice != 0:
		return Classification{Skip: true, Labels: []string{"block device"}}, nil
	}

	if info.Size() == 0 {
		return Classification{Skip: true, Labels: []string{"empty"}, Size: 0}, nil
	}

	md5h, sha1h, sha256h := md5.New(), sha1.New(), sha256.New()
	if err := hashFile(path, md5h, sha1h, sha256h); err != nil {
		return Classification{}, err
	}

	return Classification{
		Size:   info.Size(),
		MD5:    fmt.Sprintf("%x", md5h.Sum(nil)),
		SHA1:   fmt.Sprintf("%x", sha1h.Sum(nil)),
		SHA256: fmt.Sprintf("%x", sha256h.Sum(nil)),
	}, nil
}

// hashFile streams path through every hasher in one pass via io.MultiWriter
// so the file is read from disk exactly once regardless of digest count.
func hashFile(path string, hashers ...hash.Hash) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	writers := make([]io.Writer, len(hashers))
	for i, h := range hashers {
		writers[i] = h
	}
	mw := io.MultiWriter(writers...)

	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(mw, f, buf); err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	return nil
}

// TextProbe reports whether data contains a non-printable byte. The
// scanner uses this per chunk and latches to "binary" on the first hit,
// never un-latching, so a single scan suffices without a second pass.
func TextProbe(data []byte) (nonPrintableSeen bool) {
	for _, b := range data {
		if b == '\n' || b == '\r' || b == '\t' {
			continue
		}
		if b < 0x20 || b >= 0x7f {
			return true
		}
	}
	return false
}
