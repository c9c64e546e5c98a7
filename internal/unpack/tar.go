package unpack

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Tar walks tar entries starting at offset until the archive's two-block
// zero trailer. Consumed length is measured the same way as Gzip and
// Bzip2: archive/tar reads sequentially from the bytes.Reader and consumes
// exactly the header/data/padding blocks plus the terminating zero blocks
// it inspects to confirm end-of-archive.
var Tar = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}

	br := bytes.NewReader(data)
	tr := tar.NewReader(br)

	var produced []Produced
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Verdict{Reason: fmt.Sprintf("tar: %v", err)}, nil
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(filepath.Join(targetDir, hdr.Name), 0755); err != nil {
				return Verdict{Reason: fmt.Sprintf("tar: %v", err)}, nil
			}
		case tar.TypeReg, tar.TypeRegA:
			if err := writeProducedFile(targetDir, hdr.Name, tr, os.FileMode(hdr.Mode&0777)|0200); err != nil {
				return Verdict{Reason: fmt.Sprintf("tar: %v", err)}, nil
			}
			produced = append(produced, Produced{Path: hdr.Name, Labels: nil})
		case tar.TypeSymlink:
			path := filepath.Join(targetDir, hdr.Name)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return Verdict{Reason: fmt.Sprintf("tar: %v", err)}, nil
			}
			if err := os.Symlink(hdr.Linkname, path); err != nil {
				return Verdict{Reason: fmt.Sprintf("tar: %v", err)}, nil
			}
			produced = append(produced, Produced{Path: hdr.Name, Labels: []string{"symbolic link"}})
		default:
			// Unsupported entry type (device, fifo, ...): skip, do not fail
			// the whole archive over one exotic entry.
		}
	}

	consumed := len(data) - br.Len()

	return Verdict{
		ConsumedLength: uint64(consumed),
		Produced:       produced,
		NewLabels:      []string{"tar"},
	}, nil
})
