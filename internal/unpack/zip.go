package unpack

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var eocdSignature = []byte{0x50, 0x4b, 0x05, 0x06}

// Zip locates the end-of-central-directory record starting from offset,
// opens the archive over exactly that byte range, and extracts every
// entry. Consumed length is the EOCD's offset plus its own length
// (including the trailing comment), which is how far past the candidate
// offset the zip's own bookkeeping says the archive extends.
var Zip = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}

	eocd := bytes.LastIndex(data, eocdSignature)
	if eocd < 0 {
		return Verdict{Reason: "zip: no end-of-central-directory record found"}, nil
	}
	if eocd+22 > len(data) {
		return Verdict{Reason: "zip: truncated end-of-central-directory record"}, nil
	}
	commentLen := int(binary.LittleEndian.Uint16(data[eocd+20 : eocd+22]))
	end := eocd + 22 + commentLen
	if end > len(data) {
		return Verdict{Reason: "zip: end-of-central-directory comment extends past input"}, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data[:end]), int64(end))
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("zip: %v", err)}, nil
	}

	var produced []Produced
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			if err := os.MkdirAll(filepath.Join(targetDir, f.Name), 0755); err != nil {
				return Verdict{Reason: fmt.Sprintf("zip: %v", err)}, nil
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return Verdict{Reason: fmt.Sprintf("zip: %v", err)}, nil
		}
		writeErr := writeProducedFile(targetDir, f.Name, rc, f.Mode()|0200)
		rc.Close()
		if writeErr != nil {
			return Verdict{Reason: fmt.Sprintf("zip: %v", writeErr)}, nil
		}
		produced = append(produced, Produced{Path: f.Name})
	}

	return Verdict{
		ConsumedLength: uint64(end),
		Produced:       produced,
		NewLabels:      []string{"zip"},
	}, nil
})
