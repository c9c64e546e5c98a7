package unpack

import (
	"bytes"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// Gzip decompresses a single gzip member starting at offset. Consumed
// length is measured by handing the decompressor a bytes.Reader and
// checking how much of it was pulled before the member's trailing CRC and
// ISIZE fields were read; bytes.Reader never buffers ahead of what its
// caller actually asks for, so the delta is exact.
var Gzip = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}

	br := bytes.NewReader(data)
	gz, err := gzip.NewReader(br)
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("gzip: %v", err)}, nil
	}
	gz.Multistream(false)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return Verdict{}, fmt.Errorf("create target dir: %w", err)
	}

	name := "decompressed"
	if gz.Name != "" {
		name = gz.Name
	}
	if err := writeProducedFile(targetDir, name, gz, 0644); err != nil {
		gz.Close()
		return Verdict{Reason: fmt.Sprintf("gzip: %v", err)}, nil
	}
	if err := gz.Close(); err != nil {
		return Verdict{Reason: fmt.Sprintf("gzip: corrupt trailer: %v", err)}, nil
	}

	consumed := len(data) - br.Len()
	return Verdict{
		ConsumedLength: uint64(consumed),
		Produced:       []Produced{{Path: name, Labels: []string{"gzip"}}},
		NewLabels:      []string{"gzip"},
	}, nil
})
