package unpack

import (
	"bytes"
	"fmt"
	"os"

	"github.com/knilch0r/binaryanalysis-ng/pkg/archive"
)

// Zstd decompresses a single zstd frame starting at offset. Consumed
// length is the frame's exact byte length as computed by walking its Data
// Blocks (pkg/archive), not the declared Frame_Content_Size, so frames
// without that optional field are still carved correctly.
var Zstd = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}

	payload, consumed, err := archive.ReadAll(data)
	if err != nil {
		return Verdict{Reason: fmt.Sprintf("zstd: %v", err)}, nil
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return Verdict{}, fmt.Errorf("create target dir: %w", err)
	}

	const name = "decompressed"
	if err := writeProducedFile(targetDir, name, bytes.NewReader(payload), 0644); err != nil {
		return Verdict{Reason: fmt.Sprintf("zstd: %v", err)}, nil
	}

	return Verdict{
		ConsumedLength: uint64(consumed),
		Produced:       []Produced{{Path: name, Labels: []string{"zstd"}}},
		NewLabels:      []string{"zstd"},
	}, nil
})
