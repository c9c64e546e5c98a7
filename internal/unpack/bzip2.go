package unpack

import (
	"bytes"
	"compress/bzip2"
	"fmt"
	"os"
)

// Bzip2 decompresses a bzip2 stream to EOF starting at offset. Consumed
// length is the number of input bytes the decompressor actually read, via
// the same bytes.Reader-delta technique used by Gzip. After a stream's end
// marker compress/bzip2 reads on to look for a concatenated "BZ" stream, so
// the attempt succeeds only when the stream (or a run of concatenated
// streams) reaches the end of the input; any other trailing bytes make it
// fail.
var Bzip2 = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}
	if len(data) < 3 || data[0] != 'B' || data[1] != 'Z' || data[2] != 'h' {
		return Verdict{Reason: "bzip2: missing BZh magic"}, nil
	}

	br := bytes.NewReader(data)
	zr := bzip2.NewReader(br)

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return Verdict{}, fmt.Errorf("create target dir: %w", err)
	}

	const name = "decompressed"
	if err := writeProducedFile(targetDir, name, zr, 0644); err != nil {
		return Verdict{Reason: fmt.Sprintf("bzip2: %v", err)}, nil
	}

	consumed := len(data) - br.Len()
	return Verdict{
		ConsumedLength: uint64(consumed),
		Produced:       []Produced{{Path: name, Labels: []string{"bzip2"}}},
		NewLabels:      []string{"bzip2"},
	}, nil
})
