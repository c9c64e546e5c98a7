package unpack

import (
	"encoding/binary"
)

var pngSignature = [8]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

const (
	pngChunkLengthSize = 4
	pngChunkTypeSize   = 4
	pngChunkCRCSize    = 4
)

// PNG validates the 8-byte signature and walks chunks until IEND. It never
// produces a child file: a PNG's pixel data is the whole point of the
// image, not an embedded sub-format, so this handler only carves the
// image's byte range and contributes the "png" label.
var PNG = Func(func(inputPath string, offset int64, targetDir, tempDir string) (Verdict, error) {
	data, err := ReadRemaining(inputPath, offset)
	if err != nil {
		return Verdict{}, err
	}
	if len(data) < 8 || [8]byte(data[:8]) != pngSignature {
		return Verdict{Reason: "png: missing signature"}, nil
	}

	pos := 8
	for {
		if pos+pngChunkLengthSize+pngChunkTypeSize > len(data) {
			return Verdict{Reason: "png: truncated chunk header"}, nil
		}
		length := int(binary.BigEndian.Uint32(data[pos : pos+pngChunkLengthSize]))
		chunkType := string(data[pos+pngChunkLengthSize : pos+pngChunkLengthSize+pngChunkTypeSize])
		pos += pngChunkLengthSize + pngChunkTypeSize + length + pngChunkCRCSize
		if pos > len(data) {
			return Verdict{Reason: "png: chunk extends past input"}, nil
		}
		if chunkType == "IEND" {
			break
		}
	}

	return Verdict{
		ConsumedLength: uint64(pos),
		NewLabels:      []string{"png"},
	}, nil
})
