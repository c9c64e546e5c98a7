// Package archive parses the boundary of a Zstandard frame embedded at an
// arbitrary offset inside a larger file, without assuming the frame is the
// only thing present in the input.
package archive

import (
	"encoding/binary"
	"fmt"
)

// Magic is the four-byte little-endian Zstandard frame magic number.
var Magic = [4]byte{0x28, 0xb5, 0x2f, 0xfd}

// Header describes the fixed-position fields of a Zstandard frame header
// needed to locate the end of the frame and, if declared, its decompressed
// size. See RFC 8878 §3.1.1.
type Header struct {
	Magic               [4]byte
	FrameContentSize    uint64
	HasContentSize      bool
	ContentChecksumFlag bool
	HeaderSize          int // bytes consumed by magic + descriptor + window + dictID + content size
}

const (
	fcsFlagShift     = 6
	singleSegmentBit = 1 << 5
	checksumBit      = 1 << 2
	dictIDFlagMask   = 0x03
)

var dictIDFieldSize = [4]int{0, 1, 2, 4}
var fcsFieldSize = [4]int{0, 2, 4, 8} // index 0 resolved specially when single-segment

// Validate reports whether h describes a well-formed frame header.
func (h *Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("invalid magic: expected %x, got %x", Magic, h.Magic)
	}
	if h.HeaderSize < 5 {
		return fmt.Errorf("invalid header size: %d", h.HeaderSize)
	}
	return nil
}

// ParseHeader reads the frame header starting at data[0] and reports how
// many bytes it occupies, along with the declared content size if present.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("zstd header: need at least 5 bytes, got %d", len(data))
	}
	var magic [4]byte
	copy(magic[:], data[:4])
	if magic != Magic {
		return nil, fmt.Errorf("zstd header: invalid magic %x", magic)
	}

	descriptor := data[4]
	fcsFlag := descriptor >> fcsFlagShift
	singleSegment := descriptor&singleSegmentBit != 0
	checksum := descriptor&checksumBit != 0
	dictIDFlag := descriptor & dictIDFlagMask

	pos := 5
	if !singleSegment {
		pos++ // Window_Descriptor
	}
	pos += dictIDFieldSize[dictIDFlag]

	var fcsLen int
	if fcsFlag == 0 {
		if singleSegment {
			fcsLen = 1
		}
	} else {
		fcsLen = fcsFieldSize[fcsFlag]
	}

	if len(data) < pos+fcsLen {
		return nil, fmt.Errorf("zstd header: truncated before content size field")
	}

	h := &Header{
		Magic:               magic,
		ContentChecksumFlag: checksum,
	}

	if fcsLen > 0 {
		h.HasContentSize = true
		switch fcsLen {
		case 1:
			h.FrameContentSize = uint64(data[pos])
		case 2:
			h.FrameContentSize = uint64(binary.LittleEndian.Uint16(data[pos:])) + 256
		case 4:
			h.FrameContentSize = uint64(binary.LittleEndian.Uint32(data[pos:]))
		case 8:
			h.FrameContentSize = binary.LittleEndian.Uint64(data[pos:])
		}
	}
	pos += fcsLen

	h.HeaderSize = pos
	return h, h.Validate()
}
