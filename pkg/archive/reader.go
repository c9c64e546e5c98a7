package archive

import (
	"fmt"

	"github.com/DataDog/zstd"
)

// blockHeaderSize is the size in bytes of a Data_Block header (RFC 8878 §3.1.1.2).
const blockHeaderSize = 3

const (
	blockTypeRaw = iota
	blockTypeRLE
	blockTypeCompressed
	blockTypeReserved
)

// FrameLength walks the Data_Blocks following a parsed frame header and
// returns the total number of bytes the frame occupies in data, including
// the trailing Content_Checksum if present. It does not decompress
// anything, so it can locate a frame boundary even when the frame is
// embedded inside unrelated trailing bytes.
func FrameLength(data []byte) (int, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return 0, fmt.Errorf("frame length: %w", err)
	}

	pos := h.HeaderSize
	for {
		if pos+blockHeaderSize > len(data) {
			return 0, fmt.Errorf("frame length: truncated block header at offset %d", pos)
		}

		b0, b1, b2 := data[pos], data[pos+1], data[pos+2]
		header := uint32(b0) | uint32(b1)<<8 | uint32(b2)<<16
		lastBlock := header&1 != 0
		blockType := (header >> 1) & 0x3
		blockSize := int(header >> 3)

		pos += blockHeaderSize
		switch blockType {
		case blockTypeRLE:
			pos++ // one byte repeated blockSize times
		case blockTypeRaw, blockTypeCompressed:
			pos += blockSize
		default:
			return 0, fmt.Errorf("frame length: reserved block type at offset %d", pos-blockHeaderSize)
		}

		if pos > len(data) {
			return 0, fmt.Errorf("frame length: block extends past input at offset %d", pos)
		}
		if lastBlock {
			break
		}
	}

	if h.ContentChecksumFlag {
		pos += 4
		if pos > len(data) {
			return 0, fmt.Errorf("frame length: truncated content checksum")
		}
	}

	return pos, nil
}

// Reader decodes a single Zstandard frame located at the start of a byte
// slice, without assuming the slice contains only that frame.
type Reader struct {
	header      *Header
	frameLength int
	data        []byte
}

// NewReader locates and validates the frame header at the start of data.
// It does not decompress; call Decode or ReadAll to obtain the payload.
func NewReader(data []byte) (*Reader, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	length, err := FrameLength(data)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}

	return &Reader{header: h, frameLength: length, data: data[:length]}, nil
}

// Header returns the parsed frame header.
func (r *Reader) Header() *Header {
	return r.header
}

// FrameLength returns the number of input bytes the frame occupies.
func (r *Reader) FrameLength() int {
	return r.frameLength
}

// Decode decompresses the full frame payload.
func (r *Reader) Decode() ([]byte, error) {
	out, err := zstd.Decompress(nil, r.data)
	if err != nil {
		return nil, fmt.Errorf("decompress frame: %w", err)
	}
	return out, nil
}

// ReadAll locates the zstd frame at the start of data, decompresses it, and
// returns the decompressed payload together with the number of input bytes
// the frame consumed.
func ReadAll(data []byte) (payload []byte, consumed int, err error) {
	r, err := NewReader(data)
	if err != nil {
		return nil, 0, err
	}
	payload, err = r.Decode()
	if err != nil {
		return nil, 0, err
	}
	return payload, r.FrameLength(), nil
}
