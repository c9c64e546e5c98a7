// Package scanner reads a file in overlapping chunks and emits candidate
// (offset, signature) pairs for the dispatcher to try.
package scanner

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/knilch0r/binaryanalysis-ng/internal/classify"
	"github.com/knilch0r/binaryanalysis-ng/internal/signature"
)

// DefaultChunkSize is the sliding window's read size.
const DefaultChunkSize = 2 * 1024 * 1024

// Candidate is a (offset, signature) pair that may mark the start of a
// recognized format.
type Candidate struct {
	Offset int64
	Key    string
}

// Scanner walks a file's bytes looking for registered signature anchors.
type Scanner struct {
	reg       *signature.Registry
	chunkSize int

	binaryLatched bool
}

// New returns a scanner bound to reg. chunkSize <= 0 selects
// DefaultChunkSize.
func New(reg *signature.Registry, chunkSize int) *Scanner {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Scanner{reg: reg, chunkSize: chunkSize}
}

// IsText reports whether every chunk seen so far by this scanner was
// entirely printable. Once a non-printable byte is observed the result
// latches to false for the scanner's remaining lifetime.
func (s *Scanner) IsText() bool {
	return !s.binaryLatched
}

// Scan reads path starting at startOffset and invokes onBatch once per
// chunk with every in-range candidate found so far in that chunk,
// deduplicated and sorted ascending by offset (ties broken by signature
// key). onBatch returns the offset the scanner should resume from — either
// the unchanged read head (continue with overlap) or an offset the
// dispatcher has already carved past.
func (s *Scanner) Scan(path string, startOffset int64, onBatch func(batch []Candidate) (resumeFrom int64)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	overlap := int64(s.reg.MaxIntraOffset())
	pos := startOffset
	if pos < 0 {
		pos = 0
	}

	buf := make([]byte, s.chunkSize)
	for {
		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("seek %s: %w", path, err)
		}
		n, readErr := io.ReadFull(f, buf)
		if readErr != nil && readErr != io.ErrUnexpectedEOF && readErr != io.EOF {
			return fmt.Errorf("read %s: %w", path, readErr)
		}
		if n == 0 {
			return nil
		}
		chunk := buf[:n]
		atEOF := n < s.chunkSize

		if !s.binaryLatched && classify.TextProbe(chunk) {
			s.binaryLatched = true
		}

		candidates := s.findCandidates(chunk, pos)
		resumeFrom := onBatch(candidates)

		if atEOF {
			return nil
		}

		// Resume at whichever is further ahead: the dispatcher's carved
		// frontier, or the overlapped read head (never less, so a pattern
		// straddling this chunk boundary is never missed).
		overlapPos := pos + int64(n) - overlap
		if overlapPos < 0 {
			overlapPos = 0
		}
		// Always move forward, even when the overlap is not smaller than
		// the chunk; otherwise the same window would be read forever.
		if overlapPos <= pos {
			overlapPos = pos + 1
		}
		if resumeFrom > overlapPos {
			pos = resumeFrom
		} else {
			pos = overlapPos
		}
	}
}

func (s *Scanner) findCandidates(chunk []byte, chunkOffset int64) []Candidate {
	var found []Candidate
	for _, sig := range s.reg.All() {
		start := 0
		for {
			idx := bytes.Index(chunk[start:], sig.Pattern)
			if idx < 0 {
				break
			}
			matchPos := start + idx
			candidateOffset := chunkOffset + int64(matchPos) - int64(sig.IntraOffset)
			if candidateOffset >= 0 {
				found = append(found, Candidate{Offset: candidateOffset, Key: sig.Key})
			}
			start = matchPos + 1
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Offset != found[j].Offset {
			return found[i].Offset < found[j].Offset
		}
		return found[i].Key < found[j].Key
	})

	return dedup(found)
}

func dedup(in []Candidate) []Candidate {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, c := range in[1:] {
		last := out[len(out)-1]
		if c.Offset == last.Offset && c.Key == last.Key {
			continue
		}
		out = append(out, c)
	}
	return out
}
