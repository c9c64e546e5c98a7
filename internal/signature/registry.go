// Package signature holds the static catalogue of byte-pattern anchors the
// scanner searches for and the unpacker each anchor is bound to.
package signature

import "github.com/knilch0r/binaryanalysis-ng/internal/unpack"

// Signature is a named anchor: a literal byte pattern, the offset within a
// recognized file at which that pattern sits, a display name, and the
// unpacker bound to it. Several signatures may share a display name (the
// two LZMA dictionary-size markers both unpack as "lzma").
type Signature struct {
	Key         string
	Pattern     []byte
	IntraOffset int
	DisplayName string
	Handler     unpack.Unpacker
}

// Registry is an immutable, ordered catalogue of signatures, keyed by Key.
type Registry struct {
	entries        []Signature
	byKey          map[string]*Signature
	maxPatternLen  int
	maxIntraOffset int
}

// NewRegistry builds a registry from entries. Keys must be unique; a
// duplicate key is a programming error and panics, since the registry is
// assembled once at process startup from a fixed literal table.
func NewRegistry(entries []Signature) *Registry {
	r := &Registry{
		byKey: make(map[string]*Signature, len(entries)),
	}

	for i := range entries {
		e := entries[i]
		if _, dup := r.byKey[e.Key]; dup {
			panic("signature: duplicate key " + e.Key)
		}
		r.entries = append(r.entries, e)
		r.byKey[e.Key] = &r.entries[len(r.entries)-1]

		if len(e.Pattern) > r.maxPatternLen {
			r.maxPatternLen = len(e.Pattern)
		}
	}

	for _, e := range r.entries {
		if total := e.IntraOffset + r.maxPatternLen; total > r.maxIntraOffset {
			r.maxIntraOffset = total
		}
	}

	return r
}

// All returns every registered signature, in registration order.
func (r *Registry) All() []Signature {
	return r.entries
}

// Lookup returns the signature for key, and whether it was found.
func (r *Registry) Lookup(key string) (Signature, bool) {
	e, ok := r.byKey[key]
	if !ok {
		return Signature{}, false
	}
	return *e, true
}

// MaxPatternLen is the length of the longest registered pattern.
func (r *Registry) MaxPatternLen() int {
	return r.maxPatternLen
}

// MaxIntraOffset is the largest IntraOffset across every registered
// signature plus MaxPatternLen. The sliding-window scanner uses this as its
// chunk-overlap size so no anchor straddling a chunk boundary is missed.
func (r *Registry) MaxIntraOffset() int {
	return r.maxIntraOffset
}
