package signature

import "testing"

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	for _, key := range []string{"gzip", "zstd", "tar", "zip", "bzip2", "png", "lzma-5d", "lzma-6d"} {
		if _, ok := r.Lookup(key); !ok {
			t.Errorf("missing signature %q", key)
		}
	}

	if _, ok := r.Lookup("does-not-exist"); ok {
		t.Error("expected lookup miss for unregistered key")
	}

	lzma5d, _ := r.Lookup("lzma-5d")
	lzma6d, _ := r.Lookup("lzma-6d")
	if lzma5d.DisplayName != lzma6d.DisplayName {
		t.Errorf("lzma variants should share a display name: %q vs %q", lzma5d.DisplayName, lzma6d.DisplayName)
	}
}

func TestMaxPatternLenAndOverlap(t *testing.T) {
	r := Default()

	if r.MaxPatternLen() != 8 {
		t.Errorf("expected longest pattern to be 8 bytes (png signature), got %d", r.MaxPatternLen())
	}

	tarSig, _ := r.Lookup("tar")
	wantOverlap := tarSig.IntraOffset + r.MaxPatternLen()
	if r.MaxIntraOffset() != wantOverlap {
		t.Errorf("overlap mismatch: got %d, want %d", r.MaxIntraOffset(), wantOverlap)
	}
}

func TestNewRegistryPanicsOnDuplicateKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate signature key")
		}
	}()
	NewRegistry([]Signature{
		{Key: "dup", Pattern: []byte{0x00}},
		{Key: "dup", Pattern: []byte{0x01}},
	})
}
