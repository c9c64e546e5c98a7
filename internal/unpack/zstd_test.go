package unpack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DataDog/zstd"
)

func TestZstdUnpack(t *testing.T) {
	payload := []byte("payload compressed for the embedded zstd handler test")
	compressed, err := zstd.Compress(nil, payload)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	leading := []byte("junk")
	trailing := []byte("more junk after the frame")
	full := append(append(append([]byte{}, leading...), compressed...), trailing...)

	dir := t.TempDir()
	path := filepath.Join(dir, "input")
	if err := os.WriteFile(path, full, 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	targetDir := filepath.Join(dir, "out")
	v, err := Zstd.Unpack(path, int64(len(leading)), targetDir, "")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if v.Failed() {
		t.Fatalf("unexpected failure: %s", v.Reason)
	}
	if v.ConsumedLength != uint64(len(compressed)) {
		t.Errorf("consumed length mismatch: got %d, want %d", v.ConsumedLength, len(compressed))
	}

	got, err := os.ReadFile(filepath.Join(targetDir, v.Produced[0].Path))
	if err != nil {
		t.Fatalf("read produced: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload mismatch: %q", got)
	}
}
