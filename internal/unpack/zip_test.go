package unpack

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func TestZipUnpack(t *testing.T) {
	archive := buildZip(t, map[string]string{"readme.txt": "zip contents"})
	trailing := []byte("trailing bytes after the archive")
	full := append(append([]byte{}, archive...), trailing...)

	dir := t.TempDir()
	path := filepath.Join(dir, "input")
	if err := os.WriteFile(path, full, 0644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	targetDir := filepath.Join(dir, "out")
	v, err := Zip.Unpack(path, 0, targetDir, "")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if v.Failed() {
		t.Fatalf("unexpected failure: %s", v.Reason)
	}
	if v.ConsumedLength != uint64(len(archive)) {
		t.Errorf("consumed length mismatch: got %d, want %d", v.ConsumedLength, len(archive))
	}
	if len(v.Produced) != 1 {
		t.Fatalf("expected 1 produced file, got %d", len(v.Produced))
	}

	got, err := os.ReadFile(filepath.Join(targetDir, v.Produced[0].Path))
	if err != nil {
		t.Fatalf("read produced: %v", err)
	}
	if string(got) != "zip contents" {
		t.Errorf("payload mismatch: %q", got)
	}
}

func TestZipUnpackNoEOCD(t *testing.T) {
	path := writeTempInput(t, "input", nil, []byte("definitely not a zip file"))
	v, err := Zip.Unpack(path, 0, filepath.Join(filepath.Dir(path), "out"), "")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !v.Failed() {
		t.Error("expected failure without an EOCD record")
	}
}
