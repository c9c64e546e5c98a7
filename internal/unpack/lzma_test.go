package unpack

import (
	"path/filepath"
	"testing"
)

func TestLZMAAlwaysFails(t *testing.T) {
	path := writeTempInput(t, "input", nil, []byte{0x5d, 0x00, 0x00, 0x10, 0x00})
	v, err := LZMA.Unpack(path, 0, filepath.Join(filepath.Dir(path), "out"), "")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !v.Failed() {
		t.Error("lzma handler must always fail")
	}
	if v.Fatal {
		t.Error("lzma rejection should be non-fatal")
	}
}

func TestLZMARejectsUnknownMarker(t *testing.T) {
	path := writeTempInput(t, "input", nil, []byte{0xff, 0x00})
	v, err := LZMA.Unpack(path, 0, filepath.Join(filepath.Dir(path), "out"), "")
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if !v.Failed() {
		t.Error("expected failure for unrecognized properties byte")
	}
}
