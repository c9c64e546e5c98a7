package result

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestSinkEmitStreamsOneLinePerResult(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)

	size := int64(1024)
	if err := sink.Emit(FileResult{FileName: "a", FileSize: &size, Labels: []string{"root", "binary"}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := sink.Emit(FileResult{FileName: "b", Labels: []string{"empty"}}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	var r FileResult
	if err := json.Unmarshal([]byte(lines[0]), &r); err != nil {
		t.Fatalf("unmarshal line 1: %v", err)
	}
	if r.FileName != "a" || r.FileSize == nil || *r.FileSize != 1024 {
		t.Errorf("line 1 mismatch: %+v", r)
	}
}

func TestSinkWriteSnapshot(t *testing.T) {
	var buf bytes.Buffer
	sink := NewSink(&buf)
	if err := sink.Emit(FileResult{FileName: "a"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := sink.Emit(FileResult{FileName: "b"}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	path := filepath.Join(t.TempDir(), "unpack.json")
	if err := sink.WriteSnapshot(path); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if all := sink.All(); len(all) != 2 {
		t.Errorf("expected 2 accumulated results, got %d", len(all))
	}
}
