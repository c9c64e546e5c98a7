package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerWritesExpectedLineShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unpack.log")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	log.Trying("/unpack/root", "gzip", 16)
	log.Fail("/unpack/root", "lzma", 0, "lzma stream rejected: unsupported properties byte")
	log.Success("/unpack/root", "png", 0, 1024)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"TRYING /unpack/root gzip at offset: 16",
		"FAIL /unpack/root lzma at offset: 0: lzma stream rejected: unsupported properties byte",
		"SUCCESS /unpack/root png at offset: 0, length: 1024",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, content)
		}
	}
}
