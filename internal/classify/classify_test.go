package classify

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRegular(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data")
	content := []byte("some bytes to hash for the classifier test")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := File(path)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if c.Skip {
		t.Fatal("regular non-empty file should not be skipped")
	}
	if c.Size != int64(len(content)) {
		t.Errorf("size mismatch: got %d, want %d", c.Size, len(content))
	}

	if want := fmt.Sprintf("%x", md5.Sum(content)); c.MD5 != want {
		t.Errorf("md5 mismatch: got %s, want %s", c.MD5, want)
	}
	if want := fmt.Sprintf("%x", sha1.Sum(content)); c.SHA1 != want {
		t.Errorf("sha1 mismatch: got %s, want %s", c.SHA1, want)
	}
	if want := fmt.Sprintf("%x", sha256.Sum256(content)); c.SHA256 != want {
		t.Errorf("sha256 mismatch: got %s, want %s", c.SHA256, want)
	}
}

func TestFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := File(path)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !c.Skip || len(c.Labels) != 1 || c.Labels[0] != "empty" {
		t.Errorf("expected skip with label empty, got %+v", c)
	}
}

func TestFileDirectory(t *testing.T) {
	dir := t.TempDir()
	c, err := File(dir)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !c.Skip || len(c.Labels) != 0 {
		t.Errorf("expected silent skip for directory, got %+v", c)
	}
}

func TestFileSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	c, err := File(link)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if !c.Skip || len(c.Labels) != 1 || c.Labels[0] != "symbolic link" {
		t.Errorf("expected symbolic link label, got %+v", c)
	}
}

func TestTextProbe(t *testing.T) {
	if TextProbe([]byte("plain ascii text\nwith a newline\t.")) {
		t.Error("expected printable ASCII to not trip the probe")
	}
	if !TextProbe([]byte{0x00, 0x01, 0x02}) {
		t.Error("expected null bytes to trip the probe")
	}
}
