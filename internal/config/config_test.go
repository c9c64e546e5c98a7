package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bang-scan.conf")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	baseDir := t.TempDir()
	path := writeConfig(t, "[configuration]\nbaseunpackdirectory = "+baseDir+"\nthreads = 2\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseUnpackDirectory != baseDir {
		t.Errorf("base dir mismatch: %q", cfg.BaseUnpackDirectory)
	}
	if cfg.Threads < 1 {
		t.Errorf("expected threads clamped to >= 1, got %d", cfg.Threads)
	}
}

func TestLoadMissingBaseDir(t *testing.T) {
	path := writeConfig(t, "[configuration]\nthreads = 1\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for missing baseunpackdirectory")
	}
}

func TestLoadNonexistentBaseDir(t *testing.T) {
	path := writeConfig(t, "[configuration]\nbaseunpackdirectory = /does/not/exist/anywhere\n")
	if _, err := Load(path); err == nil {
		t.Error("expected error for nonexistent baseunpackdirectory")
	}
}

func TestLoadZeroThreadsUsesCPUCount(t *testing.T) {
	baseDir := t.TempDir()
	path := writeConfig(t, "[configuration]\nbaseunpackdirectory = "+baseDir+"\nthreads = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Threads != runtime.NumCPU() {
		t.Errorf("expected threads = CPU count %d, got %d", runtime.NumCPU(), cfg.Threads)
	}
}

func TestClampThreadsOverCPUCount(t *testing.T) {
	got := clampThreads(1 << 20)
	if got != runtime.NumCPU() {
		t.Errorf("expected clamp to CPU count %d, got %d", runtime.NumCPU(), got)
	}
}
