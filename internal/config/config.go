// Package config loads and validates the INI configuration file the CLI's
// -c/--config flag points at.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/ini.v1"
)

// Config is the validated, fully-resolved run configuration.
type Config struct {
	BaseUnpackDirectory string
	TemporaryDirectory  string
	Threads             int
}

// Load parses path's [configuration] section and validates every key
// described for the run. A single wrapped error is returned for any
// failure so the CLI can print one message and exit non-zero.
func Load(path string) (Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	section := f.Section("configuration")

	base := section.Key("baseunpackdirectory").String()
	if base == "" {
		return Config{}, fmt.Errorf("config %s: baseunpackdirectory is required", path)
	}
	if err := validateBaseDir(base); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	threads, err := section.Key("threads").Int()
	if err != nil {
		threads = 0
	}
	threads = clampThreads(threads)

	return Config{
		BaseUnpackDirectory: base,
		TemporaryDirectory:  section.Key("temporarydirectory").String(),
		Threads:             threads,
	}, nil
}

func validateBaseDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("baseunpackdirectory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("baseunpackdirectory %q: not a directory", dir)
	}

	probe := filepath.Join(dir, ".bang-scan-write-probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("baseunpackdirectory %q: not writable: %w", dir, err)
	}
	f.Close()
	os.Remove(probe)
	return nil
}

// clampThreads resolves 0/absent/negative to the CPU count, and otherwise
// clamps to [1, runtime.NumCPU()].
func clampThreads(n int) int {
	cpus := runtime.NumCPU()
	if n <= 0 {
		return cpus
	}
	if n > cpus {
		return cpus
	}
	return n
}
