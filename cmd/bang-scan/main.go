// Command bang-scan recursively identifies and extracts embedded binary
// content from a single input file.
package main

import (
	"fmt"
	"os"

	"github.com/knilch0r/binaryanalysis-ng/internal/config"
	"github.com/knilch0r/binaryanalysis-ng/internal/engine"
	"github.com/spf13/cobra"
)

var (
	filePath   string
	configPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bang-scan",
		Short:         "Recursively scan and carve embedded binary content from a file",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "file to scan (required)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "INI configuration file (required)")
	cmd.MarkPersistentFlagRequired("file")
	cmd.MarkPersistentFlagRequired("config")

	return cmd
}

type argError struct{ error }

func run(cmd *cobra.Command, args []string) error {
	if err := validateRegularFile(filePath, "file"); err != nil {
		return argError{err}
	}
	if err := validateRegularFile(configPath, "config"); err != nil {
		return argError{err}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return argError{err}
	}

	if _, err := engine.Run(filePath, cfg, os.Stdout); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

func validateRegularFile(path, flag string) error {
	if path == "" {
		return fmt.Errorf("-%s is required", flag)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %s is not a regular file", flag, path)
	}
	return nil
}

// exitCodeFor maps argument/configuration errors to exit code 2, and any
// other failure (fatal I/O during staging bootstrap, an internal engine
// error) to a generic nonzero exit.
func exitCodeFor(err error) int {
	if _, ok := err.(argError); ok {
		return 2
	}
	return 1
}
