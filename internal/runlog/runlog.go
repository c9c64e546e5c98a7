// Package runlog writes the run's dispatch-attempt log: one line per
// unpack attempt, plus a start/stop line mirrored to stderr.
package runlog

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger writes TRYING/FAIL/SUCCESS lines to a log file and mirrors
// start/stop lines to stderr so operators see progress without tailing
// the file.
type Logger struct {
	file   *logrus.Logger
	stderr *logrus.Logger
}

// Open creates (or truncates) path and returns a Logger writing to it.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}

	fileLog := logrus.New()
	fileLog.SetOutput(f)
	fileLog.SetFormatter(&logrus.TextFormatter{DisableTimestamp: false, FullTimestamp: true})

	stderrLog := logrus.New()
	stderrLog.SetOutput(os.Stderr)

	return &Logger{file: fileLog, stderr: stderrLog}, nil
}

// Trying logs an attempt about to be made.
func (l *Logger) Trying(path, signature string, offset int64) {
	l.file.Infof("TRYING %s %s at offset: %d", path, signature, offset)
}

// Fail logs a rejected attempt.
func (l *Logger) Fail(path, signature string, offset int64, reason string) {
	l.file.Infof("FAIL %s %s at offset: %d: %s", path, signature, offset, reason)
}

// Success logs a carved extraction.
func (l *Logger) Success(path, signature string, offset int64, length uint64) {
	l.file.Infof("SUCCESS %s %s at offset: %d, length: %d", path, signature, offset, length)
}

// Start logs the run's single startup line, mirrored to stderr.
func (l *Logger) Start(inputFile string) {
	msg := fmt.Sprintf("starting scan of %s", inputFile)
	l.file.Info(msg)
	l.stderr.Info(msg)
}

// Stop logs the run's single completion line, mirrored to stderr.
func (l *Logger) Stop(fileCount, reportCount int) {
	msg := fmt.Sprintf("scan complete: %d files, %d unpack reports", fileCount, reportCount)
	l.file.Info(msg)
	l.stderr.Info(msg)
}

// Writer exposes the underlying file log's writer (the opened log file).
func (l *Logger) Writer() io.Writer {
	return l.file.Out
}
