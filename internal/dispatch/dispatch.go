// Package dispatch implements the carving engine: it orders candidates
// emitted by the scanner, invokes the bound unpacker at each one, carves
// the consumed byte range on success, cleans up failed attempts, and
// collects the reports and child tasks a single file produces.
package dispatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knilch0r/binaryanalysis-ng/internal/result"
	"github.com/knilch0r/binaryanalysis-ng/internal/runlog"
	"github.com/knilch0r/binaryanalysis-ng/internal/scanner"
	"github.com/knilch0r/binaryanalysis-ng/internal/signature"
	"github.com/knilch0r/binaryanalysis-ng/internal/unpack"
)

// Task is a unit of work placed on the shared queue: a file, already
// staged under the run's unpack tree, waiting to be classified and
// scanned.
type Task struct {
	Path   string // absolute path
	Labels []string
}

// Engine carves one file at a time against a fixed signature registry.
type Engine struct {
	reg       *signature.Registry
	chunkSize int
	log       *runlog.Logger
}

// New returns a carving engine bound to reg. log may be nil, in which case
// dispatch attempts are not recorded (used by tests that don't care about
// the run log).
func New(reg *signature.Registry, chunkSize int, log *runlog.Logger) *Engine {
	return &Engine{reg: reg, chunkSize: chunkSize, log: log}
}

// ScanResult is everything a single file's scan produced.
type ScanResult struct {
	Reports       []result.UnpackReport
	Children      []Task
	MergedLabels  []string // labels contributed by a whole-file handler at offset 0
	IsText        bool
}

// Scan carves path (whose on-disk size is fileSize, already known from the
// pre-scan classification pass) and returns every UnpackReport produced,
// in ascending-offset order, plus the child tasks to enqueue.
func (e *Engine) Scan(path string, fileSize int64, tempDir string) (ScanResult, error) {
	st := &state{
		lastUnpackedOffset: -1,
		counters:           make(map[string]int),
		fileSize:           fileSize,
		reg:                e.reg,
		path:                path,
		tempDir:             tempDir,
		log:                 e.log,
	}

	sc := scanner.New(e.reg, e.chunkSize)
	err := sc.Scan(path, 0, func(batch []scanner.Candidate) int64 {
		st.processBatch(batch)
		if st.lastUnpackedOffset < 0 {
			return 0
		}
		return st.lastUnpackedOffset
	})
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan %s: %w", path, err)
	}

	return ScanResult{
		Reports:      st.reports,
		Children:     st.children,
		MergedLabels: st.mergedLabels,
		IsText:       sc.IsText(),
	}, nil
}

// state carries per-file mutable dispatch bookkeeping across scanner
// batches. It is single-threaded: one file is always scanned by one
// worker goroutine.
type state struct {
	reg  *signature.Registry
	path string
	tempDir  string
	fileSize int64
	log      *runlog.Logger

	lastUnpackedOffset int64
	counters           map[string]int
	reports            []result.UnpackReport
	children           []Task
	mergedLabels       []string
}

func (st *state) processBatch(batch []scanner.Candidate) {
	for _, c := range batch {
		if c.Offset < st.lastUnpackedOffset {
			continue // lies inside already-carved data
		}

		sig, ok := st.reg.Lookup(c.Key)
		if !ok || sig.Handler == nil {
			continue
		}

		dir, n, err := st.allocateDir(sig.DisplayName)
		if err != nil {
			continue // could not even allocate a directory; skip candidate
		}

		if st.log != nil {
			st.log.Trying(st.path, sig.DisplayName, c.Offset)
		}

		verdict, unpackErr := sig.Handler.Unpack(st.path, c.Offset, dir, st.tempDir)
		if unpackErr != nil {
			verdict = verdictFromError(unpackErr)
		}

		if verdict.Failed() || verdict.ConsumedLength == 0 {
			if st.log != nil {
				st.log.Fail(st.path, sig.DisplayName, c.Offset, failReason(verdict))
			}
			_ = removeFailedAttempt(dir)
			continue
		}

		st.counters[sig.DisplayName] = n

		wholeFile := c.Offset == 0 && int64(verdict.ConsumedLength) == st.fileSize
		if wholeFile {
			st.mergedLabels = append(st.mergedLabels, verdict.NewLabels...)
			if len(verdict.Produced) == 0 {
				_ = removeFailedAttempt(dir)
			}
		}

		relDir := ""
		if len(verdict.Produced) > 0 {
			relDir = dir
		}

		files := make([]string, len(verdict.Produced))
		for i, p := range verdict.Produced {
			files[i] = p.Path
			st.children = append(st.children, Task{
				Path:   filepath.Join(dir, p.Path),
				Labels: p.Labels,
			})
		}

		st.reports = append(st.reports, result.UnpackReport{
			Offset:          uint64(c.Offset),
			Signature:       sig.Key,
			Type:            sig.DisplayName,
			Size:            verdict.ConsumedLength,
			Files:           files,
			UnpackDirectory: relDir,
		})

		st.lastUnpackedOffset = c.Offset + int64(verdict.ConsumedLength)
	}
}

// allocateDir finds the first unused directory named
// "<path>-<displayName>-<n>" starting at counters[displayName]+1 and
// creates it, retrying on the filesystem EEXIST race another worker's
// identically-named attempt can produce.
func (st *state) allocateDir(displayName string) (dir string, n int, err error) {
	n = st.counters[displayName] + 1
	for {
		dir = fmt.Sprintf("%s-%s-%d", st.path, displayName, n)
		mkErr := os.Mkdir(dir, 0755)
		if mkErr == nil {
			return dir, n, nil
		}
		if os.IsExist(mkErr) {
			n++
			continue
		}
		return "", 0, fmt.Errorf("mkdir %s: %w", dir, mkErr)
	}
}

func verdictFromError(err error) unpack.Verdict {
	return unpack.Verdict{Reason: err.Error()}
}

// failReason returns the reason a rejected verdict should be logged under,
// covering handlers that reject by returning a zero ConsumedLength without
// setting Reason. A fatal verdict is marked "(fatal)" but otherwise handled
// like any other failure.
func failReason(v unpack.Verdict) string {
	reason := v.Reason
	if reason == "" {
		reason = "no bytes consumed"
	}
	if v.Fatal {
		reason += " (fatal)"
	}
	return reason
}
