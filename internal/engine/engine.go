// Package engine wires configuration, staging, the work queue, file
// classification, the carving dispatcher, and result emission into the
// single top-level Run entry point the CLI calls.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knilch0r/binaryanalysis-ng/internal/classify"
	"github.com/knilch0r/binaryanalysis-ng/internal/config"
	"github.com/knilch0r/binaryanalysis-ng/internal/dispatch"
	"github.com/knilch0r/binaryanalysis-ng/internal/queue"
	"github.com/knilch0r/binaryanalysis-ng/internal/result"
	"github.com/knilch0r/binaryanalysis-ng/internal/runlog"
	"github.com/knilch0r/binaryanalysis-ng/internal/signature"
	"github.com/knilch0r/binaryanalysis-ng/internal/stage"
)

// Run scans inputFile according to cfg, streaming one JSON FileResult per
// line to stdout, and returns the staging root it created.
func Run(inputFile string, cfg config.Config, stdout *os.File) (stage.Root, error) {
	root, rootTask, err := stage.New(cfg.BaseUnpackDirectory, inputFile)
	if err != nil {
		return stage.Root{}, fmt.Errorf("stage input: %w", err)
	}

	logPath := filepath.Join(root.Logs, "unpack.log")
	log, err := runlog.Open(logPath)
	if err != nil {
		return root, fmt.Errorf("open run log: %w", err)
	}
	log.Start(inputFile)

	reg := signature.Default()
	eng := dispatch.New(reg, 0, log)
	sink := result.NewSink(stdout)
	q := queue.New()

	q.Put(rootTask)

	reportCount := 0
	fileCount := 0
	var countMu sync.Mutex

	queue.Run(q, cfg.Threads, func(t any) {
		task := t.(dispatch.Task)
		fr, reports := processTask(eng, task, root.Path, cfg.TemporaryDirectory, log, q)
		if fr != nil {
			countMu.Lock()
			fileCount++
			reportCount += reports
			countMu.Unlock()
			if err := sink.Emit(*fr); err != nil {
				log.Fail(task.Path, "result", 0, err.Error())
			}
		}
	})

	if err := sink.Flush(); err != nil {
		return root, fmt.Errorf("flush results: %w", err)
	}
	if err := sink.WriteSnapshot(filepath.Join(root.Results, "unpack.json")); err != nil {
		return root, fmt.Errorf("write snapshot: %w", err)
	}

	log.Stop(fileCount, reportCount)
	return root, nil
}

func processTask(
	eng *dispatch.Engine,
	task dispatch.Task,
	stagingRoot, tempDir string,
	log *runlog.Logger,
	q *queue.Queue,
) (*result.FileResult, int) {
	c, err := classify.File(task.Path)
	if err != nil {
		log.Fail(task.Path, "classify", 0, err.Error())
		return &result.FileResult{
			FullFileName: task.Path,
			FileName:     relativeTo(stagingRoot, task.Path),
			Labels:       task.Labels,
		}, 0
	}

	relName := relativeTo(stagingRoot, task.Path)

	if c.Skip {
		labels := append(append([]string{}, task.Labels...), c.Labels...)
		var sizePtr *int64
		if c.Size == 0 && hasLabel(c.Labels, "empty") {
			size := int64(0)
			sizePtr = &size
		}
		return &result.FileResult{
			FullFileName: task.Path,
			FileName:     relName,
			Labels:       labels,
			FileSize:     sizePtr,
		}, 0
	}

	scanRes, err := eng.Scan(task.Path, c.Size, tempDir)
	if err != nil {
		log.Fail(task.Path, "scan", 0, err.Error())
		return &result.FileResult{
			FullFileName: task.Path,
			FileName:     relName,
			Labels:       task.Labels,
			MD5:          c.MD5,
			SHA1:         c.SHA1,
			SHA256:       c.SHA256,
		}, 0
	}

	for i, r := range scanRes.Reports {
		log.Success(task.Path, r.Signature, int64(r.Offset), r.Size)
		if r.UnpackDirectory != "" {
			scanRes.Reports[i].UnpackDirectory = relativeTo(stagingRoot, r.UnpackDirectory)
		}
	}

	for _, child := range scanRes.Children {
		q.Put(child)
	}

	binaryOrText := "binary"
	if scanRes.IsText {
		binaryOrText = "text"
	}

	labels := append(append([]string{}, task.Labels...), scanRes.MergedLabels...)
	labels = append(labels, binaryOrText)

	size := c.Size
	return &result.FileResult{
		FullFileName:  task.Path,
		FileName:      relName,
		Labels:        dedupLabels(labels),
		FileSize:      &size,
		MD5:           c.MD5,
		SHA1:          c.SHA1,
		SHA256:        c.SHA256,
		UnpackedFiles: scanRes.Reports,
	}, len(scanRes.Reports)
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

func hasLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func dedupLabels(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, l := range in {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
