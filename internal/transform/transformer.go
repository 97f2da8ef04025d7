// Package transform applies source transformation tasks to Java files on
// disk: it discovers inputs, runs every task over each file in order and
// writes the results.
package transform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mvp-joe/project-scrub/internal/scrub"
	"github.com/mvp-joe/project-scrub/internal/syntax"
	"golang.org/x/sync/errgroup"
)

// Options configures a Transformer.
type Options struct {
	// OutputPath derives where each transformed file is written.
	// Defaults to InPlace.
	OutputPath OutputPathFunc

	// Workers bounds how many files are processed at once. Defaults to 1.
	Workers int

	// Progress receives progress callbacks. Defaults to a no-op reporter.
	Progress ProgressReporter
}

// FileResult describes one transformed file.
type FileResult struct {
	Path        string
	OutputPath  string
	BytesBefore int
	BytesAfter  int
}

// Changed reports whether any task modified the file.
func (r *FileResult) Changed() bool { return r.BytesBefore != r.BytesAfter }

// Stats summarizes a run.
type Stats struct {
	Files        int
	Changed      int
	BytesRemoved int
	Duration     time.Duration
}

func (s *Stats) add(r *FileResult) {
	s.Files++
	if r.Changed() {
		s.Changed++
	}
	s.BytesRemoved += r.BytesBefore - r.BytesAfter
}

// Transformer applies an ordered list of tasks to source files.
type Transformer struct {
	tasks      []scrub.Task
	outputPath OutputPathFunc
	workers    int
	progress   ProgressReporter
}

// New creates a transformer running tasks in the given order.
func New(opts Options, tasks ...scrub.Task) *Transformer {
	t := &Transformer{
		tasks:      tasks,
		outputPath: opts.OutputPath,
		workers:    opts.Workers,
		progress:   opts.Progress,
	}
	if t.outputPath == nil {
		t.outputPath = InPlace
	}
	if t.workers < 1 {
		t.workers = 1
	}
	if t.progress == nil {
		t.progress = &NoOpProgressReporter{}
	}
	return t
}

// TransformSource runs every task over source. The text is re-parsed before
// each task because ranges from one snapshot are meaningless in the next.
func (t *Transformer) TransformSource(source string) (string, error) {
	for _, task := range t.tasks {
		file, err := syntax.Parse(source)
		if err != nil {
			return "", err
		}
		source, err = task.Transform(file)
		if err != nil {
			return "", fmt.Errorf("%s: %w", task.Name(), err)
		}
	}
	return source, nil
}

// TransformFile transforms one file and writes the result. A file transformed
// in place is left untouched when nothing changed.
func (t *Transformer) TransformFile(path string) (*FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	out, err := t.TransformSource(string(content))
	if err != nil {
		return nil, err
	}

	outPath, err := t.outputPath(path)
	if err != nil {
		return nil, err
	}

	result := &FileResult{
		Path:        path,
		OutputPath:  outPath,
		BytesBefore: len(content),
		BytesAfter:  len(out),
	}

	if sameFile(path, outPath) && out == string(content) {
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(out), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return result, nil
}

// Transform processes paths concurrently, at most Workers at a time. Tasks
// for a single file always run sequentially. The first failure cancels the
// remaining files and is returned.
func (t *Transformer) Transform(ctx context.Context, paths []string) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}
	var mu sync.Mutex

	t.progress.OnFileProcessingStart(len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := t.TransformFile(path)
			if err != nil {
				return fmt.Errorf("failed to transform %s: %w", path, err)
			}

			mu.Lock()
			stats.add(result)
			mu.Unlock()

			t.progress.OnFileProcessed(result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(start)
	t.progress.OnComplete(stats)
	return stats, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
