package gen

import (
	"cmp"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileSystem is the write side of the filesystem the Writer persists to.
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(path string, data []byte, perm os.FileMode) error
}

type osFS struct{}

func (osFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (osFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Writer materializes a graph on disk, one file per module, with parallel
// writes.
type Writer struct {
	builder *Builder
	fs      FileSystem
	outDir  string
	workers int

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks what a Writer has written.
type WriterMetrics struct {
	FilesWritten int
	BytesWritten int64
}

// NewWriter creates a writer for the builder's target directory.
func NewWriter(b *Builder) *Writer {
	workers := b.config.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Writer{
		builder: b,
		fs:      osFS{},
		outDir:  b.config.Target,
		workers: workers,
	}
}

// WithWorkers sets the number of parallel writes.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithFileSystem replaces the filesystem writes go to.
func (w *Writer) WithFileSystem(fs FileSystem) *Writer {
	if fs != nil {
		w.fs = fs
	}
	return w
}

// Metrics returns a snapshot of the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// fileTask is one finalized file waiting to be written.
type fileTask struct {
	module  string
	path    string
	content []byte
}

// WriteAll rebuilds the index and writes every module of g to
// <target>/<module>.<ext>. All writes run to completion; failures are
// returned together as WriteErrors once every write has settled.
func (w *Writer) WriteAll(ctx context.Context, g *Graph) error {
	if w.outDir == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if _, err := w.builder.RebuildIndex(g); err != nil {
		return err
	}
	if err := w.fs.MkdirAll(w.outDir, 0o755); err != nil {
		return NewWriteError("", w.outDir, err)
	}
	ext := w.builder.config.Extension
	tasks := make([]fileTask, 0, g.Len())
	for _, m := range g.Modules() {
		tasks = append(tasks, fileTask{
			module:  m.Name,
			path:    filepath.Join(w.outDir, ModuleFileName(m.Name, ext)),
			content: []byte(w.builder.Print(m)),
		})
	}
	return w.writeFiles(ctx, tasks)
}

// WriteMerged writes the merged module of g to <target>/<name>.<ext>.
func (w *Writer) WriteMerged(ctx context.Context, g *Graph, name string) error {
	if w.outDir == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	m, err := w.builder.Merge(g, name)
	if err != nil {
		return err
	}
	if err := w.fs.MkdirAll(w.outDir, 0o755); err != nil {
		return NewWriteError(m.Name, w.outDir, err)
	}
	return w.writeFiles(ctx, []fileTask{{
		module:  m.Name,
		path:    filepath.Join(w.outDir, ModuleFileName(m.Name, w.builder.config.Extension)),
		content: []byte(w.builder.Print(m)),
	}})
}

// writeFiles writes tasks in parallel. A failed write does not stop the
// others.
func (w *Writer) writeFiles(ctx context.Context, tasks []fileTask) error {
	var (
		mu   sync.Mutex
		errs []*WriteError
		eg   errgroup.Group
	)
	eg.SetLimit(w.workers)
	for _, t := range tasks {
		eg.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = w.fs.WriteFile(t.path, t.content, 0o644)
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, NewWriteError(t.module, t.path, err))
				mu.Unlock()
				return nil
			}
			w.mu.Lock()
			w.metrics.FilesWritten++
			w.metrics.BytesWritten += int64(len(t.content))
			w.mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	if len(errs) == 0 {
		w.builder.log.Debug("wrote files", "count", len(tasks), "dir", w.outDir)
		return nil
	}
	slices.SortFunc(errs, func(a, b *WriteError) int { return cmp.Compare(a.Module, b.Module) })
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}
