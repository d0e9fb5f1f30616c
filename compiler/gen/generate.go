package gen

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/cmsgen/compiler/load"
)

// Generator runs a complete generation: every content type is synthesized
// into a fresh graph, then the graph is written to the target directory.
type Generator struct {
	builder *Builder
	writer  *Writer
	merge   bool
	goDir   string
}

// NewGenerator creates a generator for the config.
func NewGenerator(c *Config) *Generator {
	b := NewBuilder(c)
	return &Generator{builder: b, writer: NewWriter(b)}
}

// WithMerge enables writing the merged module next to the per-entity files.
func (g *Generator) WithMerge(merge bool) *Generator {
	g.merge = merge
	return g
}

// WithGoDir sets the directory of the Go companion file. It is only
// written when the config names a Go package.
func (g *Generator) WithGoDir(dir string) *Generator {
	g.goDir = dir
	return g
}

// WithFileSystem replaces the filesystem used by the writer.
func (g *Generator) WithFileSystem(fs FileSystem) *Generator {
	g.writer.WithFileSystem(fs)
	return g
}

// Builder returns the underlying builder.
func (g *Generator) Builder() *Builder {
	return g.builder
}

// Writer returns the underlying writer.
func (g *Generator) Writer() *Writer {
	return g.writer
}

// Generate synthesizes cts and writes the result. Synthesis errors and a
// merge name taken by an entity module abort before anything is written.
func (g *Generator) Generate(ctx context.Context, cts []*load.ContentType) (*Graph, error) {
	start := time.Now()
	log := g.builder.log.With("run_id", uuid.NewString())

	graph := NewGraph()
	if err := g.builder.AppendTypes(graph, cts...); err != nil {
		log.Error("synthesis failed", "error", err)
		return nil, err
	}
	if g.merge {
		if err := checkMergeName(graph, g.builder.config.MergeName); err != nil {
			log.Error("invalid merge name", "error", err)
			return nil, err
		}
	}
	if err := g.writer.WriteAll(ctx, graph); err != nil {
		log.Error("write failed", "error", err)
		return graph, err
	}
	if g.merge {
		if err := g.writer.WriteMerged(ctx, graph, g.builder.config.MergeName); err != nil {
			log.Error("merged write failed", "error", err)
			return graph, err
		}
	}
	if g.builder.config.GoPackage != "" {
		if err := g.writer.WriteGo(ctx, graph, g.goDir); err != nil {
			log.Error("go companion write failed", "error", err)
			return graph, err
		}
	}
	m := g.writer.Metrics()
	log.Info("generation complete",
		"content_types", len(cts),
		"files", m.FilesWritten,
		"bytes", m.BytesWritten,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return graph, nil
}
