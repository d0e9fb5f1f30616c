package gen

import (
	"fmt"
	"log/slog"

	"github.com/syssam/cmsgen/compiler/load"
)

// Builder synthesizes declaration modules from content types and assembles
// the derived index and merged modules. It holds no graph state; every
// operation takes the graph it works on.
type Builder struct {
	config *Config
	log    *slog.Logger
}

// NewBuilder creates a builder for the config. A nil config is replaced by
// the defaults of NewConfig.
func NewBuilder(c *Config) *Builder {
	if c == nil {
		c = MustNewConfig()
	}
	if c.Renderer == nil {
		c.Renderer = NewContentfulRenderer(c)
	}
	log := c.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{config: c, log: log}
}

// Config returns the builder configuration.
func (b *Builder) Config() *Config {
	return b.config
}

// Synthesize builds the module of one content type. It never reads or
// changes other modules.
func (b *Builder) Synthesize(ct *load.ContentType) (*Module, error) {
	if ct == nil {
		return nil, NewInvalidDescriptorError("", "")
	}
	if !ct.IsEntity() {
		return nil, NewInvalidDescriptorError(ct.Sys.ID, ct.Sys.Type)
	}
	if err := validID(ct.Sys.ID); err != nil {
		return nil, err
	}
	cfg := b.config
	id := ct.Sys.ID
	m := NewModule(ModuleName(id))
	m.Entity = id
	m.AddImport(NamespaceImport(cfg.NamespacePackage, cfg.Namespace))
	m.AddImport(NamedImport(cfg.RuntimePackage, cfg.EntryWrapper))

	fields := &Interface{Name: ModuleFieldsName(id)}
	for _, f := range ct.Fields {
		typ := cfg.Renderer.RenderType(f)
		b.resolveImports(m, f, typ)
		fields.AddProperty(Property{
			Name:     f.ID,
			Optional: f.Omitted || !f.Required,
			Type:     typ,
		})
	}
	typeID := ModuleTypeIDName(id)
	decls := []Declaration{
		fields,
		&Statement{
			Name: typeID,
			Text: fmt.Sprintf("export const %s = '%s';", typeID, id),
		},
		&TypeAlias{
			Name: m.Name,
			Body: fmt.Sprintf("%s<typeof %s, %s>", cfg.EntryWrapper, typeID, fields.Name),
		},
	}
	for _, d := range decls {
		if err := m.Add(d); err != nil {
			return nil, err
		}
	}
	organizeImports(m)
	return m, nil
}

// AppendType synthesizes ct and registers its module in g, replacing a
// previous module of the same name. On error g is left unchanged.
func (b *Builder) AppendType(g *Graph, ct *load.ContentType) error {
	m, err := b.Synthesize(ct)
	if err != nil {
		return err
	}
	g.Add(m)
	b.log.Debug("synthesized content type", "id", m.Entity, "module", m.Name, "fields", len(ct.Fields))
	return nil
}

// AppendTypes appends every content type in order and stops at the first
// error.
func (b *Builder) AppendTypes(g *Graph, cts ...*load.ContentType) error {
	for _, ct := range cts {
		if err := b.AppendType(g, ct); err != nil {
			return err
		}
	}
	return nil
}

// validID reports an error unless id starts with an ASCII letter and holds
// only ASCII letters, digits, '_' and '-'. Every generated name and the
// type-id literal are derived from it without escaping.
func validID(id string) error {
	if id == "" {
		return &InvalidDescriptorError{SysType: load.EntityType, Reason: "empty sys.id"}
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
		if i == 0 && !letter {
			return &InvalidDescriptorError{ID: id, SysType: load.EntityType, Reason: "sys.id must start with a letter"}
		}
		if !letter && !(c >= '0' && c <= '9') && c != '_' && c != '-' {
			return &InvalidDescriptorError{ID: id, SysType: load.EntityType, Reason: fmt.Sprintf("sys.id contains %q", c)}
		}
	}
	return nil
}
