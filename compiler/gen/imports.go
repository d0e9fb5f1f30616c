package gen

import (
	"slices"
	"strings"

	"github.com/syssam/cmsgen/compiler/load"
)

// AddImport merges r into the module's imports. Requirements with the same
// specifier and kind collapse into one and their names are unioned.
// A namespace requirement keeps the alias it was first registered with.
func (m *Module) AddImport(r *ImportRequirement) {
	if r == nil || r.Specifier == "" {
		return
	}
	existing := m.Import(r.Specifier, r.Kind)
	if existing == nil {
		m.Imports = append(m.Imports, r.clone())
		return
	}
	if existing.Kind == ImportNamespace {
		return
	}
	for _, n := range r.Names {
		if !slices.Contains(existing.Names, n) {
			existing.Names = append(existing.Names, n)
		}
	}
}

// resolveImports ensures the imports a rendered field type needs are present
// on the module. Both checks are idempotent.
func (b *Builder) resolveImports(m *Module, f *load.Field, rendered string) {
	cfg := b.config
	if strings.Contains(rendered, cfg.Namespace+".") {
		m.AddImport(NamespaceImport(cfg.NamespacePackage, cfg.Namespace))
	}
	if referencesIdent(rendered, cfg.EntryLink) {
		m.AddImport(NamedImport(cfg.EntryLinkPackage, cfg.EntryLink))
	}
	for _, r := range cfg.Renderer.RenderImports(f, m.Name) {
		m.AddImport(r)
	}
}

// organizeImports merges duplicate requirements and drops named and
// type-only names that no declaration of the module references. Namespace
// imports are always kept.
func organizeImports(m *Module) {
	merged := make([]*ImportRequirement, 0, len(m.Imports))
	seen := make(map[importKey]*ImportRequirement, len(m.Imports))
	for _, r := range m.Imports {
		k := importKey{r.Specifier, r.Kind}
		if prev, ok := seen[k]; ok {
			if prev.Kind != ImportNamespace {
				for _, n := range r.Names {
					if !slices.Contains(prev.Names, n) {
						prev.Names = append(prev.Names, n)
					}
				}
			}
			continue
		}
		c := r.clone()
		seen[k] = c
		merged = append(merged, c)
	}
	body := declarationText(m)
	m.Imports = merged[:0:0]
	for _, r := range merged {
		if r.Kind != ImportNamespace {
			r.Names = slices.DeleteFunc(r.Names, func(n string) bool {
				return !referencesIdent(body, n)
			})
			if len(r.Names) == 0 {
				continue
			}
		}
		m.Imports = append(m.Imports, r)
	}
}

type importKey struct {
	specifier string
	kind      ImportKind
}

// declarationText returns the text of every type position in the module,
// used to decide which imported names are referenced.
func declarationText(m *Module) string {
	var b strings.Builder
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *Interface:
			for _, p := range d.Properties {
				b.WriteString(p.Type)
				b.WriteByte('\n')
			}
		case *TypeAlias:
			b.WriteString(d.Body)
			b.WriteByte('\n')
		case *Statement:
			b.WriteString(d.Text)
			b.WriteByte('\n')
		case *ReExport:
			b.WriteString(strings.Join(d.Names, " "))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// referencesIdent reports whether text references ident as a whole
// identifier, not as part of a longer one or as a member of a namespace.
func referencesIdent(text, ident string) bool {
	if ident == "" {
		return false
	}
	for i := 0; ; {
		j := strings.Index(text[i:], ident)
		if j < 0 {
			return false
		}
		start, end := i+j, i+j+len(ident)
		before := start == 0 || (!isIdentByte(text[start-1]) && text[start-1] != '.')
		after := end == len(text) || !isIdentByte(text[end])
		if before && after {
			return true
		}
		i = start + 1
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
