package gen

import "slices"

// Merge flattens every module of g, except the index and any module named
// name, into one new module. The merged module is returned and not
// registered in g.
//
// Interfaces, type aliases and statements are copied in module order; the
// merged module shares no declaration with g. A name that belongs to an
// entity module or the index is rejected with a ConfigError.
// Imports of generated modules whose declarations are now local are
// dropped; every other import is kept once per specifier and kind.
func (b *Builder) Merge(g *Graph, name string) (*Module, error) {
	if name == "" {
		name = b.config.MergeName
	}
	if err := checkMergeName(g, name); err != nil {
		return nil, err
	}
	merged := NewModule(name)
	local := make(map[string]struct{})
	var pending []*ImportRequirement

	for _, m := range g.Modules() {
		if m.Name == name || m.Name == IndexModule {
			continue
		}
		pending = append(pending, m.Imports...)
		for _, d := range m.Decls {
			switch d := d.(type) {
			case *Interface, *TypeAlias, *Statement:
				if err := merged.Add(cloneDecl(d)); err != nil {
					return nil, err
				}
				local[d.DeclName()] = struct{}{}
			default:
				return nil, NewUnsupportedDeclarationKindError(m.Name, d)
			}
		}
	}

	for _, r := range pending {
		if r = b.foreignPart(r, local); r != nil {
			merged.AddImport(r)
		}
	}
	b.log.Debug("merged modules", "module", name, "declarations", len(merged.Decls), "imports", len(merged.Imports))
	return merged, nil
}

// checkMergeName reports whether writing a module called name would
// overwrite a module of g that is not a previous merge result.
func checkMergeName(g *Graph, name string) error {
	if name == IndexModule {
		return NewConfigError("MergeName", name, "collides with the index module")
	}
	if m := g.Module(name); m != nil && m.Entity != "" {
		return NewConfigError("MergeName", name, "collides with the module of content type "+m.Entity)
	}
	return nil
}

// foreignPart returns the part of r that still has to be imported once the
// declarations in local are inlined, or nil when nothing is left.
func (b *Builder) foreignPart(r *ImportRequirement, local map[string]struct{}) *ImportRequirement {
	target, generated := b.config.localName(r.Specifier)
	if !generated {
		return r
	}
	if _, ok := local[target]; ok {
		return nil
	}
	if r.Kind == ImportNamespace {
		return r
	}
	c := r.clone()
	c.Names = slices.DeleteFunc(c.Names, func(n string) bool {
		_, ok := local[n]
		return ok
	})
	if len(c.Names) == 0 {
		return nil
	}
	return c
}

// RenderMerged merges g and returns the printed merged module. It does not
// touch the disk.
func (b *Builder) RenderMerged(g *Graph, name string) (string, error) {
	m, err := b.Merge(g, name)
	if err != nil {
		return "", err
	}
	return b.Print(m), nil
}
