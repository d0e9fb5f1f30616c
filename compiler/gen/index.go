package gen

import "strings"

// Names of the union aliases exported by the index module.
const (
	EntriesUnion           = "CMSEntries"
	ManagementEntriesUnion = "CMSManagementEntries"
)

// RebuildIndex removes the index module from g and builds it again from
// the entity modules currently registered, in graph order.
func (b *Builder) RebuildIndex(g *Graph) (*Module, error) {
	cfg := b.config
	g.Remove(IndexModule)
	entities := g.Entities()

	m := NewModule(IndexModule)
	m.AddImport(NamedImport(cfg.RuntimePackage, cfg.ManagementEntry))
	var (
		entries    = make([]string, 0, len(entities))
		management = make([]string, 0, len(entities))
		reexports  = make([]Declaration, 0, 2*len(entities))
	)
	for _, e := range entities {
		from := cfg.moduleSpecifier(e.Name)
		typeNames := []string{ModuleName(e.Entity), ModuleFieldsName(e.Entity)}
		m.AddImport(TypeImport(from, typeNames...))
		reexports = append(reexports,
			&ReExport{Specifier: from, Names: typeNames, TypeOnly: true},
			&ReExport{Specifier: from, Names: []string{ModuleTypeIDName(e.Entity)}},
		)
		entries = append(entries, e.Name)
		management = append(management, cfg.ManagementEntry+"<"+e.Name+">")
	}
	decls := append(reexports,
		&TypeAlias{Name: EntriesUnion, Body: union(entries)},
		&TypeAlias{Name: ManagementEntriesUnion, Body: union(management)},
	)
	for _, d := range decls {
		if err := m.Add(d); err != nil {
			return nil, err
		}
	}
	g.Add(m)
	b.log.Debug("rebuilt index", "entities", len(entities))
	return m, nil
}

func union(members []string) string {
	if len(members) == 0 {
		return "never"
	}
	return strings.Join(members, " | ")
}
