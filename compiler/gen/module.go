package gen

import "slices"

// ImportKind is the shape of an import statement.
type ImportKind uint8

// Import kinds. The order is the order imports of one specifier are printed in.
const (
	ImportNamespace ImportKind = iota // import * as X from "..."
	ImportNamed                       // import { A, B } from "..."
	ImportTypeOnly                    // import type { A, B } from "..."
)

// String returns the import kind name.
func (k ImportKind) String() string {
	switch k {
	case ImportNamespace:
		return "namespace"
	case ImportNamed:
		return "named"
	case ImportTypeOnly:
		return "type-only"
	default:
		return "unknown"
	}
}

// ImportRequirement is one import a module needs. A namespace import holds
// exactly one name, the namespace alias.
type ImportRequirement struct {
	Specifier string
	Kind      ImportKind
	Names     []string
}

// NamespaceImport returns an `import * as alias from specifier` requirement.
func NamespaceImport(specifier, alias string) *ImportRequirement {
	return &ImportRequirement{Specifier: specifier, Kind: ImportNamespace, Names: []string{alias}}
}

// NamedImport returns an `import { names } from specifier` requirement.
func NamedImport(specifier string, names ...string) *ImportRequirement {
	return &ImportRequirement{Specifier: specifier, Kind: ImportNamed, Names: names}
}

// TypeImport returns an `import type { names } from specifier` requirement.
func TypeImport(specifier string, names ...string) *ImportRequirement {
	return &ImportRequirement{Specifier: specifier, Kind: ImportTypeOnly, Names: names}
}

func (r *ImportRequirement) clone() *ImportRequirement {
	return &ImportRequirement{Specifier: r.Specifier, Kind: r.Kind, Names: slices.Clone(r.Names)}
}

// DeclKind is the discriminant of a Declaration.
type DeclKind uint8

// Declaration kinds.
const (
	DeclInterface DeclKind = iota + 1
	DeclTypeAlias
	DeclStatement
	DeclReExport
)

// String returns the declaration kind name.
func (k DeclKind) String() string {
	switch k {
	case DeclInterface:
		return "interface"
	case DeclTypeAlias:
		return "type alias"
	case DeclStatement:
		return "statement"
	case DeclReExport:
		return "re-export"
	default:
		return "unknown"
	}
}

// Declaration is a top-level declaration of a module. The set of
// implementations is closed: Interface, TypeAlias, Statement and ReExport.
type Declaration interface {
	// Kind returns the declaration discriminant.
	Kind() DeclKind
	// DeclName returns the name the declaration binds in its module.
	// Re-exports bind no local name and return "".
	DeclName() string

	declaration()
}

// Property is one property signature of an interface.
type Property struct {
	Name     string
	Optional bool
	Type     string
}

// Interface is an exported interface declaration.
type Interface struct {
	Name       string
	Properties []Property
}

// TypeAlias is an exported type alias declaration.
type TypeAlias struct {
	Name string
	Body string
}

// Statement is a verbatim top-level statement. Name is the binding the
// statement exports, when it has one.
type Statement struct {
	Name string
	Text string
}

// ReExport re-exports names from another module.
type ReExport struct {
	Specifier string
	Names     []string
	TypeOnly  bool
}

func (*Interface) Kind() DeclKind { return DeclInterface }
func (*TypeAlias) Kind() DeclKind { return DeclTypeAlias }
func (*Statement) Kind() DeclKind { return DeclStatement }
func (*ReExport) Kind() DeclKind  { return DeclReExport }

func (d *Interface) DeclName() string { return d.Name }
func (d *TypeAlias) DeclName() string { return d.Name }
func (d *Statement) DeclName() string { return d.Name }
func (*ReExport) DeclName() string    { return "" }

func (*Interface) declaration() {}
func (*TypeAlias) declaration() {}
func (*Statement) declaration() {}
func (*ReExport) declaration()  {}

// AddProperty appends a property signature to the interface.
func (d *Interface) AddProperty(p Property) {
	d.Properties = append(d.Properties, p)
}

// cloneDecl returns a copy of d that shares no mutable state with it.
func cloneDecl(d Declaration) Declaration {
	switch d := d.(type) {
	case *Interface:
		return &Interface{Name: d.Name, Properties: slices.Clone(d.Properties)}
	case *TypeAlias:
		c := *d
		return &c
	case *Statement:
		c := *d
		return &c
	case *ReExport:
		c := *d
		c.Names = slices.Clone(d.Names)
		return &c
	default:
		return d
	}
}

// Module is one generated source unit.
type Module struct {
	// Name is the module name. Files are written as <Name>.<ext>.
	Name string
	// Entity holds the raw content type id the module was synthesized from.
	// Derived modules (index, merged) leave it empty.
	Entity  string
	Imports []*ImportRequirement
	Decls   []Declaration
	names   map[string]struct{}
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name, names: make(map[string]struct{})}
}

// Add appends a declaration. Declaration names are unique within a module.
func (m *Module) Add(d Declaration) error {
	if name := d.DeclName(); name != "" {
		if m.names == nil {
			m.names = make(map[string]struct{})
		}
		if _, ok := m.names[name]; ok {
			return &DuplicateDeclarationError{Module: m.Name, Name: name}
		}
		m.names[name] = struct{}{}
	}
	m.Decls = append(m.Decls, d)
	return nil
}

// Defines reports whether the module declares name.
func (m *Module) Defines(name string) bool {
	_, ok := m.names[name]
	return ok
}

// DeclNames returns the declared names in declaration order.
func (m *Module) DeclNames() []string {
	names := make([]string, 0, len(m.Decls))
	for _, d := range m.Decls {
		if n := d.DeclName(); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Import returns the requirement for specifier and kind, or nil.
func (m *Module) Import(specifier string, kind ImportKind) *ImportRequirement {
	for _, r := range m.Imports {
		if r.Specifier == specifier && r.Kind == kind {
			return r
		}
	}
	return nil
}
