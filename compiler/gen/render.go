package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/cmsgen/compiler/load"
)

// FieldRenderer maps a schema field to a type expression and to the imports
// that expression needs. Implementations must be pure and deterministic.
type FieldRenderer interface {
	// RenderType returns the type expression of the field.
	RenderType(f *load.Field) string
	// RenderImports returns the imports the field needs inside the module
	// called module. The namespace and entry-link imports are resolved by
	// the builder and need not be returned.
	RenderImports(f *load.Field, module string) []*ImportRequirement
}

// Field kinds understood by ContentfulRenderer.
const (
	KindSymbol   = "Symbol"
	KindText     = "Text"
	KindInteger  = "Integer"
	KindNumber   = "Number"
	KindDate     = "Date"
	KindBoolean  = "Boolean"
	KindLocation = "Location"
	KindObject   = "Object"
	KindRichText = "RichText"
	KindLink     = "Link"
	KindArray    = "Array"

	LinkAsset = "Asset"
	LinkEntry = "Entry"
)

// ContentfulRenderer renders fields against the contentful typings:
// primitives as <Namespace>.EntryFields.<Kind>, assets as <Namespace>.Asset
// and entry links as Entry<XFields>.
type ContentfulRenderer struct {
	cfg *Config
}

// NewContentfulRenderer returns the default renderer for the config.
func NewContentfulRenderer(c *Config) *ContentfulRenderer {
	return &ContentfulRenderer{cfg: c}
}

// RenderType implements FieldRenderer.
func (r *ContentfulRenderer) RenderType(f *load.Field) string {
	switch f.Type {
	case KindSymbol:
		if in := load.InValues(f.Validations); in != nil {
			return literalUnion(in)
		}
		return r.entryField(KindSymbol)
	case KindText, KindInteger, KindNumber, KindDate, KindBoolean, KindLocation, KindObject, KindRichText:
		return r.entryField(f.Type)
	case KindLink:
		return r.link(f.LinkType, f.Validations)
	case KindArray:
		return r.array(f.Items)
	default:
		return "any"
	}
}

// RenderImports implements FieldRenderer. Entry links import the fields
// interface of every linked content type except the module's own.
func (r *ContentfulRenderer) RenderImports(f *load.Field, module string) []*ImportRequirement {
	var linked []string
	switch {
	case f.Type == KindLink && f.LinkType == LinkEntry:
		linked = load.LinkContentTypes(f.Validations)
	case f.Type == KindArray && f.Items != nil && f.Items.Type == KindLink && f.Items.LinkType == LinkEntry:
		linked = load.LinkContentTypes(f.Items.Validations)
	}
	var reqs []*ImportRequirement
	for _, id := range linked {
		name := ModuleName(id)
		if name == module {
			continue
		}
		reqs = append(reqs, NamedImport(r.cfg.moduleSpecifier(name), ModuleFieldsName(id)))
	}
	return reqs
}

func (r *ContentfulRenderer) entryField(kind string) string {
	return r.cfg.Namespace + ".EntryFields." + kind
}

func (r *ContentfulRenderer) link(linkType string, vs []load.Validation) string {
	if linkType == LinkAsset {
		return r.cfg.Namespace + ".Asset"
	}
	ids := load.LinkContentTypes(vs)
	if len(ids) == 0 {
		return r.cfg.EntryLink + "<Record<string, any>>"
	}
	members := make([]string, len(ids))
	for i, id := range ids {
		members[i] = r.cfg.EntryLink + "<" + ModuleFieldsName(id) + ">"
	}
	return strings.Join(members, " | ")
}

func (r *ContentfulRenderer) array(items *load.Items) string {
	if items == nil {
		return "any[]"
	}
	var elem string
	switch items.Type {
	case KindSymbol:
		if in := load.InValues(items.Validations); in != nil {
			elem = literalUnion(in)
		} else {
			elem = r.entryField(KindSymbol)
		}
	case KindLink:
		elem = r.link(items.LinkType, items.Validations)
	default:
		elem = "any"
	}
	if strings.Contains(elem, " | ") {
		return "(" + elem + ")[]"
	}
	return elem + "[]"
}

// literalUnion renders allowed values as a union of literal types.
func literalUnion(values []any) string {
	members := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			members[i] = strconv.Quote(s)
		} else {
			members[i] = fmt.Sprint(v)
		}
	}
	return strings.Join(members, " | ")
}
