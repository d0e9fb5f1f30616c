package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	fieldsSuffix = "Fields"
	typeIDSuffix = "_TYPE_ID"
)

var upper = cases.Upper(language.Und)

// ModuleName returns the entry type name for a content type id.
// For example: "blogPost" and "blog_post" both map to "BlogPost".
func ModuleName(id string) string {
	return inflect.Camelize(id)
}

// ModuleFieldsName returns the name of the fields interface of a content type.
func ModuleFieldsName(id string) string {
	return ModuleName(id) + fieldsSuffix
}

// ModuleTypeIDName returns the name of the exported type-id constant.
// For example: "blogPost" maps to "BLOG_POST_TYPE_ID".
func ModuleTypeIDName(id string) string {
	return upper.String(inflect.Underscore(ModuleName(id))) + typeIDSuffix
}

// ModuleFileName returns the file name a module is written to.
func ModuleFileName(name, ext string) string {
	return name + "." + strings.TrimPrefix(ext, ".")
}

// moduleSpecifier returns the relative specifier other generated modules
// use to import the module called name.
func (c *Config) moduleSpecifier(name string) string {
	return c.ModulePrefix + name
}

// localName strips the generated-module prefix from a specifier. It
// reports false for specifiers that do not follow the convention.
func (c *Config) localName(specifier string) (string, bool) {
	if c.ModulePrefix == "" || !strings.HasPrefix(specifier, c.ModulePrefix) {
		return "", false
	}
	return strings.TrimPrefix(specifier, c.ModulePrefix), true
}
