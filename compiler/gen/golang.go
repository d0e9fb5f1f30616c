package gen

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// GoTypeIDsFile is the name of the Go companion file.
const GoTypeIDsFile = "typeids.go"

// GoTypeIDName returns the Go constant name of a content type id.
func GoTypeIDName(id string) string {
	return ModuleName(id) + "TypeID"
}

// GoTypeIDs builds a Go file declaring the content type ids of every
// entity module in g, so Go services can share them with the TypeScript
// side.
func (b *Builder) GoTypeIDs(g *Graph, pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by cmsgen. DO NOT EDIT.")
	entities := g.Entities()
	if len(entities) > 0 {
		f.Comment("Content type ids.")
		f.Const().DefsFunc(func(grp *jen.Group) {
			for _, e := range entities {
				grp.Id(GoTypeIDName(e.Entity)).Op("=").Lit(e.Entity)
			}
		})
	}
	f.Comment("TypeIDs lists every content type id in generation order.")
	f.Var().Id("TypeIDs").Op("=").Index().String().ValuesFunc(func(grp *jen.Group) {
		for _, e := range entities {
			grp.Id(GoTypeIDName(e.Entity))
		}
	})
	f.Comment("Modules maps a content type id to the name of its generated module.")
	f.Var().Id("Modules").Op("=").Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
		for _, e := range entities {
			d[jen.Id(GoTypeIDName(e.Entity))] = jen.Lit(e.Name)
		}
	}))
	return f
}

// WriteGo writes the Go companion file for g into dir.
func (w *Writer) WriteGo(ctx context.Context, g *Graph, dir string) error {
	pkg := w.builder.config.GoPackage
	if pkg == "" {
		return NewConfigError("GoPackage", nil, "missing Go package name")
	}
	if dir == "" {
		dir = w.outDir
	}
	path := filepath.Join(dir, GoTypeIDsFile)
	var buf bytes.Buffer
	if err := w.builder.GoTypeIDs(g, pkg).Render(&buf); err != nil {
		return NewWriteError(GoTypeIDsFile, path, fmt.Errorf("render: %w", err))
	}
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return NewWriteError(GoTypeIDsFile, path, fmt.Errorf("format: %w", err))
	}
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return NewWriteError(GoTypeIDsFile, dir, err)
	}
	return w.writeFiles(ctx, []fileTask{{module: GoTypeIDsFile, path: path, content: formatted}})
}
