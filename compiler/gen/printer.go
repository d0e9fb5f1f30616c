package gen

import (
	"strconv"
	"strings"
)

const indent = "    "

// Print serializes a module as TypeScript source.
func (b *Builder) Print(m *Module) string {
	var sb strings.Builder
	if h := b.config.Header; h != "" {
		sb.WriteString(strings.TrimRight(h, "\n"))
		sb.WriteString("\n\n")
	}
	for _, r := range m.Imports {
		printImport(&sb, r)
	}
	if len(m.Imports) > 0 && len(m.Decls) > 0 {
		sb.WriteByte('\n')
	}
	for i, d := range m.Decls {
		if i > 0 {
			_, prevReExport := m.Decls[i-1].(*ReExport)
			_, reExport := d.(*ReExport)
			if !prevReExport || !reExport {
				sb.WriteByte('\n')
			}
		}
		printDecl(&sb, d)
	}
	return sb.String()
}

func printImport(sb *strings.Builder, r *ImportRequirement) {
	switch r.Kind {
	case ImportNamespace:
		sb.WriteString("import * as ")
		sb.WriteString(r.Names[0])
	case ImportNamed:
		sb.WriteString("import { ")
		sb.WriteString(strings.Join(r.Names, ", "))
		sb.WriteString(" }")
	case ImportTypeOnly:
		sb.WriteString("import type { ")
		sb.WriteString(strings.Join(r.Names, ", "))
		sb.WriteString(" }")
	}
	sb.WriteString(" from ")
	sb.WriteString(strconv.Quote(r.Specifier))
	sb.WriteString(";\n")
}

func printDecl(sb *strings.Builder, d Declaration) {
	switch d := d.(type) {
	case *Interface:
		sb.WriteString("export interface ")
		sb.WriteString(d.Name)
		if len(d.Properties) == 0 {
			sb.WriteString(" {}\n")
			return
		}
		sb.WriteString(" {\n")
		for _, p := range d.Properties {
			sb.WriteString(indent)
			sb.WriteString(propertyName(p.Name))
			if p.Optional {
				sb.WriteByte('?')
			}
			sb.WriteString(": ")
			sb.WriteString(p.Type)
			sb.WriteString(";\n")
		}
		sb.WriteString("}\n")
	case *TypeAlias:
		sb.WriteString("export type ")
		sb.WriteString(d.Name)
		sb.WriteString(" = ")
		sb.WriteString(d.Body)
		sb.WriteString(";\n")
	case *Statement:
		sb.WriteString(d.Text)
		sb.WriteByte('\n')
	case *ReExport:
		sb.WriteString("export ")
		if d.TypeOnly {
			sb.WriteString("type ")
		}
		sb.WriteString("{ ")
		sb.WriteString(strings.Join(d.Names, ", "))
		sb.WriteString(" } from ")
		sb.WriteString(strconv.Quote(d.Specifier))
		sb.WriteString(";\n")
	}
}

// propertyName quotes names that are not valid identifiers.
func propertyName(name string) string {
	if name == "" {
		return `""`
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isIdentByte(c) || (i == 0 && c >= '0' && c <= '9') {
			return strconv.Quote(name)
		}
	}
	return name
}
