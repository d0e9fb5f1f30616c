package gen

import (
	"github.com/syssam/cmsgen/compiler/load"
)

func contentType(id string, fields ...*load.Field) *load.ContentType {
	return &load.ContentType{
		Sys:    load.Sys{ID: id, Type: load.EntityType},
		Name:   id,
		Fields: fields,
	}
}

func symbolField(id string, required bool) *load.Field {
	return &load.Field{ID: id, Type: KindSymbol, Required: required}
}

func entryLink(id string, targets ...string) *load.Field {
	f := &load.Field{ID: id, Type: KindLink, LinkType: LinkEntry}
	if len(targets) > 0 {
		f.Validations = []load.Validation{{LinkContentType: targets}}
	}
	return f
}

// blog returns the two content types used across tests: an author and a
// post linking to it.
func blog() (post, author *load.ContentType) {
	author = contentType("author", symbolField("name", true))
	post = contentType("post",
		symbolField("title", true),
		entryLink("author", "author"),
	)
	return post, author
}

func newTestBuilder(opts ...Option) *Builder {
	return NewBuilder(MustNewConfig(append([]Option{WithTarget("out")}, opts...)...))
}
