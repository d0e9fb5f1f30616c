package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/cmsgen/compiler/load"
)

func TestSynthesize(t *testing.T) {
	b := newTestBuilder()
	post, _ := blog()

	m, err := b.Synthesize(post)
	require.NoError(t, err)

	assert.Equal(t, "Post", m.Name)
	assert.Equal(t, "post", m.Entity)
	assert.Equal(t, []string{"PostFields", "POST_TYPE_ID", "Post"}, m.DeclNames())

	fields, ok := m.Decls[0].(*Interface)
	require.True(t, ok)
	assert.Equal(t, []Property{
		{Name: "title", Type: "Contentful.EntryFields.Symbol"},
		{Name: "author", Optional: true, Type: "Entry<AuthorFields>"},
	}, fields.Properties)

	stmt, ok := m.Decls[1].(*Statement)
	require.True(t, ok)
	assert.Equal(t, "export const POST_TYPE_ID = 'post';", stmt.Text)

	alias, ok := m.Decls[2].(*TypeAlias)
	require.True(t, ok)
	assert.Equal(t, "CMSEntry<typeof POST_TYPE_ID, PostFields>", alias.Body)

	expected := `import * as Contentful from "contentful";
import { CMSEntry } from "@cms/runtime";
import { Entry } from "contentful";
import { AuthorFields } from "./Author";

export interface PostFields {
    title: Contentful.EntryFields.Symbol;
    author?: Entry<AuthorFields>;
}

export const POST_TYPE_ID = 'post';

export type Post = CMSEntry<typeof POST_TYPE_ID, PostFields>;
`
	assert.Equal(t, expected, b.Print(m))
}

func TestSynthesizeOptionality(t *testing.T) {
	b := newTestBuilder()
	ct := contentType("page",
		&load.Field{ID: "required", Type: KindText, Required: true},
		&load.Field{ID: "optional", Type: KindText},
		&load.Field{ID: "omitted", Type: KindText, Required: true, Omitted: true},
	)

	m, err := b.Synthesize(ct)
	require.NoError(t, err)

	props := m.Decls[0].(*Interface).Properties
	require.Len(t, props, 3)
	assert.False(t, props[0].Optional)
	assert.True(t, props[1].Optional)
	assert.True(t, props[2].Optional)
}

func TestSynthesizeNoFields(t *testing.T) {
	b := newTestBuilder()

	m, err := b.Synthesize(contentType("empty"))
	require.NoError(t, err)

	assert.Empty(t, m.Decls[0].(*Interface).Properties)
	// The namespace import stays even when nothing references it.
	assert.NotNil(t, m.Import("contentful", ImportNamespace))
	assert.Nil(t, m.Import("contentful", ImportNamed))
}

func TestSynthesizeSelfLink(t *testing.T) {
	b := newTestBuilder()
	ct := contentType("category", entryLink("parent", "category"))

	m, err := b.Synthesize(ct)
	require.NoError(t, err)

	assert.Nil(t, m.Import("./Category", ImportNamed))
	assert.Equal(t, "Entry<CategoryFields>", m.Decls[0].(*Interface).Properties[0].Type)
}

func TestSynthesizeRejectsUnusableID(t *testing.T) {
	b := newTestBuilder()

	for _, id := range []string{`a\`, "o'brien", "a.b", "1post", "a b", "_post", "pöst"} {
		t.Run(id, func(t *testing.T) {
			m, err := b.Synthesize(contentType(id))
			require.Error(t, err)
			assert.Nil(t, m)

			var ide *InvalidDescriptorError
			require.ErrorAs(t, err, &ide)
			assert.Equal(t, id, ide.ID)
			assert.NotEmpty(t, ide.Reason)
		})
	}
}

func TestSynthesizeAcceptsIDAlphabet(t *testing.T) {
	b := newTestBuilder()

	for _, id := range []string{"post", "blogPost", "blog_post", "blog-post", "Post2"} {
		t.Run(id, func(t *testing.T) {
			m, err := b.Synthesize(contentType(id))
			require.NoError(t, err)
			assert.Contains(t, m.Decls[1].(*Statement).Text, "'"+id+"'")
		})
	}
}

func TestSynthesizeInvalidDescriptor(t *testing.T) {
	b := newTestBuilder()

	tests := []struct {
		name string
		ct   *load.ContentType
	}{
		{"nil", nil},
		{"asset", &load.ContentType{Sys: load.Sys{ID: "logo", Type: "Asset"}}},
		{"missing type", &load.ContentType{Sys: load.Sys{ID: "post"}}},
		{"missing id", &load.ContentType{Sys: load.Sys{Type: load.EntityType}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := b.Synthesize(tt.ct)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, IsInvalidDescriptorError(err))
		})
	}
}

func TestAppendType(t *testing.T) {
	t.Run("registers module", func(t *testing.T) {
		b := newTestBuilder()
		g := NewGraph()
		post, author := blog()

		require.NoError(t, b.AppendTypes(g, post, author))
		assert.Equal(t, []string{"Post", "Author"}, g.Names())
	})

	t.Run("idempotent", func(t *testing.T) {
		b := newTestBuilder()
		g := NewGraph()
		post, _ := blog()

		require.NoError(t, b.AppendType(g, post))
		first := b.Print(g.Module("Post"))
		require.NoError(t, b.AppendType(g, post))

		assert.Equal(t, 1, g.Len())
		assert.Equal(t, first, b.Print(g.Module("Post")))
	})

	t.Run("invalid descriptor leaves graph unchanged", func(t *testing.T) {
		b := newTestBuilder()
		g := NewGraph()
		post, _ := blog()
		require.NoError(t, b.AppendType(g, post))

		err := b.AppendType(g, &load.ContentType{Sys: load.Sys{ID: "logo", Type: "Asset"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDescriptor)
		assert.Equal(t, []string{"Post"}, g.Names())
	})

	t.Run("stops at first error", func(t *testing.T) {
		b := newTestBuilder()
		g := NewGraph()
		post, author := blog()

		err := b.AppendTypes(g, post, &load.ContentType{}, author)
		require.Error(t, err)
		assert.Equal(t, []string{"Post"}, g.Names())
	})

	t.Run("does not touch other modules", func(t *testing.T) {
		b := newTestBuilder()
		g := NewGraph()
		post, author := blog()
		require.NoError(t, b.AppendType(g, author))
		before := b.Print(g.Module("Author"))

		require.NoError(t, b.AppendType(g, post))
		assert.Equal(t, before, b.Print(g.Module("Author")))
	})
}

func TestNewBuilderDefaults(t *testing.T) {
	b := NewBuilder(nil)
	require.NotNil(t, b.Config())
	assert.Equal(t, DefaultExtension, b.Config().Extension)
	assert.NotNil(t, b.Config().Renderer)
}
