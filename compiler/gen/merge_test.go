package gen

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, author := blog()
	require.NoError(t, b.AppendTypes(g, post, author))

	m, err := b.Merge(g, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultMergeName, m.Name)
	assert.Nil(t, g.Module(DefaultMergeName), "merge must not register the module")

	expected := `import * as Contentful from "contentful";
import { CMSEntry } from "@cms/runtime";
import { Entry } from "contentful";

export interface PostFields {
    title: Contentful.EntryFields.Symbol;
    author?: Entry<AuthorFields>;
}

export const POST_TYPE_ID = 'post';

export type Post = CMSEntry<typeof POST_TYPE_ID, PostFields>;

export interface AuthorFields {
    name: Contentful.EntryFields.Symbol;
}

export const AUTHOR_TYPE_ID = 'author';

export type Author = CMSEntry<typeof AUTHOR_TYPE_ID, AuthorFields>;
`
	assert.Equal(t, expected, b.Print(m))
}

func TestMergeRoundTrip(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, author := blog()
	tag := contentType("tag", symbolField("label", true))
	require.NoError(t, b.AppendTypes(g, post, author, tag))

	var want []string
	for _, ct := range []*Module{g.Module("Post"), g.Module("Author"), g.Module("Tag")} {
		want = append(want, ct.DeclNames()...)
	}

	m, err := b.Merge(g, "All")
	require.NoError(t, err)

	got := m.DeclNames()
	assert.Equal(t, want, got)
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	assert.Len(t, slices.Compact(sorted), len(got))
}

func TestMergeSelfImportElimination(t *testing.T) {
	b := newTestBuilder()

	t.Run("drops imports of merged modules", func(t *testing.T) {
		g := NewGraph()
		post, author := blog()
		require.NoError(t, b.AppendTypes(g, post, author))

		m, err := b.Merge(g, "All")
		require.NoError(t, err)

		for _, r := range m.Imports {
			assert.NotContains(t, r.Names, "AuthorFields")
			assert.NotEqual(t, "./Author", r.Specifier)
		}
	})

	t.Run("keeps imports of modules outside the graph", func(t *testing.T) {
		g := NewGraph()
		require.NoError(t, b.AppendType(g, contentType("post", entryLink("tags", "tag"))))

		m, err := b.Merge(g, "All")
		require.NoError(t, err)

		r := m.Import("./Tag", ImportNamed)
		require.NotNil(t, r)
		assert.Equal(t, []string{"TagFields"}, r.Names)
	})

	t.Run("deduplicates external imports", func(t *testing.T) {
		g := NewGraph()
		post, author := blog()
		require.NoError(t, b.AppendTypes(g, post, author))

		m, err := b.Merge(g, "All")
		require.NoError(t, err)

		count := 0
		for _, r := range m.Imports {
			if r.Specifier == DefaultRuntimePackage {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestMergeSkipsDerivedModules(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, author := blog()
	require.NoError(t, b.AppendTypes(g, post, author))
	_, err := b.RebuildIndex(g)
	require.NoError(t, err)

	previous := NewModule("All")
	require.NoError(t, previous.Add(&TypeAlias{Name: "Post", Body: "never"}))
	g.Add(previous)

	m, err := b.Merge(g, "All")
	require.NoError(t, err)
	assert.Len(t, m.Decls, 6)
}

func TestMergeNameCollision(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, _ := blog()
	require.NoError(t, b.AppendTypes(g, post, contentType("contentTypes")))
	_, err := b.RebuildIndex(g)
	require.NoError(t, err)

	tests := []struct {
		name   string
		module string
	}{
		{"entity module", "ContentTypes"},
		{"index module", IndexModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := b.Merge(g, tt.module)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, ErrMissingConfig)

			var cerr *ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "MergeName", cerr.Option)
			assert.Equal(t, tt.module, cerr.Value)
		})
	}
}

func TestMergeCopiesDeclarations(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, author := blog()
	require.NoError(t, b.AppendTypes(g, post, author))
	source := g.Module("Post")
	before := b.Print(source)

	m, err := b.Merge(g, "All")
	require.NoError(t, err)

	for i, d := range source.Decls {
		assert.NotSame(t, d, m.Decls[i], "declaration %s", d.DeclName())
	}
	fields, ok := m.Decls[0].(*Interface)
	require.True(t, ok)
	require.NotEmpty(t, fields.Properties)
	fields.Properties[0].Type = "never"
	fields.AddProperty(Property{Name: "extra", Type: "string"})
	m.Decls[1].(*Statement).Text = ""
	m.Decls[2].(*TypeAlias).Body = "never"

	assert.Equal(t, before, b.Print(source))
}

func TestMergeUnsupportedDeclaration(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	odd := NewModule("Odd")
	require.NoError(t, odd.Add(&ReExport{Specifier: "./Post", Names: []string{"Post"}}))
	g.Add(odd)

	m, err := b.Merge(g, "All")
	require.Error(t, err)
	assert.Nil(t, m)
	assert.True(t, IsUnsupportedDeclarationKindError(err))

	var uerr *UnsupportedDeclarationKindError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "Odd", uerr.Module)
	assert.Equal(t, "re-export", uerr.Kind)
}

func TestMergeDuplicateDeclaration(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	for _, name := range []string{"A", "B"} {
		m := NewModule(name)
		require.NoError(t, m.Add(&TypeAlias{Name: "Shared", Body: "string"}))
		g.Add(m)
	}

	_, err := b.Merge(g, "All")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDeclaration)
}

func TestRenderMerged(t *testing.T) {
	b := newTestBuilder()
	g := NewGraph()
	post, author := blog()
	require.NoError(t, b.AppendTypes(g, post, author))

	out, err := b.RenderMerged(g, "")
	require.NoError(t, err)

	assert.Contains(t, out, "export type Post = ")
	assert.Contains(t, out, "export type Author = ")
	assert.NotContains(t, out, `from "./Author"`)
	assert.Equal(t, []string{"Post", "Author"}, g.Names())
}
