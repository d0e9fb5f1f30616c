package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `{"contentTypes": [{"sys": {"id": "post", "type": "ContentType"}, "fields": [{"id": "title", "type": "Symbol", "required": true}]}]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootGenerate(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(schema, []byte(export), 0o644))
	out := filepath.Join(dir, "types")

	stdout, err := execute(t, "generate", "--schema", schema, "--out", out, "--merge", "--merge-name", "All")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Generated 2 modules")
	assert.FileExists(t, filepath.Join(out, "Post.ts"))
	assert.FileExists(t, filepath.Join(out, "index.ts"))
	assert.FileExists(t, filepath.Join(out, "All.ts"))
}

func TestRootConfigFile(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(schema, []byte(export), 0o644))
	out := filepath.Join(dir, "generated")
	cfgFile := filepath.Join(dir, "cmsgen.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("schema: "+schema+"\nout: "+out+"\nextension: d.ts\n"), 0o644))

	_, err := execute(t, "generate", "--config", cfgFile)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "Post.d.ts"))
}

func TestRootMissingSchema(t *testing.T) {
	_, err := execute(t, "generate", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestRootVersion(t *testing.T) {
	stdout, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cmsgen v"+Version)
}

func TestRootSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "watch", "version"})
}
