package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a schema export.
type Format string

// Supported export formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// FormatOf infers the export format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("load: unsupported schema file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and decodes the schema export at path.
func LoadFile(path string) (*Export, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	exp, err := Decode(buf, format)
	if err != nil {
		return nil, fmt.Errorf("load: decode %s: %w", path, err)
	}
	return exp, nil
}

// Decode decodes a schema export in the given format.
func Decode(buf []byte, format Format) (*Export, error) {
	exp := &Export{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(buf, exp); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(buf, exp); err != nil {
			return nil, err
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(buf))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(exp); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("load: unknown format %q", format)
	}
	return exp, nil
}

// Encode encodes a schema export. It is the inverse of Decode and is used
// to convert exports between formats.
func Encode(exp *Export, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(exp, "", "  ")
	case FormatYAML:
		return yaml.Marshal(exp)
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(exp); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("load: unknown format %q", format)
	}
}
