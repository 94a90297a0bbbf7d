// Package catalog loads material records from the constants file or from a
// YAML/JSON export, and writes generated profile records back out.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
	"github.com/Veraticus/lifecycle-profiles/internal/tsconst"
	"gopkg.in/yaml.v3"
)

// Catalog errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyDocument     = errors.New("empty material document")
)

// Format names a serialization format.
type Format string

// Supported formats.
const (
	FormatTS   Format = "ts"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTS, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs":
		return FormatTS, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// document is the wrapped form of a material export.
type document struct {
	Materials []model.Material `yaml:"materials"`
}

// Load reads materials from path, choosing the parser by extension. For
// constants files only the array assigned to materialsAnchor is read; an
// empty anchor means tsconst.DefaultMaterialsAnchor.
func Load(path, materialsAnchor string) ([]model.Material, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read materials file: %w", err)
	}

	if format == FormatTS {
		if materialsAnchor == "" {
			materialsAnchor = tsconst.DefaultMaterialsAnchor
		}
		materials, err := tsconst.ParseMaterials(string(data), materialsAnchor)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return materials, nil
	}

	materials, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return materials, nil
}

// Decode reads either a bare list of materials or a document with a
// top-level materials key. JSON is accepted since it is valid YAML.
func Decode(data []byte) ([]model.Material, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var materials []model.Material
		if err := node.Decode(&materials); err != nil {
			return nil, err
		}
		return materials, nil
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Materials, nil
	default:
		return nil, fmt.Errorf("%w: expected a list or a materials mapping", ErrUnsupportedFormat)
	}
}

// profileDocument is the export shape for generated records.
type profileDocument struct {
	Profiles []model.ProfileRecord `json:"profiles" yaml:"profiles"`
}

// WriteYAML writes records as a YAML document.
func WriteYAML(w io.Writer, records []model.ProfileRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(profileDocument{Profiles: records}); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes records as an indented JSON document.
func WriteJSON(w io.Writer, records []model.ProfileRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profileDocument{Profiles: records}); err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}
	return nil
}

// WriteTS writes records as profiles-object entries ready to paste.
func WriteTS(w io.Writer, records []model.ProfileRecord) error {
	for _, record := range records {
		if _, err := io.WriteString(w, tsconst.RenderRecord(record, "  ")); err != nil {
			return err
		}
	}
	return nil
}

// Write dispatches on format.
func Write(w io.Writer, format Format, records []model.ProfileRecord) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, records)
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatTS:
		return WriteTS(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
