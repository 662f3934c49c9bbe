package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported input formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// =============================================================================
// Graph Data Serialization API
// =============================================================================

// ReadFile reads graph data from path. The format is chosen by extension:
// .json, .toml, .yaml or .yml.
func ReadFile(path string) (Data, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Data{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// FormatFromPath maps a file extension to one of the supported formats.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported graph file extension %q", ext)
	}
}

// Read decodes graph data in the given format from r.
func Read(r io.Reader, format string) (Data, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return Data{}, fmt.Errorf("unsupported graph format %q", format)
	}
}

// ReadJSON decodes graph data from JSON:
//
//	{
//	  "numLayer": 4,
//	  "maxPerLayer": 2,
//	  "nodeList": [{"label": "Rubecula", "layer": 0}, {"label": "Corvus", "layer": 1}],
//	  "adjList": [[1], []]
//	}
//
// Unknown fields are rejected so that typos in hand-written files surface.
func ReadJSON(r io.Reader) (Data, error) {
	var d Data
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode json: %w", err)
	}
	return d, nil
}

// ReadTOML decodes graph data from TOML. Nodes are written as an array of
// tables:
//
//	numLayer = 2
//	adjList = [[1], []]
//
//	[[nodeList]]
//	label = "Rubecula"
//	layer = 0
func ReadTOML(r io.Reader) (Data, error) {
	var d Data
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return Data{}, fmt.Errorf("decode toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Data{}, fmt.Errorf("decode toml: unknown key %q", undecoded[0].String())
	}
	return d, nil
}

// ReadYAML decodes graph data from YAML.
func ReadYAML(r io.Reader) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode yaml: %w", err)
	}
	return d, nil
}

// Marshal encodes graph data as indented JSON.
func Marshal(d Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSON writes graph data as indented JSON to w.
func WriteJSON(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
