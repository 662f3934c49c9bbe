package grid

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write encodes the grid as indented JSON.
func Write(w io.Writer, g *Grid) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}
	return nil
}

// WriteFile writes the grid as JSON to path.
func WriteFile(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a grid previously encoded with [Write].
func Read(r io.Reader) (*Grid, error) {
	var g Grid
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode grid: %w", err)
	}
	return &g, nil
}

// ReadFile reads a grid JSON file.
func ReadFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
