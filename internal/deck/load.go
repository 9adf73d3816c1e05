package deck

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var builtinFS embed.FS

const builtinPath = "content/declarative.yaml"

// Parse decodes a YAML deck and checks its invariants.
func Parse(data []byte) (*Deck, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Deck
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding deck: %w", err)
	}
	if err := d.check(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses a deck file.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

var builtin = sync.OnceValues(func() (*Deck, error) {
	data, err := builtinFS.ReadFile(builtinPath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
})

// Builtin returns the embedded lecture deck. Callers must not mutate it.
func Builtin() (*Deck, error) {
	return builtin()
}

// Load returns the deck at path, or the builtin deck when path is empty.
func Load(path string) (*Deck, error) {
	if path == "" {
		return Builtin()
	}
	return LoadFile(path)
}
