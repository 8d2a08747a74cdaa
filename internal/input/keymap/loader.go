package keymap

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// bindingsFile is the on-disk shape of a user keymap override file: a flat
// list of chord/action pairs, data rather than code.
//
//	[[binding]]
//	keys = "Ctrl+Z"
//	action = "redo"
type bindingsFile struct {
	Binding []Binding `toml:"binding"`
}

// Binding is one chord/action override as loaded from a user keymap file.
// Keys and Action are parsed with ParseChord and ParseAction respectively.
type Binding struct {
	Keys   string `toml:"keys"`
	Action string `toml:"action"`
}

// LoadBindingsFile reads a TOML keymap override file at path and returns
// its bindings, unparsed. Parsing of individual Keys/Action strings happens
// in CoreKeymap.LoadBindings, which skips entries it can't parse.
func LoadBindingsFile(path string) ([]Binding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadBindingsReader(f)
}

// LoadBindingsReader reads a TOML keymap override document from r.
func LoadBindingsReader(r io.Reader) ([]Binding, error) {
	var doc bindingsFile
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("keymap: decode bindings: %w", err)
	}
	return doc.Binding, nil
}
