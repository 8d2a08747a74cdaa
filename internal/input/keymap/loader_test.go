package keymap

import (
	"strings"
	"testing"
)

func TestLoadBindingsReaderParsesBindingTable(t *testing.T) {
	const doc = `
[[binding]]
keys = "Ctrl+Z"
action = "redo"

[[binding]]
keys = "a"
action = "move.left"
`
	bindings, err := LoadBindingsReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadBindingsReader: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("len(bindings) = %d, want 2", len(bindings))
	}
	if bindings[0].Keys != "Ctrl+Z" || bindings[0].Action != "redo" {
		t.Fatalf("bindings[0] = %+v", bindings[0])
	}
}

func TestLoadBindingsFileMissingFile(t *testing.T) {
	if _, err := LoadBindingsFile("/nonexistent/keymap.toml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
