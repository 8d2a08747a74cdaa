package keymap

import (
	"testing"

	"github.com/dshills/editcore/internal/engine/selection"
)

func TestParseChordModifiersAndOrder(t *testing.T) {
	c, err := ParseChord("Ctrl+Shift+Tab")
	if err != nil {
		t.Fatalf("ParseChord() error = %v", err)
	}
	want := NamedChord(KeyTab, Modifiers{Ctrl: true, Shift: true})
	if c != want {
		t.Fatalf("ParseChord() = %+v, want %+v", c, want)
	}
}

func TestParseChordSingleChar(t *testing.T) {
	c, err := ParseChord("z")
	if err != nil {
		t.Fatalf("ParseChord() error = %v", err)
	}
	if c.Code.Char != 'z' || c.Mods != (Modifiers{}) {
		t.Fatalf("ParseChord() = %+v", c)
	}
}

func TestParseChordUnknownModifier(t *testing.T) {
	if _, err := ParseChord("Hyper+a"); err == nil {
		t.Fatalf("expected error for unknown modifier")
	}
}

func TestParseActionMovementExtend(t *testing.T) {
	a, err := ParseAction("move.word-right.extend")
	if err != nil {
		t.Fatalf("ParseAction() error = %v", err)
	}
	if a.Kind != ActionMove || a.Movement != selection.MoveWordRight || !a.Extend {
		t.Fatalf("ParseAction() = %+v", a)
	}
}

func TestParseActionPlain(t *testing.T) {
	a, err := ParseAction("undo")
	if err != nil {
		t.Fatalf("ParseAction() error = %v", err)
	}
	if a.Kind != ActionUndo {
		t.Fatalf("ParseAction() = %+v", a)
	}
}

func TestParseActionUnknown(t *testing.T) {
	if _, err := ParseAction("bogus"); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
