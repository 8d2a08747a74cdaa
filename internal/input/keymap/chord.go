package keymap

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/editcore/internal/engine/selection"
)

// KeyCode is a physical or logical key, independent of modifiers.
type KeyCode struct {
	// Char holds the pressed character when Named == "". A Char chord and
	// a Named chord are mutually exclusive.
	Char rune
	// Named holds a non-character key name (Enter, Backspace, ...). Empty
	// when Char is set.
	Named string
}

// Named key constants, matching the closed set the core keymap resolves.
const (
	KeyEnter     = "Enter"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyLeft      = "Left"
	KeyRight     = "Right"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyTab       = "Tab"
)

// Modifiers is the set of held modifier keys.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// Chord is a key press plus the modifiers held at the time: the unit the
// keymap resolves into an Action.
type Chord struct {
	Code KeyCode
	Mods Modifiers
}

// CharChord returns a Chord for a plain character key.
func CharChord(c rune, mods Modifiers) Chord {
	return Chord{Code: KeyCode{Char: c}, Mods: mods}
}

// NamedChord returns a Chord for a named (non-character) key.
func NamedChord(name string, mods Modifiers) Chord {
	return Chord{Code: KeyCode{Named: name}, Mods: mods}
}

// ActionKind identifies the shape of an Action; Move actions additionally
// carry a Movement and Extend flag.
type ActionKind int

const (
	ActionNewline ActionKind = iota
	ActionBackspace
	ActionDelete
	ActionDeleteWordBackward
	ActionDeleteWordForward
	ActionDeleteLine
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste
	ActionIndent
	ActionOutdent
	ActionDuplicateLine
	ActionToggleComment
	ActionMove
)

// Action is one member of the core KeyAction set a resolved Chord maps to.
type Action struct {
	Kind     ActionKind
	Movement selection.Movement
	Extend   bool
}

func moveAction(m selection.Movement, extend bool) Action {
	return Action{Kind: ActionMove, Movement: m, Extend: extend}
}

// actionNames is the data-driven name a TOML binding file uses to refer to
// each action kind (see LoadBindings), keeping the table "data, not code".
var actionNames = map[string]ActionKind{
	"newline":              ActionNewline,
	"backspace":             ActionBackspace,
	"delete":                ActionDelete,
	"delete-word-backward":  ActionDeleteWordBackward,
	"delete-word-forward":   ActionDeleteWordForward,
	"delete-line":           ActionDeleteLine,
	"undo":                  ActionUndo,
	"redo":                  ActionRedo,
	"copy":                  ActionCopy,
	"cut":                   ActionCut,
	"paste":                 ActionPaste,
	"indent":                ActionIndent,
	"outdent":               ActionOutdent,
	"duplicate-line":        ActionDuplicateLine,
	"toggle-comment":        ActionToggleComment,
}

var movementNames = map[string]selection.Movement{
	"left":       selection.MoveLeft,
	"right":      selection.MoveRight,
	"up":         selection.MoveUp,
	"down":       selection.MoveDown,
	"word-left":  selection.MoveWordLeft,
	"word-right": selection.MoveWordRight,
	"line-start": selection.MoveLineStart,
	"line-end":   selection.MoveLineEnd,
}

// ParseAction resolves an action name such as "undo" or "move.word-right"
// (the latter form for movements; append ".extend" to set Extend) into an
// Action.
func ParseAction(name string) (Action, error) {
	if strings.HasPrefix(name, "move.") {
		rest := strings.TrimPrefix(name, "move.")
		extend := false
		if strings.HasSuffix(rest, ".extend") {
			extend = true
			rest = strings.TrimSuffix(rest, ".extend")
		}
		m, ok := movementNames[rest]
		if !ok {
			return Action{}, fmt.Errorf("keymap: unknown movement %q", rest)
		}
		return moveAction(m, extend), nil
	}
	kind, ok := actionNames[name]
	if !ok {
		return Action{}, fmt.Errorf("keymap: unknown action %q", name)
	}
	return Action{Kind: kind}, nil
}

// ParseChord parses a chord string such as "Ctrl+Z", "Shift+Tab", or "a"
// into a Chord. Modifier names are case-insensitive and may appear in any
// order, separated by "+". A character key held with any modifier is
// lowercased, so "Ctrl+Z" and "Ctrl+z" name the same chord.
func ParseChord(s string) (Chord, error) {
	parts := strings.Split(s, "+")
	if len(parts) == 0 {
		return Chord{}, fmt.Errorf("keymap: empty chord")
	}
	var mods Modifiers
	key := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl", "control":
			mods.Ctrl = true
		case "alt":
			mods.Alt = true
		case "shift":
			mods.Shift = true
		case "meta", "cmd", "super":
			mods.Meta = true
		default:
			return Chord{}, fmt.Errorf("keymap: unknown modifier %q", p)
		}
	}
	key = strings.TrimSpace(key)
	switch key {
	case "Enter", "Backspace", "Delete", "Left", "Right", "Up", "Down", "Home", "End", "Tab":
		return NamedChord(key, mods), nil
	}
	if len([]rune(key)) == 1 {
		r := []rune(key)[0]
		if mods != (Modifiers{}) {
			r = unicode.ToLower(r)
		}
		return CharChord(r, mods), nil
	}
	return Chord{}, fmt.Errorf("keymap: unrecognized key %q", key)
}
