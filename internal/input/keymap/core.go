package keymap

import "github.com/dshills/editcore/internal/engine/selection"

// CoreKeymap resolves Chords to Actions for the single-mode editor core:
// all bindings are data, held in a map, never branched on in code.
type CoreKeymap struct {
	bindings map[Chord]Action
}

// NewDefaultCoreKeymap returns the default chord table, matching the
// original source's Keymap::with_defaults exactly.
func NewDefaultCoreKeymap() *CoreKeymap {
	k := &CoreKeymap{bindings: make(map[Chord]Action, 16)}
	none := Modifiers{}
	ctrl := Modifiers{Ctrl: true}
	shift := Modifiers{Shift: true}

	k.bindings[NamedChord(KeyEnter, none)] = Action{Kind: ActionNewline}
	k.bindings[NamedChord(KeyBackspace, none)] = Action{Kind: ActionBackspace}
	k.bindings[NamedChord(KeyDelete, none)] = Action{Kind: ActionDelete}
	k.bindings[NamedChord(KeyLeft, none)] = moveAction(selection.MoveLeft, false)
	k.bindings[NamedChord(KeyRight, none)] = moveAction(selection.MoveRight, false)
	k.bindings[NamedChord(KeyUp, none)] = moveAction(selection.MoveUp, false)
	k.bindings[NamedChord(KeyDown, none)] = moveAction(selection.MoveDown, false)
	k.bindings[NamedChord(KeyLeft, ctrl)] = moveAction(selection.MoveWordLeft, false)
	k.bindings[NamedChord(KeyRight, ctrl)] = moveAction(selection.MoveWordRight, false)
	k.bindings[NamedChord(KeyHome, none)] = moveAction(selection.MoveLineStart, false)
	k.bindings[NamedChord(KeyEnd, none)] = moveAction(selection.MoveLineEnd, false)
	k.bindings[CharChord('z', ctrl)] = Action{Kind: ActionUndo}
	k.bindings[CharChord('y', ctrl)] = Action{Kind: ActionRedo}
	k.bindings[CharChord('c', ctrl)] = Action{Kind: ActionCopy}
	k.bindings[CharChord('x', ctrl)] = Action{Kind: ActionCut}
	k.bindings[CharChord('v', ctrl)] = Action{Kind: ActionPaste}
	k.bindings[NamedChord(KeyTab, none)] = Action{Kind: ActionIndent}
	k.bindings[NamedChord(KeyTab, shift)] = Action{Kind: ActionOutdent}

	return k
}

// Resolve looks up the Action bound to chord, if any.
func (k *CoreKeymap) Resolve(chord Chord) (Action, bool) {
	a, ok := k.bindings[chord]
	return a, ok
}

// Bind installs or overrides a single binding.
func (k *CoreKeymap) Bind(chord Chord, action Action) {
	k.bindings[chord] = action
}

// LoadBindings applies a set of data-driven Binding records (as loaded by
// LoadBindingsFile from a TOML file) on top of the current table, parsing each
// Binding's Keys and Action strings. A Binding with an unparseable chord or
// action is skipped rather than failing the whole load, since one bad user
// binding should not disable the rest.
func (k *CoreKeymap) LoadBindings(bindings []Binding) {
	for _, b := range bindings {
		chord, err := ParseChord(b.Keys)
		if err != nil {
			continue
		}
		action, err := ParseAction(b.Action)
		if err != nil {
			continue
		}
		k.Bind(chord, action)
	}
}
