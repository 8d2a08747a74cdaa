// Package keymap resolves a key Chord to an editor Action through a flat,
// non-modal table: there are no modes and no multi-key sequences, only a
// map from a single Chord to an Action.
//
// # Key Concepts
//
// Chord: a key press plus the modifiers held at the time (chord.go).
//
// Action: one member of the core action set a Chord resolves to, parsed
// from a data-driven name such as "undo" or "move.word-right.extend"
// (chord.go).
//
// CoreKeymap: the Chord -> Action table itself (core.go). NewDefaultCoreKeymap
// builds the built-in defaults; LoadBindings applies user overrides on top.
//
// # User Overrides
//
// User keymap files are TOML, loaded with LoadBindingsFile and applied with
// CoreKeymap.LoadBindings:
//
//	[[binding]]
//	keys = "Ctrl+Z"
//	action = "redo"
//
// A binding whose Keys or Action string doesn't parse is skipped rather
// than failing the whole file.
package keymap
