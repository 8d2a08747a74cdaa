// Package engine implements the editor core's L4 orchestrator: the single
// type external callers drive. It owns a Buffer (document + selections +
// history), a Shaper, a Highlighter, and a sparse line cache, and exposes
// exactly the pull-based surface SPEC_FULL §6 names — nothing in this
// core ever calls back into a UI.
//
// Grounded on original_source/crates/editor/src/engine.rs's EditorEngine,
// ported near-verbatim in control flow (apply_key_action dispatch,
// view_model's cache-reconciliation and per-segment selection/cursor
// intersection math, copy/cut/backspace/delete_word_*/delete_line/
// delete_forward/move_cursors/indent/outdent/duplicate_line/
// toggle_comment) since the original is authoritative for this component's
// many small edge cases (e.g. backspace at column 0, move_cursors' "base
// position" rule for non-extending motions).
package engine

import (
	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/selection"
	"github.com/dshills/editcore/internal/input/keymap"
	"github.com/dshills/editcore/internal/renderer/highlight"
	"github.com/dshills/editcore/internal/renderer/shaper"
	"github.com/dshills/editcore/internal/search"
)

// Engine is the editor core's orchestrator. The zero value is not usable;
// construct with New.
type Engine struct {
	Buffer  *buffer.Buffer
	Metrics FontMetrics
	Layout  LayoutConfig
	View    Viewport
	Keymap  *keymap.CoreKeymap

	cache             *lineCache
	cachedDocVersion  uint64
	cachedLineCount   int

	shaper      *shaper.Shaper
	highlighter *highlight.SpecProvider
	filename    string
}

// New creates an Engine over initial text, with a single caret at 0, the
// default core keymap, no highlighter language configured, and a 64-line,
// 120-column default viewport.
func New(text string) *Engine {
	sh := shaper.New(14)
	m := sh.Metrics()
	return &Engine{
		Buffer:  buffer.New(text),
		Metrics: FontMetrics{CharWidthPx: m.AvgCharWidth, LineHeightPx: m.LineHeight},
		Layout:  LayoutConfig{},
		View:    Viewport{FirstLine: 0, MaxLines: 64, WidthCols: 120},
		Keymap:  keymap.NewDefaultCoreKeymap(),
		cache:   newLineCache(),
		shaper:  sh,
		highlighter: highlight.NewSpecProvider(),
	}
}

// SetFilename records the current file name and reconfigures the
// highlighter's language from it. Per SPEC_FULL §7, a name the
// highlighter can't match disables highlighting rather than failing.
func (e *Engine) SetFilename(name string) {
	e.filename = name
	e.highlighter.SetLanguage(name)
}

// ApplyKeyAction dispatches one resolved KeyAction. clipboard is passed by
// reference: Copy and Cut write into it, Paste reads from it. The core
// never owns a clipboard of its own (SPEC_FULL §5).
func (e *Engine) ApplyKeyAction(action keymap.Action, clipboard *string) {
	switch action.Kind {
	case keymap.ActionNewline:
		e.Buffer.ApplyTextToSelections("\n")
	case keymap.ActionBackspace:
		e.backspace()
	case keymap.ActionDelete:
		e.deleteForward()
	case keymap.ActionDeleteWordBackward:
		e.deleteWordBackward()
	case keymap.ActionDeleteWordForward:
		e.deleteWordForward()
	case keymap.ActionDeleteLine:
		e.deleteLine()
	case keymap.ActionUndo:
		e.Buffer.Undo()
	case keymap.ActionRedo:
		e.Buffer.Redo()
	case keymap.ActionCopy:
		if clipboard != nil {
			*clipboard = e.copy()
		}
	case keymap.ActionCut:
		if clipboard != nil {
			*clipboard = e.cut()
		}
	case keymap.ActionPaste:
		if clipboard != nil {
			e.Buffer.ApplyTextToSelections(*clipboard)
		}
	case keymap.ActionIndent:
		e.indent()
	case keymap.ActionOutdent:
		e.outdent()
	case keymap.ActionDuplicateLine:
		e.duplicateLine()
	case keymap.ActionToggleComment:
		e.toggleComment()
	case keymap.ActionMove:
		e.moveCursors(action.Movement, action.Extend)
	}
}

// InsertText applies text to every selection, as if typed.
func (e *Engine) InsertText(text string) {
	e.Buffer.ApplyTextToSelections(text)
}

// LoadKeymapFile reads a TOML keymap override file at path and applies its
// bindings on top of the current table, overriding any default chord they
// name. A binding the file can't parse is skipped rather than rejecting
// the whole file.
func (e *Engine) LoadKeymapFile(path string) error {
	bindings, err := keymap.LoadBindingsFile(path)
	if err != nil {
		return err
	}
	e.Keymap.LoadBindings(bindings)
	return nil
}

// FindNext searches the full document text for query, starting at
// fromChar in the given direction.
func (e *Engine) FindNext(query search.Query, fromChar int, dir search.Direction) (search.Match, bool) {
	return search.FindNext(e.Buffer.Doc.ToString(), query, fromChar, dir)
}

// ReplaceRange replaces one prior match with replacement, placing a single
// caret immediately after the inserted text.
func (e *Engine) ReplaceRange(m search.Match, replacement string) {
	caret := m.Start + charCount(replacement)
	e.Buffer.ApplyReplaceRanges(
		[]buffer.ReplaceRange{{Start: m.Start, End: m.End, Text: replacement}},
		history.KindReplace,
		selection.NewSingleCaret(caret),
	)
}

// ReplaceAll replaces every occurrence of query with replacement in one
// undo step, returning the number of replacements made.
func (e *Engine) ReplaceAll(query search.Query, replacement string) int {
	if query.Needle == "" {
		return 0
	}
	text := e.Buffer.Doc.ToString()
	var matches []search.Match
	cursor := 0
	for {
		m, ok := search.FindNext(text, query, cursor, search.Forward)
		if !ok {
			break
		}
		matches = append(matches, m)
		cursor = m.End
		if cursor >= e.Buffer.Doc.LenChars() {
			break
		}
	}
	if len(matches) == 0 {
		return 0
	}
	ranges := make([]buffer.ReplaceRange, len(matches))
	for i, m := range matches {
		ranges[i] = buffer.ReplaceRange{Start: m.Start, End: m.End, Text: replacement}
	}
	// Earlier replacements shift the last match by their length change.
	delta := 0
	for _, m := range matches[:len(matches)-1] {
		delta += charCount(replacement) - (m.End - m.Start)
	}
	caret := ranges[len(ranges)-1].Start + delta + charCount(replacement)
	e.Buffer.ApplyReplaceRanges(ranges, history.KindReplace, selection.NewSingleCaret(caret))
	return len(matches)
}

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
