// Package buffer implements the editor core's L2 transactional edit
// surface: the point where a Document, a Selection set, and a History
// meet. Every mutating operation goes through apply_text_to_selections or
// apply_replace_ranges so that selections update and history records stay
// consistent with each other.
//
// Grounded on the donor's buffer.rs Buffer (same field shape: doc,
// selections, history, last_edit_impact) and on dshills-keystorm's deleted
// byte-indexed buffer package for the surrounding Go idiom (exported struct
// with small, fully-saturating operations, no returned errors).
package buffer

import (
	"strings"

	"github.com/dshills/editcore/internal/engine/document"
	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/selection"
)

// EditImpact names the minimum line range invalidated by the most recent
// edit. It is a cache hint only: correctness must never depend on it.
type EditImpact struct {
	StartLine       int
	EndLineInclusive int
}

// ReplaceRange is an explicit, caller-supplied edit for ApplyReplaceRanges:
// replace [Start, End) with Text.
type ReplaceRange struct {
	Start int
	End   int
	Text  string
}

// Buffer owns a Document, its Selection set, and its History, and keeps
// them consistent across every mutation. The buffer never fails: all
// offsets saturate into range rather than erroring.
type Buffer struct {
	Doc        *document.Document
	Selections selection.Set
	History    *history.History

	lastImpact    EditImpact
	hasLastImpact bool
}

// New creates a Buffer over fresh document text, with a single caret at 0.
func New(text string) *Buffer {
	return &Buffer{
		Doc:        document.New(text),
		Selections: selection.NewSingleCaret(0),
		History:    history.New(),
	}
}

// LastEditImpact returns the impact of the most recent edit and whether one
// is present. Undo and redo clear it, forcing callers back to a full
// line-range check or full cache invalidation.
func (b *Buffer) LastEditImpact() (EditImpact, bool) {
	return b.lastImpact, b.hasLastImpact
}

// Snapshot is a cheap, cloneable view of the document alone; selections and
// history are not part of it (see Restore).
type Snapshot struct {
	doc document.Snapshot
}

// Snapshot captures the document's current state.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{doc: b.Doc.Snapshot()}
}

// Restore reinstates a document snapshot and, per spec, resets dependent
// buffer state: history is cleared, selections collapse to a single caret
// at 0, and the last edit impact is cleared.
func (b *Buffer) Restore(s Snapshot) {
	b.Doc.Restore(s.doc)
	b.History = history.New()
	b.Selections = selection.NewSingleCaret(0)
	b.hasLastImpact = false
}

// ApplyTextToSelections replaces every selection (primary and secondary)
// with inserted, then collapses each, in source order, to a caret at its
// pre-edit start plus the inserted text's length. These caret offsets are
// not shifted for length changes made by edits earlier in the document,
// so only the first selection in document order is guaranteed to land
// immediately after its inserted text. A no-op (every selection a caret
// and inserted == "") pushes nothing and leaves the last edit impact
// exactly as it was before the call.
func (b *Buffer) ApplyTextToSelections(inserted string) {
	sels := b.Selections.AllIncludingPrimary()

	startLine := -1
	endLine := 0
	edits := make([]history.Edit, len(sels))
	for i, s := range sels {
		start, end := s.Range()
		l := b.Doc.CharToLine(start)
		if startLine == -1 || l < startLine {
			startLine = l
		}
		if le := b.Doc.CharToLine(end); le > endLine {
			endLine = le
		}
		edits[i] = history.Edit{
			StartChar: start,
			Deleted:   b.Doc.SliceToString(start, end),
			Inserted:  inserted,
		}
	}

	allEmpty := true
	for _, e := range edits {
		if e.Deleted != "" || e.Inserted != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return
	}

	sortEditsDescending(edits)
	for _, e := range edits {
		end := e.StartChar + e.DeletedLenChars()
		b.Doc.ReplaceRange(e.StartChar, end, e.Inserted)
	}

	insertedChars := charCount(inserted)
	carets := make([]selection.Selection, len(sels))
	for i, s := range sels {
		start, _ := s.Range()
		caret := start + insertedChars
		carets[i] = selection.NewCaret(caret)
	}
	b.Selections = selection.FromSelections(carets)

	var kind history.Kind
	switch {
	case inserted == "":
		kind = history.KindDelete
	case allCarets(sels):
		kind = history.KindInsert
	default:
		kind = history.KindReplace
	}

	allowCoalesce := kind == history.KindInsert && insertedChars == 1 && b.Selections.IsSingleCaret()
	b.History.Push(history.Transaction{Kind: kind, Edits: edits}, allowCoalesce)

	b.setImpact(startLine, endLine, countNewlines(inserted)+1)
}

// ApplyReplaceRanges replaces each of ranges with its text, sorted so that
// later ranges in the document are applied first, then installs
// newSelections wholesale. Used for search-and-replace, block operations,
// indent/outdent, duplicate-line, toggle-comment, and word/line deletion.
// Coalescing is always disabled.
func (b *Buffer) ApplyReplaceRanges(ranges []ReplaceRange, kind history.Kind, newSelections selection.Set) {
	if len(ranges) == 0 {
		return
	}

	startLine := -1
	endLine := 0
	edits := make([]history.Edit, len(ranges))
	for i, r := range ranges {
		if l := b.Doc.CharToLine(r.Start); startLine == -1 || l < startLine {
			startLine = l
		}
		if le := b.Doc.CharToLine(r.End); le > endLine {
			endLine = le
		}
		edits[i] = history.Edit{
			StartChar: r.Start,
			Deleted:   b.Doc.SliceToString(r.Start, r.End),
			Inserted:  r.Text,
		}
	}

	sortEditsDescending(edits)
	for _, e := range edits {
		end := e.StartChar + e.DeletedLenChars()
		b.Doc.ReplaceRange(e.StartChar, end, e.Inserted)
	}

	b.Selections = newSelections
	b.History.Push(history.Transaction{Kind: kind, Edits: edits}, false)
	b.setImpact(startLine, endLine, 1)
}

// Undo pops the most recent transaction, applies its inverse in
// descending-start order, and moves it to the redo stack. Returns false on
// an empty undo stack. Afterwards each edit leaves a caret just past the
// text it restored, in the transaction's edit order.
func (b *Buffer) Undo() bool {
	tx, ok := b.History.PopUndo()
	if !ok {
		return false
	}
	edits := append([]history.Edit(nil), tx.Edits...)
	sortEditsDescending(edits)
	// Edits record pre-edit offsets; shift each by the length change of the
	// edits before it to find where its inserted text sits now.
	delta := 0
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		edits[i].StartChar += delta
		delta += e.InsertedLenChars() - e.DeletedLenChars()
	}
	for _, e := range edits {
		end := e.StartChar + e.InsertedLenChars()
		b.Doc.ReplaceRange(e.StartChar, end, e.Deleted)
	}
	carets := make([]selection.Selection, len(tx.Edits))
	for i, e := range tx.Edits {
		carets[i] = selection.NewCaret(e.StartChar + e.DeletedLenChars())
	}
	b.Selections = selection.FromSelections(carets)
	b.hasLastImpact = false
	return true
}

// Redo pops the most recent undone transaction, reapplies it forward in
// descending-start order, and moves it back to the undo stack. Returns
// false on an empty redo stack. Selections are left untouched.
func (b *Buffer) Redo() bool {
	tx, ok := b.History.PopRedo()
	if !ok {
		return false
	}
	edits := append([]history.Edit(nil), tx.Edits...)
	sortEditsDescending(edits)
	for _, e := range edits {
		end := e.StartChar + e.DeletedLenChars()
		b.Doc.ReplaceRange(e.StartChar, end, e.Inserted)
	}
	b.hasLastImpact = false
	return true
}

func (b *Buffer) setImpact(startLine, endLine, extraLines int) {
	if startLine == -1 {
		b.hasLastImpact = false
		return
	}
	b.lastImpact = EditImpact{StartLine: startLine, EndLineInclusive: endLine + extraLines}
	b.hasLastImpact = true
}

func sortEditsDescending(edits []history.Edit) {
	for i := 1; i < len(edits); i++ {
		for j := i; j > 0 && edits[j].StartChar > edits[j-1].StartChar; j-- {
			edits[j], edits[j-1] = edits[j-1], edits[j]
		}
	}
}

func allCarets(sels []selection.Selection) bool {
	for _, s := range sels {
		if !s.IsCaret() {
			return false
		}
	}
	return true
}

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func countNewlines(s string) int {
	return strings.Count(s, "\n")
}
