package buffer

import (
	"testing"

	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/selection"
)

func TestApplyTextToSelectionsSingleCaretInsert(t *testing.T) {
	b := New("hello")
	b.Selections = selection.NewSingleCaret(5)
	b.ApplyTextToSelections(" world")

	if got := b.Doc.ToString(); got != "hello world" {
		t.Fatalf("ToString() = %q", got)
	}
	if !b.Selections.IsSingleCaret() || b.Selections.Primary.Head != 11 {
		t.Fatalf("selections after insert = %+v", b.Selections)
	}
	impact, ok := b.LastEditImpact()
	if !ok || impact.StartLine != 0 || impact.EndLineInclusive != 1 {
		t.Fatalf("impact = %+v, ok=%v", impact, ok)
	}
}

func TestApplyTextToSelectionsMultiCursor(t *testing.T) {
	b := New("aaa\nbbb\nccc")
	b.Selections = selection.Set{
		Primary:   selection.NewCaret(0),
		Secondary: []selection.Selection{selection.NewCaret(4), selection.NewCaret(8)},
	}
	b.ApplyTextToSelections("X")

	if got := b.Doc.ToString(); got != "Xaaa\nXbbb\nXccc" {
		t.Fatalf("ToString() = %q", got)
	}
	all := b.Selections.AllIncludingPrimary()
	if len(all) != 3 {
		t.Fatalf("expected 3 carets, got %d", len(all))
	}
	want := []int{1, 5, 9}
	for i, c := range all {
		if c.Head != want[i] || !c.IsCaret() {
			t.Fatalf("caret[%d] = %+v, want caret at %d", i, c, want[i])
		}
	}
}

func TestApplyTextToSelectionsNoOpDoesNotPush(t *testing.T) {
	b := New("hello")
	b.Selections = selection.NewSingleCaret(2)
	b.ApplyTextToSelections("")

	if b.History.CanUndo() {
		t.Fatalf("empty replace at a caret must not push a transaction")
	}
}

func TestApplyTextToSelectionsDeletesRange(t *testing.T) {
	b := New("hello world")
	b.Selections = selection.Set{Primary: selection.Selection{Anchor: 5, Head: 11}}
	b.ApplyTextToSelections("")

	if got := b.Doc.ToString(); got != "hello" {
		t.Fatalf("ToString() = %q", got)
	}
	if !b.Selections.Primary.IsCaret() || b.Selections.Primary.Head != 5 {
		t.Fatalf("selection after delete = %+v", b.Selections.Primary)
	}
}

func TestCoalescingAcrossSingleCharInserts(t *testing.T) {
	b := New("")
	b.ApplyTextToSelections("a")
	b.ApplyTextToSelections("b")
	b.ApplyTextToSelections("c")

	tx, ok := b.History.PopUndo()
	if !ok {
		t.Fatalf("expected an undo entry")
	}
	if len(tx.Edits) != 1 || tx.Edits[0].Inserted != "abc" {
		t.Fatalf("expected coalesced single edit \"abc\", got %+v", tx.Edits)
	}
}

func TestApplyReplaceRangesWholesaleSelections(t *testing.T) {
	b := New("foo bar baz")
	newSel := selection.NewSingleCaret(7)
	b.ApplyReplaceRanges([]ReplaceRange{{Start: 0, End: 3, Text: "qux"}}, history.KindOther, newSel)

	if got := b.Doc.ToString(); got != "qux bar baz" {
		t.Fatalf("ToString() = %q", got)
	}
	if b.Selections.Primary.Head != 7 {
		t.Fatalf("selections not installed wholesale: %+v", b.Selections)
	}
}

func TestUndoRedoRoundTripThroughBuffer(t *testing.T) {
	b := New("hello")
	b.Selections = selection.NewSingleCaret(5)
	b.ApplyTextToSelections(" world")

	if !b.Undo() {
		t.Fatalf("Undo() = false")
	}
	if got := b.Doc.ToString(); got != "hello" {
		t.Fatalf("after undo, ToString() = %q", got)
	}
	if _, ok := b.LastEditImpact(); ok {
		t.Fatalf("undo must clear last edit impact")
	}

	if !b.Redo() {
		t.Fatalf("Redo() = false")
	}
	if got := b.Doc.ToString(); got != "hello world" {
		t.Fatalf("after redo, ToString() = %q", got)
	}
}

func TestUndoOnEmptyHistoryReturnsFalse(t *testing.T) {
	b := New("hello")
	if b.Undo() {
		t.Fatalf("Undo() on empty history must return false")
	}
	if b.Redo() {
		t.Fatalf("Redo() on empty history must return false")
	}
}

func TestSnapshotRestoreResetsSelectionsAndHistory(t *testing.T) {
	b := New("hello")
	snap := b.Snapshot()
	b.Selections = selection.NewSingleCaret(5)
	b.ApplyTextToSelections(" world")

	b.Restore(snap)

	if got := b.Doc.ToString(); got != "hello" {
		t.Fatalf("ToString() after restore = %q", got)
	}
	if !b.Selections.IsSingleCaret() || b.Selections.Primary.Head != 0 {
		t.Fatalf("selections after restore = %+v", b.Selections)
	}
	if b.History.CanUndo() || b.History.CanRedo() {
		t.Fatalf("history must be cleared after restore")
	}
}
