package history

import "testing"

func TestCoalesceAdjacentSingleCharInserts(t *testing.T) {
	h := New()
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 0, Inserted: "a"}}}, true)
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 1, Inserted: "b"}}}, true)
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 2, Inserted: "c"}}}, true)

	if len(h.undo) != 1 {
		t.Fatalf("expected 3 adjacent single-char inserts to coalesce into 1 undo entry, got %d", len(h.undo))
	}
	if got := h.undo[0].Edits[0].Inserted; got != "abc" {
		t.Fatalf("coalesced inserted text = %q, want %q", got, "abc")
	}
}

func TestNonAdjacentInsertBreaksCoalesce(t *testing.T) {
	h := New()
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 0, Inserted: "a"}}}, true)
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 5, Inserted: "z"}}}, true)
	if len(h.undo) != 2 {
		t.Fatalf("non-adjacent insert must not coalesce, got %d entries", len(h.undo))
	}
}

func TestDeleteNeverCoalesces(t *testing.T) {
	h := New()
	h.Push(Transaction{Kind: KindDelete, Edits: []Edit{{StartChar: 0, Deleted: "a"}}}, true)
	h.Push(Transaction{Kind: KindDelete, Edits: []Edit{{StartChar: 0, Deleted: "b"}}}, true)
	if len(h.undo) != 2 {
		t.Fatalf("deletes must never coalesce, got %d entries", len(h.undo))
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New()
	h.Push(Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 0, Inserted: "a"}}}, false)
	h.PopUndo()
	if !h.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	h.Push(Transaction{Kind: KindOther, Edits: []Edit{{StartChar: 0, Inserted: "z"}}}, false)
	if h.CanRedo() {
		t.Fatalf("pushing a new transaction must clear redo")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	h := New()
	tx := Transaction{Kind: KindInsert, Edits: []Edit{{StartChar: 0, Inserted: "hi"}}}
	h.Push(tx, false)

	popped, ok := h.PopUndo()
	if !ok || popped.Edits[0].Inserted != "hi" {
		t.Fatalf("PopUndo() = %+v, %v", popped, ok)
	}
	if !h.CanRedo() {
		t.Fatalf("expected CanRedo after undo")
	}

	redone, ok := h.PopRedo()
	if !ok || redone.Edits[0].Inserted != "hi" {
		t.Fatalf("PopRedo() = %+v, %v", redone, ok)
	}
	if !h.CanUndo() {
		t.Fatalf("expected CanUndo after redo")
	}
}

func TestEmptyStackReturnsFalse(t *testing.T) {
	h := New()
	if _, ok := h.PopUndo(); ok {
		t.Fatalf("PopUndo on empty stack must return ok=false")
	}
	if _, ok := h.PopRedo(); ok {
		t.Fatalf("PopRedo on empty stack must return ok=false")
	}
}
