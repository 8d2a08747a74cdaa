// Package history implements the editor core's L1 undo/redo stack: a
// reversible transaction log with a single-insert coalescing policy, so a
// burst of ordinary typing collapses into one undo step.
//
// Grounded on the donor's stack.go/command.go shape (two mutex-protected
// stacks of reversible units), adapted to the spec's coalescing rule,
// which the donor itself does not implement (the donor instead groups via
// explicit BeginGroup/EndGroup).
package history

// Kind governs only a Transaction's coalescing eligibility; semantic
// replay is identical regardless of Kind.
type Kind int

const (
	KindInsert Kind = iota
	KindDelete
	KindReplace
	KindOther
)

// Edit is a single replacement at a position. Its inverse is obtained by
// swapping Deleted and Inserted.
type Edit struct {
	StartChar int
	Deleted   string
	Inserted  string
}

// Inverse returns the edit that undoes this one.
func (e Edit) Inverse() Edit {
	return Edit{StartChar: e.StartChar, Deleted: e.Inserted, Inserted: e.Deleted}
}

// InsertedLenChars returns the character count of Inserted.
func (e Edit) InsertedLenChars() int { return charCount(e.Inserted) }

// DeletedLenChars returns the character count of Deleted.
func (e Edit) DeletedLenChars() int { return charCount(e.Deleted) }

func charCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Transaction is a reversible group of Edits sharing one Kind.
type Transaction struct {
	Kind  Kind
	Edits []Edit
}

// Inverse returns the transaction that undoes this one: inverse edits in
// the same order (the caller is responsible for applying them in the
// correct descending-start-offset order; History itself does not reorder).
func (t Transaction) Inverse() Transaction {
	inv := Transaction{Kind: t.Kind, Edits: make([]Edit, len(t.Edits))}
	for i, e := range t.Edits {
		inv.Edits[i] = e.Inverse()
	}
	return inv
}

// History holds the undo and redo stacks. It is not safe for concurrent
// use from multiple goroutines without external synchronization — the
// core is specified as single-threaded (see SPEC_FULL §5).
type History struct {
	undo []Transaction
	redo []Transaction
}

// New returns an empty History.
func New() *History {
	return &History{}
}

// CanUndo reports whether Undo would have any effect.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo would have any effect.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Push appends tx to the undo stack and clears the redo stack. If
// allowCoalesceInsert is true and tx qualifies for coalescing with the top
// of the undo stack, the two single-edit inserts are merged into the
// existing top entry instead of growing the stack.
//
// Coalescing requires all of: tx.Kind == KindInsert, the top of undo exists
// and also has KindInsert, both transactions have exactly one edit, both
// edits have an empty Deleted, and prev.StartChar plus the character count
// of prev.Inserted == new.StartChar (the new insert is adjacent, to the right, of the
// previous one).
func (h *History) Push(tx Transaction, allowCoalesceInsert bool) {
	if allowCoalesceInsert && tx.Kind == KindInsert && len(h.undo) > 0 {
		top := &h.undo[len(h.undo)-1]
		if top.Kind == KindInsert && len(top.Edits) == 1 && len(tx.Edits) == 1 {
			prevEdit := &top.Edits[0]
			newEdit := tx.Edits[0]
			if prevEdit.Deleted == "" && newEdit.Deleted == "" &&
				prevEdit.StartChar+prevEdit.InsertedLenChars() == newEdit.StartChar {
				prevEdit.Inserted += newEdit.Inserted
				h.redo = nil
				return
			}
		}
	}
	h.undo = append(h.undo, tx)
	h.redo = nil
}

// PopUndo removes and returns the top of the undo stack (the forward
// transaction to invert and apply), moving it unchanged onto redo so a
// following Redo can reapply it forward. Returns ok=false on an empty
// stack (per spec §7, undo/redo on an empty stack returns false rather
// than failing).
func (h *History) PopUndo() (tx Transaction, ok bool) {
	if len(h.undo) == 0 {
		return Transaction{}, false
	}
	n := len(h.undo) - 1
	tx = h.undo[n]
	h.undo = h.undo[:n]
	h.redo = append(h.redo, tx)
	return tx, true
}

// PopRedo removes and returns the top of the redo stack (the forward
// transaction to reapply as-is), moving it unchanged back onto undo.
func (h *History) PopRedo() (tx Transaction, ok bool) {
	if len(h.redo) == 0 {
		return Transaction{}, false
	}
	n := len(h.redo) - 1
	tx = h.redo[n]
	h.redo = h.redo[:n]
	h.undo = append(h.undo, tx)
	return tx, true
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
