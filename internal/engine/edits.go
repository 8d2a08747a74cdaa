package engine

import (
	"strings"

	"github.com/dshills/editcore/internal/engine/buffer"
	"github.com/dshills/editcore/internal/engine/history"
	"github.com/dshills/editcore/internal/engine/selection"
)

// copy concatenates every selection's text, newline-joined; a caret among
// ranges contributes an empty string. An all-caret selection set copies
// nothing (there is nothing selected).
func (e *Engine) copy() string {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	allCarets := true
	for _, s := range sels {
		if !s.IsCaret() {
			allCarets = false
			break
		}
	}
	if allCarets {
		return ""
	}
	var b strings.Builder
	for i, s := range sels {
		if i > 0 {
			b.WriteByte('\n')
		}
		start, end := s.Range()
		b.WriteString(e.Buffer.Doc.SliceToString(start, end))
	}
	return b.String()
}

// cut copies the current selections then deletes them, leaving carets.
func (e *Engine) cut() string {
	text := e.copy()
	if text == "" {
		return text
	}
	e.Buffer.ApplyTextToSelections("")
	return text
}

// backspace deletes the character before each caret (or, if any selection
// is non-degenerate, just deletes the current selections).
func (e *Engine) backspace() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	for _, s := range sels {
		if !s.IsCaret() {
			e.Buffer.ApplyTextToSelections("")
			return
		}
	}
	docLen := e.Buffer.Doc.LenChars()
	widened := make([]selection.Selection, len(sels))
	for i, s := range sels {
		caret := s.Head
		if caret > docLen {
			caret = docLen
		}
		if caret == 0 {
			widened[i] = selection.NewCaret(caret)
			continue
		}
		widened[i] = selection.Selection{Anchor: caret - 1, Head: caret}
	}
	e.Buffer.Selections = selection.FromSelections(widened)
	e.Buffer.ApplyTextToSelections("")
}

// deleteForward deletes the character after each caret (or, if any
// selection is non-degenerate, just deletes the current selections).
func (e *Engine) deleteForward() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	for _, s := range sels {
		if !s.IsCaret() {
			e.Buffer.ApplyTextToSelections("")
			return
		}
	}
	docLen := e.Buffer.Doc.LenChars()
	widened := make([]selection.Selection, len(sels))
	for i, s := range sels {
		caret := s.Head
		if caret > docLen {
			caret = docLen
		}
		if caret >= docLen {
			widened[i] = selection.NewCaret(caret)
			continue
		}
		widened[i] = selection.Selection{Anchor: caret, Head: caret + 1}
	}
	e.Buffer.Selections = selection.FromSelections(widened)
	e.Buffer.ApplyTextToSelections("")
}

// deleteWordBackward deletes from each caret back to its word boundary.
// Any non-degenerate selection falls back to deleting the plain selection
// set instead (matching backspace's fallback rule).
func (e *Engine) deleteWordBackward() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	for _, s := range sels {
		if !s.IsCaret() {
			e.Buffer.ApplyTextToSelections("")
			return
		}
	}
	chars := []rune(e.Buffer.Doc.ToString())
	var ranges []buffer.ReplaceRange
	for _, s := range sels {
		caret := s.Head
		start := selection.WordLeft(chars, caret)
		if start < caret {
			ranges = append(ranges, buffer.ReplaceRange{Start: start, End: caret, Text: ""})
		}
	}
	caret := 0
	if len(ranges) > 0 {
		caret = ranges[len(ranges)-1].Start
	}
	e.Buffer.ApplyReplaceRanges(ranges, history.KindDelete, selection.NewSingleCaret(caret))
}

// deleteWordForward deletes from each caret forward to its word boundary.
func (e *Engine) deleteWordForward() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	for _, s := range sels {
		if !s.IsCaret() {
			e.Buffer.ApplyTextToSelections("")
			return
		}
	}
	chars := []rune(e.Buffer.Doc.ToString())
	var ranges []buffer.ReplaceRange
	for _, s := range sels {
		caret := s.Head
		end := selection.WordRight(chars, caret)
		if caret < end {
			ranges = append(ranges, buffer.ReplaceRange{Start: caret, End: end, Text: ""})
		}
	}
	caret := 0
	if len(ranges) > 0 {
		caret = ranges[0].Start
	}
	e.Buffer.ApplyReplaceRanges(ranges, history.KindDelete, selection.NewSingleCaret(caret))
}

// deleteLine deletes every distinct line a selection's head touches,
// applied in descending line order so earlier deletions aren't shifted.
func (e *Engine) deleteLine() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	lines := distinctSortedLines(e.Buffer, sels)
	var ranges []buffer.ReplaceRange
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		start := e.Buffer.Doc.LineStartChar(line)
		end := e.Buffer.Doc.LineEndChar(line)
		if start < end {
			ranges = append(ranges, buffer.ReplaceRange{Start: start, End: end, Text: ""})
		}
	}
	caret := 0
	if len(ranges) > 0 {
		caret = ranges[len(ranges)-1].Start
	}
	e.Buffer.ApplyReplaceRanges(ranges, history.KindDelete, selection.NewSingleCaret(caret))
}

// moveCursors resolves one Movement across every selection. For a
// non-extending motion, the "base" position a leftward/upward motion
// starts from is the selection's lower endpoint, and a rightward/downward
// motion starts from the upper endpoint — so collapsing a wide selection
// with Left moves to its start, not one step left of its head. An
// extending motion always bases off the current head.
func (e *Engine) moveCursors(m selection.Movement, extend bool) {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	moved := make([]selection.Selection, len(sels))
	for i, s := range sels {
		start, end := s.Range()
		var base int
		switch {
		case extend:
			base = s.Head
		case m == selection.MoveLeft || m == selection.MoveUp || m == selection.MoveWordLeft || m == selection.MoveLineStart:
			base = start
		default:
			base = end
		}
		newHead := e.resolveMovement(m, base)
		if extend {
			moved[i] = selection.Selection{Anchor: s.Anchor, Head: newHead}
		} else {
			moved[i] = selection.NewCaret(newHead)
		}
	}
	e.Buffer.Selections = selection.FromSelections(moved)
}

func (e *Engine) resolveMovement(m selection.Movement, base int) int {
	doc := e.Buffer.Doc
	docLen := doc.LenChars()
	switch m {
	case selection.MoveLeft:
		if base <= 0 {
			return 0
		}
		return base - 1
	case selection.MoveRight:
		if base+1 > docLen {
			return docLen
		}
		return base + 1
	case selection.MoveLineStart:
		return doc.LineStartChar(doc.CharToLine(base))
	case selection.MoveLineEnd:
		return doc.LineEndChar(doc.CharToLine(base))
	case selection.MoveWordLeft:
		return selection.WordLeft([]rune(doc.ToString()), base)
	case selection.MoveWordRight:
		return selection.WordRight([]rune(doc.ToString()), base)
	case selection.MoveUp:
		pt := doc.CharToLineCol(base)
		if pt.Line == 0 {
			return base
		}
		return doc.LineColToChar(int(pt.Line)-1, int(pt.Column))
	case selection.MoveDown:
		pt := doc.CharToLineCol(base)
		if int(pt.Line)+1 >= doc.LenLines() {
			return base
		}
		return doc.LineColToChar(int(pt.Line)+1, int(pt.Column))
	default:
		return base
	}
}

// indent prepends a four-space prefix to every distinct line a selection
// touches.
func (e *Engine) indent() {
	e.applyLinePrefixEdit("    ", false)
}

// outdent removes a leading four-space prefix from every distinct line a
// selection touches, skipping lines that don't have it.
func (e *Engine) outdent() {
	e.applyLinePrefixEdit("    ", true)
}

// duplicateLine duplicates every distinct line a selection's head touches,
// in descending line order.
func (e *Engine) duplicateLine() {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	lines := distinctSortedLines(e.Buffer, sels)
	var ranges []buffer.ReplaceRange
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		start := e.Buffer.Doc.LineStartChar(line)
		end := e.Buffer.Doc.LineEndChar(line)
		original := e.Buffer.Doc.SliceToString(start, end)
		lineText, lineBreak := original, ""
		if strings.HasSuffix(original, "\n") {
			lineText = strings.TrimSuffix(original, "\n")
			lineBreak = "\n"
		}
		inserted := lineText + "\n" + lineText + lineBreak
		ranges = append(ranges, buffer.ReplaceRange{Start: start, End: end, Text: inserted})
	}
	caret := e.Buffer.Selections.Primary.Head
	e.Buffer.ApplyReplaceRanges(ranges, history.KindOther, selection.NewSingleCaret(caret))
}

// toggleComment toggles a "// " line-comment prefix: if every touched line
// already has it, it is removed from all of them; otherwise it is added to
// all of them (including lines that already have it). Diverges from
// engine.rs's literal two-character "//" prefix (which would leave a
// stray leading space behind on removal) to satisfy the round-trip
// scenario's literal text.
func (e *Engine) toggleComment() {
	e.toggleLinePrefix("// ")
}

// applyLinePrefixEdit adds or removes prefix at the start of every
// distinct line touched by a selection's range (every line from its start
// to its end, so a selection spanning lines 2-4 touches all of 2, 3, and
// 4). remove=true only touches lines that currently start with prefix.
func (e *Engine) applyLinePrefixEdit(prefix string, remove bool) {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	lines := distinctSortedLinesRange(e.Buffer, sels)
	var ranges []buffer.ReplaceRange
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		start := e.Buffer.Doc.LineStartChar(line)
		if remove {
			end := start + charCount(prefix)
			if end > e.Buffer.Doc.LenChars() {
				end = e.Buffer.Doc.LenChars()
			}
			if e.Buffer.Doc.SliceToString(start, end) == prefix {
				ranges = append(ranges, buffer.ReplaceRange{Start: start, End: start + charCount(prefix), Text: ""})
			}
		} else {
			ranges = append(ranges, buffer.ReplaceRange{Start: start, End: start, Text: prefix})
		}
	}
	if len(ranges) == 0 {
		return
	}
	caret := e.Buffer.Selections.Primary.Head
	e.Buffer.ApplyReplaceRanges(ranges, history.KindOther, selection.NewSingleCaret(caret))
}

// toggleLinePrefix decides add-vs-remove by checking whether every touched
// line already carries prefix, then delegates to applyLinePrefixEdit.
func (e *Engine) toggleLinePrefix(prefix string) {
	sels := e.Buffer.Selections.AllIncludingPrimary()
	lines := distinctSortedLinesRange(e.Buffer, sels)
	if len(lines) == 0 {
		return
	}
	allHavePrefix := true
	for _, line := range lines {
		start := e.Buffer.Doc.LineStartChar(line)
		end := start + charCount(prefix)
		if end > e.Buffer.Doc.LenChars() {
			end = e.Buffer.Doc.LenChars()
		}
		if e.Buffer.Doc.SliceToString(start, end) != prefix {
			allHavePrefix = false
			break
		}
	}
	e.applyLinePrefixEdit(prefix, allHavePrefix)
}

// distinctSortedLines returns the sorted, de-duplicated set of lines each
// selection's head touches.
func distinctSortedLines(b *buffer.Buffer, sels []selection.Selection) []int {
	seen := make(map[int]bool, len(sels))
	var out []int
	for _, s := range sels {
		l := b.Doc.CharToLine(s.Head)
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sortInts(out)
	return out
}

// distinctSortedLinesRange returns the sorted, de-duplicated set of lines
// spanned by every selection's range, from its start line through its end
// line inclusive.
func distinctSortedLinesRange(b *buffer.Buffer, sels []selection.Selection) []int {
	seen := make(map[int]bool, len(sels)*2)
	var out []int
	for _, s := range sels {
		start, end := s.Range()
		for l := b.Doc.CharToLine(start); l <= b.Doc.CharToLine(end); l++ {
			if !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
