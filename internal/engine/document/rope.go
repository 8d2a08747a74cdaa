package document

import "strings"

// Rope is a persistent, character-indexed text sequence. Values are
// immutable: every mutating method returns a new Rope that shares
// unmodified subtrees with the receiver (structural sharing), which is
// what makes Document.Snapshot an O(1) clone.
type Rope struct {
	root *node
}

// NewRope builds a rope from an initial string.
func NewRope(s string) Rope {
	chunks := splitIntoChunks(s)
	return Rope{root: buildLeaves(chunks)}
}

func buildLeaves(chunks []chunk) *node {
	if len(chunks) == 0 {
		return newLeaf()
	}
	var leaves []*node
	for i := 0; i < len(chunks); i += maxChunksPerLeaf {
		end := i + maxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leaves = append(leaves, newLeafWithChunks(chunks[i:end]))
	}
	return buildFromChildren(leaves)
}

// Len returns the number of characters (code points) in the rope.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.Chars()
}

// LineCount returns the number of lines; an empty rope has one line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.totalLines() + 1
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the character range [start, end), clamped.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	start = clampInt(start, 0, r.root.Chars())
	end = clampInt(end, 0, r.root.Chars())
	if start >= end {
		return ""
	}
	return r.root.textInCharRange(start, end)
}

// Insert returns a new Rope with s inserted at character offset at.
func (r Rope) Insert(at int, s string) Rope {
	if s == "" {
		return r
	}
	root := r.root
	if root == nil {
		root = newLeaf()
	}
	at = clampInt(at, 0, root.Chars())
	left, right := root.split(at)
	mid := buildLeaves(splitIntoChunks(s))
	return Rope{root: concat(concat(left, mid), right)}
}

// Delete returns a new Rope with the character range [start, end) removed.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil {
		return r
	}
	start = clampInt(start, 0, r.root.Chars())
	end = clampInt(end, 0, r.root.Chars())
	if start >= end {
		return r
	}
	left, rest := r.root.split(start)
	_, right := rest.split(end - start)
	return Rope{root: concat(left, right)}
}

// Replace returns a new Rope with [start, end) replaced by s. Semantically
// atomic: callers never observe a half-applied state because Rope values
// are immutable. If start >= end, only the insertion at start is
// performed.
func (r Rope) Replace(start, end int, s string) Rope {
	n := r.root
	total := 0
	if n != nil {
		total = n.Chars()
	}
	start = clampInt(start, 0, total)
	end = clampInt(end, 0, total)
	if start >= end {
		return r.Insert(start, s)
	}
	return r.Delete(start, end).Insert(start, s)
}

// LineText returns line i's text without its trailing newline.
func (r Rope) LineText(line int) string {
	start := r.LineStartChar(line)
	end := r.lineEndCharExclNewline(line)
	return r.Slice(start, end)
}

// LineStartChar returns the character offset of the first character of
// line i (0-indexed).
func (r Rope) LineStartChar(line int) int {
	if r.root == nil {
		return 0
	}
	return r.root.lineToChar(line)
}

// LineEndChar returns the character offset that starts line i+1 (i.e. just
// past line i's trailing newline), clamped to Len().
func (r Rope) LineEndChar(line int) int {
	if r.root == nil {
		return 0
	}
	return r.root.lineToChar(line + 1)
}

// lineEndCharExclNewline returns the character offset of the line's
// trailing newline itself (i.e. the line's text stops here), or Len() for
// the last line.
func (r Rope) lineEndCharExclNewline(line int) int {
	total := r.Len()
	if line >= r.LineCount()-1 {
		return total
	}
	nextStart := r.LineStartChar(line + 1)
	if nextStart > 0 {
		return nextStart - 1
	}
	return total
}

// CharToLine returns the 0-indexed line containing character offset c.
func (r Rope) CharToLine(c int) int {
	if r.root == nil {
		return 0
	}
	return r.root.charToLine(c)
}

// CharToLineCol converts a character offset to a Point.
func (r Rope) CharToLineCol(c int) Point {
	line := r.CharToLine(c)
	col := c - r.LineStartChar(line)
	if col < 0 {
		col = 0
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// LineColToChar converts a Point to a character offset, clamping column to
// the line's length.
func (r Rope) LineColToChar(line, col int) int {
	start := r.LineStartChar(line)
	lineLen := runeCount(r.LineText(line))
	if col > lineLen {
		col = lineLen
	}
	if col < 0 {
		col = 0
	}
	return start + col
}

// Equals reports whether two ropes hold identical text.
func (r Rope) Equals(other Rope) bool {
	return r.String() == other.String()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
