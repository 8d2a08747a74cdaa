package document

import "unicode/utf8"

// CharOffset is an absolute character (code point) position in a Document.
// The core never addresses text by byte offset; byte positions exist only
// transiently, inside a single chunk, to slice the underlying Go string.
type CharOffset uint64

// Point is a line/column position. Both are 0-indexed and column is a
// character count, not a byte count.
type Point struct {
	Line   uint32
	Column uint32
}

// TextSummary holds the aggregated metrics a rope node caches for its
// subtree: character count (the primary addressing unit), byte count (used
// only to slice chunk strings), and newline count (used to derive line
// counts and line-start lookups in O(log n)).
type TextSummary struct {
	Bytes ByteLen
	Chars CharOffset
	Lines uint32 // number of newline characters in the span
}

// ByteLen is a byte length local to the underlying Go string storage.
type ByteLen uint64

// Add combines two summaries for adjacent spans (left followed by right).
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// ComputeSummary scans a string once to compute its TextSummary.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{}
	}
	var sum TextSummary
	sum.Bytes = ByteLen(len(s))
	for _, r := range s {
		sum.Chars++
		if r == '\n' {
			sum.Lines++
		}
	}
	return sum
}

// runeByteOffset walks s and returns the byte offset of the nth rune
// (0-indexed); returns len(s) if n >= rune count.
func runeByteOffset(s string, n int) int {
	if n <= 0 {
		return 0
	}
	i := 0
	for b := range s {
		if i == n {
			return b
		}
		i++
	}
	return len(s)
}

// runeCount returns the number of code points in s; a thin wrapper kept
// for symmetry with runeByteOffset and to document the O(n) cost.
func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
