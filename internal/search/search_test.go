package search

import "testing"

func TestFindNextForwardCaseSensitive(t *testing.T) {
	text := "the Quick brown fox"
	m, ok := FindNext(text, Query{Needle: "Quick", CaseSensitive: true}, 0, Forward)
	if !ok || m.Start != 4 || m.End != 9 {
		t.Fatalf("FindNext = %+v, ok=%v", m, ok)
	}
}

func TestFindNextCaseInsensitive(t *testing.T) {
	text := "the QUICK brown fox"
	m, ok := FindNext(text, Query{Needle: "quick", CaseSensitive: false}, 0, Forward)
	if !ok || m.Start != 4 || m.End != 9 {
		t.Fatalf("FindNext = %+v, ok=%v", m, ok)
	}
}

func TestFindNextBackward(t *testing.T) {
	text := "foo bar foo baz"
	m, ok := FindNext(text, Query{Needle: "foo"}, len(text), Backward)
	if !ok || m.Start != 8 || m.End != 11 {
		t.Fatalf("FindNext backward = %+v, ok=%v", m, ok)
	}
}

func TestFindNextBackwardFromMiddleFindsEarlierMatch(t *testing.T) {
	text := "foo bar foo baz"
	m, ok := FindNext(text, Query{Needle: "foo"}, 8, Backward)
	if !ok || m.Start != 0 || m.End != 3 {
		t.Fatalf("FindNext backward-from-middle = %+v, ok=%v", m, ok)
	}
}

func TestFindNextEmptyNeedleReturnsFalse(t *testing.T) {
	if _, ok := FindNext("anything", Query{Needle: ""}, 0, Forward); ok {
		t.Fatalf("empty needle must never match")
	}
}

func TestFindNextNotFound(t *testing.T) {
	if _, ok := FindNext("abc", Query{Needle: "xyz"}, 0, Forward); ok {
		t.Fatalf("expected no match")
	}
}

func TestFindNextFoldingChangesLengthStillMapsToOriginalOffsets(t *testing.T) {
	text := "straße ok"
	m, ok := FindNext(text, Query{Needle: "strasse", CaseSensitive: false}, 0, Forward)
	if !ok {
		t.Fatalf("expected fold-aware match for ß -> ss")
	}
	if m.Start != 0 || m.End != 6 {
		t.Fatalf("match = %+v, want a 6-rune original-offset range covering \"straße\"", m)
	}
}

func TestFindNextForwardStartsAtFromChar(t *testing.T) {
	text := "aa aa aa"
	m, ok := FindNext(text, Query{Needle: "aa"}, 1, Forward)
	if !ok || m.Start != 3 {
		t.Fatalf("expected next match to start at 3, got %+v ok=%v", m, ok)
	}
}
