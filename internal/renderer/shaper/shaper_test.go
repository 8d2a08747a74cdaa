package shaper

import "testing"

func TestShapeLineFallbackCharToXLength(t *testing.T) {
	s := New(14)
	line := s.ShapeLine("hello")
	if len(line.CharToX) != 6 {
		t.Fatalf("len(CharToX) = %d, want %d", len(line.CharToX), 6)
	}
}

func TestShapeLineFallbackNonDecreasing(t *testing.T) {
	s := New(14)
	line := s.ShapeLine("hello world")
	for i := 1; i < len(line.CharToX); i++ {
		if line.CharToX[i] < line.CharToX[i-1] {
			t.Fatalf("CharToX not non-decreasing at %d: %v", i, line.CharToX)
		}
	}
	if line.CharToX[len(line.CharToX)-1] != line.WidthPx {
		t.Fatalf("final CharToX entry = %v, want WidthPx = %v", line.CharToX[len(line.CharToX)-1], line.WidthPx)
	}
}

func TestXForCharBeyondLineReturnsWidth(t *testing.T) {
	s := New(14)
	line := s.ShapeLine("abc")
	if got := line.XForChar(100); got != line.WidthPx {
		t.Fatalf("XForChar(100) = %v, want WidthPx = %v", got, line.WidthPx)
	}
}

func TestShapeLineDeterministic(t *testing.T) {
	s := New(14)
	a := s.ShapeLine("the quick brown fox")
	b := s.ShapeLine("the quick brown fox")
	if a.WidthPx != b.WidthPx || len(a.CharToX) != len(b.CharToX) {
		t.Fatalf("ShapeLine not deterministic for identical (text, font_size)")
	}
}

func TestShapeLineEmpty(t *testing.T) {
	s := New(14)
	line := s.ShapeLine("")
	if len(line.CharToX) != 1 || line.WidthPx != 0 {
		t.Fatalf("ShapeLine(\"\") = %+v", line)
	}
}

func TestShapeLineFallbackCombiningMarkSharesOneAdvance(t *testing.T) {
	s := New(14)
	// "e" + U+0301 COMBINING ACUTE ACCENT is one grapheme cluster (2 runes).
	text := "éx"
	line := s.ShapeLine(text)
	runes := []rune(text)
	if len(runes) != 3 {
		t.Fatalf("test text has %d runes, want 3", len(runes))
	}
	if len(line.CharToX) != 4 {
		t.Fatalf("len(CharToX) = %d, want 4", len(line.CharToX))
	}
	if line.CharToX[0] != line.CharToX[1] {
		t.Fatalf("combining mark should share its base's x-offset: %v", line.CharToX)
	}
	if line.CharToX[2] == line.CharToX[1] {
		t.Fatalf("the following character should not share the cluster's x-offset: %v", line.CharToX)
	}
	advance := s.Metrics().AvgCharWidth
	if line.WidthPx != advance*2 {
		t.Fatalf("WidthPx = %v, want %v (one advance per cluster, not per rune)", line.WidthPx, advance*2)
	}
}

func TestShapeLineFallbackWideRuneGetsDoubleAdvance(t *testing.T) {
	s := New(14)
	advance := s.Metrics().AvgCharWidth
	line := s.ShapeLine("一x") // U+4E00, East Asian Wide
	if line.CharToX[1]-line.CharToX[0] != advance*2 {
		t.Fatalf("wide rune advance = %v, want %v", line.CharToX[1]-line.CharToX[0], advance*2)
	}
	if line.WidthPx != advance*3 {
		t.Fatalf("WidthPx = %v, want %v", line.WidthPx, advance*3)
	}
}
