package selection

import "testing"

func TestSetDoesNotSelfNormalize(t *testing.T) {
	s := Set{
		Primary:   Selection{Anchor: 5, Head: 10},
		Secondary: []Selection{{Anchor: 8, Head: 12}, {Anchor: 8, Head: 12}},
	}
	all := s.AllIncludingPrimary()
	if len(all) != 3 {
		t.Fatalf("expected overlapping/duplicate selections to survive untouched, got %d entries", len(all))
	}
	if all[0] != s.Primary {
		t.Fatalf("primary must be index 0")
	}
}

func TestSelectionRangeOrdering(t *testing.T) {
	s := Selection{Anchor: 10, Head: 3}
	start, end := s.Range()
	if start != 3 || end != 10 {
		t.Fatalf("Range() = (%d,%d), want (3,10)", start, end)
	}
}

func TestWordLeftRight(t *testing.T) {
	text := []rune("foo  bar_baz qux")
	cases := []struct {
		name string
		fn   func([]rune, int) int
		from int
		want int
	}{
		{"word-left-from-zero", WordLeft, 0, 0},
		{"word-left-mid-word", WordLeft, 7, 5},  // inside "bar_baz" -> start of word
		{"word-left-after-space", WordLeft, 5, 0}, // just after the spaces following "foo", skip them, land at start of foo
		{"word-right-basic", WordRight, 0, 3},
		{"word-right-from-space", WordRight, 3, 12}, // skip spaces then consume "bar_baz"
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.fn(text, c.from); got != c.want {
				t.Errorf("%s(%d) = %d, want %d", c.name, c.from, got, c.want)
			}
		})
	}
}

func TestClampPreservesOrderNoMerge(t *testing.T) {
	s := Set{
		Primary:   Selection{Anchor: -5, Head: 1000},
		Secondary: []Selection{{Anchor: -1, Head: 2000}},
	}
	clamped := s.Clamp(10)
	if clamped.Primary.Anchor != 0 || clamped.Primary.Head != 10 {
		t.Fatalf("primary clamp = %+v", clamped.Primary)
	}
	if len(clamped.Secondary) != 1 {
		t.Fatalf("clamp must not merge/drop secondaries")
	}
}
