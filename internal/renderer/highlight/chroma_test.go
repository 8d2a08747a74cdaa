package highlight

import (
	"strings"
	"testing"
)

func linesOf(text string) []string {
	return strings.Split(text, "\n")
}

func TestSpecProviderNoLanguageYieldsEmptySpans(t *testing.T) {
	p := NewSpecProvider()
	text := "func main() {}\n"
	got := p.Lines(text, linesOf(text), 1, 0, 1)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	for _, spans := range got {
		if len(spans) != 0 {
			t.Fatalf("expected no spans without a configured language, got %v", spans)
		}
	}
}

func TestSpecProviderGoKeyword(t *testing.T) {
	p := NewSpecProvider()
	p.SetLanguage("go")
	text := "package main\n"
	got := p.Lines(text, linesOf(text), 1, 0, 0)
	found := false
	for _, s := range got[0] {
		if s.Type == SpanKeyword {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Keyword span on %q, got %v", text, got[0])
	}
}

func TestSpecProviderMemoizesByVersion(t *testing.T) {
	p := NewSpecProvider()
	p.SetLanguage("go")
	text := "package main\n"
	first := p.Lines(text, linesOf(text), 5, 0, 0)
	p.cache.lines[0] = nil // mutate the cache directly to detect a re-lex
	second := p.Lines(text, linesOf(text), 5, 0, 0)
	if len(second[0]) != 0 {
		t.Fatalf("expected cached (mutated) result to be reused for an unchanged version, got %v", second[0])
	}
	_ = first
}

func TestSpecProviderRelexesOnVersionChange(t *testing.T) {
	p := NewSpecProvider()
	p.SetLanguage("go")
	text := "package main\n"
	p.Lines(text, linesOf(text), 1, 0, 0)
	p.cache.lines[0] = nil
	got := p.Lines(text, linesOf(text), 2, 0, 0)
	found := false
	for _, s := range got[0] {
		if s.Type == SpanKeyword {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a fresh lex after version change, got %v", got[0])
	}
}

func TestSpecProviderUnknownLanguageYieldsEmptySpans(t *testing.T) {
	p := NewSpecProvider()
	p.SetLanguage("not-a-real-language-xyz")
	text := "whatever\n"
	got := p.Lines(text, linesOf(text), 1, 0, 0)
	if len(got[0]) != 0 {
		t.Fatalf("expected empty spans for an unrecognized language, got %v", got[0])
	}
}
