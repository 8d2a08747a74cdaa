package engine

import "github.com/dshills/editcore/internal/renderer/highlight"

// FontMetrics describes the pixel dimensions the view model lays lines out
// with. It mirrors the shaper's own Metrics but is copied onto the engine
// so a caller can override it without reaching into the shaper.
type FontMetrics struct {
	CharWidthPx  float32
	LineHeightPx float32
}

// LayoutConfig holds layout behavior that isn't a per-pull viewport
// parameter.
type LayoutConfig struct {
	// SoftWrap, when true, splits each document line into fixed-width
	// segments of Viewport.WidthCols characters (see splitByCols). It does
	// not honor grapheme clusters, matching the spec's inherited behavior.
	SoftWrap bool
}

// Viewport names the visible window the view model is computed for.
type Viewport struct {
	FirstLine int
	MaxLines  int
	WidthCols int
}

// SelectionSpan is a highlighted selection range within one VisualLine,
// in columns relative to that line's segment.
type SelectionSpan struct {
	StartCol int
	EndCol   int
}

// VisualLine is one rendered row: either a whole document line, or one
// soft-wrap segment of it.
type VisualLine struct {
	LineIdx        int
	YPx            float32
	WrapColOffset  int
	Text           string
	Selections     []SelectionSpan
	Cursors        []int
	IsCurrentLine  bool
	Highlights     []highlight.Span
}

// ViewModel is the engine's entire pull-based rendering output: the caller
// asks for it once per frame/draw and owns everything about when and how
// often that happens.
type ViewModel struct {
	Lines          []VisualLine
	GutterWidthCols int
}

// splitByCols splits text into segments of at most maxCols characters each.
// maxCols <= 0 disables wrapping (the whole line is one segment).
func splitByCols(text string, maxCols int) []string {
	if maxCols <= 0 {
		return []string{text}
	}
	runes := []rune(text)
	if len(runes) <= maxCols {
		return []string{text}
	}
	out := make([]string, 0, len(runes)/maxCols+1)
	for i := 0; i < len(runes); i += maxCols {
		end := i + maxCols
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
