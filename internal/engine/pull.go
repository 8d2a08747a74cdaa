package engine

import (
	"strconv"
	"strings"

	"github.com/dshills/editcore/internal/renderer/highlight"
	"github.com/dshills/editcore/internal/renderer/shaper"
)

// ViewModel recomputes (reusing the line cache wherever the document
// hasn't changed since the last pull) and returns the full render state
// for the current viewport. This is the engine's only state-mutating
// read: the cache is owned and mutated here, nowhere else.
func (e *Engine) ViewModel() ViewModel {
	e.reconcileCache()

	lineCount := e.Buffer.Doc.LenLines()
	first := clampi(e.View.FirstLine, 0, lineCount)
	lastExclusive := clampi(first+e.View.MaxLines, 0, lineCount)
	gutterWidth := len(strconv.Itoa(lineCount))
	if gutterWidth < 3 {
		gutterWidth = 3
	}
	gutterWidth++

	sels := e.Buffer.Selections.AllIncludingPrimary()
	activeLine := e.Buffer.Doc.CharToLine(e.Buffer.Selections.Primary.Head)

	docText := e.Buffer.Doc.ToString()
	docLines := strings.Split(docText, "\n")
	docVersion := e.Buffer.Doc.Version()

	var lines []VisualLine
	var yPx float32
	for lineIdx := first; lineIdx < lastExclusive; lineIdx++ {
		text, _ := e.shapedLine(lineIdx)

		var segments []string
		if e.Layout.SoftWrap && e.View.WidthCols > 0 {
			segments = splitByCols(text, e.View.WidthCols)
		} else {
			segments = []string{text}
		}

		hiSpans := e.highlighter.Lines(docText, docLines, docVersion, lineIdx, lineIdx)[0]
		lineStart := e.Buffer.Doc.LineStartChar(lineIdx)
		lineEnd := e.Buffer.Doc.LineEndChar(lineIdx)

		for segIdx, segment := range segments {
			wrapColOffset := segIdx * e.View.WidthCols
			segLen := charCount(segment)
			segStart := wrapColOffset
			segEnd := wrapColOffset + segLen

			var selSpans []SelectionSpan
			var cursors []int
			for _, s := range sels {
				start, end := s.Range()
				selStart := clampi(start, lineStart, lineEnd)
				selEnd := clampi(end, lineStart, lineEnd)
				if selStart < selEnd {
					startCol := selStart - lineStart
					endCol := selEnd - lineStart
					interStart := clampi(startCol, segStart, segEnd)
					interEnd := clampi(endCol, segStart, segEnd)
					if interStart < interEnd {
						selSpans = append(selSpans, SelectionSpan{StartCol: interStart - segStart, EndCol: interEnd - segStart})
					}
				}
				if s.IsCaret() {
					caret := s.Head
					if caret >= lineStart && caret <= lineEnd {
						col := caret - lineStart
						if col >= segStart && col <= segEnd {
							cursors = append(cursors, col-segStart)
						}
					}
				}
			}

			lines = append(lines, VisualLine{
				LineIdx:       lineIdx,
				YPx:           yPx,
				WrapColOffset: wrapColOffset,
				Text:          segment,
				Selections:    selSpans,
				Cursors:       cursors,
				IsCurrentLine: lineIdx == activeLine,
				Highlights:    filterHighlightsForSegment(hiSpans, segStart, segEnd),
			})
			yPx += e.Metrics.LineHeightPx
		}
	}

	return ViewModel{Lines: lines, GutterWidthCols: gutterWidth}
}

// filterHighlightsForSegment keeps only the spans (already in whole-line
// character offsets) that intersect [segStart, segEnd), rebasing each
// surviving span to be relative to the segment instead of the line.
func filterHighlightsForSegment(spans []highlight.Span, segStart, segEnd int) []highlight.Span {
	if len(spans) == 0 {
		return nil
	}
	var out []highlight.Span
	for _, s := range spans {
		start := clampi(s.StartChar, segStart, segEnd)
		end := clampi(s.EndChar, segStart, segEnd)
		if start < end {
			out = append(out, highlight.Span{StartChar: start - segStart, EndChar: end - segStart, Type: s.Type})
		}
	}
	return out
}

// reconcileCache drops exactly the cache entries the most recent edit
// invalidated — or the whole cache, if the line count changed or no
// impact hint is available — then updates the version/line-count
// bookkeeping used to decide whether reconciliation is needed at all on
// the next pull.
func (e *Engine) reconcileCache() {
	docVersion := e.Buffer.Doc.Version()
	lineCount := e.Buffer.Doc.LenLines()
	if docVersion == e.cachedDocVersion {
		e.cachedLineCount = lineCount
		return
	}
	if lineCount != e.cachedLineCount {
		e.cache.clear()
	} else if impact, ok := e.Buffer.LastEditImpact(); ok {
		start := clampi(impact.StartLine, 0, lineCount)
		end := impact.EndLineInclusive
		if end > lineCount-1 {
			end = lineCount - 1
		}
		if end >= start {
			e.cache.invalidateRange(start, end)
		}
	} else {
		e.cache.clear()
	}
	e.cachedDocVersion = docVersion
	e.cachedLineCount = lineCount
}

// shapedLine returns line's text and shaped layout, computing and caching
// it on a miss.
func (e *Engine) shapedLine(line int) (string, shaper.Line) {
	if c, ok := e.cache.get(line); ok {
		return c.text, c.shaped
	}
	text := e.Buffer.Doc.LineText(line)
	shaped := e.shaper.ShapeLine(text)
	e.cache.put(line, cachedLine{text: text, shaped: shaped})
	return text, shaped
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
