package engine

import "github.com/dshills/editcore/internal/renderer/shaper"

// cachedLine holds one document line's shaped layout, valid for as long as
// the owning engine's cachedDocVersion matches the document's actual
// version.
type cachedLine struct {
	text   string
	shaped shaper.Line
}

// lineCache is a sparse, version-gated cache of shaped lines keyed by line
// index. It owns no invalidation policy itself: the engine decides, on
// each ViewModel pull, whether to drop the whole cache or just the lines
// named by the buffer's last edit impact (see Engine.reconcileCache).
type lineCache struct {
	lines map[int]cachedLine
}

func newLineCache() *lineCache {
	return &lineCache{lines: make(map[int]cachedLine)}
}

func (c *lineCache) get(line int) (cachedLine, bool) {
	l, ok := c.lines[line]
	return l, ok
}

func (c *lineCache) put(line int, l cachedLine) {
	c.lines[line] = l
}

func (c *lineCache) invalidateRange(start, endInclusive int) {
	for i := start; i <= endInclusive; i++ {
		delete(c.lines, i)
	}
}

func (c *lineCache) clear() {
	c.lines = make(map[int]cachedLine)
}
