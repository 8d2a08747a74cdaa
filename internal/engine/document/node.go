package document

import "strings"

// Tree shape constants, unchanged from the donor rope's B+-tree policy.
const (
	maxChildren      = 8
	maxChunksPerLeaf = 4
)

// node is a node in the rope's B+-tree. Leaves (height 0) hold text chunks;
// internal nodes hold child references plus cached per-child summaries so
// that locating a character or line offset is O(log n) in the number of
// leaves rather than O(n) in the number of characters.
type node struct {
	height uint8
	sum    TextSummary

	children       []*node
	childSummaries []TextSummary

	chunks []chunk
}

func newLeaf() *node {
	return &node{height: 0}
}

func newLeafWithChunks(chunks []chunk) *node {
	n := &node{height: 0, chunks: chunks}
	n.recomputeSummary()
	return n
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}
	summaries := make([]TextSummary, len(children))
	var total TextSummary
	for i, c := range children {
		summaries[i] = c.sum
		total = total.Add(c.sum)
	}
	return &node{
		height:         children[0].height + 1,
		sum:            total,
		children:       children,
		childSummaries: summaries,
	}
}

func (n *node) IsLeaf() bool   { return n.height == 0 }
func (n *node) Chars() int     { return int(n.sum.Chars) }
func (n *node) recomputeSummary() {
	var total TextSummary
	if n.IsLeaf() {
		for _, c := range n.chunks {
			total = total.Add(c.summary)
		}
	} else {
		n.childSummaries = make([]TextSummary, len(n.children))
		for i, c := range n.children {
			n.childSummaries[i] = c.sum
			total = total.Add(c.sum)
		}
	}
	n.sum = total
}

func (n *node) clone() *node {
	if n.IsLeaf() {
		chunks := make([]chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &node{height: 0, sum: n.sum, chunks: chunks}
	}
	children := make([]*node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)
	return &node{height: n.height, sum: n.sum, children: children, childSummaries: summaries}
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, c := range n.chunks {
			sb.WriteString(c.data)
		}
		return
	}
	for _, c := range n.children {
		c.appendTo(sb)
	}
}

// textInCharRange extracts text in the character range [start, end).
func (n *node) textInCharRange(start, end int) string {
	if start >= end || start >= n.Chars() {
		return ""
	}
	if end > n.Chars() {
		end = n.Chars()
	}
	var sb strings.Builder
	n.appendCharRange(&sb, start, end)
	return sb.String()
}

func (n *node) appendCharRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.IsLeaf() {
		offset := 0
		for _, c := range n.chunks {
			cLen := c.Chars()
			cEnd := offset + cLen
			if cEnd <= start {
				offset = cEnd
				continue
			}
			if offset >= end {
				break
			}
			sliceStart := 0
			if start > offset {
				sliceStart = start - offset
			}
			sliceEnd := cLen
			if end < cEnd {
				sliceEnd = end - offset
			}
			bs := runeByteOffset(c.data, sliceStart)
			be := runeByteOffset(c.data, sliceEnd)
			sb.WriteString(c.data[bs:be])
			offset = cEnd
		}
		return
	}
	offset := 0
	for i, c := range n.children {
		cLen := n.childSummaries[i].Chars
		cEnd := offset + int(cLen)
		if cEnd <= start {
			offset = cEnd
			continue
		}
		if offset >= end {
			break
		}
		childStart := 0
		if start > offset {
			childStart = start - offset
		}
		childEnd := int(cLen)
		if end < cEnd {
			childEnd = end - offset
		}
		c.appendCharRange(sb, childStart, childEnd)
		offset = cEnd
	}
}

// split splits the node at a character offset into [0,offset) and
// [offset,end).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(), n.clone()
	}
	if offset >= n.Chars() {
		return n.clone(), newLeaf()
	}
	if n.IsLeaf() {
		return n.splitLeaf(offset)
	}
	return n.splitInternal(offset)
}

func (n *node) splitLeaf(offset int) (*node, *node) {
	var left, right []chunk
	cur := 0
	for _, c := range n.chunks {
		cLen := c.Chars()
		if cur+cLen <= offset {
			left = append(left, c)
		} else if cur >= offset {
			right = append(right, c)
		} else {
			l, r := c.splitAtChar(offset - cur)
			if !l.IsEmpty() {
				left = append(left, l)
			}
			if !r.IsEmpty() {
				right = append(right, r)
			}
		}
		cur += cLen
	}
	return newLeafWithChunks(left), newLeafWithChunks(right)
}

func (n *node) splitInternal(offset int) (*node, *node) {
	var left, right []*node
	cur := 0
	for i, c := range n.children {
		cLen := int(n.childSummaries[i].Chars)
		if cur+cLen <= offset {
			left = append(left, c)
		} else if cur >= offset {
			right = append(right, c)
		} else {
			l, r := c.split(offset - cur)
			if l.Chars() > 0 {
				left = append(left, l)
			}
			if r.Chars() > 0 {
				right = append(right, r)
			}
		}
		cur += cLen
	}
	return buildFromChildren(left), buildFromChildren(right)
}

func buildFromChildren(children []*node) *node {
	if len(children) == 0 {
		return newLeaf()
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= maxChildren {
		return newInternal(children)
	}
	var parents []*node
	for i := 0; i < len(children); i += maxChildren {
		end := i + maxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternal(children[i:end]))
	}
	return buildFromChildren(parents)
}

// concat joins two subtrees into one, rebalancing as needed.
func concat(left, right *node) *node {
	if left == nil || left.Chars() == 0 {
		if right == nil {
			return newLeaf()
		}
		return right
	}
	if right == nil || right.Chars() == 0 {
		return left
	}
	if left.IsLeaf() && right.IsLeaf() {
		return concatLeaves(left, right)
	}
	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}
	return mergeSameHeight(left, right)
}

func concatLeaves(left, right *node) *node {
	total := len(left.chunks) + len(right.chunks)
	if total <= maxChunksPerLeaf {
		chunks := make([]chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafWithChunks(chunks)
	}
	return newInternal([]*node{left.clone(), right.clone()})
}

func mergeSameHeight(left, right *node) *node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}
	all := make([]*node, 0, len(left.children)+len(right.children))
	all = append(all, left.children...)
	all = append(all, right.children...)
	if len(all) <= maxChildren {
		return newInternal(all)
	}
	return buildFromChildren(all)
}

// charToLine converts a character offset to a 0-indexed line number by
// counting newlines strictly before it.
func (n *node) charToLine(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= n.Chars() {
		offset = n.Chars()
	}
	if n.IsLeaf() {
		lines := 0
		cur := 0
		for _, c := range n.chunks {
			cLen := c.Chars()
			if cur+cLen <= offset {
				lines += int(c.summary.Lines)
				cur += cLen
				continue
			}
			// count newlines within this chunk up to offset-cur
			upto := offset - cur
			b := runeByteOffset(c.data, upto)
			for _, r := range c.data[:b] {
				if r == '\n' {
					lines++
				}
			}
			return lines
		}
		return lines
	}
	lines := 0
	cur := 0
	for i, c := range n.children {
		cLen := int(n.childSummaries[i].Chars)
		if cur+cLen <= offset {
			lines += int(n.childSummaries[i].Lines)
			cur += cLen
			continue
		}
		lines += c.charToLine(offset - cur)
		return lines
	}
	return lines
}

// lineToChar returns the character offset of the first character of the
// given 0-indexed line, or Chars() if line is past the end.
func (n *node) lineToChar(line int) int {
	if line <= 0 {
		return 0
	}
	if n.IsLeaf() {
		cur := 0
		remaining := line
		for _, c := range n.chunks {
			if int(c.summary.Lines) < remaining {
				remaining -= int(c.summary.Lines)
				cur += c.Chars()
				continue
			}
			// the target newline is inside this chunk
			nth := remaining
			idx := nthNewlineByteIndex(c.data, nth)
			if idx < 0 {
				return cur + c.Chars()
			}
			return cur + runeCount(c.data[:idx+1])
		}
		return cur
	}
	cur := 0
	remaining := line
	for i, c := range n.children {
		if int(n.childSummaries[i].Lines) < remaining {
			remaining -= int(n.childSummaries[i].Lines)
			cur += int(n.childSummaries[i].Chars)
			continue
		}
		return cur + c.lineToChar(remaining)
	}
	return n.Chars()
}

func nthNewlineByteIndex(s string, n int) int {
	if n <= 0 {
		return -1
	}
	count := 0
	for i, c := range s {
		if c == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

func (n *node) totalLines() int { return int(n.sum.Lines) }
