// Package render decides which tree nodes fit in a fixed number of rows.
//
// Render is stateless: every call derives the visible window from the
// current selection and tree shape alone. The rows on the path from the
// root to the selection are always emitted. The remaining rows are handed
// out first to siblings above the path, nearest to the selection first, and
// then to everything below the selection in display order. A directory off
// the path is expanded only when its whole subtree fits in the rows left;
// otherwise it is drawn alone and flagged Pruned.
package render

import (
	"path/filepath"
	"strings"

	"github.com/atomicstack/dirtree/internal/tree"
)

// DefaultMaxSiblings is the sibling window used when Options leaves it unset.
const DefaultMaxSiblings = 7

// Source is the read-only view of a tree that Render needs.
type Source interface {
	Node(i int) (tree.Node, bool)
	Selected() int
	SubtreeSize(i int) int
	Reachable(i int) bool
}

// Options tunes rendering.
type Options struct {
	// MaxSiblings caps how many children of one directory are shown.
	MaxSiblings int
}

func (o Options) maxSiblings() int {
	if o.MaxSiblings < 1 {
		return DefaultMaxSiblings
	}
	return o.MaxSiblings
}

// Line is one row of output.
type Line struct {
	Index     int
	Depth     int
	Label     string
	Kind      tree.Kind
	Selected  bool
	MoreAbove bool
	MoreBelow bool
	Pruned    bool
}

// Render returns at most budget lines. The selected node is always among
// them when it is reachable; an unreachable selection renders the tree from
// the root without a highlight.
func Render(src Source, budget int, opts Options) []Line {
	if budget <= 0 {
		return nil
	}
	r := &renderer{
		src:   src,
		width: opts.maxSiblings(),
		sizes: make(map[int]int),
	}

	selected := src.Selected()
	path := r.ancestry(selected)
	highlight := true
	if len(path) == 0 {
		path = []int{tree.Root}
		highlight = false
	}
	top := 0
	if len(path) > budget {
		top = len(path) - budget
		path = path[top:]
	}
	remaining := budget - len(path)

	levels := make([]level, len(path)-1)
	for k := range levels {
		levels[k] = r.newLevel(path[k], path[k+1])
	}

	for k := len(levels) - 1; k >= 0 && remaining > 0; k-- {
		remaining = r.fillAbove(&levels[k], k+1, remaining)
	}

	last := len(path) - 1
	tail, emitted := r.children(path[last], last+1, remaining)
	remaining -= len(tail)
	for k := len(levels) - 1; k >= 0 && remaining > 0; k-- {
		remaining = r.fillBelow(&levels[k], k+1, remaining)
	}

	pathLines := make([]Line, len(path))
	for k, idx := range path {
		pathLines[k] = r.line(idx, k)
		pathLines[k].Selected = highlight && idx == selected
	}
	pathLines[0].MoreAbove = top > 0
	if emitted == 0 && r.hasChildren(path[last]) {
		pathLines[last].Pruned = true
	}
	for k := range levels {
		lv := &levels[k]
		if lv.first > 0 {
			if len(lv.above) > 0 {
				lv.above[0].MoreAbove = true
			} else {
				pathLines[k+1].MoreAbove = true
			}
		}
		if lv.last < lv.count-1 {
			if lv.lastLine >= 0 {
				lv.below[lv.lastLine].MoreBelow = true
			} else {
				pathLines[k+1].MoreBelow = true
			}
		}
	}

	out := make([]Line, 0, budget)
	for k := range path {
		out = append(out, pathLines[k])
		if k < len(levels) {
			out = append(out, levels[k].above...)
		}
	}
	out = append(out, tail...)
	for k := len(levels) - 1; k >= 0; k-- {
		out = append(out, levels[k].below...)
	}
	return out
}

// level is the slice of one path directory's children that gets drawn.
type level struct {
	children []int
	focus    int
	start    int
	end      int
	count    int
	first    int
	last     int
	lastLine int
	above    []Line
	below    []Line
}

type renderer struct {
	src   Source
	width int
	sizes map[int]int
}

func (r *renderer) newLevel(dir, focus int) level {
	node, _ := r.src.Node(dir)
	pos := 0
	for j, child := range node.Children {
		if child == focus {
			pos = j
			break
		}
	}
	start, end := window(pos, len(node.Children), r.width)
	return level{
		children: node.Children,
		focus:    pos,
		start:    start,
		end:      end,
		count:    len(node.Children),
		first:    pos,
		last:     pos,
		lastLine: -1,
	}
}

// fillAbove draws the siblings before the focus, walking away from it so
// the rows nearest the selection win.
func (r *renderer) fillAbove(lv *level, depth, remaining int) int {
	var blocks [][]Line
	for j := lv.focus - 1; j >= lv.start && remaining > 0; j-- {
		sub := r.subtree(lv.children[j], depth, remaining)
		blocks = append(blocks, sub)
		remaining -= len(sub)
		lv.first = j
	}
	for b := len(blocks) - 1; b >= 0; b-- {
		lv.above = append(lv.above, blocks[b]...)
	}
	return remaining
}

// fillBelow draws the siblings after the focus in display order.
func (r *renderer) fillBelow(lv *level, depth, remaining int) int {
	for j := lv.focus + 1; j < lv.end && remaining > 0; j++ {
		sub := r.subtree(lv.children[j], depth, remaining)
		lv.lastLine = len(lv.below)
		lv.below = append(lv.below, sub...)
		remaining -= len(sub)
		lv.last = j
	}
	return remaining
}

// subtree draws node i and, when everything below it fits, its children.
// It always returns at least one line; callers guarantee budget >= 1.
func (r *renderer) subtree(i, depth, budget int) []Line {
	line := r.line(i, depth)
	node, _ := r.src.Node(i)
	if !node.IsDir() || len(node.Children) == 0 {
		return []Line{line}
	}
	// size counts the directory's own row, so a subtree that exactly fills
	// the budget is drawn in full rather than pruned.
	if r.size(i) > budget {
		line.Pruned = true
		return []Line{line}
	}
	lines, _ := r.children(i, depth+1, budget-1)
	return append([]Line{line}, lines...)
}

// children draws the first window of directory i's children greedily and
// reports how many of them made it.
func (r *renderer) children(i, depth, budget int) ([]Line, int) {
	node, ok := r.src.Node(i)
	if !ok || len(node.Children) == 0 {
		return nil, 0
	}
	_, end := window(0, len(node.Children), r.width)
	var (
		lines    []Line
		lastLine = -1
		emitted  int
	)
	for j := 0; j < end && budget > 0; j++ {
		sub := r.subtree(node.Children[j], depth, budget)
		lastLine = len(lines)
		lines = append(lines, sub...)
		budget -= len(sub)
		emitted++
	}
	if emitted > 0 && emitted < len(node.Children) {
		lines[lastLine].MoreBelow = true
	}
	return lines, emitted
}

func (r *renderer) hasChildren(i int) bool {
	node, ok := r.src.Node(i)
	return ok && len(node.Children) > 0
}

func (r *renderer) line(i, depth int) Line {
	node, _ := r.src.Node(i)
	return Line{
		Index: i,
		Depth: depth,
		Label: label(node),
		Kind:  node.Kind,
	}
}

func (r *renderer) size(i int) int {
	if n, ok := r.sizes[i]; ok {
		return n
	}
	n := r.src.SubtreeSize(i)
	r.sizes[i] = n
	return n
}

// ancestry returns the indices from the root down to i, or nil when i is
// not reachable.
func (r *renderer) ancestry(i int) []int {
	if !r.src.Reachable(i) {
		return nil
	}
	var path []int
	for cur := i; ; {
		path = append(path, cur)
		node, ok := r.src.Node(cur)
		if !ok || node.Parent == tree.NoParent {
			break
		}
		cur = node.Parent
	}
	for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
		path[a], path[b] = path[b], path[a]
	}
	return path
}

// window returns the half-open range of child positions that may be drawn
// when focus must be visible among count children.
func window(focus, count, width int) (int, int) {
	start := 0
	if focus >= width {
		start = focus - width + 1
	}
	end := start + width
	if end > count {
		end = count
	}
	return start, end
}

func label(node tree.Node) string {
	if node.IsDir() && !strings.HasSuffix(node.Name, string(filepath.Separator)) {
		return node.Name + string(filepath.Separator)
	}
	return node.Name
}
