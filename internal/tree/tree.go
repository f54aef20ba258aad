// Package tree holds every discovered filesystem node in a single arena.
//
// Nodes are appended and never relocated, so an index stays valid for the
// lifetime of the Tree. Collapsing a directory is soft: its child list is
// cleared and it is marked unloaded, but the former children stay in the
// arena as unreachable orphans. A later load lists the directory again and
// appends fresh nodes. Because nothing is ever removed, no index can dangle;
// an orphaned index is merely unreachable, which Reachable detects and Heal
// repairs.
package tree

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"

	"github.com/atomicstack/dirtree/internal/listing"
	"github.com/atomicstack/dirtree/internal/logging/events"
)

// NoParent marks the root's Parent field.
const NoParent = -1

// Root is the arena index of the root node.
const Root = 0

// Kind distinguishes expandable directories from leaves.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Node is one filesystem entry known to the tree. Values returned by Tree
// share their Children slice with the arena and must be treated as read-only.
type Node struct {
	Index    int
	Parent   int
	Children []int
	FullPath string
	Name     string
	Kind     Kind
	Loaded   bool
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Kind == KindDir
}

// Option customises a Tree at creation.
type Option func(*Tree)

// WithLister replaces the filesystem lister, mostly for tests.
func WithLister(l listing.Lister) Option {
	return func(t *Tree) {
		if l != nil {
			t.lister = l
		}
	}
}

// Tree is the arena plus the current selection.
type Tree struct {
	nodes    []Node
	selected int
	lister   listing.Lister
}

// Create builds the root node for rootPath and loads its children. A root
// that is a file yields ErrNotADirectory.
func Create(rootPath string, opts ...Option) (*Tree, error) {
	t := &Tree{lister: listing.OS{}}
	for _, opt := range opts {
		opt(t)
	}
	clean := filepath.Clean(rootPath)
	t.nodes = []Node{{
		Index:    Root,
		Parent:   NoParent,
		FullPath: clean,
		Name:     clean,
		Kind:     KindDir,
	}}
	if err := t.LoadChildren(Root); err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("root %s: %w", clean, ErrNotADirectory)
		}
		return nil, err
	}
	return t, nil
}

// Len returns the number of nodes in the arena, orphans included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index i.
func (t *Tree) Node(i int) (Node, bool) {
	if !t.valid(i) {
		return Node{}, false
	}
	return t.nodes[i], true
}

// Selected returns the index of the current selection.
func (t *Tree) Selected() int {
	return t.selected
}

// SelectedNode returns the currently selected node.
func (t *Tree) SelectedNode() Node {
	return t.nodes[t.selected]
}

// Select moves the selection to i, which must be reachable from the root.
func (t *Tree) Select(i int) error {
	if !t.Reachable(i) {
		return ErrInvalidIndex
	}
	t.selected = i
	return nil
}

// LoadChildren lists directory i and appends its entries to the arena. It is
// a no-op when the directory is already loaded with at least one child.
func (t *Tree) LoadChildren(i int) error {
	if err := t.checkDir(i); err != nil {
		return err
	}
	if t.nodes[i].Loaded && len(t.nodes[i].Children) > 0 {
		return nil
	}
	entries, err := t.lister.List(t.nodes[i].FullPath)
	if err != nil {
		return &LoadError{Path: t.nodes[i].FullPath, Err: err}
	}
	children := make([]int, 0, len(entries))
	for _, entry := range entries {
		children = append(children, t.appendNode(i, entry))
	}
	t.nodes[i].Children = children
	t.nodes[i].Loaded = true
	events.Tree.Load(t.nodes[i].FullPath, len(children))
	return nil
}

// Collapse hides the children of directory i. The former children remain in
// the arena but are no longer reachable.
func (t *Tree) Collapse(i int) error {
	if err := t.checkDir(i); err != nil {
		return err
	}
	t.nodes[i].Children = nil
	t.nodes[i].Loaded = false
	events.Tree.Collapse(t.nodes[i].FullPath)
	t.Heal()
	return nil
}

// PreviousSibling returns the entry before i in its parent's child list.
func (t *Tree) PreviousSibling(i int) (int, bool) {
	return t.sibling(i, -1)
}

// NextSibling returns the entry after i in its parent's child list.
func (t *Tree) NextSibling(i int) (int, bool) {
	return t.sibling(i, 1)
}

// Parent returns the parent of i, or false for the root.
func (t *Tree) Parent(i int) (int, bool) {
	if !t.valid(i) || t.nodes[i].Parent == NoParent {
		return NoParent, false
	}
	return t.nodes[i].Parent, true
}

// SubtreeSize counts the nodes reachable from i through child links,
// including i itself.
func (t *Tree) SubtreeSize(i int) int {
	if !t.valid(i) {
		return 0
	}
	count := 0
	stack := []int{i}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, t.nodes[top].Children...)
	}
	return count
}

// Reachable reports whether i can be reached from the root by following
// child links.
func (t *Tree) Reachable(i int) bool {
	if !t.valid(i) {
		return false
	}
	cur := i
	for t.nodes[cur].Parent != NoParent {
		parent := t.nodes[cur].Parent
		if position(t.nodes[parent].Children, cur) < 0 {
			return false
		}
		cur = parent
	}
	return cur == Root
}

// Path returns the indices from the root down to i, or nil when i is not
// reachable.
func (t *Tree) Path(i int) []int {
	if !t.Reachable(i) {
		return nil
	}
	depth := t.Depth(i)
	path := make([]int, depth+1)
	for cur := i; depth >= 0; depth-- {
		path[depth] = cur
		cur = t.nodes[cur].Parent
	}
	return path
}

// Depth returns the number of parent links between i and the root.
func (t *Tree) Depth(i int) int {
	if !t.valid(i) {
		return 0
	}
	depth := 0
	for cur := i; t.nodes[cur].Parent != NoParent; cur = t.nodes[cur].Parent {
		depth++
	}
	return depth
}

// Heal moves the selection to its nearest reachable ancestor when the
// selected node has become unreachable. It reports whether it moved.
func (t *Tree) Heal() bool {
	if t.Reachable(t.selected) {
		return false
	}
	from := t.selected
	cur := from
	if !t.valid(cur) {
		cur = Root
	}
	for !t.Reachable(cur) {
		cur = t.nodes[cur].Parent
	}
	t.selected = cur
	events.Tree.Heal(from, cur)
	return true
}

// FindPath returns the reachable node whose FullPath equals path.
func (t *Tree) FindPath(path string) (int, bool) {
	clean := filepath.Clean(path)
	stack := []int{Root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.nodes[top].FullPath == clean {
			return top, true
		}
		stack = append(stack, t.nodes[top].Children...)
	}
	return NoParent, false
}

func (t *Tree) sibling(i, delta int) (int, bool) {
	parent, ok := t.Parent(i)
	if !ok {
		return NoParent, false
	}
	children := t.nodes[parent].Children
	pos := position(children, i)
	if pos < 0 {
		return NoParent, false
	}
	pos += delta
	if pos < 0 || pos >= len(children) {
		return NoParent, false
	}
	return children[pos], true
}

func (t *Tree) appendNode(parent int, entry listing.Entry) int {
	kind := KindFile
	if entry.IsDir {
		kind = KindDir
	}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Index:    idx,
		Parent:   parent,
		FullPath: entry.FullPath,
		Name:     entry.Name,
		Kind:     kind,
	})
	return idx
}

func (t *Tree) checkDir(i int) error {
	if !t.valid(i) {
		return ErrInvalidIndex
	}
	if t.nodes[i].Kind != KindDir {
		return ErrNotADirectory
	}
	return nil
}

func (t *Tree) valid(i int) bool {
	return i >= 0 && i < len(t.nodes)
}

func position(children []int, i int) int {
	for pos, child := range children {
		if child == i {
			return pos
		}
	}
	return -1
}
