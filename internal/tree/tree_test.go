package tree

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/atomicstack/dirtree/internal/testutil"
)

func names(t *testing.T, tr *Tree, i int) []string {
	t.Helper()
	n, ok := tr.Node(i)
	if !ok {
		t.Fatalf("node %d missing", i)
	}
	out := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		child, _ := tr.Node(c)
		out = append(out, child.Name)
	}
	return out
}

func childNamed(t *testing.T, tr *Tree, parent int, name string) int {
	t.Helper()
	n, _ := tr.Node(parent)
	for _, c := range n.Children {
		child, _ := tr.Node(c)
		if child.Name == name {
			return c
		}
	}
	t.Fatalf("no child %q under %d", name, parent)
	return -1
}

func newFakeTree(t *testing.T, fake *testutil.FakeFS) *Tree {
	t.Helper()
	tr, err := Create("/tmp/x", WithLister(fake))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return tr
}

func TestCreateLoadsRootDirectoriesFirst(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "b/", "a.txt")
	tr := newFakeTree(t, fake)

	root, ok := tr.Node(Root)
	if !ok {
		t.Fatalf("expected root node")
	}
	if root.Parent != NoParent || !root.IsDir() || !root.Loaded {
		t.Fatalf("unexpected root %#v", root)
	}
	if root.Name != "/tmp/x" {
		t.Fatalf("expected root name to be the path, got %q", root.Name)
	}
	if got := names(t, tr, Root); !reflect.DeepEqual(got, []string{"b", "a.txt"}) {
		t.Fatalf("expected [b a.txt], got %v", got)
	}
	if tr.Selected() != Root {
		t.Fatalf("expected root selected, got %d", tr.Selected())
	}
	b, _ := tr.Node(childNamed(t, tr, Root, "b"))
	if b.Loaded || b.Kind != KindDir || b.FullPath != "/tmp/x/b" {
		t.Fatalf("unexpected child %#v", b)
	}
}

func TestCreateFailsOnUnreadableRoot(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x")
	fake.Fail("/tmp/x", fs.ErrPermission)
	_, err := Create("/tmp/x", WithLister(fake))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected wrapped permission error, got %v", err)
	}
}

func TestCreateRejectsFileRoot(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "a.txt")
	if _, err := Create("/tmp/x/a.txt", WithLister(fake)); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory from fake lister, got %v", err)
	}

	root := t.TempDir()
	testutil.WriteTree(t, root, "a.txt")
	if _, err := Create(filepath.Join(root, "a.txt")); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory on disk, got %v", err)
	}
}

func TestCreateOnRealDirectory(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, "src/main.go", "docs/", "README.md")
	tr, err := Create(root)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got := names(t, tr, Root); !reflect.DeepEqual(got, []string{"docs", "src", "README.md"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestLoadChildrenIsStableAndIdempotent(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "d/z", "d/B/", "d/a", "d/A/")
	tr := newFakeTree(t, fake)
	d := childNamed(t, tr, Root, "d")

	if err := tr.LoadChildren(d); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	first := names(t, tr, d)
	want := []string{"A", "B", "a", "z"}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("expected %v, got %v", want, first)
	}
	size := tr.Len()
	if err := tr.LoadChildren(d); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if tr.Len() != size {
		t.Fatalf("expected no new nodes on repeated load, arena grew %d -> %d", size, tr.Len())
	}
	if fake.Calls["/tmp/x/d"] != 1 {
		t.Fatalf("expected a single listing, got %d", fake.Calls["/tmp/x/d"])
	}
}

func TestLoadChildrenErrors(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "locked/", "file.txt")
	tr := newFakeTree(t, fake)

	file := childNamed(t, tr, Root, "file.txt")
	if err := tr.LoadChildren(file); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
	if err := tr.LoadChildren(999); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}

	locked := childNamed(t, tr, Root, "locked")
	fake.Fail("/tmp/x/locked", fs.ErrPermission)
	size := tr.Len()
	err := tr.LoadChildren(locked)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Path != "/tmp/x/locked" {
		t.Fatalf("expected LoadError for locked dir, got %v", err)
	}
	n, _ := tr.Node(locked)
	if n.Loaded || tr.Len() != size {
		t.Fatalf("expected tree unchanged after failed load")
	}
}

func TestLoadErrorMessage(t *testing.T) {
	err := &LoadError{Path: "/x", Err: &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}}
	if got := err.Error(); got != "cannot list /x: permission denied" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestSiblingBounds(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "a/", "b", "c")
	tr := newFakeTree(t, fake)
	a := childNamed(t, tr, Root, "a")
	b := childNamed(t, tr, Root, "b")
	c := childNamed(t, tr, Root, "c")

	if _, ok := tr.PreviousSibling(a); ok {
		t.Fatalf("expected no previous sibling for first child")
	}
	if _, ok := tr.NextSibling(c); ok {
		t.Fatalf("expected no next sibling for last child")
	}
	if got, ok := tr.NextSibling(a); !ok || got != b {
		t.Fatalf("expected next of a to be b, got %d %v", got, ok)
	}
	if got, ok := tr.PreviousSibling(c); !ok || got != b {
		t.Fatalf("expected previous of c to be b, got %d %v", got, ok)
	}
	if _, ok := tr.NextSibling(Root); ok {
		t.Fatalf("expected root to have no siblings")
	}
}

func TestSubtreeSize(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "a/one", "a/two", "a/deep/three", "b")
	tr := newFakeTree(t, fake)
	if got := tr.SubtreeSize(Root); got != 3 {
		t.Fatalf("expected 3 before expansion, got %d", got)
	}
	a := childNamed(t, tr, Root, "a")
	if err := tr.LoadChildren(a); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := tr.LoadChildren(childNamed(t, tr, a, "deep")); err != nil {
		t.Fatalf("load deep: %v", err)
	}
	if got := tr.SubtreeSize(a); got != 5 {
		t.Fatalf("expected 5 for a, got %d", got)
	}
	if got := tr.SubtreeSize(Root); got != 7 {
		t.Fatalf("expected 7 for root, got %d", got)
	}
	if got := tr.SubtreeSize(-1); got != 0 {
		t.Fatalf("expected 0 for invalid index, got %d", got)
	}
}

func TestSoftCollapseOrphansChildren(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "d/one", "d/two/")
	tr := newFakeTree(t, fake)
	d := childNamed(t, tr, Root, "d")
	if err := tr.LoadChildren(d); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := names(t, tr, d)
	two := childNamed(t, tr, d, "two")
	if err := tr.Select(two); err != nil {
		t.Fatalf("select: %v", err)
	}

	if err := tr.Collapse(d); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	n, _ := tr.Node(d)
	if n.Loaded || len(n.Children) != 0 {
		t.Fatalf("expected collapsed directory, got %#v", n)
	}
	if _, ok := tr.Node(two); !ok {
		t.Fatalf("expected orphan to stay in the arena")
	}
	if tr.Reachable(two) {
		t.Fatalf("expected orphan to be unreachable")
	}
	if tr.Selected() != d {
		t.Fatalf("expected selection healed to collapsed dir %d, got %d", d, tr.Selected())
	}

	if err := tr.LoadChildren(d); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after := names(t, tr, d); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v after collapse/expand, got %v", before, after)
	}
	if fresh := childNamed(t, tr, d, "two"); fresh == two {
		t.Fatalf("expected soft collapse to create fresh nodes on reload")
	}
	file := childNamed(t, tr, d, "one")
	if err := tr.Collapse(file); !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
}

func TestRefreshKeepsExistingNodes(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "src/pkg/file.go", "src/old.txt", "src/keep.txt")
	tr := newFakeTree(t, fake)
	src := childNamed(t, tr, Root, "src")
	if err := tr.LoadChildren(src); err != nil {
		t.Fatalf("load src: %v", err)
	}
	pkg := childNamed(t, tr, src, "pkg")
	if err := tr.LoadChildren(pkg); err != nil {
		t.Fatalf("load pkg: %v", err)
	}
	file := childNamed(t, tr, pkg, "file.go")
	if err := tr.Select(file); err != nil {
		t.Fatalf("select: %v", err)
	}

	fake.Remove("/tmp/x/src/old.txt")
	fake.Add("/tmp/x/src/new.txt")
	fake.Add("/tmp/x/src/api/")
	if err := tr.Refresh(src); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := names(t, tr, src); !reflect.DeepEqual(got, []string{"api", "pkg", "keep.txt", "new.txt"}) {
		t.Fatalf("unexpected merged order %v", got)
	}
	if childNamed(t, tr, src, "pkg") != pkg {
		t.Fatalf("expected pkg to keep its node identity")
	}
	p, _ := tr.Node(pkg)
	if !p.Loaded || len(p.Children) != 1 {
		t.Fatalf("expected nested load state to survive, got %#v", p)
	}
	if tr.Selected() != file {
		t.Fatalf("expected selection to survive refresh, got %d want %d", tr.Selected(), file)
	}
	api, _ := tr.Node(childNamed(t, tr, src, "api"))
	if api.Loaded {
		t.Fatalf("expected new directory to be unloaded")
	}
}

func TestRefreshHealsRemovedSelection(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "gone/inner/leaf", "stay")
	tr := newFakeTree(t, fake)
	gone := childNamed(t, tr, Root, "gone")
	if err := tr.LoadChildren(gone); err != nil {
		t.Fatalf("load: %v", err)
	}
	inner := childNamed(t, tr, gone, "inner")
	if err := tr.Select(inner); err != nil {
		t.Fatalf("select: %v", err)
	}

	fake.Remove("/tmp/x/gone")
	if err := tr.Refresh(Root); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tr.Selected() != Root {
		t.Fatalf("expected selection healed to root, got %d", tr.Selected())
	}
	if got := names(t, tr, Root); !reflect.DeepEqual(got, []string{"stay"}) {
		t.Fatalf("unexpected children %v", got)
	}
}

func TestRefreshReplacesNodeWhoseKindChanged(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "thing")
	tr := newFakeTree(t, fake)
	old := childNamed(t, tr, Root, "thing")

	fake.Remove("/tmp/x/thing")
	fake.Add("/tmp/x/thing/")
	if err := tr.Refresh(Root); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	fresh := childNamed(t, tr, Root, "thing")
	if fresh == old {
		t.Fatalf("expected a new node for a file that became a directory")
	}
	n, _ := tr.Node(fresh)
	if !n.IsDir() {
		t.Fatalf("expected directory kind, got %v", n.Kind)
	}
}

func TestRefreshFailureLeavesTreeUnchanged(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "a", "b")
	tr := newFakeTree(t, fake)
	before := names(t, tr, Root)
	fake.Fail("/tmp/x", fs.ErrPermission)
	if err := tr.Refresh(Root); err == nil {
		t.Fatalf("expected refresh error")
	}
	if after := names(t, tr, Root); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected unchanged children, got %v", after)
	}
}

func TestPathDepthAndFind(t *testing.T) {
	fake := testutil.NewFakeFS("/tmp/x", "a/b/c")
	tr := newFakeTree(t, fake)
	a := childNamed(t, tr, Root, "a")
	_ = tr.LoadChildren(a)
	b := childNamed(t, tr, a, "b")
	_ = tr.LoadChildren(b)
	c := childNamed(t, tr, b, "c")

	if got := tr.Path(c); !reflect.DeepEqual(got, []int{Root, a, b, c}) {
		t.Fatalf("unexpected path %v", got)
	}
	if tr.Depth(c) != 3 {
		t.Fatalf("expected depth 3, got %d", tr.Depth(c))
	}
	if idx, ok := tr.FindPath("/tmp/x/a/b/"); !ok || idx != b {
		t.Fatalf("expected FindPath to locate b, got %d %v", idx, ok)
	}
	if _, ok := tr.FindPath("/tmp/x/missing"); ok {
		t.Fatalf("expected FindPath miss")
	}
	if err := tr.Select(12345); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}
