package app

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/atomicstack/dirtree/internal/testutil"
	"github.com/atomicstack/dirtree/internal/tree"
)

func TestOpenLoadsRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, "b/", "a.txt")

	tr, err := Open(Config{Root: root})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	node, _ := tr.Node(tree.Root)
	if len(node.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(node.Children))
	}
}

func TestOpenMissingRootFails(t *testing.T) {
	_, err := Open(Config{Root: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestNewModelAppliesConfig(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, "a.txt")
	tr, err := Open(Config{Root: root})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	m := NewModel(tr, Config{Root: root, Height: 4})
	if m.Controller().Tree() != tr {
		t.Fatalf("expected model to drive the opened tree")
	}
	if m.Init() != nil {
		t.Fatalf("expected no tick without an interval")
	}
}
