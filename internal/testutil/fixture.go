package testutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/atomicstack/dirtree/internal/listing"
)

// WriteTree creates the given entries below root. Entries ending in "/" are
// directories; everything else is an empty file. Parents are created as
// needed.
func WriteTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, entry := range entries {
		full := filepath.Join(root, filepath.FromSlash(entry))
		if strings.HasSuffix(entry, "/") {
			if err := os.MkdirAll(full, 0o755); err != nil {
				t.Fatalf("mkdir %s: %v", full, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(entry), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
}

// FakeFS is an in-memory listing.Lister keyed by slash-separated absolute
// paths. It records how often each directory was listed.
type FakeFS struct {
	dirs  map[string]bool
	files map[string]bool
	errs  map[string]error
	Calls map[string]int
}

// NewFakeFS creates a fake filesystem containing root and the given entries,
// which are relative to root and follow the WriteTree conventions.
func NewFakeFS(root string, entries ...string) *FakeFS {
	f := &FakeFS{
		dirs:  map[string]bool{path.Clean(root): true},
		files: map[string]bool{},
		errs:  map[string]error{},
		Calls: map[string]int{},
	}
	for _, entry := range entries {
		f.Add(path.Join(root, entry) + trailingSlash(entry))
	}
	return f
}

// Add inserts an absolute entry; a trailing "/" marks a directory.
func (f *FakeFS) Add(entry string) {
	isDir := strings.HasSuffix(entry, "/")
	clean := path.Clean(entry)
	for dir := path.Dir(clean); !f.dirs[dir]; dir = path.Dir(dir) {
		f.dirs[dir] = true
		if dir == "/" || dir == "." {
			break
		}
	}
	if isDir {
		f.dirs[clean] = true
		return
	}
	f.files[clean] = true
}

// Remove deletes an absolute entry and everything below it.
func (f *FakeFS) Remove(entry string) {
	clean := path.Clean(entry)
	prefix := clean + "/"
	for p := range f.dirs {
		if p == clean || strings.HasPrefix(p, prefix) {
			delete(f.dirs, p)
		}
	}
	for p := range f.files {
		if p == clean || strings.HasPrefix(p, prefix) {
			delete(f.files, p)
		}
	}
}

// Fail makes listing dir return err until cleared with Fail(dir, nil).
func (f *FakeFS) Fail(dir string, err error) {
	if err == nil {
		delete(f.errs, path.Clean(dir))
		return
	}
	f.errs[path.Clean(dir)] = err
}

// List implements listing.Lister.
func (f *FakeFS) List(dir string) ([]listing.Entry, error) {
	clean := path.Clean(filepath.ToSlash(dir))
	f.Calls[clean]++
	if err, ok := f.errs[clean]; ok {
		return nil, err
	}
	if !f.dirs[clean] {
		if f.files[clean] {
			return nil, &os.PathError{Op: "readdirent", Path: clean, Err: syscall.ENOTDIR}
		}
		return nil, &os.PathError{Op: "open", Path: clean, Err: os.ErrNotExist}
	}
	var entries []listing.Entry
	for p := range f.dirs {
		if p != clean && path.Dir(p) == clean {
			entries = append(entries, listing.Entry{Name: path.Base(p), FullPath: p, IsDir: true})
		}
	}
	for p := range f.files {
		if path.Dir(p) == clean {
			entries = append(entries, listing.Entry{Name: path.Base(p), FullPath: p})
		}
	}
	listing.Sort(entries)
	return entries, nil
}

func trailingSlash(entry string) string {
	if strings.HasSuffix(entry, "/") {
		return "/"
	}
	return ""
}
