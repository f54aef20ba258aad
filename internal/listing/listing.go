// Package listing reads the immediate entries of a directory in the order the
// tree displays them: directories first, then everything else, each group
// sorted byte-wise by name.
package listing

import (
	"os"
	"path/filepath"
	"sort"
)

// Entry is one immediate child of a listed directory.
type Entry struct {
	Name     string
	FullPath string
	IsDir    bool
}

// Lister produces the ordered entries of a directory.
type Lister interface {
	List(path string) ([]Entry, error)
}

// ListerFunc adapts a plain function to the Lister interface.
type ListerFunc func(path string) ([]Entry, error)

// List calls f(path).
func (f ListerFunc) List(path string) ([]Entry, error) {
	return f(path)
}

// OS lists directories on the local filesystem.
type OS struct{}

// List reads path and returns its entries in canonical order. Symlinks are
// not followed, so a link to a directory is listed as a leaf.
func (OS) List(path string) ([]Entry, error) {
	dirents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		entries = append(entries, Entry{
			Name:     d.Name(),
			FullPath: filepath.Join(path, d.Name()),
			IsDir:    d.IsDir(),
		})
	}
	Sort(entries)
	return entries, nil
}

// Sort orders entries in place: directories before files, then ascending
// byte-wise name. Equal keys keep their relative order.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Less(entries[i], entries[j])
	})
}

// Less reports whether a sorts before b.
func Less(a, b Entry) bool {
	if a.IsDir != b.IsDir {
		return a.IsDir
	}
	return a.Name < b.Name
}
