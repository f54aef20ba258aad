// Package transfer executes the copy and move operations behind paste, and
// places paths on the system clipboard.
package transfer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/otiai10/copy"
)

var (
	ErrNothingMarked     = errors.New("nothing marked to paste")
	ErrDestinationExists = errors.New("destination already exists")
	ErrIntoSelf          = errors.New("cannot paste a directory into itself")
	ErrClipboard         = errors.New("clipboard unavailable")
	// ErrSourceKept reports a cross-device move whose copy landed but whose
	// source could not be removed afterwards.
	ErrSourceKept = errors.New("source kept after copy")
)

var (
	rename    = os.Rename
	removeAll = os.RemoveAll
)

// Op is the kind of pending transfer.
type Op int

const (
	OpCopy Op = iota
	OpMove
)

func (o Op) String() string {
	if o == OpMove {
		return "move"
	}
	return "copy"
}

// Mark remembers the entry picked with yank or cut until it is pasted.
type Mark struct {
	Op     Op
	Source string
}

// Target returns the path the marked entry will have inside destDir.
func (m Mark) Target(destDir string) string {
	return filepath.Join(destDir, filepath.Base(m.Source))
}

// Local performs transfers on the local filesystem.
type Local struct{}

// Paste copies or moves the marked entry into destDir and returns the new path.
// A non-empty path alongside an error means the target exists on disk even
// though the operation did not finish cleanly.
func (Local) Paste(m Mark, destDir string) (string, error) {
	if m.Source == "" {
		return "", ErrNothingMarked
	}
	target := m.Target(destDir)
	if within(destDir, m.Source) {
		return "", fmt.Errorf("%s into %s: %w", m.Source, destDir, ErrIntoSelf)
	}
	if _, err := os.Lstat(m.Source); err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if _, err := os.Lstat(target); err == nil {
		return "", fmt.Errorf("%s: %w", target, ErrDestinationExists)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat destination: %w", err)
	}

	switch m.Op {
	case OpMove:
		if err := move(m.Source, target); err != nil {
			if errors.Is(err, ErrSourceKept) {
				return target, fmt.Errorf("move %s: %w", m.Source, err)
			}
			return "", fmt.Errorf("move %s: %w", m.Source, err)
		}
	default:
		if err := copy.Copy(m.Source, target); err != nil {
			return "", fmt.Errorf("copy %s: %w", m.Source, err)
		}
	}
	return target, nil
}

// CopyPath writes path to the system clipboard.
func (Local) CopyPath(path string) error {
	if clipboard.Unsupported {
		return ErrClipboard
	}
	if err := clipboard.WriteAll(path); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}

// move renames in place and falls back to copy plus removal only when the
// rename crosses devices. Any other rename failure is returned untouched.
func move(src, dst string) error {
	err := rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copy.Copy(src, dst); err != nil {
		_ = removeAll(dst)
		return err
	}
	if err := removeAll(src); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceKept, err)
	}
	return nil
}

// within reports whether dir is src or lies below it.
func within(dir, src string) bool {
	dir = filepath.Clean(dir)
	src = filepath.Clean(src)
	if dir == src {
		return true
	}
	return strings.HasPrefix(dir, src+string(filepath.Separator))
}
