package tree

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotADirectory is returned when a load or collapse targets a file.
	ErrNotADirectory = errors.New("not a directory")
	// ErrInvalidIndex is returned for indices that do not exist in the arena
	// or are no longer reachable from the root.
	ErrInvalidIndex = errors.New("invalid node index")
)

// LoadError reports a directory that could not be listed. The tree is left
// unchanged when one is returned.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	cause := e.Err
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		cause = pathErr.Err
	}
	return fmt.Sprintf("cannot list %s: %v", e.Path, cause)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
