// Package nav translates discrete commands into tree operations and keeps
// the status message and pending transfer that the UI displays.
package nav

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/atomicstack/dirtree/internal/logging"
	"github.com/atomicstack/dirtree/internal/logging/events"
	"github.com/atomicstack/dirtree/internal/transfer"
	"github.com/atomicstack/dirtree/internal/tree"
)

// DefaultStatus is shown when no message is pending.
const DefaultStatus = "--"

// Executor performs the filesystem side of paste and the clipboard copy.
type Executor interface {
	Paste(mark transfer.Mark, destDir string) (string, error)
	CopyPath(path string) error
}

// Status is the message shown on the status line.
type Status struct {
	Text  string
	Error bool
	At    time.Time
	// Sticky messages announce a pending yank or cut and never expire.
	Sticky bool
}

// Result describes the outcome of Apply.
type Result struct {
	Changed bool
	Quit    bool
	Err     error
}

// Controller owns command handling for a single Tree.
type Controller struct {
	tree     *tree.Tree
	executor Executor
	mark     *transfer.Mark
	status   Status
	dirty    bool
	now      func() time.Time
}

// New returns a controller for t. A nil executor uses transfer.Local.
func New(t *tree.Tree, executor Executor) *Controller {
	if executor == nil {
		executor = transfer.Local{}
	}
	return &Controller{
		tree:     t,
		executor: executor,
		dirty:    true,
		now:      time.Now,
	}
}

// Tree exposes the controlled tree.
func (c *Controller) Tree() *tree.Tree {
	return c.tree
}

// Dirty reports whether anything visible changed since ClearDirty.
func (c *Controller) Dirty() bool {
	return c.dirty
}

// ClearDirty resets the dirty flag after a redraw.
func (c *Controller) ClearDirty() {
	c.dirty = false
}

// MarkDirty forces the next redraw, e.g. after a terminal resize.
func (c *Controller) MarkDirty() {
	c.dirty = true
}

// Status returns the current status message.
func (c *Controller) Status() Status {
	return c.status
}

// Pending returns the entry marked by yank or cut, if any.
func (c *Controller) Pending() (transfer.Mark, bool) {
	if c.mark == nil {
		return transfer.Mark{}, false
	}
	return *c.mark, true
}

// ExpireStatus clears a status message that is older than ttl at now. The
// message announcing a pending yank or cut stays until something replaces it.
func (c *Controller) ExpireStatus(now time.Time, ttl time.Duration) bool {
	if c.status.Text == "" || c.status.Sticky {
		return false
	}
	if now.Sub(c.status.At) < ttl {
		return false
	}
	c.status = Status{}
	c.dirty = true
	return true
}

// Apply executes cmd against the tree.
func (c *Controller) Apply(cmd Command) Result {
	if c.tree.Heal() {
		c.dirty = true
	}
	before := c.tree.Selected()
	var (
		changed bool
		err     error
	)
	switch cmd {
	case CommandQuit:
		return Result{Quit: true}
	case CommandAscend:
		changed = c.ascend()
	case CommandDescend:
		changed, err = c.descend()
	case CommandNext:
		changed = c.step(c.tree.NextSibling)
	case CommandPrev:
		changed = c.step(c.tree.PreviousSibling)
	case CommandToggle:
		changed, err = c.toggle()
	case CommandRefresh:
		changed, err = c.refresh()
	case CommandYank:
		changed, err = c.markSelected(transfer.OpCopy)
	case CommandCut:
		changed, err = c.markSelected(transfer.OpMove)
	case CommandPaste:
		changed, err = c.paste()
	case CommandCopyPath:
		changed, err = c.copyPath()
	default:
		return Result{}
	}

	if err != nil {
		if errors.Is(err, tree.ErrNotADirectory) {
			return Result{}
		}
		if errors.Is(err, tree.ErrInvalidIndex) {
			c.tree.Heal()
			c.dirty = true
			return Result{Changed: true, Err: err}
		}
		events.Nav.Error(cmd.String(), err)
		logging.Error(err)
		c.setStatus(err.Error(), true)
		return Result{Changed: true, Err: err}
	}
	if changed {
		c.dirty = true
	}
	if after := c.tree.Selected(); after != before {
		node := c.tree.SelectedNode()
		events.Nav.Move(cmd.String(), after, node.FullPath)
	}
	return Result{Changed: changed}
}

func (c *Controller) ascend() bool {
	parent, ok := c.tree.Parent(c.tree.Selected())
	if !ok {
		return false
	}
	return c.tree.Select(parent) == nil
}

func (c *Controller) descend() (bool, error) {
	node := c.tree.SelectedNode()
	if !node.IsDir() {
		return false, nil
	}
	loadedBefore := node.Loaded
	if !node.Loaded {
		if err := c.tree.LoadChildren(node.Index); err != nil {
			return false, err
		}
		node = c.tree.SelectedNode()
	}
	if len(node.Children) == 0 {
		return node.Loaded != loadedBefore, nil
	}
	return true, c.tree.Select(node.Children[0])
}

func (c *Controller) step(sibling func(int) (int, bool)) bool {
	next, ok := sibling(c.tree.Selected())
	if !ok {
		return false
	}
	return c.tree.Select(next) == nil
}

func (c *Controller) toggle() (bool, error) {
	node := c.tree.SelectedNode()
	if !node.IsDir() {
		return false, nil
	}
	if len(node.Children) == 0 {
		if err := c.tree.LoadChildren(node.Index); err != nil {
			return false, err
		}
		return true, nil
	}
	return true, c.tree.Collapse(node.Index)
}

func (c *Controller) refresh() (bool, error) {
	dir := c.directoryForSelection()
	if err := c.tree.Refresh(dir); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Controller) markSelected(op transfer.Op) (bool, error) {
	node := c.tree.SelectedNode()
	if node.Index == tree.Root {
		return false, fmt.Errorf("cannot %s the root directory", op)
	}
	c.mark = &transfer.Mark{Op: op, Source: node.FullPath}
	events.Transfer.Mark(op.String(), node.FullPath)
	verb := "Copying"
	if op == transfer.OpMove {
		verb = "Moving"
	}
	c.setStatus(fmt.Sprintf("%s: %s", verb, node.FullPath), false)
	c.status.Sticky = true
	return true, nil
}

func (c *Controller) paste() (bool, error) {
	if c.mark == nil {
		return false, transfer.ErrNothingMarked
	}
	mark := *c.mark
	dest := c.directoryForSelection()
	destNode, _ := c.tree.Node(dest)
	target, pasteErr := c.executor.Paste(mark, destNode.FullPath)
	if pasteErr != nil && target == "" {
		return false, pasteErr
	}
	// The target exists from here on, so the mark is spent even when the
	// executor reports a partial failure.
	c.mark = nil
	events.Transfer.Paste(mark.Op.String(), mark.Source, target)

	if mark.Op == transfer.OpMove {
		if srcParent, ok := c.tree.FindPath(filepath.Dir(mark.Source)); ok && srcParent != dest {
			if err := c.tree.Refresh(srcParent); err != nil {
				return true, err
			}
		}
	}
	if err := c.tree.Refresh(dest); err != nil {
		return true, err
	}
	if idx, ok := c.tree.FindPath(target); ok {
		_ = c.tree.Select(idx)
	}
	if pasteErr != nil {
		return true, pasteErr
	}

	verb := "Copied"
	if mark.Op == transfer.OpMove {
		verb = "Moved"
	}
	c.setStatus(fmt.Sprintf("%s: %s -> %s", verb, mark.Source, destNode.FullPath), false)
	return true, nil
}

func (c *Controller) copyPath() (bool, error) {
	node := c.tree.SelectedNode()
	if err := c.executor.CopyPath(node.FullPath); err != nil {
		return false, err
	}
	events.Transfer.CopyPath(node.FullPath)
	c.setStatus(fmt.Sprintf("Copied path: %s", node.FullPath), false)
	return true, nil
}

// directoryForSelection is the selected directory, or the parent of a
// selected file.
func (c *Controller) directoryForSelection() int {
	node := c.tree.SelectedNode()
	if node.IsDir() {
		return node.Index
	}
	if parent, ok := c.tree.Parent(node.Index); ok {
		return parent
	}
	return tree.Root
}

func (c *Controller) setStatus(text string, isErr bool) {
	c.status = Status{Text: text, Error: isErr, At: c.now()}
	c.dirty = true
}
