package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/dirtree/internal/logging/events"
	"github.com/atomicstack/dirtree/internal/tree"
	"github.com/atomicstack/dirtree/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Root        string
	Width       int
	Height      int
	ShowFooter  bool
	MaxSiblings int
	Tick        time.Duration
}

// Open builds the tree for cfg.Root. A root that cannot be listed is fatal.
func Open(cfg Config) (*tree.Tree, error) {
	t, err := tree.Create(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("open root %s: %w", cfg.Root, err)
	}
	return t, nil
}

// NewModel wires the UI model for t.
func NewModel(t *tree.Tree, cfg Config) *ui.Model {
	return ui.NewModel(t, ui.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		MaxSiblings: cfg.MaxSiblings,
		Tick:        cfg.Tick,
	})
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	t, err := Open(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(NewModel(t, cfg), tea.WithAltScreen())
	_, err = program.Run()
	events.App.Stop(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
