package tree

import "github.com/atomicstack/dirtree/internal/logging/events"

// Refresh lists directory i again and merges the result with its current
// children. Entries whose FullPath (and kind) match an existing child keep
// that node, including its load state and nested subtree; other entries
// become new unloaded nodes. The child list is replaced wholesale by the
// merged list in canonical order. Children that disappeared are orphaned and
// a selection inside them is healed.
func (t *Tree) Refresh(i int) error {
	if err := t.checkDir(i); err != nil {
		return err
	}
	entries, err := t.lister.List(t.nodes[i].FullPath)
	if err != nil {
		return &LoadError{Path: t.nodes[i].FullPath, Err: err}
	}

	existing := make(map[string]int, len(t.nodes[i].Children))
	for _, child := range t.nodes[i].Children {
		existing[t.nodes[child].FullPath] = child
	}

	merged := make([]int, 0, len(entries))
	kept, added := 0, 0
	for _, entry := range entries {
		if idx, ok := existing[entry.FullPath]; ok && t.nodes[idx].IsDir() == entry.IsDir {
			t.nodes[idx].Name = entry.Name
			merged = append(merged, idx)
			delete(existing, entry.FullPath)
			kept++
			continue
		}
		merged = append(merged, t.appendNode(i, entry))
		added++
	}

	t.nodes[i].Children = merged
	t.nodes[i].Loaded = true
	events.Tree.Refresh(t.nodes[i].FullPath, kept, added, len(existing))
	t.Heal()
	return nil
}
