package events

import "github.com/atomicstack/dirtree/internal/logging"

type TreeTracer struct{}

var Tree = TreeTracer{}

func (TreeTracer) Load(path string, children int) {
	logging.Trace("tree.load", map[string]interface{}{"path": path, "children": children})
}

func (TreeTracer) Refresh(path string, kept, added, dropped int) {
	logging.Trace("tree.refresh", map[string]interface{}{
		"path":    path,
		"kept":    kept,
		"added":   added,
		"dropped": dropped,
	})
}

func (TreeTracer) Collapse(path string) {
	logging.Trace("tree.collapse", map[string]interface{}{"path": path})
}

func (TreeTracer) Heal(from, to int) {
	logging.Trace("tree.heal", map[string]interface{}{"from": from, "to": to})
}
