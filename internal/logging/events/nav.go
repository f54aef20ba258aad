package events

import "github.com/atomicstack/dirtree/internal/logging"

type NavTracer struct{}

type TransferTracer struct{}

var (
	Nav      = NavTracer{}
	Transfer = TransferTracer{}
)

func (NavTracer) Move(command string, selected int, path string) {
	logging.Trace("nav.move", map[string]interface{}{
		"command":  command,
		"selected": selected,
		"path":     path,
	})
}

func (NavTracer) Error(command string, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.error", map[string]interface{}{"command": command, "error": err.Error()})
}

func (TransferTracer) Mark(op, source string) {
	logging.Trace("transfer.mark", map[string]interface{}{"op": op, "source": source})
}

func (TransferTracer) Paste(op, source, target string) {
	logging.Trace("transfer.paste", map[string]interface{}{"op": op, "source": source, "target": target})
}

func (TransferTracer) CopyPath(path string) {
	logging.Trace("transfer.copy-path", map[string]interface{}{"path": path})
}
