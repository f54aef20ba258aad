package nav

// Command is one discrete navigation input.
type Command int

const (
	CommandNone Command = iota
	CommandAscend
	CommandDescend
	CommandNext
	CommandPrev
	CommandToggle
	CommandQuit
	CommandRefresh
	CommandYank
	CommandCut
	CommandPaste
	CommandCopyPath
)

var commandNames = map[Command]string{
	CommandNone:     "none",
	CommandAscend:   "ascend",
	CommandDescend:  "descend",
	CommandNext:     "next",
	CommandPrev:     "prev",
	CommandToggle:   "toggle",
	CommandQuit:     "quit",
	CommandRefresh:  "refresh",
	CommandYank:     "yank",
	CommandCut:      "cut",
	CommandPaste:    "paste",
	CommandCopyPath: "copy-path",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}
