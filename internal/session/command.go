package session

import "strings"

// Command is one of the fixed set of things the user can ask for.
type Command int

const (
	CmdUnknown Command = iota
	CmdEmpty
	CmdExit
	CmdList
	CmdFilter
	CmdProduct
	CmdCost
	CmdHelp
	CmdSummary
	CmdSave
)

type commandInfo struct {
	cmd  Command
	name string
	desc string
}

// Order here is the order help prints.
var commands = []commandInfo{
	{CmdList, "list", "Show all available products"},
	{CmdFilter, "filter", "Filter products by type (e.g., Hardwood, Tile)"},
	{CmdProduct, "product", "Get detailed information about a specific product"},
	{CmdCost, "cost", "Calculate the cost of material and installation"},
	{CmdSummary, "summary", "View a summary of your interactions"},
	{CmdSave, "save", "Save the conversation history to a file"},
	{CmdHelp, "help", "Show this list of commands"},
	{CmdExit, "exit", "End the chat session"},
}

var byName = func() map[string]Command {
	m := make(map[string]Command, len(commands))
	for _, c := range commands {
		m[c.name] = c.cmd
	}
	return m
}()

// ParseCommand maps a raw input line to a Command, ignoring case and
// surrounding whitespace.
func ParseCommand(line string) Command {
	s := strings.ToLower(strings.TrimSpace(line))
	if s == "" {
		return CmdEmpty
	}
	if c, ok := byName[s]; ok {
		return c
	}
	return CmdUnknown
}

func (c Command) String() string {
	switch c {
	case CmdUnknown:
		return "unknown"
	case CmdEmpty:
		return "empty"
	}
	for _, info := range commands {
		if info.cmd == c {
			return info.name
		}
	}
	return "unknown"
}
