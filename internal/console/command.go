package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PixPMusic/pushmap/internal/mapping"
)

// CommandType is the first word of a console line
type CommandType string

const (
	CommandLearn  CommandType = "learn"
	CommandCancel CommandType = "cancel"
	CommandTouch  CommandType = "touch"
	CommandSet    CommandType = "set"
	CommandClear  CommandType = "clear"
	CommandReset  CommandType = "reset"
	CommandGroup  CommandType = "group"
	CommandStatus CommandType = "status"
	CommandSave   CommandType = "save"
	CommandLoad   CommandType = "load"
	CommandMidi   CommandType = "midi"
	CommandHelp   CommandType = "help"
)

// Command is a parsed console line
type Command struct {
	Type CommandType
	Args []string
}

// Parse splits a line into a command. Blank lines and lines starting with
// '#' parse to an empty command.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}
	}
	fields := strings.Fields(line)
	return Command{Type: CommandType(strings.ToLower(fields[0])), Args: fields[1:]}
}

func intArg(args []string, i int, name string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return v, nil
}

func floatArg(args []string, i int, name string) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(args[i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[i])
	}
	return v, nil
}

func slotArg(args []string) (mapping.SlotRef, error) {
	g, err := intArg(args, 0, "group")
	if err != nil {
		return mapping.SlotRef{}, err
	}
	i, err := intArg(args, 1, "slot")
	if err != nil {
		return mapping.SlotRef{}, err
	}
	ref := mapping.SlotRef{Group: g, Index: i}
	if !ref.Valid() {
		return ref, fmt.Errorf("no slot %d in group %d", i, g)
	}
	return ref, nil
}

func targetArg(args []string) (mapping.Target, error) {
	m, err := intArg(args, 0, "module")
	if err != nil {
		return mapping.Unbound, err
	}
	p, err := intArg(args, 1, "param")
	if err != nil {
		return mapping.Unbound, err
	}
	t := mapping.Target{ModuleID: int64(m), ParamID: p}
	if !t.Valid() {
		return t, fmt.Errorf("invalid parameter %s", t)
	}
	return t, nil
}
