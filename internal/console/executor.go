// Package console is a line-oriented command surface for the engine:
// arming learn, touching parameters, inspecting and persisting mappings.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PixPMusic/pushmap/internal/engine"
	"github.com/PixPMusic/pushmap/internal/mapping"
)

// Env is what the handlers operate on.
type Env struct {
	Runner      *engine.Runner
	MappingFile string
	InstanceID  string
	Ports       *mapping.PortSettings
}

// Executor dispatches commands to their handlers
type Executor struct {
	handlers map[CommandType]CommandHandler
}

// NewExecutor creates an executor with every built-in command
func NewExecutor(env Env) *Executor {
	x := &Executor{
		handlers: map[CommandType]CommandHandler{
			CommandLearn:  &LearnHandler{runner: env.Runner},
			CommandCancel: &CancelHandler{runner: env.Runner},
			CommandTouch:  &TouchHandler{runner: env.Runner},
			CommandSet:    &SetHandler{runner: env.Runner},
			CommandClear:  &ClearHandler{runner: env.Runner},
			CommandReset:  &ResetHandler{runner: env.Runner},
			CommandGroup:  &GroupHandler{runner: env.Runner},
			CommandStatus: &StatusHandler{runner: env.Runner},
			CommandSave:   &SaveHandler{env: env},
			CommandLoad:   &LoadHandler{env: env},
			CommandMidi:   &MidiHandler{runner: env.Runner},
		},
	}
	x.handlers[CommandHelp] = &HelpHandler{executor: x}
	return x
}

// Execute runs one console line
func (x *Executor) Execute(ctx context.Context, line string) (string, error) {
	cmd := Parse(line)
	if cmd.Type == "" {
		return "", nil
	}

	handler, ok := x.handlers[cmd.Type]
	if !ok {
		return "", fmt.Errorf("unknown command: %s (try help)", cmd.Type)
	}

	out, err := handler.Execute(ctx, cmd.Args)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Type, err)
	}
	return out, nil
}

// Run reads commands from in until EOF, "quit" or ctx cancellation,
// writing results to out. Command errors are printed, not returned.
func (x *Executor) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Text()
		if t := Parse(line).Type; t == "quit" || t == "exit" {
			return nil
		}
		result, err := x.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, strings.TrimRight(result, "\n"))
		}
	}
	return scanner.Err()
}

// HelpHandler lists the commands
type HelpHandler struct {
	executor *Executor
}

func (h *HelpHandler) Execute(ctx context.Context, args []string) (string, error) {
	names := make([]string, 0, len(h.executor.handlers))
	for t := range h.executor.handlers {
		names = append(names, string(t))
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%-7s %s\n", name, h.executor.handlers[CommandType(name)].Usage())
	}
	b.WriteString("quit\n")
	return b.String(), nil
}

func (h *HelpHandler) Usage() string {
	return ""
}
