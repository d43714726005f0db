package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/PixPMusic/pushmap/internal/engine"
	"github.com/PixPMusic/pushmap/internal/mapping"
)

// valueSetter is implemented by registries that can move a parameter
// directly.
type valueSetter interface {
	SetValue(t mapping.Target, v float64) bool
}

// SetHandler moves a host parameter
type SetHandler struct {
	runner *engine.Runner
}

func (h *SetHandler) Execute(ctx context.Context, args []string) (string, error) {
	target, err := targetArg(args)
	if err != nil {
		return "", err
	}
	v, err := floatArg(args, 2, "value")
	if err != nil {
		return "", err
	}

	var ok, supported bool
	err = h.runner.Do(ctx, func(e *engine.Engine) {
		var s valueSetter
		if s, supported = e.Registry().(valueSetter); supported {
			ok = s.SetValue(target, v)
		}
	})
	switch {
	case err != nil:
		return "", err
	case !supported:
		return "", fmt.Errorf("registry does not support direct writes")
	case !ok:
		return "", fmt.Errorf("no parameter %s", target)
	}
	return "", nil
}

func (h *SetHandler) Usage() string {
	return "<module> <param> <value>"
}

// ClearHandler removes a slot binding
type ClearHandler struct {
	runner *engine.Runner
}

func (h *ClearHandler) Execute(ctx context.Context, args []string) (string, error) {
	ref, err := slotArg(args)
	if err != nil {
		return "", err
	}
	if err := h.runner.Do(ctx, func(e *engine.Engine) { e.ClearSlot(ref) }); err != nil {
		return "", err
	}
	return fmt.Sprintf("cleared %s", ref), nil
}

func (h *ClearHandler) Usage() string {
	return "<group> <slot>"
}

// ResetHandler clears every mapping
type ResetHandler struct {
	runner *engine.Runner
}

func (h *ResetHandler) Execute(ctx context.Context, args []string) (string, error) {
	if err := h.runner.Do(ctx, func(e *engine.Engine) { e.Reset() }); err != nil {
		return "", err
	}
	return "all mappings cleared", nil
}

func (h *ResetHandler) Usage() string {
	return ""
}

// GroupHandler assigns a key to a group
type GroupHandler struct {
	runner *engine.Runner
}

func (h *GroupHandler) Execute(ctx context.Context, args []string) (string, error) {
	key, err := intArg(args, 0, "key")
	if err != nil {
		return "", err
	}
	group, err := intArg(args, 1, "group")
	if err != nil {
		return "", err
	}
	if key < 0 || key >= mapping.NumKeys || group < 0 || group >= mapping.NumGroups {
		return "", fmt.Errorf("key must be 0-%d and group 0-%d", mapping.NumKeys-1, mapping.NumGroups-1)
	}
	if err := h.runner.Do(ctx, func(e *engine.Engine) { e.SetKeyGroup(key, group) }); err != nil {
		return "", err
	}
	return fmt.Sprintf("key %d in group %d", key, group), nil
}

func (h *GroupHandler) Usage() string {
	return "<key> <group>"
}

// StatusHandler prints the focus and the slots of a group
type StatusHandler struct {
	runner *engine.Runner
}

func (h *StatusHandler) Execute(ctx context.Context, args []string) (string, error) {
	group := -1
	if len(args) > 0 {
		g, err := intArg(args, 0, "group")
		if err != nil {
			return "", err
		}
		if g < 0 || g >= mapping.NumGroups {
			return "", fmt.Errorf("no group %d", g)
		}
		group = g
	}

	var out string
	err := h.runner.Do(ctx, func(e *engine.Engine) {
		out = describe(e, group)
	})
	return out, err
}

func (h *StatusHandler) Usage() string {
	return "[<group>]"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// describe renders the engine state; group < 0 means the focused group.
func describe(e *engine.Engine, group int) string {
	bank := e.Bank()
	key, focused := bank.Keys.Focus()
	if group < 0 {
		group = focused
	}

	var b strings.Builder
	fmt.Fprintf(&b, "focus key %d group %d  shift %s  play %s\n",
		key, focused, onOff(e.Shift()), onOff(e.Playing()))

	learning, armed := bank.Learn.Slot()
	if armed {
		cc, param := bank.Learn.Captured()
		fmt.Fprintf(&b, "learning %s (cc %s, param %s)\n", learning, onOff(cc), onOff(param))
	}

	if group == 0 {
		b.WriteString("group 0 is unassigned\n")
		return b.String()
	}

	table := bank.Table(group)
	cache := bank.Cache(group)
	reserved := table.ActiveLength() - 1
	for id := 0; id < table.ActiveLength(); id++ {
		ref := mapping.SlotRef{Group: group, Index: id}
		slot := table.Slot(id)
		// While a learn is armed in this group the reserved slot reads as the
		// next one to map.
		pending := armed && (learning == ref || (learning.Group == group && id == reserved))
		label := slot.Label(e.Registry(), pending)
		fmt.Fprintf(&b, "%-6s %-28s", ref, label)
		if v, ok := cache.Get(slot.CC()); ok {
			fmt.Fprintf(&b, " %6.1f", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}
