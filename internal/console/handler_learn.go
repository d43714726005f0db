package console

import (
	"context"
	"fmt"

	"github.com/PixPMusic/pushmap/internal/engine"
	"github.com/PixPMusic/pushmap/internal/mapping"
)

// LearnHandler arms learn on a slot
type LearnHandler struct {
	runner *engine.Runner
}

func (h *LearnHandler) Execute(ctx context.Context, args []string) (string, error) {
	ref, err := slotArg(args)
	if err != nil {
		return "", err
	}
	if err := h.runner.Do(ctx, func(e *engine.Engine) { e.BeginLearn(ref) }); err != nil {
		return "", err
	}
	return fmt.Sprintf("learning %s: move a control and touch a parameter", ref), nil
}

func (h *LearnHandler) Usage() string {
	return "<group> <slot>"
}

// CancelHandler disarms learn. Without arguments it cancels whatever slot
// is armed.
type CancelHandler struct {
	runner *engine.Runner
}

func (h *CancelHandler) Execute(ctx context.Context, args []string) (string, error) {
	var ref mapping.SlotRef
	explicit := len(args) > 0
	if explicit {
		var err error
		if ref, err = slotArg(args); err != nil {
			return "", err
		}
	}

	var cancelled bool
	err := h.runner.Do(ctx, func(e *engine.Engine) {
		armed, ok := e.Bank().Learn.Slot()
		if !ok || (explicit && armed != ref) {
			return
		}
		e.CancelLearn(armed)
		ref, cancelled = armed, true
	})
	if err != nil {
		return "", err
	}
	if !cancelled {
		return "not learning", nil
	}
	return fmt.Sprintf("cancelled %s", ref), nil
}

func (h *CancelHandler) Usage() string {
	return "[<group> <slot>]"
}

// TouchHandler reports a parameter touch, as grabbing a knob on the host would
type TouchHandler struct {
	runner *engine.Runner
}

func (h *TouchHandler) Execute(ctx context.Context, args []string) (string, error) {
	target, err := targetArg(args)
	if err != nil {
		return "", err
	}

	var committed, armed bool
	var ref mapping.SlotRef
	err = h.runner.Do(ctx, func(e *engine.Engine) {
		ref, armed = e.Bank().Learn.Slot()
		committed = e.TouchParam(target)
	})
	switch {
	case err != nil:
		return "", err
	case !armed:
		return "not learning", nil
	case committed:
		return fmt.Sprintf("mapped %s to %s", ref, target), nil
	}
	return fmt.Sprintf("%s bound to %s, waiting for a control", ref, target), nil
}

func (h *TouchHandler) Usage() string {
	return "<module> <param>"
}
