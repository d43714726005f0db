package console

import (
	"context"
	"fmt"

	"github.com/PixPMusic/pushmap/internal/engine"
	"gitlab.com/gomidi/midi/v2"
)

// MidiHandler feeds a message to the engine as if the controller sent it
type MidiHandler struct {
	runner *engine.Runner
}

func (h *MidiHandler) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing message type")
	}
	number, err := intArg(args, 1, "number")
	if err != nil {
		return "", err
	}
	if number < 0 || number > 127 {
		return "", fmt.Errorf("number out of range: %d", number)
	}

	value := 0
	if len(args) > 2 {
		if value, err = intArg(args, 2, "value"); err != nil {
			return "", err
		}
	}
	if value < 0 || value > 127 {
		return "", fmt.Errorf("value out of range: %d", value)
	}

	var msg midi.Message
	switch args[0] {
	case "note_on", "on":
		msg = midi.NoteOn(0, uint8(number), uint8(value))
	case "note_off", "off":
		msg = midi.NoteOff(0, uint8(number))
	case "cc":
		msg = midi.ControlChange(0, uint8(number), uint8(value))
	default:
		return "", fmt.Errorf("unknown message type: %s", args[0])
	}

	if err := h.runner.Do(ctx, func(e *engine.Engine) { e.HandleMessage(msg) }); err != nil {
		return "", err
	}
	return "", nil
}

func (h *MidiHandler) Usage() string {
	return "note_on|note_off|cc <number> [<value>]"
}
