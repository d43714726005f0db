package midi

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// userModeSysEx switches Push 2 into user mode: F0 00 21 1D 01 01 0A 01 F7
var userModeSysEx = []byte{0x00, 0x21, 0x1D, 0x01, 0x01, 0x0A, 0x01}

// PushDevice implements Device for Ableton Push 2
type PushDevice struct{}

func (d *PushDevice) Activate(send SendFunc) error {
	if err := send(midi.SysEx(userModeSysEx)); err != nil {
		return fmt.Errorf("failed to enter user mode: %w", err)
	}
	return nil
}

func (d *PushDevice) SetKeyColor(send SendFunc, note, color uint8) error {
	if !Push2Layout.Contains(note) {
		return nil
	}
	return send(midi.NoteOn(0, note, color&0x7F))
}

func (d *PushDevice) SetControlLight(send SendFunc, cc, value uint8) error {
	return send(midi.ControlChange(0, cc&0x7F, value&0x7F))
}

func (d *PushDevice) ClearAll(send SendFunc) error {
	l := Push2Layout
	for i := 0; i < l.NumNotes; i++ {
		if err := send(midi.NoteOn(0, l.BaseNote+uint8(i), 0)); err != nil {
			return err
		}
	}
	for _, cc := range []uint8{l.ShiftCC, l.PlayCC} {
		if err := send(midi.ControlChange(0, cc, LightOff)); err != nil {
			return err
		}
	}
	return nil
}

func (d *PushDevice) Layout() Layout {
	return Push2Layout
}
