package midi

import "gitlab.com/gomidi/midi/v2"

// Message is a raw MIDI message as delivered by a port.
type Message = midi.Message

// Kind classifies the channel messages the engine reacts to
type Kind int

const (
	KindOther Kind = iota
	KindNoteOn
	KindNoteOff
	KindControlChange
)

// Event is a decoded channel message.
type Event struct {
	Kind    Kind
	Channel uint8
	Data1   uint8 // note or controller number
	Data2   uint8 // velocity or value
}

// Decode classifies msg. A note-on with velocity zero is reported as a note-off.
func Decode(msg midi.Message) Event {
	var ev Event
	switch {
	case msg.GetNoteOn(&ev.Channel, &ev.Data1, &ev.Data2):
		ev.Kind = KindNoteOn
		if ev.Data2 == 0 {
			ev.Kind = KindNoteOff
		}
	case msg.GetNoteOff(&ev.Channel, &ev.Data1, &ev.Data2):
		ev.Kind = KindNoteOff
	case msg.GetControlChange(&ev.Channel, &ev.Data1, &ev.Data2):
		ev.Kind = KindControlChange
	}
	return ev
}
