package midi

import "gitlab.com/gomidi/midi/v2"

// SendFunc writes one message to an output port.
type SendFunc func(midi.Message) error

// Device represents a control surface the engine can light
type Device interface {
	// Activate sends whatever the surface needs before it accepts lighting
	Activate(send SendFunc) error

	// SetKeyColor lights a pad with a palette index
	SetKeyColor(send SendFunc, note, color uint8) error

	// SetControlLight lights a button addressed by its CC number
	SetControlLight(send SendFunc, cc, value uint8) error

	// ClearAll turns every light in the layout off
	ClearAll(send SendFunc) error

	// Layout returns the reserved controls of the surface
	Layout() Layout
}
