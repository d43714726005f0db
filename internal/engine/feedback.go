package engine

import (
	"errors"

	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/PixPMusic/pushmap/internal/midi"
)

// LightState is everything the controller lights reflect.
type LightState struct {
	Groups   [mapping.NumKeys]int
	FocusKey int
	Held     bool
	Shift    bool
	Playing  bool
}

const unknown = -1

// Feedback sends lighting to a device, skipping lights whose value has not
// changed since the last send.
type Feedback struct {
	device   midi.Device
	layout   midi.Layout
	pads     [mapping.NumKeys]int
	controls [mapping.NumKeys]int
}

// NewFeedback creates feedback for device with every light unknown.
func NewFeedback(device midi.Device) *Feedback {
	f := &Feedback{device: device, layout: device.Layout()}
	f.Invalidate()
	return f
}

// Invalidate forces every light to be resent on the next Update.
func (f *Feedback) Invalidate() {
	for i := range f.pads {
		f.pads[i] = unknown
		f.controls[i] = unknown
	}
}

// Update sends the lights that differ from what was last sent.
func (f *Feedback) Update(send midi.SendFunc, s LightState) error {
	var errs []error
	for i := 0; i < f.layout.NumNotes; i++ {
		note := f.layout.BaseNote + uint8(i)
		color := midi.GroupColors[groupIndex(s.Groups[note])]
		if int(note) == s.FocusKey && s.Held {
			color = midi.PadFocusTint
		}
		if f.pads[note] == int(color) {
			continue
		}
		if err := f.device.SetKeyColor(send, note, color); err != nil {
			errs = append(errs, err)
			continue
		}
		f.pads[note] = int(color)
	}

	shift := midi.LightOff
	if s.Shift {
		shift = midi.LightFull
	}
	play := midi.LightDim
	if s.Playing {
		play = midi.LightBright
	}
	errs = append(errs,
		f.setControl(send, f.layout.ShiftCC, shift),
		f.setControl(send, f.layout.PlayCC, play),
	)
	return errors.Join(errs...)
}

// Blackout turns every light off and remembers them as off.
func (f *Feedback) Blackout(send midi.SendFunc) error {
	if err := f.device.ClearAll(send); err != nil {
		f.Invalidate()
		return err
	}
	for i := range f.pads {
		f.pads[i] = int(midi.LightOff)
		f.controls[i] = int(midi.LightOff)
	}
	return nil
}

func (f *Feedback) setControl(send midi.SendFunc, cc, value uint8) error {
	if f.controls[cc] == int(value) {
		return nil
	}
	if err := f.device.SetControlLight(send, cc, value); err != nil {
		return err
	}
	f.controls[cc] = int(value)
	return nil
}

func groupIndex(g int) int {
	if g < 0 || g >= len(midi.GroupColors) {
		return 0
	}
	return g
}
