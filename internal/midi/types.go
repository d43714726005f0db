package midi

// DeviceType represents the type of controller surface
type DeviceType string

const (
	DeviceTypePush2   DeviceType = "push2"   // Ableton Push 2 - requires user mode SysEx
	DeviceTypeGeneric DeviceType = "generic" // Any controller, no lighting
)

// Layout names the physical controls the engine reserves on a surface.
type Layout struct {
	BaseNote       uint8 // first pad note
	NumNotes       int   // pad count starting at BaseNote
	ShiftCC        uint8
	PlayCC         uint8
	GroupEncoderCC uint8 // reassigns the focused key's group while shift is held
}

// Contains reports whether note is one of the layout's pads.
func (l Layout) Contains(note uint8) bool {
	return note >= l.BaseNote && int(note) < int(l.BaseNote)+l.NumNotes
}

// Push2Layout is the control layout of an Ableton Push 2 in user mode.
var Push2Layout = Layout{
	BaseNote:       36,
	NumNotes:       64,
	ShiftCC:        49,
	PlayCC:         85,
	GroupEncoderCC: 14,
}

// Button light levels understood by Push 2 mono LEDs.
const (
	LightOff     uint8 = 0
	LightDim     uint8 = 125
	LightBright  uint8 = 126
	LightFull    uint8 = 127
	PadFocusTint uint8 = 126
)

// GroupColors is the pad palette index shown for each key group.
// Group 0 is unassigned and stays dark.
var GroupColors = [10]uint8{0, 127, 3, 8, 126, 45, 125, 49, 69, 122}
