package mapping

import "fmt"

const (
	// NumGroups is the number of mapping groups. Group 0 is unassigned.
	NumGroups = 10
	// MaxChannels is the capacity of each group table.
	MaxChannels = 8
	// NumKeys is the size of the note and CC number spaces.
	NumKeys = 128

	// NoCC marks a slot without a controller number.
	NoCC = -1
)

// SlotState is the binding state of a slot.
type SlotState int

const (
	SlotUnmapped SlotState = iota
	SlotCCOnly
	SlotParamOnly
	SlotMapped
)

func (s SlotState) String() string {
	switch s {
	case SlotUnmapped:
		return "unmapped"
	case SlotCCOnly:
		return "cc-only"
	case SlotParamOnly:
		return "param-only"
	case SlotMapped:
		return "mapped"
	default:
		return "unknown"
	}
}

// SlotRef addresses one slot by group and channel index.
type SlotRef struct {
	Group int
	Index int
}

// Valid reports whether the reference lies inside the learnable tables.
func (r SlotRef) Valid() bool {
	return r.Group > 0 && r.Group < NumGroups && r.Index >= 0 && r.Index < MaxChannels
}

func (r SlotRef) String() string {
	return fmt.Sprintf("g%d/%d", r.Group, r.Index)
}

// Slot binds one controller number to one host parameter.
type Slot struct {
	cc       int
	handle   Handle
	smoother Smoother
}

// CC returns the controller number, or NoCC.
func (s *Slot) CC() int {
	return s.cc
}

// Handle returns the parameter handle the slot reads and writes.
func (s *Slot) Handle() Handle {
	return s.handle
}

// Smoother exposes the slot's filter state.
func (s *Slot) Smoother() *Smoother {
	return &s.smoother
}

// HasCC reports whether a controller number is assigned.
func (s *Slot) HasCC() bool {
	return s.cc >= 0
}

// State derives the binding state from the CC and the handle's target.
func (s *Slot) State(reg Registry) SlotState {
	_, bound := reg.Target(s.handle)
	switch {
	case s.HasCC() && bound:
		return SlotMapped
	case s.HasCC():
		return SlotCCOnly
	case bound:
		return SlotParamOnly
	default:
		return SlotUnmapped
	}
}

// Text is the short label a host shows on the parameter it drives.
func (s *Slot) Text() string {
	if s.HasCC() {
		return fmt.Sprintf("CC%02d", s.cc)
	}
	return "PushMap"
}

// Label renders the slot for a list view. learning marks the slot armed.
func (s *Slot) Label(reg Registry, learning bool) string {
	state := s.State(reg)
	switch state {
	case SlotUnmapped:
		if learning {
			return "Mapping..."
		}
		return "Unmapped"
	case SlotCCOnly:
		return fmt.Sprintf("CC%02d", s.cc)
	case SlotParamOnly:
		return reg.DisplayName(s.handle)
	default:
		return fmt.Sprintf("CC%02d %s", s.cc, reg.DisplayName(s.handle))
	}
}
