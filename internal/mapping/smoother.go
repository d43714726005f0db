package mapping

import "math"

// JumpThreshold is the normalized distance at which a move is treated as a
// discrete jump (a button, not a knob) and applied without smoothing.
const JumpThreshold = 1.0

// Smoother is a one-pole exponential filter for a single mapped channel.
// The zero value is uninitialized.
type Smoother struct {
	current     float64
	initialized bool
}

// Seed sets the output directly, marking the smoother initialized.
func (s *Smoother) Seed(value float64) {
	s.current = value
	s.initialized = true
}

// Step moves the output toward target over dt seconds with the given time
// constant and returns the new output.
func (s *Smoother) Step(target, dt, timeConstant float64) float64 {
	if !s.initialized || math.Abs(s.current-target) >= JumpThreshold || timeConstant <= 0 {
		s.Seed(target)
		return s.current
	}
	s.current += (target - s.current) * (1 - math.Exp(-dt/timeConstant))
	return s.current
}

// Reset returns the smoother to the uninitialized state.
func (s *Smoother) Reset() {
	s.current = 0
	s.initialized = false
}

// Value returns the last output.
func (s *Smoother) Value() float64 {
	return s.current
}

// Initialized reports whether the smoother has been seeded.
func (s *Smoother) Initialized() bool {
	return s.initialized
}
