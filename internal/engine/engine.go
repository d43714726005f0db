// Package engine drives parameter values from controller input. An Engine
// owns its mapping state outright and has no locking: every method must be
// called from one goroutine at a time, normally the Runner's.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/PixPMusic/pushmap/internal/metrics"
	"github.com/PixPMusic/pushmap/internal/midi"
)

// Output levels in volts.
const (
	GateHigh    = 10.0
	TriggerHigh = 10.0
)

// Options tune the real-time behaviour.
type Options struct {
	UpdateRate   float64 // control cycles per second
	TimeConstant float64 // smoothing time constant in seconds
	EncoderScale float64 // cache units per relative encoder step
	Logger       *slog.Logger
}

// DefaultOptions returns the stock tuning: 400 Hz, 1/30 s, 2/3 per step.
func DefaultOptions() Options {
	return Options{
		UpdateRate:   400,
		TimeConstant: 1.0 / 30,
		EncoderScale: 2.0 / 3,
	}
}

// Outputs are the signal values the engine emits besides parameter writes.
type Outputs struct {
	PitchCV float64 // (note - base note) / 12
	Gate    float64
	GR      float64 // trigger while play is held
	GRT     float64
}

// Engine is one controller-to-parameter mapping instance.
type Engine struct {
	bank   *mapping.Bank
	reg    mapping.Registry
	device midi.Device
	layout midi.Layout
	port   *midi.Port

	opts   Options
	logger *slog.Logger

	shift   bool
	playing bool
	out     Outputs

	feedback *Feedback
	divider  Scheduler
}

// New creates an engine over reg. The first pad of the device layout has
// focus initially.
func New(reg mapping.Registry, device midi.Device, opts Options) *Engine {
	if device == nil {
		device = &midi.GenericDevice{}
	}
	if opts.UpdateRate <= 0 {
		opts.UpdateRate = DefaultOptions().UpdateRate
	}
	if opts.EncoderScale == 0 {
		opts.EncoderScale = DefaultOptions().EncoderScale
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	layout := device.Layout()
	e := &Engine{
		bank:     mapping.NewBank(reg, int(layout.BaseNote)),
		reg:      reg,
		device:   device,
		layout:   layout,
		opts:     opts,
		logger:   logger,
		feedback: NewFeedback(device),
	}
	e.divider = Scheduler{engine: e}
	e.publishActive()
	return e
}

// Close detaches the port and releases every owned handle.
func (e *Engine) Close() {
	e.Detach()
	e.bank.Close()
}

// Attach connects a port: the device is activated and every light resent on
// the next cycle. On failure the engine is left without a port.
func (e *Engine) Attach(port *midi.Port) error {
	e.Detach()
	e.feedback.Invalidate()
	if err := e.device.Activate(port.Send); err != nil {
		return fmt.Errorf("failed to activate device on %s: %w", port.Name(), err)
	}
	e.port = port
	e.logger.Info("controller attached", "port", port.Name())
	return nil
}

// Detach turns the lights off and forgets the port. The port itself is not
// closed.
func (e *Engine) Detach() {
	if e.port == nil {
		return
	}
	if err := e.feedback.Blackout(e.port.Send); err != nil {
		e.logger.Warn("failed to clear lights", "port", e.port.Name(), "error", err)
	}
	e.logger.Info("controller detached", "port", e.port.Name())
	e.port = nil
}

// Port returns the attached port, or nil.
func (e *Engine) Port() *midi.Port {
	return e.port
}

// Bank exposes the mapping state for inspection.
func (e *Engine) Bank() *mapping.Bank {
	return e.bank
}

// Registry returns the registry the engine was built on.
func (e *Engine) Registry() mapping.Registry {
	return e.reg
}

// Options returns the tuning in effect.
func (e *Engine) Options() Options {
	return e.opts
}

// Outputs returns the latest signal values.
func (e *Engine) Outputs() Outputs {
	return e.out
}

// Shift reports whether the modifier is latched.
func (e *Engine) Shift() bool {
	return e.shift
}

// Playing reports the transport toggle.
func (e *Engine) Playing() bool {
	return e.playing
}

// BeginLearn arms learn on ref.
func (e *Engine) BeginLearn(ref mapping.SlotRef) bool {
	if !e.bank.BeginLearn(ref) {
		return false
	}
	e.logger.Debug("learn armed", "slot", ref.String())
	return true
}

// CancelLearn disarms learn if it is armed on ref.
func (e *Engine) CancelLearn(ref mapping.SlotRef) {
	if !e.bank.Learn.Armed(ref) {
		return
	}
	e.bank.CancelLearn(ref)
	e.logger.Debug("learn cancelled", "slot", ref.String())
}

// TouchParam reports a parameter the user touched on the host. While learn
// is armed the parameter is captured into the armed slot.
func (e *Engine) TouchParam(t mapping.Target) bool {
	ref, ok := e.bank.Learn.Slot()
	if !ok {
		return false
	}
	committed := e.bank.LearnParam(ref, t)
	if committed {
		e.learnCommitted(ref)
	}
	e.publishActive()
	return committed
}

// ClearSlot removes the binding of ref.
func (e *Engine) ClearSlot(ref mapping.SlotRef) {
	e.bank.ClearSlot(ref)
	e.publishActive()
}

// SetKeyGroup assigns key to group.
func (e *Engine) SetKeyGroup(key, group int) {
	e.bank.Keys.SetGroup(key, group)
}

// Reset clears every mapping, forgets cached controller values and drops
// queued input.
func (e *Engine) Reset() {
	e.bank.Reset()
	if e.port != nil {
		e.port.Queue().Drain(func(midi.Message) {})
	}
	e.publishActive()
	e.logger.Debug("engine reset")
}

// Document snapshots the mapping state for persistence.
func (e *Engine) Document() mapping.Document {
	return e.bank.Document()
}

// Load replaces the mapping state with doc.
func (e *Engine) Load(doc mapping.Document) {
	e.bank.Load(doc)
	e.publishActive()
}

func (e *Engine) learnCommitted(ref mapping.SlotRef) {
	metrics.LearnCommits.Inc()
	next, armed := e.bank.Learn.Slot()
	if armed {
		e.logger.Debug("learn committed", "slot", ref.String(), "next", next.String())
		return
	}
	e.logger.Debug("learn committed", "slot", ref.String())
}

func (e *Engine) publishActive() {
	for g, t := range e.bank.Tables {
		metrics.ActiveSlots.WithLabelValues(strconv.Itoa(g)).Set(float64(t.ActiveLength()))
	}
}
