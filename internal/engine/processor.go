package engine

import (
	"github.com/PixPMusic/pushmap/internal/metrics"
	"github.com/PixPMusic/pushmap/internal/midi"
)

// HandleMessage applies one inbound message to the engine state.
func (e *Engine) HandleMessage(msg midi.Message) {
	ev := midi.Decode(msg)
	switch ev.Kind {
	case midi.KindNoteOn, midi.KindNoteOff:
		if !e.layout.Contains(ev.Data1) {
			metrics.MessagesTotal.WithLabelValues("other").Inc()
			return
		}
		metrics.MessagesTotal.WithLabelValues("note").Inc()
		e.handleNote(ev)
	case midi.KindControlChange:
		metrics.MessagesTotal.WithLabelValues("cc").Inc()
		e.handleCC(ev.Data1, ev.Data2)
	default:
		metrics.MessagesTotal.WithLabelValues("other").Inc()
	}
}

func (e *Engine) handleNote(ev midi.Event) {
	keys := e.bank.Keys
	key := int(ev.Data1)
	if !keys.Passes(key, e.shift) {
		return
	}

	prevKey, prevGroup := keys.Focus()
	if ev.Kind == midi.KindNoteOn {
		e.out.PitchCV = float64(key-int(e.layout.BaseNote)) / 12
		e.out.Gate = GateHigh
		keys.NoteOn(key, ev.Data2)
	} else {
		e.out.Gate = 0
		keys.NoteOff(key)
	}

	focusKey, group := keys.Focus()
	if focusKey != prevKey || group != prevGroup {
		e.logger.Debug("focus changed", "key", focusKey, "group", group)
	}
	e.bank.SeedCache(group)
}

func (e *Engine) handleCC(cc, value uint8) {
	switch {
	case cc == e.layout.ShiftCC:
		if value > 0 {
			e.shift = !e.shift
			e.logger.Debug("shift toggled", "on", e.shift)
		}
		return

	case cc == e.layout.PlayCC:
		if value > 0 {
			e.out.GR, e.out.GRT = TriggerHigh, TriggerHigh
			e.playing = !e.playing
			e.logger.Debug("transport toggled", "playing", e.playing)
		} else {
			e.out.GR, e.out.GRT = 0, 0
		}
		return

	case e.shift && cc == e.layout.GroupEncoderCC:
		delta := 1
		if value&0x40 != 0 {
			delta = -1
		}
		key, _ := e.bank.Keys.Focus()
		group := e.bank.Keys.Reassign(delta)
		e.logger.Debug("key group reassigned", "key", key, "group", group)
		return
	}

	if ref, armed := e.bank.Learn.Slot(); armed {
		// A learn trigger is any value other than what the learning group
		// last cached for this controller.
		cached, _ := e.bank.Caches[ref.Group].Get(int(cc))
		if cached != float64(value) {
			if e.bank.LearnCC(int(cc)) {
				e.learnCommitted(ref)
			}
			e.publishActive()
		}
	}

	step := float64(midi.DecodeRelative(value)) * e.opts.EncoderScale
	e.bank.Cache(e.bank.Keys.FocusedGroup()).Add(int(cc), step)
}
